package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Open opens a session-scoped in-memory sqlite database. Each call gets its
// own database; it disappears when the returned handle is closed.
func Open(name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s-%s?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", name, uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetMaxIdleConns(1)
	// the in-memory database lives only as long as a connection does
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	return db, nil
}

// Bootstrap opens the catalog, applies migrations and seeds fixtures.
func Bootstrap(ctx context.Context, name string, log *zap.Logger) (*sql.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := Open(name)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := RunMigrationsWithDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := SeedFixtures(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed fixtures: %w", err)
	}
	log.Debug("catalog ready", zap.String("name", name))
	return db, nil
}

// WithTx runs fn in a transaction.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agrisense/agrisense/internal/database"
)

// MaintenanceService houses session-wide resets surfaced through the TUI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset restores the catalog to its fixture state, dropping any session
// changes such as read notifications. The schema is kept, and a failed
// reset leaves the catalog as it was.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	return database.WithTx(s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"zone_vertices",
			"zones",
			"alerts",
			"notifications",
			"recommendations",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return database.SeedFixturesTx(ctx, tx)
	})
}

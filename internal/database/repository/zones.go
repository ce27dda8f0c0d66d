package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrisense/agrisense/internal/zone"
)

// ZoneRepo handles zones and their boundary vertices.
type ZoneRepo struct {
	db DBTX
}

func NewZoneRepo(db DBTX) *ZoneRepo {
	return &ZoneRepo{db: db}
}

// Upsert validates z and replaces its row and boundary. On a *sql.DB the
// row and its vertices are written in their own transaction; on a *sql.Tx
// they join the caller's.
func (r *ZoneRepo) Upsert(ctx context.Context, z zone.Zone, sortOrder int) error {
	if err := z.Validate(); err != nil {
		return err
	}
	db, ok := r.db.(*sql.DB)
	if !ok {
		return upsertZone(ctx, r.db, z, sortOrder)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := upsertZone(ctx, tx, z, sortOrder); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertZone(ctx context.Context, q DBTX, z zone.Zone, sortOrder int) error {
	var issue *string
	if z.PredictedIssue != "" {
		issue = &z.PredictedIssue
	}
	if _, err := q.ExecContext(ctx, `
	INSERT INTO zones(id, name, crop_type, status, confidence, last_scan, predicted_issue, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 crop_type=excluded.crop_type,
	 status=excluded.status,
	 confidence=excluded.confidence,
	 last_scan=excluded.last_scan,
	 predicted_issue=excluded.predicted_issue,
	 sort_order=excluded.sort_order;
	`, z.ID, z.Name, z.CropType, string(z.Status), z.Confidence, z.LastScan, issue, sortOrder); err != nil {
		return fmt.Errorf("upsert zone %s: %w", z.ID, err)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM zone_vertices WHERE zone_id = ?`, z.ID); err != nil {
		return fmt.Errorf("clear boundary %s: %w", z.ID, err)
	}
	for i, c := range z.Boundary {
		if _, err := q.ExecContext(ctx, `INSERT INTO zone_vertices(zone_id, seq, lat, lng) VALUES (?, ?, ?, ?)`, z.ID, i, c.Lat, c.Lng); err != nil {
			return fmt.Errorf("insert vertex %s/%d: %w", z.ID, i, err)
		}
	}
	return nil
}

// List returns all zones in display order with their boundaries.
func (r *ZoneRepo) List(ctx context.Context) ([]zone.Zone, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, crop_type, status, confidence, last_scan, predicted_issue
	FROM zones ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	var out []zone.Zone
	index := map[string]int{}
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[z.ID] = len(out)
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	vrows, err := r.db.QueryContext(ctx, `SELECT zone_id, lat, lng FROM zone_vertices ORDER BY zone_id, seq`)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var id string
		var c zone.Coordinate
		if err := vrows.Scan(&id, &c.Lat, &c.Lng); err != nil {
			return nil, err
		}
		if i, ok := index[id]; ok {
			out[i].Boundary = append(out[i].Boundary, c)
		}
	}
	return out, vrows.Err()
}

// Get returns one zone or ErrNotFound.
func (r *ZoneRepo) Get(ctx context.Context, id string) (zone.Zone, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, crop_type, status, confidence, last_scan, predicted_issue
	FROM zones WHERE id = ?`, id)
	z, err := scanZone(row)
	if errors.Is(err, sql.ErrNoRows) {
		return zone.Zone{}, fmt.Errorf("zone %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return zone.Zone{}, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT lat, lng FROM zone_vertices WHERE zone_id = ? ORDER BY seq`, id)
	if err != nil {
		return zone.Zone{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c zone.Coordinate
		if err := rows.Scan(&c.Lat, &c.Lng); err != nil {
			return zone.Zone{}, err
		}
		z.Boundary = append(z.Boundary, c)
	}
	return z, rows.Err()
}

// CountByStatus counts zones per status; absent statuses map to zero.
func (r *ZoneRepo) CountByStatus(ctx context.Context) (map[zone.Status]int, error) {
	out := make(map[zone.Status]int, 3)
	for _, s := range zone.Statuses() {
		out[s] = 0
	}
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM zones GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[zone.Status(status)] = n
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanZone(s scanner) (zone.Zone, error) {
	var z zone.Zone
	var status string
	var issue sql.NullString
	if err := s.Scan(&z.ID, &z.Name, &z.CropType, &status, &z.Confidence, &z.LastScan, &issue); err != nil {
		return zone.Zone{}, err
	}
	z.Status = zone.Status(status)
	z.PredictedIssue = issue.String
	return z, nil
}

package repository

import (
	"context"
	"fmt"
)

// AlertRepo handles dashboard alerts.
type AlertRepo struct {
	db DBTX
}

func NewAlertRepo(db DBTX) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Upsert(ctx context.Context, a Alert) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO alerts(id, zone_label, message, age, severity, sort_order)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 zone_label=excluded.zone_label,
	 message=excluded.message,
	 age=excluded.age,
	 severity=excluded.severity,
	 sort_order=excluded.sort_order;
	`, a.ID, a.ZoneLabel, a.Message, a.Age, string(a.Severity), a.SortOrder)
	return err
}

// Recent returns up to limit alerts, newest first. limit <= 0 returns all.
func (r *AlertRepo) Recent(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, zone_label, message, age, severity, sort_order FROM alerts ORDER BY sort_order LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Alert
	for rows.Next() {
		var a Alert
		var sev string
		if err := rows.Scan(&a.ID, &a.ZoneLabel, &a.Message, &a.Age, &sev, &a.SortOrder); err != nil {
			return nil, err
		}
		a.Severity = Severity(sev)
		out = append(out, a)
	}
	return out, rows.Err()
}

// NotificationRepo handles the notification feed.
type NotificationRepo struct {
	db DBTX
}

func NewNotificationRepo(db DBTX) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Upsert(ctx context.Context, n Notification) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO notifications(id, title, message, zone_label, age, severity, unread, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 message=excluded.message,
	 zone_label=excluded.zone_label,
	 age=excluded.age,
	 severity=excluded.severity,
	 unread=excluded.unread,
	 sort_order=excluded.sort_order;
	`, n.ID, n.Title, n.Message, n.ZoneLabel, n.Age, string(n.Severity), n.Unread, n.SortOrder)
	return err
}

// List returns the feed in display order.
func (r *NotificationRepo) List(ctx context.Context) ([]Notification, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, message, zone_label, age, severity, unread, sort_order FROM notifications ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		var sev string
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.ZoneLabel, &n.Age, &sev, &n.Unread, &n.SortOrder); err != nil {
			return nil, err
		}
		n.Severity = Severity(sev)
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead clears the unread flag for the session.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET unread = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

// MarkAllRead clears every unread flag and reports how many changed.
func (r *NotificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET unread = 0 WHERE unread = 1`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UnreadCount counts notifications still flagged unread.
func (r *NotificationRepo) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE unread = 1`).Scan(&n)
	return n, err
}

// RecommendationRepo handles post-validation recommendations.
type RecommendationRepo struct {
	db DBTX
}

func NewRecommendationRepo(db DBTX) *RecommendationRepo {
	return &RecommendationRepo{db: db}
}

func (r *RecommendationRepo) Upsert(ctx context.Context, rec Recommendation) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO recommendations(id, title, description, priority, sort_order)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 description=excluded.description,
	 priority=excluded.priority,
	 sort_order=excluded.sort_order;
	`, rec.ID, rec.Title, rec.Description, string(rec.Priority), rec.SortOrder)
	return err
}

// List returns recommendations in seeded order.
func (r *RecommendationRepo) List(ctx context.Context) ([]Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, priority, sort_order FROM recommendations ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Recommendation
	for rows.Next() {
		var rec Recommendation
		var p string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &p, &rec.SortOrder); err != nil {
			return nil, err
		}
		rec.Priority = Priority(p)
		out = append(out, rec)
	}
	return out, rows.Err()
}

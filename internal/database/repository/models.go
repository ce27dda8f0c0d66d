package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// DBTX is satisfied by *sql.DB and *sql.Tx, so a repository can run inside
// a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Severity grades alerts and notifications.
type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityHealthy Severity = "healthy"
	SeverityInfo    Severity = "info"
)

// Priority grades recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities, most urgent first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Badge is the label shown next to a recommendation.
func (p Priority) Badge() string {
	switch p {
	case PriorityHigh:
		return "High Priority"
	case PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// Alert is a dashboard alert row.
type Alert struct {
	ID        string
	ZoneLabel string
	Message   string
	Age       string
	Severity  Severity
	SortOrder int
}

// Notification is a notification feed row.
type Notification struct {
	ID        string
	Title     string
	Message   string
	ZoneLabel string
	Age       string
	Severity  Severity
	Unread    bool
	SortOrder int
}

// Recommendation is an agronomic action suggested after validation.
type Recommendation struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	SortOrder   int
}

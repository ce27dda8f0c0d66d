package service

import (
	"context"
	"fmt"

	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/zone"
)

// RecentAlertLimit is how many alerts the dashboard shows.
const RecentAlertLimit = 3

// Overview is the dashboard summary.
type Overview struct {
	Region string
	Counts map[zone.Status]int
	Total  int
	Alerts []repository.Alert
	Unread int
}

// OverviewService assembles the dashboard from the catalog.
type OverviewService struct {
	Zones         *repository.ZoneRepo
	Alerts        *repository.AlertRepo
	Notifications *repository.NotificationRepo
	Region        string
}

func (s *OverviewService) Overview(ctx context.Context) (Overview, error) {
	counts, err := s.Zones.CountByStatus(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("count zones: %w", err)
	}
	alerts, err := s.Alerts.Recent(ctx, RecentAlertLimit)
	if err != nil {
		return Overview{}, fmt.Errorf("recent alerts: %w", err)
	}
	out := Overview{Region: s.Region, Counts: counts, Alerts: alerts}
	for _, n := range counts {
		out.Total += n
	}
	if s.Notifications != nil {
		if out.Unread, err = s.Notifications.UnreadCount(ctx); err != nil {
			return Overview{}, fmt.Errorf("unread notifications: %w", err)
		}
	}
	return out, nil
}

package service

import (
	"context"
	"sort"

	"github.com/agrisense/agrisense/internal/database/repository"
)

// RecommendationService lists suggested actions.
type RecommendationService struct {
	Recommendations *repository.RecommendationRepo
}

// List returns recommendations most urgent first, keeping catalog order
// within a priority.
func (s *RecommendationService) List(ctx context.Context) ([]repository.Recommendation, error) {
	recs, err := s.Recommendations.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs, nil
}

// NotificationService serves the notification feed.
type NotificationService struct {
	Notifications *repository.NotificationRepo
}

func (s *NotificationService) List(ctx context.Context) ([]repository.Notification, error) {
	return s.Notifications.List(ctx)
}

// MarkRead clears the unread flag and returns the refreshed feed.
func (s *NotificationService) MarkRead(ctx context.Context, id string) ([]repository.Notification, error) {
	if err := s.Notifications.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return s.Notifications.List(ctx)
}

// MarkAllRead clears every unread flag and returns the refreshed feed.
func (s *NotificationService) MarkAllRead(ctx context.Context) ([]repository.Notification, error) {
	if _, err := s.Notifications.MarkAllRead(ctx); err != nil {
		return nil, err
	}
	return s.Notifications.List(ctx)
}

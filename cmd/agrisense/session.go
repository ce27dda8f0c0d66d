package main

import (
	"context"
	"database/sql"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/agrisense/agrisense/internal/config"
	"github.com/agrisense/agrisense/internal/database"
	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/nav"
	"github.com/agrisense/agrisense/internal/service"
	"github.com/agrisense/agrisense/internal/tui"
)

// session is one run's catalog plus the settings the router is built from.
type session struct {
	db     *sql.DB
	cfg    config.Config
	logger *zap.Logger

	zones         *repository.ZoneRepo
	alerts        *repository.AlertRepo
	notifications *repository.NotificationRepo
	recs          *repository.RecommendationRepo
}

func openSession(ctx context.Context, cfg config.Config, logger *zap.Logger) (*session, error) {
	db, err := database.Bootstrap(ctx, cfg.Catalog.Name, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		db:            db,
		cfg:           cfg,
		logger:        logger,
		zones:         repository.NewZoneRepo(db),
		alerts:        repository.NewAlertRepo(db),
		notifications: repository.NewNotificationRepo(db),
		recs:          repository.NewRecommendationRepo(db),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// newRouter builds a router from configuration. A nil clock means the wall clock.
func (s *session) newRouter(clock clockwork.Clock) *nav.Router {
	return nav.New(
		nav.WithClock(clock),
		nav.WithDelay(s.cfg.UI.ProcessingDelay),
		nav.WithDefaultResult(s.cfg.DefaultResult()),
		nav.WithLogger(s.logger.Named("nav")),
	)
}

func (s *session) services() tui.Services {
	return tui.Services{
		Overview: &service.OverviewService{
			Zones:         s.zones,
			Alerts:        s.alerts,
			Notifications: s.notifications,
			Region:        s.cfg.UI.Region,
		},
		Zones:           &service.ZoneService{Zones: s.zones},
		Recommendations: &service.RecommendationService{Recommendations: s.recs},
		Notifications:   &service.NotificationService{Notifications: s.notifications},
		Maintenance:     &service.MaintenanceService{DB: s.db},
	}
}

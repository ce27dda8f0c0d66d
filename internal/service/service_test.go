package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrisense/agrisense/internal/database"
	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/nav"
	"github.com/agrisense/agrisense/internal/zone"
)

func newCatalog(t *testing.T) *sql.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, err := database.Bootstrap(ctx, t.Name(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOverview(t *testing.T) {
	t.Parallel()
	db := newCatalog(t)
	svc := &OverviewService{
		Zones:         repository.NewZoneRepo(db),
		Alerts:        repository.NewAlertRepo(db),
		Notifications: repository.NewNotificationRepo(db),
		Region:        "Udawalawe Region",
	}

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Udawalawe Region", ov.Region)
	require.Equal(t, 5, ov.Total)
	require.Equal(t, 2, ov.Counts[zone.StatusHealthy])
	require.Equal(t, 2, ov.Counts[zone.StatusMedium])
	require.Equal(t, 1, ov.Counts[zone.StatusHigh])
	require.Len(t, ov.Alerts, RecentAlertLimit)
	require.Equal(t, 2, ov.Unread)
}

func TestOverviewWithoutNotifications(t *testing.T) {
	t.Parallel()
	db := newCatalog(t)
	svc := &OverviewService{Zones: repository.NewZoneRepo(db), Alerts: repository.NewAlertRepo(db)}

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Zero(t, ov.Unread)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	zones := database.FixtureZones()

	ids := func(zs []zone.Zone) []string {
		out := make([]string, 0, len(zs))
		for _, z := range zs {
			out = append(out, z.ID)
		}
		return out
	}

	require.Equal(t, ids(zones), ids(Search(zones, "  ")))
	require.Equal(t, []string{"B-08"}, ids(Search(zones, "b-08")))
	require.Equal(t, []string{"C-15"}, ids(Search(zones, "c-1")))
	require.Equal(t, []string{"B-08", "E-19"}, ids(Search(zones, "corn")))
	// one typo away from "RICE"
	require.Equal(t, []string{"A-12", "C-15", "D-03"}, ids(Search(zones, "rize")))
	require.Empty(t, Search(zones, "wheat"))
}

func TestSearchRanksExactIDFirst(t *testing.T) {
	t.Parallel()
	zones := []zone.Zone{
		{ID: "A-120", Name: "Zone A-120", CropType: "Rice"},
		{ID: "A-12", Name: "Zone A-12", CropType: "Rice"},
		{ID: "X-1", Name: "Near A-12", CropType: "Corn"},
	}

	got := Search(zones, "A-12")
	require.Len(t, got, 3)
	require.Equal(t, "A-12", got[0].ID)
	require.Equal(t, "A-120", got[1].ID)
	require.Equal(t, "X-1", got[2].ID)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	ok := Analyze(nav.ResultConfirmed)
	require.True(t, ok.Confirmed)
	require.Equal(t, "Issue Confirmed", ok.Headline)
	require.Equal(t, zone.StatusHigh, ok.Satellite)
	require.Equal(t, zone.StatusHigh, ok.Ground)
	require.Equal(t, "Validation complete • Confidence: 94%", ok.Confidence)

	fp := Analyze(nav.ResultFalsePositive)
	require.False(t, fp.Confirmed)
	require.Equal(t, "No Issue Detected", fp.Headline)
	require.Equal(t, zone.StatusMedium, fp.Satellite)
	require.Equal(t, zone.StatusHealthy, fp.Ground)
	require.Empty(t, fp.Confidence)

	require.Equal(t, "Medium stress", StressLabel(fp.Satellite))
	require.Equal(t, "Healthy", StressLabel(fp.Ground))
}

func TestRecommendationsSortedByPriority(t *testing.T) {
	t.Parallel()
	db := newCatalog(t)
	ctx := context.Background()
	repo := repository.NewRecommendationRepo(db)
	require.NoError(t, repo.Upsert(ctx, repository.Recommendation{
		ID: "late-high", Title: "Scout Borders", Description: "Walk the field edge.", Priority: repository.PriorityHigh, SortOrder: 99,
	}))

	recs, err := (&RecommendationService{Recommendations: repo}).List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 5)
	require.Equal(t, "Increase Irrigation", recs[0].Title)
	require.Equal(t, "Scout Borders", recs[1].Title)
	require.Equal(t, "Check for Weeds", recs[2].Title)
	require.Equal(t, repository.PriorityLow, recs[4].Priority)
}

func TestNotificationMarkReadAndReset(t *testing.T) {
	t.Parallel()
	db := newCatalog(t)
	ctx := context.Background()
	notifs := &NotificationService{Notifications: repository.NewNotificationRepo(db)}

	list, err := notifs.List(ctx)
	require.NoError(t, err)
	list, err = notifs.MarkRead(ctx, list[1].ID)
	require.NoError(t, err)
	require.False(t, list[1].Unread)

	_, err = notifs.MarkRead(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, (&MaintenanceService{DB: db}).Reset(ctx))
	list, err = notifs.List(ctx)
	require.NoError(t, err)
	require.True(t, list[1].Unread)
	require.Len(t, list, 5)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}

func TestFailedResetKeepsCatalog(t *testing.T) {
	t.Parallel()
	db := newCatalog(t)
	ctx := context.Background()
	notifs := &NotificationService{Notifications: repository.NewNotificationRepo(db)}

	_, err := notifs.MarkAllRead(ctx)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "DROP TABLE recommendations")
	require.NoError(t, err)

	err = (&MaintenanceService{DB: db}).Reset(ctx)
	require.ErrorContains(t, err, "reset table recommendations")

	var zones int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM zones").Scan(&zones))
	require.Equal(t, 5, zones)
	list, err := notifs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, n := range list {
		require.False(t, n.Unread, "read flags survive a failed reset")
	}
}

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/zone"
)

func TestBootstrapSeedsCatalog(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, err := Bootstrap(ctx, "bootstrap", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	counts := map[string]int{}
	for _, table := range []string{"zones", "zone_vertices", "alerts", "notifications", "recommendations"} {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		counts[table] = n
	}
	require.Equal(t, map[string]int{
		"zones":           5,
		"zone_vertices":   20,
		"alerts":          3,
		"notifications":   5,
		"recommendations": 4,
	}, counts)
}

func TestSeedFixturesIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Bootstrap(ctx, "idempotent", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SeedFixtures(ctx, db))
	require.NoError(t, RunMigrationsWithDB(db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications").Scan(&n))
	require.Equal(t, 5, n)
}

func TestCatalogsAreIsolated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a, err := Bootstrap(ctx, "isolated", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	b, err := Bootstrap(ctx, "isolated", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	notifs := repository.NewNotificationRepo(a)
	list, err := notifs.List(ctx)
	require.NoError(t, err)
	require.NoError(t, notifs.MarkRead(ctx, list[0].ID))

	unreadA, err := notifs.UnreadCount(ctx)
	require.NoError(t, err)
	unreadB, err := repository.NewNotificationRepo(b).UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, unreadA)
	require.Equal(t, 2, unreadB)
}

func TestFixtureZonesValidate(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, z := range FixtureZones() {
		require.NoError(t, z.Validate(), z.ID)
		require.False(t, seen[z.ID], "duplicate %s", z.ID)
		seen[z.ID] = true
		require.Greater(t, z.AreaHectares(), 0.0)
	}
	require.Len(t, seen, 5)
}

func TestFixtureIDsAreStable(t *testing.T) {
	t.Parallel()

	first := fixtureRecommendations()
	second := fixtureRecommendations()
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID)
	}
	require.NotEqual(t, fixtureID("alert", "x"), fixtureID("notification", "x"))
}

func TestSchemaRejectsBadStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Bootstrap(ctx, "checks", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO zones(id, name, crop_type, status, confidence, last_scan, sort_order) VALUES ('Z', 'Z', 'Rice', 'critical', 50, 'now', 9)`)
	require.Error(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO zones(id, name, crop_type, status, confidence, last_scan, sort_order) VALUES ('Z', 'Z', 'Rice', ?, 150, 'now', 9)`, string(zone.StatusHealthy))
	require.Error(t, err)
}

func TestSeedFixturesReportsMissingSchema(t *testing.T) {
	t.Parallel()

	db, err := Open("unmigrated")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = SeedFixtures(context.Background(), db)
	require.ErrorContains(t, err, "count zones")
}

func TestSeedFixturesRollsBackPartialSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open("partial")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrationsWithDB(db))
	_, err = db.ExecContext(ctx, "DROP TABLE recommendations")
	require.NoError(t, err)

	require.Error(t, SeedFixtures(ctx, db))
	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM zones").Scan(&n))
	require.Zero(t, n)
}

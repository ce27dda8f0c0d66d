package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/zone"
)

// FixtureZones are the monitored zones of the Udawalawe pilot.
func FixtureZones() []zone.Zone {
	return []zone.Zone{
		{
			ID: "A-12", Name: "Zone A-12", CropType: "Rice", Status: zone.StatusHigh, Confidence: 87,
			LastScan: "2 hours ago", PredictedIssue: "Water stress detected",
			Boundary: square(6.45, 80.62),
		},
		{
			ID: "B-08", Name: "Zone B-08", CropType: "Corn", Status: zone.StatusMedium, Confidence: 72,
			LastScan: "5 hours ago", PredictedIssue: "Minor vegetation change",
			Boundary: square(6.47, 80.61),
		},
		{
			ID: "C-15", Name: "Zone C-15", CropType: "Rice", Status: zone.StatusHealthy, Confidence: 94,
			LastScan: "1 day ago",
			Boundary: square(6.44, 80.64),
		},
		{
			ID: "D-03", Name: "Zone D-03", CropType: "Rice", Status: zone.StatusHealthy, Confidence: 91,
			LastScan: "3 hours ago",
			Boundary: square(6.43, 80.61),
		},
		{
			ID: "E-19", Name: "Zone E-19", CropType: "Corn", Status: zone.StatusMedium, Confidence: 78,
			LastScan: "6 hours ago", PredictedIssue: "Minor stress",
			Boundary: square(6.46, 80.64),
		},
	}
}

// square is a 0.01 degree cell with its south-west corner at lat/lng.
func square(lat, lng float64) []zone.Coordinate {
	return []zone.Coordinate{
		{Lat: lat, Lng: lng},
		{Lat: lat + 0.01, Lng: lng},
		{Lat: lat + 0.01, Lng: lng + 0.01},
		{Lat: lat, Lng: lng + 0.01},
	}
}

func fixtureID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+key)).String()
}

func fixtureAlerts() []repository.Alert {
	alerts := []repository.Alert{
		{ZoneLabel: "Zone A-12", Message: "Possible water stress detected", Age: "2h ago", Severity: repository.SeverityHigh},
		{ZoneLabel: "Zone B-08", Message: "Minor vegetation change", Age: "5h ago", Severity: repository.SeverityMedium},
		{ZoneLabel: "Zone C-15", Message: "Healthy crop growth", Age: "1d ago", Severity: repository.SeverityHealthy},
	}
	for i := range alerts {
		alerts[i].ID = fixtureID("alert", alerts[i].ZoneLabel+alerts[i].Message)
		alerts[i].SortOrder = i
	}
	return alerts
}

func fixtureNotifications() []repository.Notification {
	ns := []repository.Notification{
		{Title: "High Stress Alert", Message: "Water stress detected in Zone A-12. Immediate action recommended.", ZoneLabel: "Zone A-12", Age: "2 hours ago", Severity: repository.SeverityHigh, Unread: true},
		{Title: "Medium Stress Alert", Message: "Minor vegetation change observed in Zone B-08.", ZoneLabel: "Zone B-08", Age: "5 hours ago", Severity: repository.SeverityMedium, Unread: true},
		{Title: "Validation Complete", Message: "Ground image validation successful for Zone A-12.", ZoneLabel: "Zone A-12", Age: "1 day ago", Severity: repository.SeverityInfo},
		{Title: "Healthy Status", Message: "Zone C-15 showing healthy crop growth.", ZoneLabel: "Zone C-15", Age: "1 day ago", Severity: repository.SeverityHealthy},
		{Title: "Scan Complete", Message: "Weekly satellite scan completed for all zones.", ZoneLabel: "All Zones", Age: "2 days ago", Severity: repository.SeverityInfo},
	}
	for i := range ns {
		ns[i].ID = fixtureID("notification", ns[i].Title)
		ns[i].SortOrder = i
	}
	return ns
}

func fixtureRecommendations() []repository.Recommendation {
	recs := []repository.Recommendation{
		{Title: "Increase Irrigation", Description: "Water stress detected. Increase irrigation frequency to 2x daily for the next 5 days.", Priority: repository.PriorityHigh},
		{Title: "Check for Weeds", Description: "Inspect field for weed growth that may be competing for water and nutrients.", Priority: repository.PriorityMedium},
		{Title: "Monitor Soil Moisture", Description: "Install soil moisture sensors or perform manual checks in affected zones.", Priority: repository.PriorityMedium},
		{Title: "Consider Fertilization", Description: "If stress persists after irrigation, consider applying balanced NPK fertilizer.", Priority: repository.PriorityLow},
	}
	for i := range recs {
		recs[i].ID = fixtureID("recommendation", recs[i].Title)
		recs[i].SortOrder = i
	}
	return recs
}

// SeedFixtures loads the fixture catalog in one transaction. It is
// idempotent and safe to run on an already seeded database.
func SeedFixtures(ctx context.Context, db *sql.DB) error {
	return WithTx(db, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM zones`).Scan(&n); err != nil {
			return fmt.Errorf("count zones: %w", err)
		}
		if n > 0 {
			return nil
		}
		return SeedFixturesTx(ctx, tx)
	})
}

// SeedFixturesTx writes every fixture through tx, replacing rows with the
// same ids.
func SeedFixturesTx(ctx context.Context, tx *sql.Tx) error {
	zoneRepo := repository.NewZoneRepo(tx)
	for i, z := range FixtureZones() {
		if err := zoneRepo.Upsert(ctx, z, i); err != nil {
			return err
		}
	}
	alertRepo := repository.NewAlertRepo(tx)
	for _, a := range fixtureAlerts() {
		if err := alertRepo.Upsert(ctx, a); err != nil {
			return fmt.Errorf("alert %s: %w", a.ID, err)
		}
	}
	notifRepo := repository.NewNotificationRepo(tx)
	for _, n := range fixtureNotifications() {
		if err := notifRepo.Upsert(ctx, n); err != nil {
			return fmt.Errorf("notification %s: %w", n.ID, err)
		}
	}
	recRepo := repository.NewRecommendationRepo(tx)
	for _, rec := range fixtureRecommendations() {
		if err := recRepo.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("recommendation %s: %w", rec.ID, err)
		}
	}
	return nil
}

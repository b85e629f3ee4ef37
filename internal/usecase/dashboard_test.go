package usecase

import (
	"context"
	"testing"
	"time"

	"aeroops-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummaryLive(t *testing.T) {
	repos := newTestRepos(t)
	seeder := NewDemoSeeder(repos.maintenance, repos.incidents, repos.flights, testLogger())
	service := NewDashboardService(repos.maintenance, repos.incidents, repos.flights, seeder, testLogger())
	ctx := context.Background()

	now := time.Now()
	_, err := repos.maintenance.Insert(ctx, &entity.MaintenanceRecord{
		AircraftRegistration: "AP-BHA",
		MaintenanceType:      "A-Check",
		ScheduledDate:        now,
		HoursSpent:           12.5,
		Status:               "Completed",
		Priority:             "Low",
	})
	require.NoError(t, err)

	for _, severity := range []string{"Minor", "Major", "Critical"} {
		_, err := repos.incidents.Insert(ctx, &entity.SafetyIncident{
			IncidentDate:        now,
			IncidentType:        "Engine Issue",
			Severity:            severity,
			Description:         "test",
			InvestigationStatus: "Open",
		})
		require.NoError(t, err)
	}

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.False(t, summary.Degraded)
	assert.EqualValues(t, 1, summary.MaintenanceCount)
	assert.EqualValues(t, 3, summary.IncidentCount)
	assert.EqualValues(t, 2, summary.CriticalIncidentCount)
	assert.EqualValues(t, 0, summary.FlightCount)
	assert.Equal(t, 12.5, summary.TotalMaintenanceHours)
}

func TestDashboardFallsBackToSnapshotOnOutage(t *testing.T) {
	repos := newTestRepos(t)
	seeder := NewDemoSeeder(repos.maintenance, repos.incidents, repos.flights, testLogger())
	service := NewDashboardService(repos.maintenance, repos.incidents, repos.flights, seeder, testLogger())

	breakStore(t, repos.db)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.Degraded)
	assert.EqualValues(t, 50, summary.MaintenanceCount)
	assert.EqualValues(t, 30, summary.IncidentCount)
	assert.EqualValues(t, 100, summary.FlightCount)
}

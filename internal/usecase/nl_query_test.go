package usecase

import (
	"context"
	"testing"
	"time"

	"aeroops-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	answer string
	asked  string
}

func (f *fakeLLM) Fetch(_ context.Context, query string) (string, error) {
	f.asked = query
	return f.answer, nil
}

func TestAnswerTotalMaintenanceHours(t *testing.T) {
	repos := newTestRepos(t)
	service := NewNLQueryService(repos.maintenance, repos.incidents, nil, testLogger())
	ctx := context.Background()

	for _, hours := range []float64{10, 14.5} {
		_, err := repos.maintenance.Insert(ctx, &entity.MaintenanceRecord{
			AircraftRegistration: "AP-BHA",
			MaintenanceType:      "A-Check",
			ScheduledDate:        time.Now(),
			HoursSpent:           hours,
			Status:               "Completed",
			Priority:             "Low",
		})
		require.NoError(t, err)
	}

	result, err := service.Answer(ctx, "What are the TOTAL MAINTENANCE HOURS this year?")
	require.NoError(t, err)
	assert.Equal(t, "Total maintenance hours: 24.5", result.Answer)
	require.NotNil(t, result.Table)
	assert.Len(t, result.Table.Rows, 2)
}

func TestAnswerEmergencyIncidents(t *testing.T) {
	repos := newTestRepos(t)
	service := NewNLQueryService(repos.maintenance, repos.incidents, nil, testLogger())
	ctx := context.Background()

	for _, severity := range []string{"Minor", "Major", "Critical"} {
		_, err := repos.incidents.Insert(ctx, &entity.SafetyIncident{
			IncidentDate:        time.Now(),
			IncidentType:        "Hard Landing",
			Severity:            severity,
			Description:         "test",
			InvestigationStatus: "Open",
		})
		require.NoError(t, err)
	}

	result, err := service.Answer(ctx, "show emergency incidents")
	require.NoError(t, err)
	assert.Equal(t, "Found 2 critical incidents", result.Answer)
	require.NotNil(t, result.Table)
	assert.Len(t, result.Table.Rows, 2)
}

func TestAnswerFallsBackToLLM(t *testing.T) {
	repos := newTestRepos(t)
	llm := &fakeLLM{answer: "42 flights were delayed last week."}
	service := NewNLQueryService(repos.maintenance, repos.incidents, llm, testLogger())

	result, err := service.Answer(context.Background(), "how many flights were delayed last week?")
	require.NoError(t, err)
	assert.Equal(t, "42 flights were delayed last week.", result.Answer)
	assert.Equal(t, "how many flights were delayed last week?", llm.asked)
	assert.Nil(t, result.Table)
}

func TestAnswerHintWithoutLLM(t *testing.T) {
	repos := newTestRepos(t)
	service := NewNLQueryService(repos.maintenance, repos.incidents, nil, testLogger())

	result, err := service.Answer(context.Background(), "what is the meaning of life?")
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "total maintenance hours")
}

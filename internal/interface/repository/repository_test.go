package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(db))
	return db
}

func testMaintenance() *entity.MaintenanceRecord {
	return &entity.MaintenanceRecord{
		AircraftRegistration: "AP-BHA",
		MaintenanceType:      "A-Check",
		ScheduledDate:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		HoursSpent:           24.5,
		Cost:                 50000,
		Status:               "Completed",
		Priority:             "Medium",
	}
}

func TestInsertThenQueryByID(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	stored, err := repo.Insert(ctx, testMaintenance())
	require.NoError(t, err)
	require.NotZero(t, stored.ID)
	require.False(t, stored.CreatedAt.IsZero())

	records, err := repo.Query(ctx, []repository.Filter{
		{Field: "id", Op: repository.OpEq, Value: float64(stored.ID)},
	}, nil, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "AP-BHA", got.AircraftRegistration)
	assert.Equal(t, "A-Check", got.MaintenanceType)
	assert.Equal(t, 24.5, got.HoursSpent)
	assert.Equal(t, 50000.0, got.Cost)
	assert.Equal(t, "Completed", got.Status)
	assert.Equal(t, "Medium", got.Priority)
}

func TestInsertRejectsInvalidRecord(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))

	record := testMaintenance()
	record.Status = ""
	_, err := repo.Insert(context.Background(), record)

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdatePreservesIDAndCreatedAt(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	stored, err := repo.Insert(ctx, testMaintenance())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	newStatus := "In Progress"
	newHours := 30.0
	updated, err := repo.Update(ctx, stored.ID, &entity.MaintenanceUpdate{
		Status:     &newStatus,
		HoursSpent: &newHours,
	})
	require.NoError(t, err)

	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, stored.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.True(t, updated.UpdatedAt.After(stored.UpdatedAt))
	assert.Equal(t, "In Progress", updated.Status)
	assert.Equal(t, 30.0, updated.HoursSpent)
	// Untouched fields survive the merge.
	assert.Equal(t, "AP-BHA", updated.AircraftRegistration)
}

func TestUpdateValidatesMergedRecord(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	stored, err := repo.Insert(ctx, testMaintenance())
	require.NoError(t, err)

	bad := "Unknown"
	_, err = repo.Update(ctx, stored.ID, &entity.MaintenanceUpdate{Status: &bad})
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdateMissingRecord(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))

	status := "Completed"
	_, err := repo.Update(context.Background(), 9999, &entity.MaintenanceUpdate{Status: &status})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	stored, err := repo.Insert(ctx, testMaintenance())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, stored.ID))
	assert.ErrorIs(t, repo.Delete(ctx, stored.ID), repository.ErrNotFound)

	records, err := repo.Query(ctx, []repository.Filter{
		{Field: "id", Op: repository.OpEq, Value: float64(stored.ID)},
	}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDeleteMissingRecord(t *testing.T) {
	repo := NewGormFlightRepository(newTestDB(t))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1234), repository.ErrNotFound)
}

func TestQueryRangeFilterAndSort(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	for i, hours := range []float64{10, 20, 30} {
		record := testMaintenance()
		record.HoursSpent = hours
		record.ScheduledDate = time.Date(2025, 1, 10+i, 0, 0, 0, 0, time.UTC)
		_, err := repo.Insert(ctx, record)
		require.NoError(t, err)
	}

	records, err := repo.Query(ctx, []repository.Filter{
		{Field: "hours_spent", Op: repository.OpGte, Value: 15.0},
	}, &repository.Sort{Field: "hours_spent", Desc: true}, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 30.0, records[0].HoursSpent)
	assert.Equal(t, 20.0, records[1].HoursSpent)
}

func TestQueryLimit(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, testMaintenance())
		require.NoError(t, err)
	}

	records, err := repo.Query(ctx, nil, nil, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestQueryUnsupportedField(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))

	_, err := repo.Query(context.Background(), []repository.Filter{
		{Field: "description", Op: repository.OpEq, Value: "x"},
	}, nil, 0)

	var queryErr *repository.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "description", queryErr.Field)
}

func TestQueryUnsupportedOperator(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))

	_, err := repo.Query(context.Background(), []repository.Filter{
		{Field: "status", Op: "like", Value: "Comp%"},
	}, nil, 0)

	var queryErr *repository.QueryError
	require.ErrorAs(t, err, &queryErr)
}

func TestAggregateCountSumAvg(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	fixtures := []struct {
		mtype string
		hours float64
	}{
		{"A-Check", 10},
		{"A-Check", 30},
		{"B-Check", 5},
	}
	for _, f := range fixtures {
		record := testMaintenance()
		record.MaintenanceType = f.mtype
		record.HoursSpent = f.hours
		_, err := repo.Insert(ctx, record)
		require.NoError(t, err)
	}

	counts, err := repo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "maintenance_type", Metric: repository.MetricCount,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A-Check": 2, "B-Check": 1}, counts)

	sums, err := repo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "maintenance_type", Metric: repository.MetricSum, MetricField: "hours_spent",
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, sums["A-Check"])

	avgs, err := repo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "maintenance_type", Metric: repository.MetricAvg, MetricField: "hours_spent",
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, avgs["A-Check"])
	assert.Equal(t, 5.0, avgs["B-Check"])
}

func TestAggregateTimeWindow(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	inside := testMaintenance()
	inside.ScheduledDate = time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Insert(ctx, inside)
	require.NoError(t, err)

	outside := testMaintenance()
	outside.ScheduledDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = repo.Insert(ctx, outside)
	require.NoError(t, err)

	counts, err := repo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "maintenance_type",
		Metric:  repository.MetricCount,
		Window: repository.TimeWindow{
			From: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A-Check": 1}, counts)
}

func TestAggregateEmptyWindow(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Insert(ctx, testMaintenance())
	require.NoError(t, err)

	// Average over a window with no matching records: empty groups are
	// omitted, never zero-filled, and no division by zero occurs.
	avgs, err := repo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy:     "maintenance_type",
		Metric:      repository.MetricAvg,
		MetricField: "hours_spent",
		Window: repository.TimeWindow{
			From: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	assert.Empty(t, avgs)
}

func TestAggregateUnknownGroupField(t *testing.T) {
	repo := NewGormIncidentRepository(newTestDB(t))

	_, err := repo.Aggregate(context.Background(), repository.AggregateRequest{
		GroupBy: "weather", Metric: repository.MetricCount,
	})
	var queryErr *repository.QueryError
	require.ErrorAs(t, err, &queryErr)
}

func TestAggregateNonNumericMetricField(t *testing.T) {
	repo := NewGormMaintenanceRepository(newTestDB(t))

	_, err := repo.Aggregate(context.Background(), repository.AggregateRequest{
		GroupBy: "maintenance_type", Metric: repository.MetricSum, MetricField: "status",
	})
	var queryErr *repository.QueryError
	require.ErrorAs(t, err, &queryErr)
}

func TestFlightRoundtrip(t *testing.T) {
	repo := NewGormFlightRepository(newTestDB(t))
	ctx := context.Background()

	departure := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	actual := departure.Add(25 * time.Minute)
	stored, err := repo.Insert(ctx, &entity.FlightRecord{
		FlightNumber:         "PK301",
		AircraftRegistration: "AP-BHC",
		DepartureAirport:     "KHI",
		ArrivalAirport:       "ISB",
		ScheduledDeparture:   departure,
		ScheduledArrival:     departure.Add(2 * time.Hour),
		ActualDeparture:      &actual,
		PassengerCount:       182,
		CargoWeight:          5400,
		FlightStatus:         "Delayed",
		DelayReason:          "Weather",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "PK301", got.FlightNumber)
	assert.Equal(t, 182, got.PassengerCount)
	require.NotNil(t, got.ActualDeparture)
	assert.Equal(t, actual.Unix(), got.ActualDeparture.Unix())
	assert.Nil(t, got.ActualArrival)
}

func TestIncidentSeverityAggregate(t *testing.T) {
	repo := NewGormIncidentRepository(newTestDB(t))
	ctx := context.Background()

	for _, severity := range []string{"Minor", "Major", "Critical", "Critical"} {
		_, err := repo.Insert(ctx, &entity.SafetyIncident{
			IncidentDate:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			IncidentType:        "Bird Strike",
			Severity:            severity,
			Description:         "test incident",
			InvestigationStatus: "Open",
		})
		require.NoError(t, err)
	}

	counts, err := repo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "severity", Metric: repository.MetricCount,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, counts["Critical"])
	assert.Equal(t, 1.0, counts["Major"])
	_, hasModerate := counts["Moderate"]
	assert.False(t, hasModerate)
}

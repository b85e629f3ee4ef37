package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maintenanceMapping = map[string]string{
	"Tail Number": "aircraft_registration",
	"Check Type":  "maintenance_type",
	"Date":        "scheduled_date",
	"Hours":       "hours_spent",
	"Cost":        "cost",
	"State":       "status",
	"Priority":    "priority",
}

const maintenanceHeader = "Tail Number,Check Type,Date,Hours,Cost,State,Priority\n"

func TestImportValidRows(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())

	csvData := maintenanceHeader +
		"AP-BHA,A-Check,2025-01-15,24.5,50000,Completed,Medium\n" +
		"AP-BHB,B-Check,2025-02-01,40,120000,Scheduled,High\n"

	result, err := importer.Import(context.Background(), entity.KindMaintenance, strings.NewReader(csvData), maintenanceMapping)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Rejected)
	assert.NotEmpty(t, result.ImportID)

	records, err := repos.maintenance.Query(context.Background(), nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "csv-import", records[0].CreatedBy)
	assert.True(t, records[0].ScheduledDate.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestImportRejectsBadRowsAndKeepsGoing(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())

	csvData := maintenanceHeader +
		"AP-BHA,A-Check,2025-01-15,24.5,50000,Completed,Medium\n" +
		"AP-BHB,A-Check,2025-01-16,not-a-number,1000,Scheduled,Low\n" +
		"AP-BHC,C-Check,2025-01-17,8,2500,In Progress,Low\n"

	result, err := importer.Import(context.Background(), entity.KindMaintenance, strings.NewReader(csvData), maintenanceMapping)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Rejected)

	require.Len(t, result.Rejections, 1)
	rejection := result.Rejections[0]
	assert.Equal(t, 2, rejection.Row)
	assert.Equal(t, "hours_spent", rejection.Field)
	assert.Contains(t, rejection.Reason, "not-a-number")
}

func TestImportNormalizesEnumCase(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())

	csvData := maintenanceHeader +
		"AP-BHA,a-check,2025-01-15,10,1000,completed,medium\n"

	result, err := importer.Import(context.Background(), entity.KindMaintenance, strings.NewReader(csvData), maintenanceMapping)
	require.NoError(t, err)
	require.Equal(t, 1, result.Inserted)

	records, err := repos.maintenance.Query(context.Background(), nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "A-Check", records[0].MaintenanceType)
	assert.Equal(t, "Completed", records[0].Status)
}

func TestImportUnmappedRequiredField(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())

	mapping := map[string]string{
		"Tail Number": "aircraft_registration",
		"Check Type":  "maintenance_type",
		"Date":        "scheduled_date",
		"Hours":       "hours_spent",
		"Cost":        "cost",
		"State":       "status",
		// priority left unmapped
	}
	csvData := maintenanceHeader +
		"AP-BHA,A-Check,2025-01-15,24.5,50000,Completed,Medium\n"

	result, err := importer.Import(context.Background(), entity.KindMaintenance, strings.NewReader(csvData), mapping)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	require.Len(t, result.Rejections, 1)
	assert.Equal(t, "priority", result.Rejections[0].Field)
}

func TestImportUnknownTargetField(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())

	mapping := map[string]string{"Tail Number": "wing_span"}
	_, err := importer.Import(context.Background(), entity.KindMaintenance,
		strings.NewReader(maintenanceHeader), mapping)

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "wing_span", validationErr.Field)
}

func TestImportMissingSourceColumn(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())

	mapping := map[string]string{"Registration": "aircraft_registration"}
	_, err := importer.Import(context.Background(), entity.KindMaintenance,
		strings.NewReader(maintenanceHeader), mapping)

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Registration", validationErr.Field)
}

func TestImportStoreFailureReturnsPartialResult(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())
	breakStore(t, repos.db)

	csvData := maintenanceHeader +
		"AP-BHA,A-Check,2025-01-15,24.5,50000,Completed,Medium\n"

	result, err := importer.Import(context.Background(), entity.KindMaintenance, strings.NewReader(csvData), maintenanceMapping)
	require.Error(t, err)
	var unavailable *repository.StorageUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Inserted)
}

func TestImportFlights(t *testing.T) {
	repos := newTestRepos(t)
	importer := NewCSVImporter(repos.maintenance, repos.incidents, repos.flights, testLogger())

	mapping := map[string]string{
		"Flight":     "flight_number",
		"Aircraft":   "aircraft_registration",
		"From":       "departure_airport",
		"To":         "arrival_airport",
		"Departs":    "scheduled_departure",
		"Arrives":    "scheduled_arrival",
		"Passengers": "passengers_count",
		"Status":     "flight_status",
	}
	csvData := "Flight,Aircraft,From,To,Departs,Arrives,Passengers,Status\n" +
		"PK301,AP-BHC,KHI,ISB,2025-04-01T08:00:00Z,2025-04-01T10:00:00Z,182,On Time\n"

	result, err := importer.Import(context.Background(), entity.KindFlight, strings.NewReader(csvData), mapping)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	flights, err := repos.flights.Query(context.Background(), nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, 182, flights[0].PassengerCount)
	assert.Equal(t, "On Time", flights[0].FlightStatus)
}

package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"
	"aeroops-service/pkg/logger"
	"aeroops-service/pkg/utils"

	"github.com/google/uuid"
)

// RowRejection describes one import row that was not inserted.
type RowRejection struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// ImportResult reports the outcome of one CSV import run. Partial success
// is expected; rejected rows never abort the batch.
type ImportResult struct {
	ImportID   string         `json:"import_id"`
	Inserted   int            `json:"inserted"`
	Rejected   int            `json:"rejected"`
	Rejections []RowRejection `json:"rejections,omitempty"`
}

// CSVImporter parses an uploaded CSV, applies a caller-supplied column
// mapping and inserts valid rows one at a time.
type CSVImporter struct {
	maintenanceRepo repository.MaintenanceRepository
	incidentRepo    repository.IncidentRepository
	flightRepo      repository.FlightRepository
	logger          logger.Logger
}

// NewCSVImporter creates a new CSV importer
func NewCSVImporter(
	maintenanceRepo repository.MaintenanceRepository,
	incidentRepo repository.IncidentRepository,
	flightRepo repository.FlightRepository,
	logger logger.Logger,
) *CSVImporter {
	return &CSVImporter{
		maintenanceRepo: maintenanceRepo,
		incidentRepo:    incidentRepo,
		flightRepo:      flightRepo,
		logger:          logger,
	}
}

// Import reads a comma-delimited UTF-8 file with a header row and imports
// it into the given kind's table. mapping maps source column names onto
// target schema fields. Row numbers in rejections are 1-based over the data
// rows, matching input order. There is no rollback: if the store degrades
// mid-import, rows inserted so far stay inserted and the error is returned
// alongside the partial result.
func (im *CSVImporter) Import(ctx context.Context, kind entity.Kind, r io.Reader, mapping map[string]string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[strings.TrimSpace(name)] = i
	}

	// The mapping itself must be coherent before any row is touched.
	for source, target := range mapping {
		if _, ok := kind.Field(target); !ok {
			return nil, &entity.ValidationError{Field: target, Reason: "unknown target field"}
		}
		if _, ok := columnIndex[source]; !ok {
			return nil, &entity.ValidationError{Field: source, Reason: "column not present in CSV header"}
		}
	}

	result := &ImportResult{ImportID: uuid.NewString()}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Rejected++
			result.Rejections = append(result.Rejections, RowRejection{Row: rowNum, Reason: "malformed CSV row"})
			continue
		}

		raw := make(map[string]string, len(mapping))
		for source, target := range mapping {
			idx := columnIndex[source]
			if idx < len(row) {
				if v := strings.TrimSpace(row[idx]); v != "" {
					raw[target] = v
				}
			}
		}

		values, rejection := coerceRow(kind, raw, rowNum)
		if rejection != nil {
			result.Rejected++
			result.Rejections = append(result.Rejections, *rejection)
			continue
		}

		if err := im.insert(ctx, kind, values); err != nil {
			var validationErr *entity.ValidationError
			if errors.As(err, &validationErr) {
				result.Rejected++
				result.Rejections = append(result.Rejections, RowRejection{
					Row:    rowNum,
					Field:  validationErr.Field,
					Reason: validationErr.Reason,
				})
				continue
			}
			// Storage failure: stop here and surface the partial result.
			im.logger.Error("Import aborted by store failure", "import_id", result.ImportID, "row", rowNum, "error", err)
			return result, err
		}
		result.Inserted++
	}

	im.logger.Info("CSV import finished",
		"import_id", result.ImportID, "kind", string(kind),
		"inserted", result.Inserted, "rejected", result.Rejected)
	return result, nil
}

// coerceRow resolves and type-coerces every mapped field of one row.
func coerceRow(kind entity.Kind, raw map[string]string, rowNum int) (map[string]any, *RowRejection) {
	values := make(map[string]any, len(raw))
	for _, spec := range kind.Fields() {
		rawValue, present := raw[spec.Name]
		if !present {
			if spec.Required {
				return nil, &RowRejection{Row: rowNum, Field: spec.Name, Reason: "required field not mapped or empty"}
			}
			continue
		}
		value, err := coerceValue(spec, rawValue)
		if err != nil {
			return nil, &RowRejection{Row: rowNum, Field: spec.Name, Reason: err.Error()}
		}
		values[spec.Name] = value
	}
	return values, nil
}

func coerceValue(spec entity.FieldSpec, raw string) (any, error) {
	switch spec.Type {
	case entity.FieldNumber:
		return utils.ParseNumber(raw)
	case entity.FieldInteger:
		return utils.ParseInteger(raw)
	case entity.FieldDate:
		return utils.ParseDate(raw)
	case entity.FieldDateTime:
		return utils.ParseDateTime(raw)
	case entity.FieldEnum:
		return utils.NormalizeEnum(raw, spec.Enum)
	}
	return raw, nil
}

func (im *CSVImporter) insert(ctx context.Context, kind entity.Kind, values map[string]any) error {
	switch kind {
	case entity.KindMaintenance:
		_, err := im.maintenanceRepo.Insert(ctx, buildMaintenance(values))
		return err
	case entity.KindIncident:
		_, err := im.incidentRepo.Insert(ctx, buildIncident(values))
		return err
	case entity.KindFlight:
		_, err := im.flightRepo.Insert(ctx, buildFlight(values))
		return err
	}
	return fmt.Errorf("unknown entity kind %q", kind)
}

func buildMaintenance(values map[string]any) *entity.MaintenanceRecord {
	return &entity.MaintenanceRecord{
		AircraftRegistration: getString(values, "aircraft_registration"),
		MaintenanceType:      getString(values, "maintenance_type"),
		Description:          getString(values, "description"),
		ScheduledDate:        getTime(values, "scheduled_date"),
		CompletionDate:       getTimePtr(values, "completion_date"),
		TechnicianName:       getString(values, "technician_name"),
		HoursSpent:           getNumber(values, "hours_spent"),
		Cost:                 getNumber(values, "cost"),
		Status:               getString(values, "status"),
		Priority:             getString(values, "priority"),
		CreatedBy:            "csv-import",
	}
}

func buildIncident(values map[string]any) *entity.SafetyIncident {
	return &entity.SafetyIncident{
		IncidentDate:         getTime(values, "incident_date"),
		IncidentType:         getString(values, "incident_type"),
		Severity:             getString(values, "severity"),
		AircraftRegistration: getString(values, "aircraft_registration"),
		FlightNumber:         getString(values, "flight_number"),
		Location:             getString(values, "location"),
		Description:          getString(values, "description"),
		ImmediateAction:      getString(values, "immediate_action"),
		InvestigationStatus:  getString(values, "investigation_status"),
		ReporterName:         getString(values, "reporter_name"),
		CreatedBy:            "csv-import",
	}
}

func buildFlight(values map[string]any) *entity.FlightRecord {
	return &entity.FlightRecord{
		FlightNumber:         getString(values, "flight_number"),
		AircraftRegistration: getString(values, "aircraft_registration"),
		DepartureAirport:     getString(values, "departure_airport"),
		ArrivalAirport:       getString(values, "arrival_airport"),
		ScheduledDeparture:   getTime(values, "scheduled_departure"),
		ScheduledArrival:     getTime(values, "scheduled_arrival"),
		ActualDeparture:      getTimePtr(values, "actual_departure"),
		ActualArrival:        getTimePtr(values, "actual_arrival"),
		PassengerCount:       getInt(values, "passengers_count"),
		CargoWeight:          getNumber(values, "cargo_weight"),
		FlightStatus:         getString(values, "flight_status"),
		DelayReason:          getString(values, "delay_reason"),
		CaptainName:          getString(values, "captain_name"),
		CreatedBy:            "csv-import",
	}
}

func getString(values map[string]any, key string) string {
	if v, ok := values[key].(string); ok {
		return v
	}
	return ""
}

func getNumber(values map[string]any, key string) float64 {
	if v, ok := values[key].(float64); ok {
		return v
	}
	return 0
}

func getInt(values map[string]any, key string) int {
	if v, ok := values[key].(int); ok {
		return v
	}
	return 0
}

func getTime(values map[string]any, key string) time.Time {
	if v, ok := values[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func getTimePtr(values map[string]any, key string) *time.Time {
	if v, ok := values[key].(time.Time); ok {
		return &v
	}
	return nil
}

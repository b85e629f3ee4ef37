package usecase

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"aeroops-service/internal/domain/entity"
)

// Table is a language-agnostic tabular payload: an ordered column list and
// string rows. Downstream exporters turn it into whatever file format the
// caller asked for.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// CSV renders the table as UTF-8, comma-delimited bytes with a header row.
func (t Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatDateTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDateTime(*t)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MaintenanceTable flattens maintenance records for display or export,
// using the schema field names as column headers.
func MaintenanceTable(records []entity.MaintenanceRecord) Table {
	table := Table{Columns: []string{
		"id", "aircraft_registration", "maintenance_type", "description",
		"scheduled_date", "completion_date", "technician_name",
		"hours_spent", "cost", "status", "priority",
	}}
	for i := range records {
		r := &records[i]
		table.Rows = append(table.Rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.AircraftRegistration, r.MaintenanceType, r.Description,
			formatDate(r.ScheduledDate), formatDatePtr(r.CompletionDate), r.TechnicianName,
			formatNumber(r.HoursSpent), formatNumber(r.Cost), r.Status, r.Priority,
		})
	}
	return table
}

// IncidentTable flattens safety incidents for display or export.
func IncidentTable(incidents []entity.SafetyIncident) Table {
	table := Table{Columns: []string{
		"id", "incident_date", "incident_type", "severity",
		"aircraft_registration", "flight_number", "location", "description",
		"investigation_status", "reporter_name",
	}}
	for i := range incidents {
		r := &incidents[i]
		table.Rows = append(table.Rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			formatDate(r.IncidentDate), r.IncidentType, r.Severity,
			r.AircraftRegistration, r.FlightNumber, r.Location, r.Description,
			r.InvestigationStatus, r.ReporterName,
		})
	}
	return table
}

// FlightTable flattens flight records for display or export.
func FlightTable(flights []entity.FlightRecord) Table {
	table := Table{Columns: []string{
		"id", "flight_number", "aircraft_registration",
		"departure_airport", "arrival_airport",
		"scheduled_departure", "scheduled_arrival",
		"actual_departure", "actual_arrival",
		"passengers_count", "cargo_weight", "flight_status", "delay_reason", "captain_name",
	}}
	for i := range flights {
		r := &flights[i]
		table.Rows = append(table.Rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.FlightNumber, r.AircraftRegistration,
			r.DepartureAirport, r.ArrivalAirport,
			formatDateTime(r.ScheduledDeparture), formatDateTime(r.ScheduledArrival),
			formatDateTimePtr(r.ActualDeparture), formatDateTimePtr(r.ActualArrival),
			strconv.Itoa(r.PassengerCount), formatNumber(r.CargoWeight),
			r.FlightStatus, r.DelayReason, r.CaptainName,
		})
	}
	return table
}

package entity

import (
	"fmt"
)

// Kind identifies one of the three record schemas handled by the service.
// The value doubles as the persisted table name.
type Kind string

const (
	KindMaintenance Kind = "maintenance"
	KindIncident    Kind = "safety_incidents"
	KindFlight      Kind = "flights"
)

// Kinds lists every known entity kind.
var Kinds = []Kind{KindMaintenance, KindIncident, KindFlight}

// ParseKind resolves a kind from its table name or common short alias.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "maintenance":
		return KindMaintenance, nil
	case "safety_incidents", "incidents":
		return KindIncident, nil
	case "flights":
		return KindFlight, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Enumerated value sets shared by forms, the demo seeder and CSV coercion.
var (
	MaintenanceTypes      = []string{"A-Check", "B-Check", "C-Check", "Engine Overhaul"}
	MaintenanceStatuses   = []string{"Scheduled", "In Progress", "Completed"}
	Priorities            = []string{"Low", "Medium", "High", "Critical"}
	IncidentTypes         = []string{"Bird Strike", "Hard Landing", "Engine Issue"}
	Severities            = []string{"Minor", "Moderate", "Major", "Critical"}
	InvestigationStatuses = []string{"Open", "Under Investigation", "Closed"}
	FlightStatuses        = []string{"Scheduled", "On Time", "Delayed", "Arrived", "Cancelled"}
)

const (
	SeverityMinor    = "Minor"
	SeverityModerate = "Moderate"
	SeverityMajor    = "Major"
	SeverityCritical = "Critical"
)

// FieldType is the semantic type a raw CSV value is coerced into.
type FieldType int

const (
	FieldString FieldType = iota
	FieldNumber
	FieldInteger
	FieldDate
	FieldDateTime
	FieldEnum
)

// FieldSpec describes one target schema field of an entity kind.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	Enum     []string
}

var maintenanceFields = []FieldSpec{
	{Name: "aircraft_registration", Type: FieldString, Required: true},
	{Name: "maintenance_type", Type: FieldEnum, Required: true, Enum: MaintenanceTypes},
	{Name: "description", Type: FieldString},
	{Name: "scheduled_date", Type: FieldDate, Required: true},
	{Name: "completion_date", Type: FieldDate},
	{Name: "technician_name", Type: FieldString},
	{Name: "hours_spent", Type: FieldNumber},
	{Name: "cost", Type: FieldNumber},
	{Name: "status", Type: FieldEnum, Required: true, Enum: MaintenanceStatuses},
	{Name: "priority", Type: FieldEnum, Required: true, Enum: Priorities},
}

var incidentFields = []FieldSpec{
	{Name: "incident_date", Type: FieldDate, Required: true},
	{Name: "incident_type", Type: FieldEnum, Required: true, Enum: IncidentTypes},
	{Name: "severity", Type: FieldEnum, Required: true, Enum: Severities},
	{Name: "aircraft_registration", Type: FieldString},
	{Name: "flight_number", Type: FieldString},
	{Name: "location", Type: FieldString},
	{Name: "description", Type: FieldString, Required: true},
	{Name: "immediate_action", Type: FieldString},
	{Name: "investigation_status", Type: FieldEnum, Required: true, Enum: InvestigationStatuses},
	{Name: "reporter_name", Type: FieldString},
}

var flightFields = []FieldSpec{
	{Name: "flight_number", Type: FieldString, Required: true},
	{Name: "aircraft_registration", Type: FieldString, Required: true},
	{Name: "departure_airport", Type: FieldString, Required: true},
	{Name: "arrival_airport", Type: FieldString, Required: true},
	{Name: "scheduled_departure", Type: FieldDateTime, Required: true},
	{Name: "scheduled_arrival", Type: FieldDateTime, Required: true},
	{Name: "actual_departure", Type: FieldDateTime},
	{Name: "actual_arrival", Type: FieldDateTime},
	{Name: "passengers_count", Type: FieldInteger},
	{Name: "cargo_weight", Type: FieldNumber},
	{Name: "flight_status", Type: FieldEnum, Required: true, Enum: FlightStatuses},
	{Name: "delay_reason", Type: FieldString},
	{Name: "captain_name", Type: FieldString},
}

// Fields returns the target schema fields for the kind, in display order.
func (k Kind) Fields() []FieldSpec {
	switch k {
	case KindMaintenance:
		return maintenanceFields
	case KindIncident:
		return incidentFields
	case KindFlight:
		return flightFields
	}
	return nil
}

// Field looks up a single field spec by name.
func (k Kind) Field(name string) (FieldSpec, bool) {
	for _, f := range k.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

package entity

import (
	"time"
)

// SafetyIncident represents a reported safety occurrence, optionally tied to
// an aircraft or a flight.
type SafetyIncident struct {
	ID                   uint      `json:"id"`
	IncidentDate         time.Time `json:"incident_date" validate:"required"`
	IncidentType         string    `json:"incident_type" validate:"required,oneof='Bird Strike' 'Hard Landing' 'Engine Issue'"`
	Severity             string    `json:"severity" validate:"required,oneof=Minor Moderate Major Critical"`
	AircraftRegistration string    `json:"aircraft_registration,omitempty"`
	FlightNumber         string    `json:"flight_number,omitempty"`
	Location             string    `json:"location"`
	Description          string    `json:"description" validate:"required"`
	ImmediateAction      string    `json:"immediate_action"`
	InvestigationStatus  string    `json:"investigation_status" validate:"required,oneof=Open 'Under Investigation' Closed"`
	ReporterName         string    `json:"reporter_name"`
	CreatedBy            string    `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// IncidentUpdate carries a partial edit of a safety incident.
type IncidentUpdate struct {
	IncidentDate         *time.Time `json:"incident_date,omitempty"`
	IncidentType         *string    `json:"incident_type,omitempty"`
	Severity             *string    `json:"severity,omitempty"`
	AircraftRegistration *string    `json:"aircraft_registration,omitempty"`
	FlightNumber         *string    `json:"flight_number,omitempty"`
	Location             *string    `json:"location,omitempty"`
	Description          *string    `json:"description,omitempty"`
	ImmediateAction      *string    `json:"immediate_action,omitempty"`
	InvestigationStatus  *string    `json:"investigation_status,omitempty"`
	ReporterName         *string    `json:"reporter_name,omitempty"`
}

// severityRank orders severities from least to most severe.
var severityRank = map[string]int{
	SeverityMinor:    0,
	SeverityModerate: 1,
	SeverityMajor:    2,
	SeverityCritical: 3,
}

// SeverityAtLeast reports whether the incident's severity is equal to or
// above the given threshold. Unknown severities always compare below.
func (s *SafetyIncident) SeverityAtLeast(threshold string) bool {
	rank, ok := severityRank[s.Severity]
	if !ok {
		return false
	}
	min, ok := severityRank[threshold]
	if !ok {
		return false
	}
	return rank >= min
}

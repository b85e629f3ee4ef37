package entity

import (
	"time"
)

// MaintenanceRecord represents a scheduled or completed maintenance task
// performed on an aircraft.
type MaintenanceRecord struct {
	ID                   uint       `json:"id"`
	AircraftRegistration string     `json:"aircraft_registration" validate:"required"`
	MaintenanceType      string     `json:"maintenance_type" validate:"required,oneof=A-Check B-Check C-Check 'Engine Overhaul'"`
	Description          string     `json:"description"`
	ScheduledDate        time.Time  `json:"scheduled_date" validate:"required"`
	CompletionDate       *time.Time `json:"completion_date,omitempty"`
	TechnicianName       string     `json:"technician_name"`
	HoursSpent           float64    `json:"hours_spent" validate:"gte=0"`
	Cost                 float64    `json:"cost" validate:"gte=0"`
	Status               string     `json:"status" validate:"required,oneof=Scheduled 'In Progress' Completed"`
	Priority             string     `json:"priority" validate:"required,oneof=Low Medium High Critical"`
	CreatedBy            string     `json:"created_by"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// MaintenanceUpdate carries a partial edit of a maintenance record. Nil
// fields are left untouched by the merge.
type MaintenanceUpdate struct {
	AircraftRegistration *string    `json:"aircraft_registration,omitempty"`
	MaintenanceType      *string    `json:"maintenance_type,omitempty"`
	Description          *string    `json:"description,omitempty"`
	ScheduledDate        *time.Time `json:"scheduled_date,omitempty"`
	CompletionDate       *time.Time `json:"completion_date,omitempty"`
	TechnicianName       *string    `json:"technician_name,omitempty"`
	HoursSpent           *float64   `json:"hours_spent,omitempty"`
	Cost                 *float64   `json:"cost,omitempty"`
	Status               *string    `json:"status,omitempty"`
	Priority             *string    `json:"priority,omitempty"`
}

// Advisories reports soft consistency warnings that do not block
// persistence, such as a completion date before the scheduled date.
func (m *MaintenanceRecord) Advisories() []string {
	var warnings []string
	if m.CompletionDate != nil && m.CompletionDate.Before(m.ScheduledDate) {
		warnings = append(warnings, "completion_date precedes scheduled_date")
	}
	return warnings
}

package entity

import (
	"time"
)

// FlightRecord represents one scheduled flight segment and its actual
// operational outcome.
type FlightRecord struct {
	ID                   uint       `json:"id"`
	FlightNumber         string     `json:"flight_number" validate:"required"`
	AircraftRegistration string     `json:"aircraft_registration" validate:"required"`
	DepartureAirport     string     `json:"departure_airport" validate:"required"`
	ArrivalAirport       string     `json:"arrival_airport" validate:"required"`
	ScheduledDeparture   time.Time  `json:"scheduled_departure" validate:"required"`
	ScheduledArrival     time.Time  `json:"scheduled_arrival" validate:"required"`
	ActualDeparture      *time.Time `json:"actual_departure,omitempty"`
	ActualArrival        *time.Time `json:"actual_arrival,omitempty"`
	PassengerCount       int        `json:"passengers_count" validate:"gte=0"`
	CargoWeight          float64    `json:"cargo_weight" validate:"gte=0"`
	FlightStatus         string     `json:"flight_status" validate:"required,oneof=Scheduled 'On Time' Delayed Arrived Cancelled"`
	DelayReason          string     `json:"delay_reason,omitempty"`
	CaptainName          string     `json:"captain_name"`
	CreatedBy            string     `json:"created_by"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// FlightUpdate carries a partial edit of a flight record.
type FlightUpdate struct {
	FlightNumber         *string    `json:"flight_number,omitempty"`
	AircraftRegistration *string    `json:"aircraft_registration,omitempty"`
	DepartureAirport     *string    `json:"departure_airport,omitempty"`
	ArrivalAirport       *string    `json:"arrival_airport,omitempty"`
	ScheduledDeparture   *time.Time `json:"scheduled_departure,omitempty"`
	ScheduledArrival     *time.Time `json:"scheduled_arrival,omitempty"`
	ActualDeparture      *time.Time `json:"actual_departure,omitempty"`
	ActualArrival        *time.Time `json:"actual_arrival,omitempty"`
	PassengerCount       *int       `json:"passengers_count,omitempty"`
	CargoWeight          *float64   `json:"cargo_weight,omitempty"`
	FlightStatus         *string    `json:"flight_status,omitempty"`
	DelayReason          *string    `json:"delay_reason,omitempty"`
	CaptainName          *string    `json:"captain_name,omitempty"`
}

// Advisories reports soft consistency warnings: actual times that precede
// their scheduled counterparts do not block persistence.
func (f *FlightRecord) Advisories() []string {
	var warnings []string
	if f.ActualDeparture != nil && f.ActualDeparture.Before(f.ScheduledDeparture) {
		warnings = append(warnings, "actual_departure precedes scheduled_departure")
	}
	if f.ActualArrival != nil && f.ActualArrival.Before(f.ScheduledArrival) {
		warnings = append(warnings, "actual_arrival precedes scheduled_arrival")
	}
	return warnings
}

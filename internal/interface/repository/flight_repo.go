package repository

import (
	"context"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight record repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	ID                   uint   `gorm:"primaryKey"`
	FlightNumber         string `gorm:"size:16;index"`
	AircraftRegistration string `gorm:"column:aircraft_registration;size:16"`
	DepartureAirport     string `gorm:"size:8"`
	ArrivalAirport       string `gorm:"size:8"`
	ScheduledDeparture   time.Time
	ScheduledArrival     time.Time
	ActualDeparture      *time.Time
	ActualArrival        *time.Time
	PassengerCount       int     `gorm:"column:passengers_count"`
	CargoWeight          float64 `gorm:"column:cargo_weight"`
	FlightStatus         string  `gorm:"size:16"`
	DelayReason          string  `gorm:"size:128"`
	CaptainName          string  `gorm:"size:64"`
	CreatedBy            string  `gorm:"size:64"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

var flightColumns = map[string]columnSpec{
	"id":                    {column: "id", kind: colNumber},
	"flight_number":         {column: "flight_number", kind: colString},
	"aircraft_registration": {column: "aircraft_registration", kind: colString},
	"departure_airport":     {column: "departure_airport", kind: colString},
	"arrival_airport":       {column: "arrival_airport", kind: colString},
	"scheduled_departure":   {column: "scheduled_departure", kind: colTime},
	"scheduled_arrival":     {column: "scheduled_arrival", kind: colTime},
	"passengers_count":      {column: "passengers_count", kind: colNumber},
	"cargo_weight":          {column: "cargo_weight", kind: colNumber},
	"flight_status":         {column: "flight_status", kind: colString},
	"captain_name":          {column: "captain_name", kind: colString},
	"created_at":            {column: "created_at", kind: colTime},
}

func toFlightModel(flight *entity.FlightRecord) Flights {
	return Flights{
		ID:                   flight.ID,
		FlightNumber:         flight.FlightNumber,
		AircraftRegistration: flight.AircraftRegistration,
		DepartureAirport:     flight.DepartureAirport,
		ArrivalAirport:       flight.ArrivalAirport,
		ScheduledDeparture:   flight.ScheduledDeparture,
		ScheduledArrival:     flight.ScheduledArrival,
		ActualDeparture:      flight.ActualDeparture,
		ActualArrival:        flight.ActualArrival,
		PassengerCount:       flight.PassengerCount,
		CargoWeight:          flight.CargoWeight,
		FlightStatus:         flight.FlightStatus,
		DelayReason:          flight.DelayReason,
		CaptainName:          flight.CaptainName,
		CreatedBy:            flight.CreatedBy,
	}
}

func fromFlightModel(model *Flights) *entity.FlightRecord {
	return &entity.FlightRecord{
		ID:                   model.ID,
		FlightNumber:         model.FlightNumber,
		AircraftRegistration: model.AircraftRegistration,
		DepartureAirport:     model.DepartureAirport,
		ArrivalAirport:       model.ArrivalAirport,
		ScheduledDeparture:   model.ScheduledDeparture,
		ScheduledArrival:     model.ScheduledArrival,
		ActualDeparture:      model.ActualDeparture,
		ActualArrival:        model.ActualArrival,
		PassengerCount:       model.PassengerCount,
		CargoWeight:          model.CargoWeight,
		FlightStatus:         model.FlightStatus,
		DelayReason:          model.DelayReason,
		CaptainName:          model.CaptainName,
		CreatedBy:            model.CreatedBy,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

// Insert validates the flight, persists it and returns the stored copy.
func (r *GormFlightRepository) Insert(ctx context.Context, flight *entity.FlightRecord) (*entity.FlightRecord, error) {
	if err := entity.ValidateRecord(flight); err != nil {
		return nil, err
	}
	model := toFlightModel(flight)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return fromFlightModel(&model), nil
}

// GetByID fetches a single flight by primary key
func (r *GormFlightRepository) GetByID(ctx context.Context, id uint) (*entity.FlightRecord, error) {
	var model Flights
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return fromFlightModel(&model), nil
}

// Update merges non-nil patch fields into the stored flight.
func (r *GormFlightRepository) Update(ctx context.Context, id uint, patch *entity.FlightUpdate) (*entity.FlightRecord, error) {
	var model Flights
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	merged := fromFlightModel(&model)
	updates := map[string]any{}
	if patch.FlightNumber != nil {
		merged.FlightNumber = *patch.FlightNumber
		updates["flight_number"] = *patch.FlightNumber
	}
	if patch.AircraftRegistration != nil {
		merged.AircraftRegistration = *patch.AircraftRegistration
		updates["aircraft_registration"] = *patch.AircraftRegistration
	}
	if patch.DepartureAirport != nil {
		merged.DepartureAirport = *patch.DepartureAirport
		updates["departure_airport"] = *patch.DepartureAirport
	}
	if patch.ArrivalAirport != nil {
		merged.ArrivalAirport = *patch.ArrivalAirport
		updates["arrival_airport"] = *patch.ArrivalAirport
	}
	if patch.ScheduledDeparture != nil {
		merged.ScheduledDeparture = *patch.ScheduledDeparture
		updates["scheduled_departure"] = *patch.ScheduledDeparture
	}
	if patch.ScheduledArrival != nil {
		merged.ScheduledArrival = *patch.ScheduledArrival
		updates["scheduled_arrival"] = *patch.ScheduledArrival
	}
	if patch.ActualDeparture != nil {
		merged.ActualDeparture = patch.ActualDeparture
		updates["actual_departure"] = *patch.ActualDeparture
	}
	if patch.ActualArrival != nil {
		merged.ActualArrival = patch.ActualArrival
		updates["actual_arrival"] = *patch.ActualArrival
	}
	if patch.PassengerCount != nil {
		merged.PassengerCount = *patch.PassengerCount
		updates["passengers_count"] = *patch.PassengerCount
	}
	if patch.CargoWeight != nil {
		merged.CargoWeight = *patch.CargoWeight
		updates["cargo_weight"] = *patch.CargoWeight
	}
	if patch.FlightStatus != nil {
		merged.FlightStatus = *patch.FlightStatus
		updates["flight_status"] = *patch.FlightStatus
	}
	if patch.DelayReason != nil {
		merged.DelayReason = *patch.DelayReason
		updates["delay_reason"] = *patch.DelayReason
	}
	if patch.CaptainName != nil {
		merged.CaptainName = *patch.CaptainName
		updates["captain_name"] = *patch.CaptainName
	}
	if err := entity.ValidateRecord(merged); err != nil {
		return nil, err
	}
	updates["updated_at"] = time.Now()

	if err := r.db.WithContext(ctx).Model(&model).Updates(updates).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a flight. Deleting an id twice fails the second time.
func (r *GormFlightRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Flights{}, id)
	if result.Error != nil {
		return wrapStoreErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Query returns matching flights ordered by the requested sort.
func (r *GormFlightRepository) Query(ctx context.Context, filters []repository.Filter, sort *repository.Sort, limit int) ([]entity.FlightRecord, error) {
	tx := r.db.WithContext(ctx).Model(&Flights{})
	tx, err := applyFilters(tx, flightColumns, filters)
	if err != nil {
		return nil, err
	}
	if sort != nil {
		if tx, err = applySort(tx, flightColumns, sort); err != nil {
			return nil, err
		}
	} else {
		tx = tx.Order("id")
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var models []Flights
	if err := tx.Find(&models).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	flights := make([]entity.FlightRecord, 0, len(models))
	for i := range models {
		flights = append(flights, *fromFlightModel(&models[i]))
	}
	return flights, nil
}

// Aggregate groups flights and computes a metric per group, windowed on
// scheduled_departure.
func (r *GormFlightRepository) Aggregate(ctx context.Context, req repository.AggregateRequest) (map[string]float64, error) {
	return runAggregate(r.db.WithContext(ctx), Flights{}.TableName(), flightColumns, "scheduled_departure", req)
}

// Count returns the total number of flight records
func (r *GormFlightRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Flights{}).Count(&count).Error; err != nil {
		return 0, wrapStoreErr(err)
	}
	return count, nil
}

package repository

import (
	"context"

	"aeroops-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight record operations
type FlightRepository interface {
	Insert(ctx context.Context, flight *entity.FlightRecord) (*entity.FlightRecord, error)
	GetByID(ctx context.Context, id uint) (*entity.FlightRecord, error)
	Update(ctx context.Context, id uint, patch *entity.FlightUpdate) (*entity.FlightRecord, error)
	Delete(ctx context.Context, id uint) error
	Query(ctx context.Context, filters []Filter, sort *Sort, limit int) ([]entity.FlightRecord, error)
	Aggregate(ctx context.Context, req AggregateRequest) (map[string]float64, error)
	Count(ctx context.Context) (int64, error)
}

package repository

import (
	"context"

	"aeroops-service/internal/domain/entity"
)

// IncidentRepository defines the interface for safety incident operations
type IncidentRepository interface {
	Insert(ctx context.Context, incident *entity.SafetyIncident) (*entity.SafetyIncident, error)
	GetByID(ctx context.Context, id uint) (*entity.SafetyIncident, error)
	Update(ctx context.Context, id uint, patch *entity.IncidentUpdate) (*entity.SafetyIncident, error)
	Delete(ctx context.Context, id uint) error
	Query(ctx context.Context, filters []Filter, sort *Sort, limit int) ([]entity.SafetyIncident, error)
	Aggregate(ctx context.Context, req AggregateRequest) (map[string]float64, error)
	Count(ctx context.Context) (int64, error)
}

package repository

import (
	"context"

	"aeroops-service/internal/domain/entity"
)

// MaintenanceRepository defines the interface for maintenance record operations
type MaintenanceRepository interface {
	Insert(ctx context.Context, record *entity.MaintenanceRecord) (*entity.MaintenanceRecord, error)
	GetByID(ctx context.Context, id uint) (*entity.MaintenanceRecord, error)
	Update(ctx context.Context, id uint, patch *entity.MaintenanceUpdate) (*entity.MaintenanceRecord, error)
	Delete(ctx context.Context, id uint) error
	Query(ctx context.Context, filters []Filter, sort *Sort, limit int) ([]entity.MaintenanceRecord, error)
	Aggregate(ctx context.Context, req AggregateRequest) (map[string]float64, error)
	Count(ctx context.Context) (int64, error)
}

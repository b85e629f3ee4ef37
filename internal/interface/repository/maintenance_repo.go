package repository

import (
	"context"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormMaintenanceRepository implements the MaintenanceRepository interface
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRepository creates a new GORM maintenance repository
func NewGormMaintenanceRepository(db *gorm.DB) repository.MaintenanceRepository {
	return &GormMaintenanceRepository{
		db: db,
	}
}

// MaintenanceRecords GORM model for database mapping
type MaintenanceRecords struct {
	ID                   uint   `gorm:"primaryKey"`
	AircraftRegistration string `gorm:"column:aircraft_registration;size:16;index"`
	MaintenanceType      string `gorm:"column:maintenance_type;size:32"`
	Description          string `gorm:"column:description;type:text"`
	ScheduledDate        time.Time
	CompletionDate       *time.Time
	TechnicianName       string `gorm:"size:64"`
	HoursSpent           float64
	Cost                 float64
	Status               string `gorm:"size:16"`
	Priority             string `gorm:"size:16"`
	CreatedBy            string `gorm:"size:64"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName overrides the default table name
func (MaintenanceRecords) TableName() string {
	return "maintenance"
}

var maintenanceColumns = map[string]columnSpec{
	"id":                    {column: "id", kind: colNumber},
	"aircraft_registration": {column: "aircraft_registration", kind: colString},
	"maintenance_type":      {column: "maintenance_type", kind: colString},
	"scheduled_date":        {column: "scheduled_date", kind: colTime},
	"completion_date":       {column: "completion_date", kind: colTime},
	"technician_name":       {column: "technician_name", kind: colString},
	"hours_spent":           {column: "hours_spent", kind: colNumber},
	"cost":                  {column: "cost", kind: colNumber},
	"status":                {column: "status", kind: colString},
	"priority":              {column: "priority", kind: colString},
	"created_at":            {column: "created_at", kind: colTime},
}

func toMaintenanceModel(record *entity.MaintenanceRecord) MaintenanceRecords {
	return MaintenanceRecords{
		ID:                   record.ID,
		AircraftRegistration: record.AircraftRegistration,
		MaintenanceType:      record.MaintenanceType,
		Description:          record.Description,
		ScheduledDate:        record.ScheduledDate,
		CompletionDate:       record.CompletionDate,
		TechnicianName:       record.TechnicianName,
		HoursSpent:           record.HoursSpent,
		Cost:                 record.Cost,
		Status:               record.Status,
		Priority:             record.Priority,
		CreatedBy:            record.CreatedBy,
	}
}

func fromMaintenanceModel(model *MaintenanceRecords) *entity.MaintenanceRecord {
	return &entity.MaintenanceRecord{
		ID:                   model.ID,
		AircraftRegistration: model.AircraftRegistration,
		MaintenanceType:      model.MaintenanceType,
		Description:          model.Description,
		ScheduledDate:        model.ScheduledDate,
		CompletionDate:       model.CompletionDate,
		TechnicianName:       model.TechnicianName,
		HoursSpent:           model.HoursSpent,
		Cost:                 model.Cost,
		Status:               model.Status,
		Priority:             model.Priority,
		CreatedBy:            model.CreatedBy,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

// Insert validates the record, persists it and returns the stored copy with
// its assigned id and timestamps.
func (r *GormMaintenanceRepository) Insert(ctx context.Context, record *entity.MaintenanceRecord) (*entity.MaintenanceRecord, error) {
	if err := entity.ValidateRecord(record); err != nil {
		return nil, err
	}
	model := toMaintenanceModel(record)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return fromMaintenanceModel(&model), nil
}

// GetByID fetches a single record by primary key
func (r *GormMaintenanceRepository) GetByID(ctx context.Context, id uint) (*entity.MaintenanceRecord, error) {
	var model MaintenanceRecords
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return fromMaintenanceModel(&model), nil
}

// Update merges non-nil patch fields into the stored record. The id and
// creation timestamp never change; the modification timestamp always does.
func (r *GormMaintenanceRepository) Update(ctx context.Context, id uint, patch *entity.MaintenanceUpdate) (*entity.MaintenanceRecord, error) {
	var model MaintenanceRecords
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	merged := fromMaintenanceModel(&model)
	updates := map[string]any{}
	if patch.AircraftRegistration != nil {
		merged.AircraftRegistration = *patch.AircraftRegistration
		updates["aircraft_registration"] = *patch.AircraftRegistration
	}
	if patch.MaintenanceType != nil {
		merged.MaintenanceType = *patch.MaintenanceType
		updates["maintenance_type"] = *patch.MaintenanceType
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
		updates["description"] = *patch.Description
	}
	if patch.ScheduledDate != nil {
		merged.ScheduledDate = *patch.ScheduledDate
		updates["scheduled_date"] = *patch.ScheduledDate
	}
	if patch.CompletionDate != nil {
		merged.CompletionDate = patch.CompletionDate
		updates["completion_date"] = *patch.CompletionDate
	}
	if patch.TechnicianName != nil {
		merged.TechnicianName = *patch.TechnicianName
		updates["technician_name"] = *patch.TechnicianName
	}
	if patch.HoursSpent != nil {
		merged.HoursSpent = *patch.HoursSpent
		updates["hours_spent"] = *patch.HoursSpent
	}
	if patch.Cost != nil {
		merged.Cost = *patch.Cost
		updates["cost"] = *patch.Cost
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		merged.Priority = *patch.Priority
		updates["priority"] = *patch.Priority
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

// Delete removes a record. Deleting an id twice fails the second time.
func (r *GormMaintenanceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&MaintenanceRecords{}, id)
	if result.Error != nil {
		return wrapStoreErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Query returns matching records ordered by the requested sort, insertion
// order by default.
func (r *GormMaintenanceRepository) Query(ctx context.Context, filters []repository.Filter, sort *repository.Sort, limit int) ([]entity.MaintenanceRecord, error) {
	tx := r.db.WithContext(ctx).Model(&MaintenanceRecords{})
	tx, err := applyFilters(tx, maintenanceColumns, filters)
	if err != nil {
		return nil, err
	}
	if sort != nil {
		if tx, err = applySort(tx, maintenanceColumns, sort); err != nil {
			return nil, err
		}
	} else {
		tx = tx.Order("id")
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var models []MaintenanceRecords
	if err := tx.Find(&models).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	records := make([]entity.MaintenanceRecord, 0, len(models))
	for i := range models {
		records = append(records, *fromMaintenanceModel(&models[i]))
	}
	return records, nil
}

// Aggregate groups maintenance records and computes a metric per group,
// windowed on scheduled_date.
func (r *GormMaintenanceRepository) Aggregate(ctx context.Context, req repository.AggregateRequest) (map[string]float64, error) {
	return runAggregate(r.db.WithContext(ctx), MaintenanceRecords{}.TableName(), maintenanceColumns, "scheduled_date", req)
}

// Count returns the total number of maintenance records
func (r *GormMaintenanceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&MaintenanceRecords{}).Count(&count).Error; err != nil {
		return 0, wrapStoreErr(err)
	}
	return count, nil
}

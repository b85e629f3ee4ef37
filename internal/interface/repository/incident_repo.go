package repository

import (
	"context"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormIncidentRepository implements the IncidentRepository interface
type GormIncidentRepository struct {
	db *gorm.DB
}

// NewGormIncidentRepository creates a new GORM safety incident repository
func NewGormIncidentRepository(db *gorm.DB) repository.IncidentRepository {
	return &GormIncidentRepository{
		db: db,
	}
}

// SafetyIncidents GORM model for database mapping
type SafetyIncidents struct {
	ID                   uint `gorm:"primaryKey"`
	IncidentDate         time.Time
	IncidentType         string `gorm:"size:32"`
	Severity             string `gorm:"size:16;index"`
	AircraftRegistration string `gorm:"column:aircraft_registration;size:16"`
	FlightNumber         string `gorm:"size:16"`
	Location             string `gorm:"size:64"`
	Description          string `gorm:"type:text"`
	ImmediateAction      string `gorm:"type:text"`
	InvestigationStatus  string `gorm:"size:32"`
	ReporterName         string `gorm:"size:64"`
	CreatedBy            string `gorm:"size:64"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName overrides the default table name
func (SafetyIncidents) TableName() string {
	return "safety_incidents"
}

var incidentColumns = map[string]columnSpec{
	"id":                    {column: "id", kind: colNumber},
	"incident_date":         {column: "incident_date", kind: colTime},
	"incident_type":         {column: "incident_type", kind: colString},
	"severity":              {column: "severity", kind: colString},
	"aircraft_registration": {column: "aircraft_registration", kind: colString},
	"flight_number":         {column: "flight_number", kind: colString},
	"location":              {column: "location", kind: colString},
	"investigation_status":  {column: "investigation_status", kind: colString},
	"reporter_name":         {column: "reporter_name", kind: colString},
	"created_at":            {column: "created_at", kind: colTime},
}

func toIncidentModel(incident *entity.SafetyIncident) SafetyIncidents {
	return SafetyIncidents{
		ID:                   incident.ID,
		IncidentDate:         incident.IncidentDate,
		IncidentType:         incident.IncidentType,
		Severity:             incident.Severity,
		AircraftRegistration: incident.AircraftRegistration,
		FlightNumber:         incident.FlightNumber,
		Location:             incident.Location,
		Description:          incident.Description,
		ImmediateAction:      incident.ImmediateAction,
		InvestigationStatus:  incident.InvestigationStatus,
		ReporterName:         incident.ReporterName,
		CreatedBy:            incident.CreatedBy,
	}
}

func fromIncidentModel(model *SafetyIncidents) *entity.SafetyIncident {
	return &entity.SafetyIncident{
		ID:                   model.ID,
		IncidentDate:         model.IncidentDate,
		IncidentType:         model.IncidentType,
		Severity:             model.Severity,
		AircraftRegistration: model.AircraftRegistration,
		FlightNumber:         model.FlightNumber,
		Location:             model.Location,
		Description:          model.Description,
		ImmediateAction:      model.ImmediateAction,
		InvestigationStatus:  model.InvestigationStatus,
		ReporterName:         model.ReporterName,
		CreatedBy:            model.CreatedBy,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

// Insert validates the incident, persists it and returns the stored copy.
func (r *GormIncidentRepository) Insert(ctx context.Context, incident *entity.SafetyIncident) (*entity.SafetyIncident, error) {
	if err := entity.ValidateRecord(incident); err != nil {
		return nil, err
	}
	model := toIncidentModel(incident)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return fromIncidentModel(&model), nil
}

// GetByID fetches a single incident by primary key
func (r *GormIncidentRepository) GetByID(ctx context.Context, id uint) (*entity.SafetyIncident, error) {
	var model SafetyIncidents
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return fromIncidentModel(&model), nil
}

// Update merges non-nil patch fields into the stored incident.
func (r *GormIncidentRepository) Update(ctx context.Context, id uint, patch *entity.IncidentUpdate) (*entity.SafetyIncident, error) {
	var model SafetyIncidents
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	merged := fromIncidentModel(&model)
	updates := map[string]any{}
	if patch.IncidentDate != nil {
		merged.IncidentDate = *patch.IncidentDate
		updates["incident_date"] = *patch.IncidentDate
	}
	if patch.IncidentType != nil {
		merged.IncidentType = *patch.IncidentType
		updates["incident_type"] = *patch.IncidentType
	}
	if patch.Severity != nil {
		merged.Severity = *patch.Severity
		updates["severity"] = *patch.Severity
	}
	if patch.AircraftRegistration != nil {
		merged.AircraftRegistration = *patch.AircraftRegistration
		updates["aircraft_registration"] = *patch.AircraftRegistration
	}
	if patch.FlightNumber != nil {
		merged.FlightNumber = *patch.FlightNumber
		updates["flight_number"] = *patch.FlightNumber
	}
	if patch.Location != nil {
		merged.Location = *patch.Location
		updates["location"] = *patch.Location
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
		updates["description"] = *patch.Description
	}
	if patch.ImmediateAction != nil {
		merged.ImmediateAction = *patch.ImmediateAction
		updates["immediate_action"] = *patch.ImmediateAction
	}
	if patch.InvestigationStatus != nil {
		merged.InvestigationStatus = *patch.InvestigationStatus
		updates["investigation_status"] = *patch.InvestigationStatus
	}
	if patch.ReporterName != nil {
		merged.ReporterName = *patch.ReporterName
		updates["reporter_name"] = *patch.ReporterName
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

// Delete removes an incident. Deleting an id twice fails the second time.
func (r *GormIncidentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&SafetyIncidents{}, id)
	if result.Error != nil {
		return wrapStoreErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Query returns matching incidents ordered by the requested sort.
func (r *GormIncidentRepository) Query(ctx context.Context, filters []repository.Filter, sort *repository.Sort, limit int) ([]entity.SafetyIncident, error) {
	tx := r.db.WithContext(ctx).Model(&SafetyIncidents{})
	tx, err := applyFilters(tx, incidentColumns, filters)
	if err != nil {
		return nil, err
	}
	if sort != nil {
		if tx, err = applySort(tx, incidentColumns, sort); err != nil {
			return nil, err
		}
	} else {
		tx = tx.Order("id")
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var models []SafetyIncidents
	if err := tx.Find(&models).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	incidents := make([]entity.SafetyIncident, 0, len(models))
	for i := range models {
		incidents = append(incidents, *fromIncidentModel(&models[i]))
	}
	return incidents, nil
}

// Aggregate groups incidents and computes a metric per group, windowed on
// incident_date.
func (r *GormIncidentRepository) Aggregate(ctx context.Context, req repository.AggregateRequest) (map[string]float64, error) {
	return runAggregate(r.db.WithContext(ctx), SafetyIncidents{}.TableName(), incidentColumns, "incident_date", req)
}

// Count returns the total number of safety incidents
func (r *GormIncidentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&SafetyIncidents{}).Count(&count).Error; err != nil {
		return 0, wrapStoreErr(err)
	}
	return count, nil
}

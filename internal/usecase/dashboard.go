package usecase

import (
	"context"
	"errors"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"
	"aeroops-service/pkg/logger"
)

// DashboardSummary carries the headline numbers shown on the dashboard.
type DashboardSummary struct {
	MaintenanceCount      int64   `json:"maintenance_count"`
	IncidentCount         int64   `json:"incident_count"`
	CriticalIncidentCount int64   `json:"critical_incident_count"`
	FlightCount           int64   `json:"flight_count"`
	TotalMaintenanceHours float64 `json:"total_maintenance_hours"`
	Degraded              bool    `json:"degraded"`
}

// DashboardService assembles the summary from the store, falling back to a
// generated demo snapshot when the store is unavailable.
type DashboardService struct {
	maintenanceRepo repository.MaintenanceRepository
	incidentRepo    repository.IncidentRepository
	flightRepo      repository.FlightRepository
	seeder          *DemoSeeder
	logger          logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	maintenanceRepo repository.MaintenanceRepository,
	incidentRepo repository.IncidentRepository,
	flightRepo repository.FlightRepository,
	seeder *DemoSeeder,
	logger logger.Logger,
) *DashboardService {
	return &DashboardService{
		maintenanceRepo: maintenanceRepo,
		incidentRepo:    incidentRepo,
		flightRepo:      flightRepo,
		seeder:          seeder,
		logger:          logger,
	}
}

// Summary returns live counts and totals. A storage outage degrades to a
// read-only demo snapshot instead of failing the request.
func (d *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary, err := d.liveSummary(ctx)
	if err == nil {
		return summary, nil
	}
	var unavailable *repository.StorageUnavailableError
	if errors.As(err, &unavailable) {
		d.logger.Warn("Store unavailable, serving demo snapshot", "error", err)
		return d.seeder.Snapshot().Summary(), nil
	}
	return nil, err
}

func (d *DashboardService) liveSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	var err error
	if summary.MaintenanceCount, err = d.maintenanceRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.IncidentCount, err = d.incidentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.FlightCount, err = d.flightRepo.Count(ctx); err != nil {
		return nil, err
	}

	bySeverity, err := d.incidentRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "severity",
		Metric:  repository.MetricCount,
	})
	if err != nil {
		return nil, err
	}
	summary.CriticalIncidentCount = int64(bySeverity[entity.SeverityMajor] + bySeverity[entity.SeverityCritical])

	hoursByStatus, err := d.maintenanceRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy:     "status",
		Metric:      repository.MetricSum,
		MetricField: "hours_spent",
	})
	if err != nil {
		return nil, err
	}
	for _, hours := range hoursByStatus {
		summary.TotalMaintenanceHours += hours
	}

	return summary, nil
}

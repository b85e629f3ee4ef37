package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"
	"aeroops-service/pkg/logger"
)

const (
	seedMaintenanceCount = 50
	seedIncidentCount    = 30
	seedFlightCount      = 100
)

// Value pools for synthetic records. Aircraft registrations follow the
// AP-BHA..AP-BHJ block.
var (
	seedAircraft  = []string{"AP-BHA", "AP-BHB", "AP-BHC", "AP-BHD", "AP-BHE", "AP-BHF", "AP-BHG", "AP-BHH", "AP-BHI", "AP-BHJ"}
	seedAirports  = []string{"KHI", "LHE", "ISB", "DXB", "LHR"}
	seedLocations = []string{"Karachi", "Lahore", "Islamabad"}
)

// DemoSeeder populates empty tables with schema-valid synthetic records so
// the dashboard has something to show on first run.
type DemoSeeder struct {
	maintenanceRepo repository.MaintenanceRepository
	incidentRepo    repository.IncidentRepository
	flightRepo      repository.FlightRepository
	logger          logger.Logger
	rand            *rand.Rand
}

// NewDemoSeeder creates a new demo data seeder
func NewDemoSeeder(
	maintenanceRepo repository.MaintenanceRepository,
	incidentRepo repository.IncidentRepository,
	flightRepo repository.FlightRepository,
	logger logger.Logger,
) *DemoSeeder {
	return &DemoSeeder{
		maintenanceRepo: maintenanceRepo,
		incidentRepo:    incidentRepo,
		flightRepo:      flightRepo,
		logger:          logger,
		rand:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed fills each empty table with demo records. Tables that already hold
// data are left untouched, so re-running is a no-op in effect.
func (s *DemoSeeder) Seed(ctx context.Context) error {
	now := time.Now()

	count, err := s.maintenanceRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for i := 0; i < seedMaintenanceCount; i++ {
			if _, err := s.maintenanceRepo.Insert(ctx, s.maintenanceRecord(i, now)); err != nil {
				return err
			}
		}
		s.logger.Info("Seeded maintenance records", "count", seedMaintenanceCount)
	}

	count, err = s.incidentRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for i := 0; i < seedIncidentCount; i++ {
			if _, err := s.incidentRepo.Insert(ctx, s.incident(i, now)); err != nil {
				return err
			}
		}
		s.logger.Info("Seeded safety incidents", "count", seedIncidentCount)
	}

	count, err = s.flightRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for i := 0; i < seedFlightCount; i++ {
			if _, err := s.flightRepo.Insert(ctx, s.flight(now)); err != nil {
				return err
			}
		}
		s.logger.Info("Seeded flight records", "count", seedFlightCount)
	}

	return nil
}

func (s *DemoSeeder) pick(values []string) string {
	return values[s.rand.Intn(len(values))]
}

func (s *DemoSeeder) maintenanceRecord(i int, now time.Time) *entity.MaintenanceRecord {
	return &entity.MaintenanceRecord{
		AircraftRegistration: s.pick(seedAircraft),
		MaintenanceType:      s.pick(entity.MaintenanceTypes),
		Description:          fmt.Sprintf("Maintenance %d", i+1),
		ScheduledDate:        now.AddDate(0, 0, -s.rand.Intn(181)),
		TechnicianName:       fmt.Sprintf("Tech-%d", 100+s.rand.Intn(900)),
		HoursSpent:           2 + s.rand.Float64()*118,
		Cost:                 5000 + s.rand.Float64()*495000,
		Status:               s.pick(entity.MaintenanceStatuses),
		Priority:             s.pick(entity.Priorities),
		CreatedBy:            "system",
	}
}

func (s *DemoSeeder) incident(i int, now time.Time) *entity.SafetyIncident {
	return &entity.SafetyIncident{
		IncidentDate:         now.AddDate(0, 0, -s.rand.Intn(366)),
		IncidentType:         s.pick(entity.IncidentTypes),
		Severity:             s.pick(entity.Severities),
		AircraftRegistration: s.pick(seedAircraft),
		FlightNumber:         fmt.Sprintf("PK%d", 100+s.rand.Intn(900)),
		Location:             s.pick(seedLocations),
		Description:          fmt.Sprintf("Incident %d", i+1),
		InvestigationStatus:  s.pick([]string{"Open", "Closed"}),
		CreatedBy:            "system",
	}
}

func (s *DemoSeeder) flight(now time.Time) *entity.FlightRecord {
	departure := now.AddDate(0, 0, s.rand.Intn(61)-30)
	arrival := departure.Add(time.Duration(2+s.rand.Intn(11)) * time.Hour)
	return &entity.FlightRecord{
		FlightNumber:         fmt.Sprintf("PK%d", 100+s.rand.Intn(900)),
		AircraftRegistration: s.pick(seedAircraft),
		DepartureAirport:     s.pick(seedAirports),
		ArrivalAirport:       s.pick(seedAirports),
		ScheduledDeparture:   departure,
		ScheduledArrival:     arrival,
		PassengerCount:       50 + s.rand.Intn(301),
		CargoWeight:          s.rand.Float64() * 20000,
		FlightStatus:         s.pick([]string{"Scheduled", "On Time", "Delayed", "Arrived"}),
		CaptainName:          fmt.Sprintf("Capt-%d", 100+s.rand.Intn(900)),
		CreatedBy:            "system",
	}
}

// Snapshot generates an in-memory demo dataset without touching the store.
// It backs the degraded read-only mode when the store is unreachable.
func (s *DemoSeeder) Snapshot() *Snapshot {
	now := time.Now()
	snap := &Snapshot{}
	for i := 0; i < seedMaintenanceCount; i++ {
		snap.Maintenance = append(snap.Maintenance, *s.maintenanceRecord(i, now))
	}
	for i := 0; i < seedIncidentCount; i++ {
		snap.Incidents = append(snap.Incidents, *s.incident(i, now))
	}
	for i := 0; i < seedFlightCount; i++ {
		snap.Flights = append(snap.Flights, *s.flight(now))
	}
	return snap
}

// Snapshot is a fixed in-memory demo dataset served while the store is
// unavailable.
type Snapshot struct {
	Maintenance []entity.MaintenanceRecord
	Incidents   []entity.SafetyIncident
	Flights     []entity.FlightRecord
}

// Summary computes the dashboard headline numbers from the snapshot.
func (sn *Snapshot) Summary() *DashboardSummary {
	summary := &DashboardSummary{
		MaintenanceCount: int64(len(sn.Maintenance)),
		IncidentCount:    int64(len(sn.Incidents)),
		FlightCount:      int64(len(sn.Flights)),
		Degraded:         true,
	}
	for i := range sn.Incidents {
		if sn.Incidents[i].SeverityAtLeast(entity.SeverityMajor) {
			summary.CriticalIncidentCount++
		}
	}
	for i := range sn.Maintenance {
		summary.TotalMaintenanceHours += sn.Maintenance[i].HoursSpent
	}
	return summary
}

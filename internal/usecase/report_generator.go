package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"aeroops-service/internal/domain/repository"
	"aeroops-service/pkg/logger"

	"github.com/google/uuid"
)

// Period names a reporting window anchored at a reference time.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodCustom  Period = "custom"
)

// ReportKind names one of the canned report layouts.
type ReportKind string

const (
	ReportMaintenanceSummary ReportKind = "maintenance_summary"
	ReportSafety             ReportKind = "safety_report"
	ReportFlightOps          ReportKind = "flight_operations"
)

// Report is the assembled payload handed to downstream renderers. Sections
// map a display name to a generic table; rendering to PDF/Excel/CSV files
// is someone else's job.
type Report struct {
	ID          string           `json:"id"`
	Kind        ReportKind       `json:"kind"`
	Period      Period           `json:"period"`
	From        time.Time        `json:"from"`
	To          time.Time        `json:"to"`
	Sections    map[string]Table `json:"sections"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// PeriodBounds computes the [from, to) window for a period ending at the
// reference time. The rule is fixed here and applied by every report kind:
// a week starts Monday 00:00 local, a month on the 1st, a quarter on the
// 1st of January/April/July/October, a year on January 1st.
func PeriodBounds(period Period, ref time.Time) (time.Time, time.Time, error) {
	loc := ref.Location()
	switch period {
	case PeriodWeek:
		weekday := int(ref.Weekday())
		if weekday == 0 { // Sunday
			weekday = 7
		}
		monday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(weekday - 1))
		return monday, ref, nil
	case PeriodMonth:
		return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc), ref, nil
	case PeriodQuarter:
		quarterStart := time.Month((int(ref.Month())-1)/3*3 + 1)
		return time.Date(ref.Year(), quarterStart, 1, 0, 0, 0, 0, loc), ref, nil
	case PeriodYear:
		return time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, loc), ref, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
}

// ReportGenerator turns a period and report kind into aggregate calls and
// shapes the results into sections.
type ReportGenerator struct {
	maintenanceRepo repository.MaintenanceRepository
	incidentRepo    repository.IncidentRepository
	flightRepo      repository.FlightRepository
	logger          logger.Logger
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(
	maintenanceRepo repository.MaintenanceRepository,
	incidentRepo repository.IncidentRepository,
	flightRepo repository.FlightRepository,
	logger logger.Logger,
) *ReportGenerator {
	return &ReportGenerator{
		maintenanceRepo: maintenanceRepo,
		incidentRepo:    incidentRepo,
		flightRepo:      flightRepo,
		logger:          logger,
	}
}

// Generate builds a report for the period ending at now. For PeriodCustom
// the caller supplies the window and the named periods ignore it.
func (g *ReportGenerator) Generate(ctx context.Context, kind ReportKind, period Period, custom *repository.TimeWindow, now time.Time) (*Report, error) {
	var window repository.TimeWindow
	if period == PeriodCustom {
		if custom == nil {
			return nil, fmt.Errorf("custom period requires an explicit window")
		}
		window = *custom
	} else {
		from, to, err := PeriodBounds(period, now)
		if err != nil {
			return nil, err
		}
		window = repository.TimeWindow{From: from, To: to}
	}

	report := &Report{
		ID:          uuid.NewString(),
		Kind:        kind,
		Period:      period,
		From:        window.From,
		To:          window.To,
		Sections:    map[string]Table{},
		GeneratedAt: now,
	}

	var err error
	switch kind {
	case ReportMaintenanceSummary:
		err = g.maintenanceSections(ctx, window, report)
	case ReportSafety:
		err = g.safetySections(ctx, window, report)
	case ReportFlightOps:
		err = g.flightSections(ctx, window, report)
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	g.logger.Info("Report generated", "report_id", report.ID, "kind", string(kind), "period", string(period))
	return report, nil
}

func (g *ReportGenerator) maintenanceSections(ctx context.Context, window repository.TimeWindow, report *Report) error {
	byType, err := g.maintenanceRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "maintenance_type", Metric: repository.MetricCount, Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Tasks by Type"] = groupTable("maintenance_type", "tasks", byType)

	hoursByType, err := g.maintenanceRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "maintenance_type", Metric: repository.MetricSum, MetricField: "hours_spent", Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Hours by Type"] = groupTable("maintenance_type", "hours", hoursByType)

	costByStatus, err := g.maintenanceRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "status", Metric: repository.MetricSum, MetricField: "cost", Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Cost by Status"] = groupTable("status", "cost", costByStatus)
	return nil
}

func (g *ReportGenerator) safetySections(ctx context.Context, window repository.TimeWindow, report *Report) error {
	bySeverity, err := g.incidentRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "severity", Metric: repository.MetricCount, Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Incidents by Severity"] = groupTable("severity", "incidents", bySeverity)

	byType, err := g.incidentRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "incident_type", Metric: repository.MetricCount, Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Incidents by Type"] = groupTable("incident_type", "incidents", byType)

	byStatus, err := g.incidentRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "investigation_status", Metric: repository.MetricCount, Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Investigations"] = groupTable("investigation_status", "incidents", byStatus)
	return nil
}

func (g *ReportGenerator) flightSections(ctx context.Context, window repository.TimeWindow, report *Report) error {
	byStatus, err := g.flightRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "flight_status", Metric: repository.MetricCount, Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Flights by Status"] = groupTable("flight_status", "flights", byStatus)

	passengers, err := g.flightRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "flight_status", Metric: repository.MetricSum, MetricField: "passengers_count", Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Passengers by Status"] = groupTable("flight_status", "passengers", passengers)

	byAirport, err := g.flightRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy: "departure_airport", Metric: repository.MetricCount, Window: window,
	})
	if err != nil {
		return err
	}
	report.Sections["Departures by Airport"] = groupTable("departure_airport", "flights", byAirport)
	return nil
}

// groupTable shapes an aggregate result into a two-column table with group
// keys sorted, so a report is identical for identical stored data.
func groupTable(keyColumn, valueColumn string, groups map[string]float64) Table {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := Table{Columns: []string{keyColumn, valueColumn}}
	for _, k := range keys {
		table.Rows = append(table.Rows, []string{k, strconv.FormatFloat(groups[k], 'f', -1, 64)})
	}
	return table
}

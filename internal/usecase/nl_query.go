package usecase

import (
	"context"
	"fmt"
	"strings"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"
	"aeroops-service/pkg/logger"
)

// LLMClient is the narrow contract an external language-model collaborator
// must satisfy. The core never depends on a concrete provider.
type LLMClient interface {
	Fetch(ctx context.Context, query string) (string, error)
}

// NLQueryResult is the answer to a natural-language question, optionally
// with supporting rows.
type NLQueryResult struct {
	Answer string `json:"answer"`
	Table  *Table `json:"table,omitempty"`
}

// NLQueryService answers a small set of canned operational questions
// directly from the store and hands anything else to an optional LLM.
type NLQueryService struct {
	maintenanceRepo repository.MaintenanceRepository
	incidentRepo    repository.IncidentRepository
	llm             LLMClient
	logger          logger.Logger
}

// NewNLQueryService creates a new NL query service. llm may be nil.
func NewNLQueryService(
	maintenanceRepo repository.MaintenanceRepository,
	incidentRepo repository.IncidentRepository,
	llm LLMClient,
	logger logger.Logger,
) *NLQueryService {
	return &NLQueryService{
		maintenanceRepo: maintenanceRepo,
		incidentRepo:    incidentRepo,
		llm:             llm,
		logger:          logger,
	}
}

// Answer resolves a free-text question. Canned matchers run first; an
// unmatched question goes to the LLM when one is configured, otherwise the
// caller gets a usage hint.
func (s *NLQueryService) Answer(ctx context.Context, query string) (*NLQueryResult, error) {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "total maintenance hours"):
		return s.totalMaintenanceHours(ctx)
	case strings.Contains(q, "emergency") || strings.Contains(q, "critical"):
		return s.criticalIncidents(ctx)
	}

	if s.llm != nil {
		answer, err := s.llm.Fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		return &NLQueryResult{Answer: answer}, nil
	}
	return &NLQueryResult{
		Answer: "Try: 'total maintenance hours' or 'show emergency incidents'",
	}, nil
}

func (s *NLQueryService) totalMaintenanceHours(ctx context.Context) (*NLQueryResult, error) {
	hoursByStatus, err := s.maintenanceRepo.Aggregate(ctx, repository.AggregateRequest{
		GroupBy:     "status",
		Metric:      repository.MetricSum,
		MetricField: "hours_spent",
	})
	if err != nil {
		return nil, err
	}
	var total float64
	for _, hours := range hoursByStatus {
		total += hours
	}

	records, err := s.maintenanceRepo.Query(ctx, nil, nil, 100)
	if err != nil {
		return nil, err
	}
	table := MaintenanceTable(records)
	return &NLQueryResult{
		Answer: fmt.Sprintf("Total maintenance hours: %.1f", total),
		Table:  &table,
	}, nil
}

func (s *NLQueryService) criticalIncidents(ctx context.Context) (*NLQueryResult, error) {
	var critical []entity.SafetyIncident
	for _, severity := range []string{entity.SeverityMajor, entity.SeverityCritical} {
		incidents, err := s.incidentRepo.Query(ctx, []repository.Filter{
			{Field: "severity", Op: repository.OpEq, Value: severity},
		}, nil, 0)
		if err != nil {
			return nil, err
		}
		critical = append(critical, incidents...)
	}

	table := IncidentTable(critical)
	return &NLQueryResult{
		Answer: fmt.Sprintf("Found %d critical incidents", len(critical)),
		Table:  &table,
	}, nil
}

package httpapi

import (
	"net/http"
	"time"

	"aeroops-service/internal/domain/repository"
	"aeroops-service/internal/usecase"
	"aeroops-service/pkg/logger"
	"aeroops-service/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// reportRequest is the body of POST /reports. From/To are honored only for
// the custom period.
type reportRequest struct {
	Kind   usecase.ReportKind `json:"kind"`
	Period usecase.Period     `json:"period"`
	From   *time.Time         `json:"from"`
	To     *time.Time         `json:"to"`
}

// nlQueryRequest is the body of POST /query.
type nlQueryRequest struct {
	Question string `json:"question"`
}

// ReportController serves the dashboard summary, canned reports and NL
// queries.
type ReportController struct {
	dashboard *usecase.DashboardService
	reports   *usecase.ReportGenerator
	nlQuery   *usecase.NLQueryService
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewReportController creates a new report controller
func NewReportController(
	dashboard *usecase.DashboardService,
	reports *usecase.ReportGenerator,
	nlQuery *usecase.NLQueryService,
	m *metrics.Metrics,
	log logger.Logger,
) *ReportController {
	return &ReportController{
		dashboard: dashboard,
		reports:   reports,
		nlQuery:   nlQuery,
		metrics:   m,
		logger:    log,
	}
}

// Dashboard returns the headline numbers, degraded to demo data when the
// store is down.
func (ctrl *ReportController) Dashboard(c echo.Context) error {
	summary, err := ctrl.dashboard.Summary(c.Request().Context())
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Generate builds a report payload for the requested kind and period.
func (ctrl *ReportController) Generate(c echo.Context) error {
	req := &reportRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	var custom *repository.TimeWindow
	if req.Period == usecase.PeriodCustom {
		if req.From == nil || req.To == nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "custom period requires from and to"})
		}
		custom = &repository.TimeWindow{From: *req.From, To: *req.To}
	}

	report, err := ctrl.reports.Generate(c.Request().Context(), req.Kind, req.Period, custom, time.Now())
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	ctrl.metrics.ReportsGenerated.WithLabelValues(string(req.Kind)).Inc()
	return c.JSON(http.StatusOK, report)
}

// NLQuery answers a free-text operational question.
func (ctrl *ReportController) NLQuery(c echo.Context) error {
	req := &nlQueryRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if req.Question == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing question"})
	}

	result, err := ctrl.nlQuery.Answer(c.Request().Context(), req.Question)
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	return c.JSON(http.StatusOK, result)
}

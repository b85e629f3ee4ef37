package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"
	"aeroops-service/internal/usecase"
	"aeroops-service/pkg/logger"
	"aeroops-service/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// queryRequest is the body of POST /records/:kind/query.
type queryRequest struct {
	Filters []repository.Filter `json:"filters"`
	Sort    *repository.Sort    `json:"sort"`
	Limit   int                 `json:"limit"`
}

// RecordController handles CRUD and query requests for all three record
// kinds.
type RecordController struct {
	maintenanceRepo repository.MaintenanceRepository
	incidentRepo    repository.IncidentRepository
	flightRepo      repository.FlightRepository
	queryLimit      int
	metrics         *metrics.Metrics
	logger          logger.Logger
}

// NewRecordController creates a new record controller
func NewRecordController(
	maintenanceRepo repository.MaintenanceRepository,
	incidentRepo repository.IncidentRepository,
	flightRepo repository.FlightRepository,
	queryLimit int,
	m *metrics.Metrics,
	log logger.Logger,
) *RecordController {
	return &RecordController{
		maintenanceRepo: maintenanceRepo,
		incidentRepo:    incidentRepo,
		flightRepo:      flightRepo,
		queryLimit:      queryLimit,
		metrics:         m,
		logger:          log,
	}
}

// Create inserts one record submitted by a form. Soft validation warnings
// ride along in the response without blocking the insert.
func (ctrl *RecordController) Create(c echo.Context) error {
	kind, err := parseKindParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ctx := c.Request().Context()

	var stored any
	var advisories []string
	switch kind {
	case entity.KindMaintenance:
		record := &entity.MaintenanceRecord{}
		if err := c.Bind(record); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}
		advisories = record.Advisories()
		if stored, err = ctrl.maintenanceRepo.Insert(ctx, record); err != nil {
			return respondError(c, ctrl.metrics, err)
		}
	case entity.KindIncident:
		incident := &entity.SafetyIncident{}
		if err := c.Bind(incident); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}
		if stored, err = ctrl.incidentRepo.Insert(ctx, incident); err != nil {
			return respondError(c, ctrl.metrics, err)
		}
	case entity.KindFlight:
		flight := &entity.FlightRecord{}
		if err := c.Bind(flight); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}
		advisories = flight.Advisories()
		if stored, err = ctrl.flightRepo.Insert(ctx, flight); err != nil {
			return respondError(c, ctrl.metrics, err)
		}
	}

	ctrl.metrics.RecordsInserted.WithLabelValues(string(kind)).Inc()
	return c.JSON(http.StatusCreated, map[string]any{
		"record":     stored,
		"advisories": advisories,
	})
}

// Get fetches one record by id.
func (ctrl *RecordController) Get(c echo.Context) error {
	kind, id, err := ctrl.kindAndID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ctx := c.Request().Context()

	var record any
	switch kind {
	case entity.KindMaintenance:
		record, err = ctrl.maintenanceRepo.GetByID(ctx, id)
	case entity.KindIncident:
		record, err = ctrl.incidentRepo.GetByID(ctx, id)
	case entity.KindFlight:
		record, err = ctrl.flightRepo.GetByID(ctx, id)
	}
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	return c.JSON(http.StatusOK, record)
}

// Patch merges a partial edit into one record.
func (ctrl *RecordController) Patch(c echo.Context) error {
	kind, id, err := ctrl.kindAndID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ctx := c.Request().Context()

	var record any
	switch kind {
	case entity.KindMaintenance:
		patch := &entity.MaintenanceUpdate{}
		if err := c.Bind(patch); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}
		record, err = ctrl.maintenanceRepo.Update(ctx, id, patch)
	case entity.KindIncident:
		patch := &entity.IncidentUpdate{}
		if err := c.Bind(patch); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}
		record, err = ctrl.incidentRepo.Update(ctx, id, patch)
	case entity.KindFlight:
		patch := &entity.FlightUpdate{}
		if err := c.Bind(patch); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		}
		record, err = ctrl.flightRepo.Update(ctx, id, patch)
	}
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	return c.JSON(http.StatusOK, record)
}

// Delete removes one record by id.
func (ctrl *RecordController) Delete(c echo.Context) error {
	kind, id, err := ctrl.kindAndID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ctx := c.Request().Context()

	switch kind {
	case entity.KindMaintenance:
		err = ctrl.maintenanceRepo.Delete(ctx, id)
	case entity.KindIncident:
		err = ctrl.incidentRepo.Delete(ctx, id)
	case entity.KindFlight:
		err = ctrl.flightRepo.Delete(ctx, id)
	}
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	ctrl.metrics.RecordsDeleted.WithLabelValues(string(kind)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Query returns records matching the posted filters.
func (ctrl *RecordController) Query(c echo.Context) error {
	kind, err := parseKindParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	req := &queryRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if req.Limit <= 0 || req.Limit > ctrl.queryLimit {
		req.Limit = ctrl.queryLimit
	}
	ctx := c.Request().Context()

	var records any
	switch kind {
	case entity.KindMaintenance:
		records, err = ctrl.maintenanceRepo.Query(ctx, req.Filters, req.Sort, req.Limit)
	case entity.KindIncident:
		records, err = ctrl.incidentRepo.Query(ctx, req.Filters, req.Sort, req.Limit)
	case entity.KindFlight:
		records, err = ctrl.flightRepo.Query(ctx, req.Filters, req.Sort, req.Limit)
	}
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"records": records})
}

// Export streams the kind's table as a CSV download.
func (ctrl *RecordController) Export(c echo.Context) error {
	kind, err := parseKindParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	ctx := c.Request().Context()

	var table usecase.Table
	switch kind {
	case entity.KindMaintenance:
		records, err := ctrl.maintenanceRepo.Query(ctx, nil, nil, ctrl.queryLimit)
		if err != nil {
			return respondError(c, ctrl.metrics, err)
		}
		table = usecase.MaintenanceTable(records)
	case entity.KindIncident:
		incidents, err := ctrl.incidentRepo.Query(ctx, nil, nil, ctrl.queryLimit)
		if err != nil {
			return respondError(c, ctrl.metrics, err)
		}
		table = usecase.IncidentTable(incidents)
	case entity.KindFlight:
		flights, err := ctrl.flightRepo.Query(ctx, nil, nil, ctrl.queryLimit)
		if err != nil {
			return respondError(c, ctrl.metrics, err)
		}
		table = usecase.FlightTable(flights)
	}

	payload, err := table.CSV()
	if err != nil {
		return respondError(c, ctrl.metrics, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+string(kind)+`.csv"`)
	return c.Blob(http.StatusOK, "text/csv", payload)
}

func (ctrl *RecordController) kindAndID(c echo.Context) (entity.Kind, uint, error) {
	kind, err := parseKindParam(c)
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return "", 0, errors.New("invalid record id")
	}
	return kind, uint(id), nil
}

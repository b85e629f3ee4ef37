package httpapi

import (
	"encoding/json"
	"net/http"

	"aeroops-service/internal/usecase"
	"aeroops-service/pkg/logger"
	"aeroops-service/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// ImportController handles multipart CSV uploads.
type ImportController struct {
	importer *usecase.CSVImporter
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewImportController creates a new import controller
func NewImportController(importer *usecase.CSVImporter, m *metrics.Metrics, log logger.Logger) *ImportController {
	return &ImportController{
		importer: importer,
		metrics:  m,
		logger:   log,
	}
}

// Import accepts a multipart form with a "file" part holding the CSV and a
// "mapping" field holding a JSON object from source column to target field.
// A store outage mid-import returns 503 together with the partial result.
func (ctrl *ImportController) Import(c echo.Context) error {
	kind, err := parseKindParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing file upload"})
	}
	mapping := map[string]string{}
	if raw := c.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "mapping must be a JSON object"})
		}
	}
	if len(mapping) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing column mapping"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cannot read file upload"})
	}
	defer file.Close()

	result, err := ctrl.importer.Import(c.Request().Context(), kind, file, mapping)
	if result != nil {
		ctrl.metrics.ImportRows.WithLabelValues("inserted").Add(float64(result.Inserted))
		ctrl.metrics.ImportRows.WithLabelValues("rejected").Add(float64(result.Rejected))
	}
	if err != nil {
		if result != nil {
			// Partial import: report what made it in before the store failed.
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"error":  "storage unavailable, import stopped",
				"result": result,
			})
		}
		return respondError(c, ctrl.metrics, err)
	}
	return c.JSON(http.StatusOK, result)
}

package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"aeroops-service/internal/domain/entity"
	"aeroops-service/internal/domain/repository"
	"aeroops-service/internal/infrastructure/config"
	"aeroops-service/pkg/logger"
	"aeroops-service/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the echo instance, routes and middleware.
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger logger.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(
	cfg *config.Config,
	log logger.Logger,
	m *metrics.Metrics,
	records *RecordController,
	imports *ImportController,
	reports *ReportController,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("Recovered from panic", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			m.RequestDuration.Observe(time.Since(start).Seconds())
			return err
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/dashboard", reports.Dashboard)
	api.POST("/reports", reports.Generate)
	api.POST("/query", reports.NLQuery)

	api.POST("/records/:kind", records.Create)
	api.POST("/records/:kind/query", records.Query)
	api.GET("/records/:kind/export", records.Export)
	api.GET("/records/:kind/:id", records.Get)
	api.PATCH("/records/:kind/:id", records.Patch)
	api.DELETE("/records/:kind/:id", records.Delete)

	api.POST("/import/:kind", imports.Import)

	return &Server{
		echo:   e,
		cfg:    cfg,
		logger: log,
	}
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "port", s.cfg.Port)
	return s.echo.Start(":" + s.cfg.Port)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// respondError maps domain errors onto HTTP statuses. Storage outages get a
// clear unavailability message so the UI can show its degraded banner.
func respondError(c echo.Context, m *metrics.Metrics, err error) error {
	var validationErr *entity.ValidationError
	var queryErr *repository.QueryError
	var configErr *config.ConfigurationError
	var unavailableErr *repository.StorageUnavailableError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &queryErr), errors.As(err, &configErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "record not found"})
	case errors.As(err, &unavailableErr):
		if m != nil {
			m.StorageErrors.Inc()
		}
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "storage unavailable, service is running in degraded mode",
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// parseKindParam resolves the :kind path parameter.
func parseKindParam(c echo.Context) (entity.Kind, error) {
	return entity.ParseKind(c.Param("kind"))
}

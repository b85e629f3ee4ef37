package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aeroops-service/internal/infrastructure/config"
	"aeroops-service/internal/infrastructure/persistence"
	"aeroops-service/internal/interface/httpapi"
	gormRepo "aeroops-service/internal/interface/repository"
	"aeroops-service/internal/usecase"
	"aeroops-service/pkg/logger"
	"aeroops-service/pkg/metrics"
)

func main() {
	// Load configuration first so the logger level is honored
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting AeroOps Service", "version", cfg.AppVersion)

	// Resolve the store backend once, then inject the handle everywhere
	storeCfg, err := cfg.ResolveStore()
	if err != nil {
		log.Fatal("Failed to resolve store configuration", "error", err)
	}
	log.Info("Connecting to store", "backend", storeCfg.Backend.String())

	db, err := persistence.Connect(storeCfg)
	if err != nil {
		log.Fatal("Failed to connect to store", "error", err)
	}
	if err := gormRepo.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema", "error", err)
	}

	// Set up repositories
	maintenanceRepo := gormRepo.NewGormMaintenanceRepository(db)
	incidentRepo := gormRepo.NewGormIncidentRepository(db)
	flightRepo := gormRepo.NewGormFlightRepository(db)

	// Set up use cases
	seeder := usecase.NewDemoSeeder(maintenanceRepo, incidentRepo, flightRepo, log)
	importer := usecase.NewCSVImporter(maintenanceRepo, incidentRepo, flightRepo, log)
	dashboard := usecase.NewDashboardService(maintenanceRepo, incidentRepo, flightRepo, seeder, log)
	reports := usecase.NewReportGenerator(maintenanceRepo, incidentRepo, flightRepo, log)
	nlQuery := usecase.NewNLQueryService(maintenanceRepo, incidentRepo, nil, log)

	ctx := context.Background()
	if cfg.SeedDemoData {
		if err := seeder.Seed(ctx); err != nil {
			// Demo data is a convenience, not a startup requirement
			log.Warn("Demo data seeding failed", "error", err)
		}
	}

	m := metrics.NewMetrics("aeroops")

	recordController := httpapi.NewRecordController(maintenanceRepo, incidentRepo, flightRepo, cfg.QueryLimit, m, log)
	importController := httpapi.NewImportController(importer, m, log)
	reportController := httpapi.NewReportController(dashboard, reports, nlQuery, m, log)

	server := httpapi.NewServer(cfg, log, m, recordController, importController, reportController)

	// Start HTTP server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig.String())

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}
	if err := persistence.Close(db); err != nil {
		log.Error("Store close error", "error", err)
	}

	log.Info("AeroOps Service stopped")
}

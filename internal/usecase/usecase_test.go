package usecase

import (
	"path/filepath"
	"testing"

	"aeroops-service/internal/domain/repository"
	storerepo "aeroops-service/internal/interface/repository"
	"aeroops-service/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testRepos struct {
	db          *gorm.DB
	maintenance repository.MaintenanceRepository
	incidents   repository.IncidentRepository
	flights     repository.FlightRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storerepo.EnsureSchema(db))
	return testRepos{
		db:          db,
		maintenance: storerepo.NewGormMaintenanceRepository(db),
		incidents:   storerepo.NewGormIncidentRepository(db),
		flights:     storerepo.NewGormFlightRepository(db),
	}
}

// breakStore closes the underlying connection so every later call fails as
// a storage outage.
func breakStore(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func testLogger() logger.Logger {
	return logger.NewNop()
}

package persistence

import (
	"fmt"

	"aeroops-service/internal/domain/repository"
	"aeroops-service/internal/infrastructure/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a GORM handle against the resolved store. The backend
// variant was decided once during configuration; this function only maps it
// to the matching dialector.
func Connect(store config.StoreConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch store.Backend {
	case config.BackendCloud:
		dialector = postgres.Open(store.DSN)
	case config.BackendLocal:
		dialector = sqlite.Open(store.Path)
	default:
		return nil, &config.ConfigurationError{Reason: fmt.Sprintf("unknown backend %d", store.Backend)}
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, &repository.StorageUnavailableError{Cause: err}
	}

	if store.Backend == config.BackendCloud {
		pool, err := db.DB()
		if err != nil {
			return nil, &repository.StorageUnavailableError{Cause: err}
		}
		if err := pool.Ping(); err != nil {
			return nil, &repository.StorageUnavailableError{Cause: err}
		}
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	pool, err := db.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

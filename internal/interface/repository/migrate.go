package repository

import (
	"aeroops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// EnsureSchema idempotently creates the three record tables. Existing
// tables are left as they are.
func EnsureSchema(db *gorm.DB) error {
	err := db.AutoMigrate(&MaintenanceRecords{}, &SafetyIncidents{}, &Flights{})
	if err != nil {
		return &repository.StorageUnavailableError{Cause: err}
	}
	return nil
}

package app

import (
	"go-timeclock/internal/businesshours"
	"go-timeclock/internal/equipmentcheck"
	"go-timeclock/internal/profile"
	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// migrate creates the tables this service owns. RBAC and outbox_events belong
// to the shared platform schema and are expected to exist.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&profile.Profile{},
		&shift.Shift{},
		&timeentry.TimeEntry{},
		&businesshours.CompanySettings{},
		&equipmentcheck.Request{},
	); err != nil {
		return err
	}
	zap.L().Named("app.migrate").Info("schema migrated")
	return nil
}

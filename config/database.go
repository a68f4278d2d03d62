package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"monchai-insurance/models"
)

// ConnectDB opens the journal database. Customer records never live here;
// the sheet stays authoritative.
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect journal database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("journal database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := MigrateJournal(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateJournal creates or updates the journal tables.
func MigrateJournal(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SyncLog{}, &models.ReminderLog{}); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"monchai-insurance/config"
	"monchai-insurance/models"
	"monchai-insurance/store"
)

// Journal keeps an operational record of sheet writes and reminders. A nil
// Journal, or one without a database, accepts every call and records nothing.
type Journal struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewJournal(db *gorm.DB, logger *logrus.Logger) *Journal {
	return &Journal{db: db, log: logger}
}

func (j *Journal) Enabled() bool {
	return j != nil && j.db != nil
}

// RecordSync stores the outcome of one sheet write. Failures to journal are logged only.
func (j *Journal) RecordSync(ctx context.Context, runID, op string, rowNumber int, err error) {
	if !j.Enabled() {
		return
	}
	entry := models.SyncLog{
		RunID:     runID,
		Operation: op,
		RowNumber: rowNumber,
		OK:        err == nil,
	}
	if err != nil {
		entry.Reason = string(store.ReasonOf(err))
		entry.Detail = err.Error()
		var syncErr *store.SyncError
		if errors.As(err, &syncErr) {
			entry.StatusCode = syncErr.StatusCode
		}
	}
	if dbErr := j.db.WithContext(ctx).Create(&entry).Error; dbErr != nil {
		config.LogError(j.log, "journal", "RecordSync", "create sync log", entry, dbErr)
	}
}

func (j *Journal) RecordReminder(ctx context.Context, entry *models.ReminderLog) {
	if !j.Enabled() {
		return
	}
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}
	if err := j.db.WithContext(ctx).Create(entry).Error; err != nil {
		config.LogError(j.log, "journal", "RecordReminder", "create reminder log", entry.LicensePlate, err)
	}
}

// WasReminded reports whether a reminder was already sent for this plate and expiry date.
func (j *Journal) WasReminded(ctx context.Context, plate string, field ExpiryField, expiryDate string) bool {
	if !j.Enabled() {
		return false
	}
	var count int64
	err := j.db.WithContext(ctx).Model(&models.ReminderLog{}).
		Where("license_plate = ? AND expiry_field = ? AND expiry_date = ? AND status = ?", plate, string(field), expiryDate, "sent").
		Count(&count).Error
	if err != nil {
		config.LogError(j.log, "journal", "WasReminded", "count reminder logs", plate, err)
		return false
	}
	return count > 0
}

func (j *Journal) RecentSyncs(ctx context.Context, limit int) ([]models.SyncLog, error) {
	if !j.Enabled() {
		return nil, nil
	}
	var logs []models.SyncLog
	err := j.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&logs).Error
	return logs, err
}

func (j *Journal) RecentReminders(ctx context.Context, limit int) ([]models.ReminderLog, error) {
	if !j.Enabled() {
		return nil, nil
	}
	var logs []models.ReminderLog
	err := j.db.WithContext(ctx).Order("sent_at desc").Limit(limit).Find(&logs).Error
	return logs, err
}

// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records one renewal reminder sent to a customer.
type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	RowNumber    int       `gorm:"index"`
	LicensePlate string    `gorm:"type:varchar(60);index:idx_reminder_plate_expiry,priority:1"`
	ExpiryField  string    `gorm:"type:varchar(40);index:idx_reminder_plate_expiry,priority:2"` // actExpiryDate, taxExpiryDate, voluntaryExpiryDate
	ExpiryDate   string    `gorm:"type:varchar(10);index:idx_reminder_plate_expiry,priority:3"`
	Phone        string    `gorm:"type:varchar(20)"`
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // sms
	SentAt       time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// SyncLog records the outcome of one write to the customer sheet.
type SyncLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	RunID      string    `gorm:"type:varchar(36);index"`
	Operation  string    `gorm:"type:varchar(20);index"` // create, update, delete, reconcile
	RowNumber  int       `gorm:"index"`
	OK         bool
	Reason     string `gorm:"type:varchar(40)"`
	StatusCode int
	Detail     string `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (s *SyncLog) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

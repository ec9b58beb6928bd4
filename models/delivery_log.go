// models/delivery_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryLog records one notification attempt made by the dispatcher.
type DeliveryLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ReminderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID       string    `gorm:"index"`
	Recipient    string
	Status       string `gorm:"type:varchar(20)"` // sent, failed, skipped
	ErrorMessage string `gorm:"type:text"`
	SentAt       time.Time
	gorm.Model
}

func (d *DeliveryLog) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = uuid.New()
	return
}

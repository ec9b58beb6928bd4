package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder is one recurring notification. DueDate always holds the next
// scheduled fire time; the dispatcher advances it on every firing, Cron
// never changes after creation.
type Reminder struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserID    string    `gorm:"index;not null" json:"userId"`
	Cron      string    `gorm:"not null" json:"cron"`
	DueDate   time.Time `gorm:"index;not null" json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initialize UUID before creating
func (r *Reminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

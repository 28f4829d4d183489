package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is an immutable, human-readable feed entry. Rows are only ever
// appended; no update or delete path exists.
type Activity struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ProjectID   string    `gorm:"index;not null" json:"projectId"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

// BeforeCreate assigns a prefixed identifier when none is present.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID(ActivityIDPrefix)
	}
	return nil
}

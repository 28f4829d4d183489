package models

import (
	"time"

	"gorm.io/gorm"
)

// Task is a unit of work inside a project. Priority and status are free-form
// strings chosen by the client, not a closed enum.
type Task struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	AssigneeID  *string   `json:"assigneeId"`
	ProjectID   string    `gorm:"index;not null" json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a prefixed identifier when none is present.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID(TaskIDPrefix)
	}
	return nil
}

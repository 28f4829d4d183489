package models

import (
	"time"

	"gorm.io/gorm"
)

// Milestone tracks progress toward a project goal. DueDate is passed through
// as the client supplied it and Progress is not range-validated.
type Milestone struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"dueDate"`
	Progress    float64   `json:"progress"`
	Status      string    `json:"status"`
	ProjectID   string    `gorm:"index;not null" json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a prefixed identifier when none is present.
func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID(MilestoneIDPrefix)
	}
	return nil
}

package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project groups tasks, milestones, chat threads and an activity feed.
// Members is a denormalised list of user ids kept alongside the membership
// rows; project_members remains the authoritative source for roles.
type Project struct {
	ID          string                       `gorm:"primaryKey" json:"id"`
	Title       string                       `gorm:"not null" json:"title"`
	Description string                       `json:"description"`
	Status      string                       `json:"status"`
	Members     datatypes.JSONSlice[string]  `json:"members"`
}

// BeforeCreate assigns a prefixed identifier when none is present.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID(ProjectIDPrefix)
	}
	return nil
}

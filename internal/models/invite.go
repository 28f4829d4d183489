package models

import (
	"time"

	"gorm.io/gorm"
)

// Invite statuses. Pending invites are matched by email at signup, converted
// into membership and deleted, so accepted rows normally never persist.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

// Invite is a pending request for an email address to join a project.
type Invite struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"index;not null" json:"projectId"`
	Email     string    `gorm:"index;not null" json:"email"`
	Name      string    `json:"name"`
	Status    string    `gorm:"default:pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a prefixed identifier when none is present.
func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = NewID(InviteIDPrefix)
	}
	return nil
}

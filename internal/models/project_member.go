package models

import "gorm.io/gorm"

// Membership roles. A project has exactly one leader, assigned at creation
// and never removed or downgraded.
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// ProjectMember links a user to a project with a role. At most one row
// exists per (projectId, userId) pair; AddMember enforces the upsert.
type ProjectMember struct {
	ID        string `gorm:"primaryKey" json:"id"`
	ProjectID string `gorm:"index:idx_project_user;not null" json:"projectId"`
	UserID    string `gorm:"index:idx_project_user;not null" json:"userId"`
	Role      string `gorm:"not null;default:member" json:"role"`
}

// BeforeCreate assigns a prefixed identifier when none is present.
func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID(MemberIDPrefix)
	}
	return nil
}

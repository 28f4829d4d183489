package models

import "gorm.io/gorm"

// User statuses. Nothing in this backend ever flips a user back to offline;
// the field exists for the presence indicator in the UI.
const (
	UserStatusOnline  = "online"
	UserStatusOffline = "offline"
)

// User is a registered account. The password hash never leaves the process;
// handlers return PublicUser instead.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Status       string `gorm:"default:offline" json:"status"`
}

// PublicUser is the wire-safe projection of a User.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Public strips credentials from the user record.
func (u User) Public() PublicUser {
	status := u.Status
	if status == "" {
		status = UserStatusOffline
	}
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Status: status,
	}
}

// BeforeCreate assigns a prefixed identifier when none is present.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID(UserIDPrefix)
	}
	return nil
}

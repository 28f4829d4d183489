package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Message is embedded in a chat thread's document column; it is not a
// collection of its own.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	SenderID  string    `json:"senderId"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatThread is a titled conversation scoped to a project. Messages grow
// append-only through the thread update endpoint.
type ChatThread struct {
	ID        string                        `gorm:"primaryKey" json:"id"`
	Title     string                        `gorm:"not null" json:"title"`
	ProjectID string                        `gorm:"index;not null" json:"projectId"`
	CreatorID string                        `json:"creatorId"`
	Messages  datatypes.JSONSlice[Message]  `json:"messages"`
	CreatedAt time.Time                     `json:"createdAt"`
	UpdatedAt time.Time                     `json:"updatedAt"`
}

// BeforeCreate assigns a prefixed identifier and an empty message list.
func (t *ChatThread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID(ThreadIDPrefix)
	}
	if t.Messages == nil {
		t.Messages = datatypes.JSONSlice[Message]{}
	}
	return nil
}

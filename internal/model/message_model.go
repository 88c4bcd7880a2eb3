package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_messages,priority:1"`
	Content        string    `gorm:"type:text;not null"`
	FromGuest      bool      `gorm:"not null"`
	// Seq is sequence-assigned on insert. created_at is truncated to
	// microseconds by the store, so equal timestamps fall back to seq for
	// insertion order.
	Seq       int64     `gorm:"autoIncrement;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_conversation_messages,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the thread between one property and one guest channel
// address. At most one exists per (property, guest address) pair.
type Conversation struct {
	Id            uuid.UUID
	PropertyId    uuid.UUID
	GuestAddress  string
	GuestName     string
	LastMessageAt time.Time
	CreatedAt     time.Time
}

// Message is one immutable turn within a conversation.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Content        string
	FromGuest      bool
	CreatedAt      time.Time
}

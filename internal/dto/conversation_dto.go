package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationResponse struct {
	Id            uuid.UUID `json:"id"`
	PropertyId    uuid.UUID `json:"property_id"`
	GuestAddress  string    `json:"guest_address"`
	GuestName     string    `json:"guest_name,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	FromGuest bool      `json:"from_guest"`
	CreatedAt time.Time `json:"created_at"`
}

type ManualSendRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required"`
}

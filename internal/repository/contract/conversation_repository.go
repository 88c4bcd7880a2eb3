package contract

import (
	"context"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	// FindOpen returns the conversation for (propertyId, guestAddress), or
	// nil when none exists.
	FindOpen(ctx context.Context, propertyId uuid.UUID, guestAddress string) (*entity.Conversation, error)

	// Create inserts a new conversation. A unique-violation on
	// (property_id, guest_address) is returned as ErrConversationExists.
	Create(ctx context.Context, conversation *entity.Conversation) error

	TouchLastMessageAt(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
}

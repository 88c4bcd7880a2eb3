package contract

import (
	"context"

	"guest-concierge-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// FindRecent returns the newest messages first; callers reverse to get
	// chronological order. Ties on created_at break by insertion order.
	FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error)
}

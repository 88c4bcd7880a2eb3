package contract

import (
	"context"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DocumentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
}

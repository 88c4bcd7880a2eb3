package contract

import (
	"context"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Property, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error)
}

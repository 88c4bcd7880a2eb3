package contract

import (
	"context"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	Update(ctx context.Context, account *entity.Account) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)

	// IncrementMessageCount adds n to the usage counter as a single
	// store-side atomic expression.
	IncrementMessageCount(ctx context.Context, accountId uuid.UUID, n int) error

	// ApplyPlan sets plan and limit and resets the counter. Used by the
	// billing webhook only.
	ApplyPlan(ctx context.Context, accountId uuid.UUID, plan string, messageLimit int) error
}

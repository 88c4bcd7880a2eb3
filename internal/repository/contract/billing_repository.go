package contract

import (
	"context"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/repository/specification"
)

type BillingRepository interface {
	Create(ctx context.Context, transaction *entity.BillingTransaction) error
	Update(ctx context.Context, transaction *entity.BillingTransaction) error
	FindByOrderId(ctx context.Context, orderId string) (*entity.BillingTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BillingTransaction, error)
}

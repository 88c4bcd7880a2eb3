package quota

import (
	"context"
	"errors"

	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound means the owning account record is missing; this is
	// a hard rejection, not a transient condition.
	ErrAccountNotFound = errors.New("account not found")

	// ErrLimitReached means message_count has reached message_limit.
	ErrLimitReached = errors.New("account message limit reached")
)

// Gate performs quota admission control for one account. Admission never
// consumes; consumption happens after the corresponding message persist.
type Gate struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewGate(uowFactory unitofwork.RepositoryFactory, l logger.ILogger) *Gate {
	return &Gate{
		uowFactory: uowFactory,
		logger:     l,
	}
}

// Admit returns nil iff the account exists and message_count < message_limit.
// A limit of zero rejects unconditionally.
func (g *Gate) Admit(ctx context.Context, accountId uuid.UUID) error {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: accountId})
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if !account.Admitted() {
		g.logger.Warn("quota", "admission denied", map[string]interface{}{
			"account_id":    accountId,
			"message_count": account.MessageCount,
			"message_limit": account.MessageLimit,
		})
		return ErrLimitReached
	}
	return nil
}

// Consume adds n units to the account counter via an atomic store-side
// increment.
func (g *Gate) Consume(ctx context.Context, accountId uuid.UUID, n int) error {
	uow := g.uowFactory.NewUnitOfWork(ctx)
	return uow.AccountRepository().IncrementMessageCount(ctx, accountId, n)
}

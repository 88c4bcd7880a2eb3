package quota

import (
	"context"
	"errors"
	"testing"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/contract"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountRepo struct {
	contract.AccountRepository
	account    *entity.Account
	findErr    error
	consumed   int
	consumeErr error
}

func (r *fakeAccountRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	return r.account, r.findErr
}

func (r *fakeAccountRepo) IncrementMessageCount(ctx context.Context, accountId uuid.UUID, n int) error {
	if r.consumeErr != nil {
		return r.consumeErr
	}
	r.consumed += n
	return nil
}

type fakeUOW struct {
	unitofwork.UnitOfWork
	accounts *fakeAccountRepo
}

func (u *fakeUOW) AccountRepository() contract.AccountRepository { return u.accounts }

type fakeFactory struct {
	uow *fakeUOW
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newGateWith(accounts *fakeAccountRepo) *Gate {
	return NewGate(&fakeFactory{uow: &fakeUOW{accounts: accounts}}, logger.NewNopLogger())
}

func TestAdmitUnderLimit(t *testing.T) {
	gate := newGateWith(&fakeAccountRepo{
		account: &entity.Account{Id: uuid.New(), MessageCount: 99, MessageLimit: 100},
	})

	require.NoError(t, gate.Admit(context.Background(), uuid.New()))
}

func TestAdmitAtLimit(t *testing.T) {
	gate := newGateWith(&fakeAccountRepo{
		account: &entity.Account{Id: uuid.New(), MessageCount: 100, MessageLimit: 100},
	})

	err := gate.Admit(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestAdmitZeroLimit(t *testing.T) {
	gate := newGateWith(&fakeAccountRepo{
		account: &entity.Account{Id: uuid.New(), MessageCount: 0, MessageLimit: 0},
	})

	err := gate.Admit(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestAdmitMissingAccount(t *testing.T) {
	gate := newGateWith(&fakeAccountRepo{account: nil})

	err := gate.Admit(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAdmitStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	gate := newGateWith(&fakeAccountRepo{findErr: storeErr})

	err := gate.Admit(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storeErr)
}

func TestAdmitDoesNotConsume(t *testing.T) {
	accounts := &fakeAccountRepo{
		account: &entity.Account{Id: uuid.New(), MessageCount: 5, MessageLimit: 100},
	}
	gate := newGateWith(accounts)

	require.NoError(t, gate.Admit(context.Background(), uuid.New()))
	assert.Equal(t, 0, accounts.consumed)
}

func TestConsume(t *testing.T) {
	accounts := &fakeAccountRepo{
		account: &entity.Account{Id: uuid.New(), MessageCount: 5, MessageLimit: 100},
	}
	gate := newGateWith(accounts)

	require.NoError(t, gate.Consume(context.Background(), uuid.New(), 1))
	require.NoError(t, gate.Consume(context.Background(), uuid.New(), 1))
	assert.Equal(t, 2, accounts.consumed)
}

package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/contract"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBilling struct {
	contract.BillingRepository
	transaction *entity.BillingTransaction
	updated     *entity.BillingTransaction
}

func (r *memBilling) FindByOrderId(ctx context.Context, orderId string) (*entity.BillingTransaction, error) {
	if r.transaction != nil && r.transaction.OrderId == orderId {
		return r.transaction, nil
	}
	return nil, nil
}

func (r *memBilling) Update(ctx context.Context, t *entity.BillingTransaction) error {
	r.updated = t
	return nil
}

type planRecordingAccounts struct {
	contract.AccountRepository
	appliedPlan  string
	appliedLimit int
}

func (r *planRecordingAccounts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	return nil, nil
}

func (r *planRecordingAccounts) ApplyPlan(ctx context.Context, accountId uuid.UUID, plan string, messageLimit int) error {
	r.appliedPlan = plan
	r.appliedLimit = messageLimit
	return nil
}

type billingTestUOW struct {
	memUOW
	billing  *memBilling
	accounts *planRecordingAccounts
}

func (u *billingTestUOW) BillingRepository() contract.BillingRepository { return u.billing }
func (u *billingTestUOW) AccountRepository() contract.AccountRepository { return u.accounts }

type billingTestFactory struct {
	uow *billingTestUOW
}

func (f *billingTestFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func signNotification(req *dto.MidtransWebhookRequest, serverKey string) {
	input := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

func pendingTransaction() *entity.BillingTransaction {
	return &entity.BillingTransaction{
		Id:          uuid.New(),
		AccountId:   uuid.New(),
		OrderId:     "sub-order-1",
		Plan:        constant.PlanStarter,
		GrossAmount: constant.PlanPrices[constant.PlanStarter],
		Status:      entity.TransactionStatusPending,
	}
}

func newBillingFixture(transaction *entity.BillingTransaction) (IBillingService, *memBilling, *planRecordingAccounts) {
	billing := &memBilling{transaction: transaction}
	accounts := &planRecordingAccounts{}
	factory := &billingTestFactory{uow: &billingTestUOW{billing: billing, accounts: accounts}}
	svc := NewBillingService(factory, "test-server-key", "sandbox", logger.NewNopLogger())
	return svc, billing, accounts
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	svc, billing, accounts := newBillingFixture(pendingTransaction())

	req := &dto.MidtransWebhookRequest{
		OrderId:           "sub-order-1",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "150000.00",
		SignatureKey:      "forged",
	}

	err := svc.HandleNotification(context.Background(), req, "{}")
	require.Error(t, err)
	assert.Nil(t, billing.updated)
	assert.Empty(t, accounts.appliedPlan)
}

func TestHandleNotificationSettlementAppliesPlan(t *testing.T) {
	tx := pendingTransaction()
	svc, billing, accounts := newBillingFixture(tx)

	req := &dto.MidtransWebhookRequest{
		OrderId:           "sub-order-1",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "150000.00",
	}
	signNotification(req, "test-server-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req, `{"raw":true}`))

	require.NotNil(t, billing.updated)
	assert.Equal(t, entity.TransactionStatusSettled, billing.updated.Status)
	assert.Equal(t, constant.PlanStarter, accounts.appliedPlan)
	assert.Equal(t, constant.PlanMessageLimits[constant.PlanStarter], accounts.appliedLimit)
}

func TestHandleNotificationSettlementIsIdempotent(t *testing.T) {
	tx := pendingTransaction()
	tx.Status = entity.TransactionStatusSettled
	svc, billing, accounts := newBillingFixture(tx)

	req := &dto.MidtransWebhookRequest{
		OrderId:           "sub-order-1",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "150000.00",
	}
	signNotification(req, "test-server-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req, "{}"))
	assert.Nil(t, billing.updated, "already settled notifications are not re-applied")
	assert.Empty(t, accounts.appliedPlan)
}

func TestHandleNotificationExpire(t *testing.T) {
	svc, billing, accounts := newBillingFixture(pendingTransaction())

	req := &dto.MidtransWebhookRequest{
		OrderId:           "sub-order-1",
		TransactionStatus: "expire",
		StatusCode:        "407",
		GrossAmount:       "150000.00",
	}
	signNotification(req, "test-server-key")

	require.NoError(t, svc.HandleNotification(context.Background(), req, "{}"))
	require.NotNil(t, billing.updated)
	assert.Equal(t, entity.TransactionStatusExpired, billing.updated.Status)
	assert.Empty(t, accounts.appliedPlan, "only settlement upgrades the plan")
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	svc, _, _ := newBillingFixture(nil)

	req := &dto.MidtransWebhookRequest{
		OrderId:           "sub-missing",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "150000.00",
	}
	signNotification(req, "test-server-key")

	err := svc.HandleNotification(context.Background(), req, "{}")
	assert.Error(t, err)
}

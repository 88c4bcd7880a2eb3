package service

import (
	"context"
	"crypto/sha512"
	"errors"
	"fmt"
	"time"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IBillingService interface {
	Checkout(ctx context.Context, accountId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest, rawPayload string) error
}

type billingService struct {
	uowFactory unitofwork.RepositoryFactory
	snapClient snap.Client
	serverKey  string
	logger     logger.ILogger
}

func NewBillingService(uowFactory unitofwork.RepositoryFactory, serverKey, environment string, l logger.ILogger) IBillingService {
	env := midtrans.Sandbox
	if environment == "production" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &billingService{
		uowFactory: uowFactory,
		snapClient: client,
		serverKey:  serverKey,
		logger:     l,
	}
}

func (s *billingService) Checkout(ctx context.Context, accountId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	price, ok := constant.PlanPrices[req.Plan]
	if !ok {
		return nil, errors.New("unknown plan")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: accountId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("account not found")
	}

	orderId := fmt.Sprintf("sub-%s", uuid.New().String())
	transaction := &entity.BillingTransaction{
		Id:          uuid.New(),
		AccountId:   accountId,
		OrderId:     orderId,
		Plan:        req.Plan,
		GrossAmount: price,
		Status:      entity.TransactionStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := uow.BillingRepository().Create(ctx, transaction); err != nil {
		return nil, err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: price,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: account.FullName,
			Email: account.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.Plan,
				Price: price,
				Qty:   1,
				Name:  fmt.Sprintf("%s plan subscription", req.Plan),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := s.snapClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		OrderId:     orderId,
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

// HandleNotification validates the payment notification signature and, on
// settlement, switches the account onto the paid plan. ApplyPlan resets the
// usage counter so the new cycle starts empty.
func (s *billingService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest, rawPayload string) error {
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expected {
		s.logger.Warn("billing", "notification signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return errors.New("invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	transaction, err := uow.BillingRepository().FindByOrderId(ctx, req.OrderId)
	if err != nil {
		return err
	}
	if transaction == nil {
		return errors.New("transaction not found")
	}
	if transaction.Status == entity.TransactionStatusSettled {
		// Midtrans retries notifications; settlement is applied once.
		return uow.Commit()
	}

	var newStatus entity.TransactionStatus
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.TransactionStatusSettled
	case "deny", "cancel", "failure":
		newStatus = entity.TransactionStatusFailed
	case "expire":
		newStatus = entity.TransactionStatusExpired
	default:
		newStatus = entity.TransactionStatusPending
	}

	transaction.Status = newStatus
	transaction.RawPayload = rawPayload
	transaction.UpdatedAt = time.Now()
	if err := uow.BillingRepository().Update(ctx, transaction); err != nil {
		return err
	}

	if newStatus == entity.TransactionStatusSettled {
		limit := constant.PlanMessageLimits[transaction.Plan]
		if err := uow.AccountRepository().ApplyPlan(ctx, transaction.AccountId, transaction.Plan, limit); err != nil {
			return err
		}
		s.logger.Info("billing", "plan applied", map[string]interface{}{
			"account_id": transaction.AccountId,
			"plan":       transaction.Plan,
		})
	}

	return uow.Commit()
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSettled TransactionStatus = "settled"
	TransactionStatusFailed  TransactionStatus = "failed"
	TransactionStatusExpired TransactionStatus = "expired"
)

// BillingTransaction is the bookkeeping record for one midtrans order.
type BillingTransaction struct {
	Id          uuid.UUID
	AccountId   uuid.UUID
	OrderId     string
	Plan        string
	GrossAmount int64
	Status      TransactionStatus
	RawPayload  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

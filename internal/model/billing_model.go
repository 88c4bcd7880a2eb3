package model

import (
	"time"

	"github.com/google/uuid"
)

type BillingTransaction struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderId     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Plan        string    `gorm:"type:varchar(50);not null"`
	GrossAmount int64     `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	RawPayload  string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (BillingTransaction) TableName() string {
	return "billing_transactions"
}

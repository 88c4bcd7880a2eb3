package mapper

import (
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/model"
)

type BillingMapper struct{}

func NewBillingMapper() *BillingMapper {
	return &BillingMapper{}
}

func (m *BillingMapper) ToEntity(t *model.BillingTransaction) *entity.BillingTransaction {
	if t == nil {
		return nil
	}
	return &entity.BillingTransaction{
		Id:          t.Id,
		AccountId:   t.AccountId,
		OrderId:     t.OrderId,
		Plan:        t.Plan,
		GrossAmount: t.GrossAmount,
		Status:      entity.TransactionStatus(t.Status),
		RawPayload:  t.RawPayload,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *BillingMapper) ToModel(t *entity.BillingTransaction) *model.BillingTransaction {
	if t == nil {
		return nil
	}
	return &model.BillingTransaction{
		Id:          t.Id,
		AccountId:   t.AccountId,
		OrderId:     t.OrderId,
		Plan:        t.Plan,
		GrossAmount: t.GrossAmount,
		Status:      string(t.Status),
		RawPayload:  t.RawPayload,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

package mapper

import (
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/model"
)

type AccountMapper struct{}

func NewAccountMapper() *AccountMapper {
	return &AccountMapper{}
}

func (m *AccountMapper) ToEntity(a *model.Account) *entity.Account {
	if a == nil {
		return nil
	}
	return &entity.Account{
		Id:           a.Id,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FullName:     a.FullName,
		Plan:         a.Plan,
		MessageCount: a.MessageCount,
		MessageLimit: a.MessageLimit,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AccountMapper) ToModel(a *entity.Account) *model.Account {
	if a == nil {
		return nil
	}
	return &model.Account{
		Id:           a.Id,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FullName:     a.FullName,
		Plan:         a.Plan,
		MessageCount: a.MessageCount,
		MessageLimit: a.MessageLimit,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

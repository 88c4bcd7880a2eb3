package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByAccountID struct {
	AccountID uuid.UUID
}

func (s ByAccountID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("account_id = ?", s.AccountID)
}

type ByChannelAddress struct {
	ChannelAddress string
}

func (s ByChannelAddress) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("channel_address = ?", s.ChannelAddress)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = true")
}

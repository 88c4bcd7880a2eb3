package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPropertyID struct {
	PropertyID uuid.UUID
}

func (s ByPropertyID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("property_id = ?", s.PropertyID)
}

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByGuestAddress struct {
	GuestAddress string
}

func (s ByGuestAddress) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("guest_address = ?", s.GuestAddress)
}

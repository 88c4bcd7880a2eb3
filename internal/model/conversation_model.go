package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_conversation_property_guest"`
	GuestAddress  string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_conversation_property_guest"`
	GuestName     string    `gorm:"type:varchar(255)"`
	LastMessageAt time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}

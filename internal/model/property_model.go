package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	ChannelAddress string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Active         bool      `gorm:"not null;default:true"`

	CheckInTime  string `gorm:"type:varchar(50)"`
	CheckOutTime string `gorm:"type:varchar(50)"`
	AccessCode   string `gorm:"type:varchar(100)"`
	WifiName     string `gorm:"type:varchar(100)"`
	WifiPassword string `gorm:"type:varchar(100)"`
	Location     string `gorm:"type:text"`
	HouseRules   string `gorm:"type:text"`
	CustomNotes  string `gorm:"type:text"`
	FAQs         datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}

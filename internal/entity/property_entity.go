package entity

import (
	"time"

	"github.com/google/uuid"
)

// FAQEntry is one question/answer pair configured by the host.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Property is a monitored listing. The channel address is the number guests
// message; it identifies the knowledge partition and the persona.
type Property struct {
	Id             uuid.UUID
	AccountId      uuid.UUID
	Name           string
	ChannelAddress string
	Active         bool

	CheckInTime  string
	CheckOutTime string
	AccessCode   string
	WifiName     string
	WifiPassword string
	Location     string
	HouseRules   string
	CustomNotes  string
	FAQs         []FAQEntry

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

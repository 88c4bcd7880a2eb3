package dto

import (
	"time"

	"guest-concierge-be/internal/entity"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Name           string `json:"name" validate:"required"`
	ChannelAddress string `json:"channel_address" validate:"required"`

	CheckInTime  string            `json:"check_in_time"`
	CheckOutTime string            `json:"check_out_time"`
	AccessCode   string            `json:"access_code"`
	WifiName     string            `json:"wifi_name"`
	WifiPassword string            `json:"wifi_password"`
	Location     string            `json:"location"`
	HouseRules   string            `json:"house_rules"`
	CustomNotes  string            `json:"custom_notes"`
	FAQs         []entity.FAQEntry `json:"faqs" validate:"max=50"`
}

type UpdatePropertyRequest struct {
	Id             uuid.UUID `json:"-"`
	Name           string    `json:"name" validate:"required"`
	ChannelAddress string    `json:"channel_address" validate:"required"`
	Active         bool      `json:"active"`

	CheckInTime  string            `json:"check_in_time"`
	CheckOutTime string            `json:"check_out_time"`
	AccessCode   string            `json:"access_code"`
	WifiName     string            `json:"wifi_name"`
	WifiPassword string            `json:"wifi_password"`
	Location     string            `json:"location"`
	HouseRules   string            `json:"house_rules"`
	CustomNotes  string            `json:"custom_notes"`
	FAQs         []entity.FAQEntry `json:"faqs" validate:"max=50"`
}

type PropertyResponse struct {
	Id             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	ChannelAddress string            `json:"channel_address"`
	Active         bool              `json:"active"`
	CheckInTime    string            `json:"check_in_time,omitempty"`
	CheckOutTime   string            `json:"check_out_time,omitempty"`
	Location       string            `json:"location,omitempty"`
	HouseRules     string            `json:"house_rules,omitempty"`
	CustomNotes    string            `json:"custom_notes,omitempty"`
	FAQs           []entity.FAQEntry `json:"faqs,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type QRCodeResponse struct {
	ChannelAddress string `json:"channel_address"`
	MessageLink    string `json:"message_link"`
	ImageURL       string `json:"image_url"`
}

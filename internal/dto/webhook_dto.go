package dto

// InboundMessageEvent is the payload the channel provider posts to the
// webhook. Field names follow the Twilio-style form encoding; JSON tags are
// accepted for providers that post JSON.
type InboundMessageEvent struct {
	From        string `form:"From" json:"from" validate:"required"`
	To          string `form:"To" json:"to" validate:"required"`
	Body        string `form:"Body" json:"body" validate:"required"`
	ProfileName string `form:"ProfileName" json:"profile_name"`
}

package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes published by the message pipeline.
const (
	TypeMessageProcessed = "MESSAGE_PROCESSED"
	TypeQuotaExceeded    = "QUOTA_EXCEEDED"
	TypeDispatchFailed   = "DISPATCH_FAILED"
)

func NewMessageProcessed(conversationId, propertyId string) Event {
	return BaseEvent{
		Type: TypeMessageProcessed,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"property_id":     propertyId,
		},
		OccurredAt: time.Now(),
	}
}

func NewQuotaExceeded(accountId, propertyId string) Event {
	return BaseEvent{
		Type: TypeQuotaExceeded,
		Data: map[string]interface{}{
			"account_id":  accountId,
			"property_id": propertyId,
		},
		OccurredAt: time.Now(),
	}
}

func NewDispatchFailed(conversationId, guestAddress, reason string) Event {
	return BaseEvent{
		Type: TypeDispatchFailed,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"guest_address":   guestAddress,
			"reason":          reason,
		},
		OccurredAt: time.Now(),
	}
}

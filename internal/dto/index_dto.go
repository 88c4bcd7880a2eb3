package dto

import "github.com/google/uuid"

// PublishIndexJobMessage is the payload on the knowledge re-index topic.
// DocumentId is nil for property-detail re-indexing.
type PublishIndexJobMessage struct {
	PropertyId uuid.UUID  `json:"property_id"`
	DocumentId *uuid.UUID `json:"document_id,omitempty"`
}

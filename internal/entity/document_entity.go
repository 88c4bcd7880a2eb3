package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusPending DocumentStatus = "pending"
	DocumentStatusIndexed DocumentStatus = "indexed"
	DocumentStatusFailed  DocumentStatus = "failed"
)

// Document is an uploaded knowledge source for one property. Its content is
// chunked and embedded into the knowledge store.
type Document struct {
	Id         uuid.UUID
	PropertyId uuid.UUID
	Title      string
	Content    string
	Status     DocumentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

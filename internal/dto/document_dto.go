package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	PropertyId uuid.UUID `json:"property_id" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	Content    string    `json:"content" validate:"required"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	PropertyId uuid.UUID `json:"property_id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

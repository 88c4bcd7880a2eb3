package contract

import (
	"context"

	"guest-concierge-be/internal/entity"

	"github.com/google/uuid"
)

type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	DeleteByPropertyId(ctx context.Context, propertyId uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error

	// DeleteBySource removes the chunks carrying the given provenance tag
	// for one property. Used for replace-by-source re-indexing.
	DeleteBySource(ctx context.Context, propertyId uuid.UUID, source string) error

	// SearchSimilarWithScore runs a cosine similarity search scoped to one
	// property, returning at most limit chunks with similarity >= threshold,
	// ranked descending.
	SearchSimilarWithScore(ctx context.Context, propertyId uuid.UUID, embedding []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error)
}

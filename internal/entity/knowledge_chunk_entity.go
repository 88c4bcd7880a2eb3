package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChunkMetadata records where a knowledge chunk came from.
type ChunkMetadata struct {
	Source     string     `json:"source"`
	DocumentId *uuid.UUID `json:"document_id,omitempty"`
	ChunkIndex int        `json:"chunk_index"`
}

// KnowledgeChunk is a retrievable unit of text belonging to exactly one
// property.
type KnowledgeChunk struct {
	Id         uuid.UUID
	PropertyId uuid.UUID
	Content    string
	Embedding  []float32
	Metadata   ChunkMetadata
	CreatedAt  time.Time
}

// ScoredChunk pairs a chunk with its cosine similarity for one query.
// Ephemeral, never persisted.
type ScoredChunk struct {
	Chunk      *KnowledgeChunk
	Similarity float64
}

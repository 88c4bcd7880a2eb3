package mapper

import (
	"encoding/json"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

func (m *KnowledgeChunkMapper) ToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}

	var meta entity.ChunkMetadata
	if len(c.Metadata) > 0 {
		_ = json.Unmarshal(c.Metadata, &meta)
	}

	return &entity.KnowledgeChunk{
		Id:         c.Id,
		PropertyId: c.PropertyId,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		Metadata:   meta,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *KnowledgeChunkMapper) ToModel(c *entity.KnowledgeChunk) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}

	var meta datatypes.JSON
	if raw, err := json.Marshal(c.Metadata); err == nil {
		meta = raw
	}

	return &model.KnowledgeChunk{
		Id:         c.Id,
		PropertyId: c.PropertyId,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		Metadata:   meta,
		CreatedAt:  c.CreatedAt,
	}
}

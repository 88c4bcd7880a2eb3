package implementation

import (
	"context"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/mapper"
	"guest-concierge-be/internal/model"
	"guest-concierge-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeChunkRepositoryImpl) DeleteByPropertyId(ctx context.Context, propertyId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("property_id = ?", propertyId).Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("metadata->>'document_id' = ?", documentId.String()).
		Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) DeleteBySource(ctx context.Context, propertyId uuid.UUID, source string) error {
	return r.db.WithContext(ctx).
		Where("property_id = ?", propertyId).
		Where("metadata->>'source' = ?", source).
		Delete(&model.KnowledgeChunk{}).Error
}

// SearchSimilarWithScore computes cosine similarity as
// 1 - (embedding <=> query) and filters by threshold. The property_id
// predicate is mandatory; cross-property rows must never surface.
func (r *KnowledgeChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, propertyId uuid.UUID, embedding []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.KnowledgeChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("property_id = ?", propertyId).
		Where("deleted_at IS NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.KnowledgeChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

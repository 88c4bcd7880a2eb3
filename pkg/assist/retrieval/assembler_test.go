package retrieval

import (
	"context"
	"errors"
	"testing"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/contract"
	"guest-concierge-be/internal/repository/unitofwork"
	"guest-concierge-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeChunkRepo struct {
	contract.KnowledgeChunkRepository
	scored    []*entity.ScoredChunk
	searchErr error

	gotPropertyId uuid.UUID
	gotLimit      int
	gotThreshold  float64
}

func (r *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, propertyId uuid.UUID, emb []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	r.gotPropertyId = propertyId
	r.gotLimit = limit
	r.gotThreshold = threshold
	return r.scored, r.searchErr
}

type fakeUOW struct {
	unitofwork.UnitOfWork
	chunks *fakeChunkRepo
}

func (u *fakeUOW) KnowledgeChunkRepository() contract.KnowledgeChunkRepository { return u.chunks }

type fakeFactory struct {
	uow *fakeUOW
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func TestRetrieveReturnsScoredResults(t *testing.T) {
	chunks := &fakeChunkRepo{
		scored: []*entity.ScoredChunk{
			{Chunk: &entity.KnowledgeChunk{Content: "best"}, Similarity: 0.91},
			{Chunk: &entity.KnowledgeChunk{Content: "good"}, Similarity: 0.72},
		},
	}
	a := NewAssembler(&fakeFactory{uow: &fakeUOW{chunks: chunks}}, &fakeEmbedder{}, logger.NewNopLogger())

	propertyId := uuid.New()
	results := a.Retrieve(context.Background(), propertyId, "where is parking?", 3, 0.6)

	require.Len(t, results, 2)
	assert.Equal(t, "best", results[0].Content)
	assert.Equal(t, 0.91, results[0].Similarity)
	assert.Equal(t, propertyId, chunks.gotPropertyId)
	assert.Equal(t, 3, chunks.gotLimit)
	assert.Equal(t, 0.6, chunks.gotThreshold)
}

func TestRetrieveEmbeddingFailureIsEmpty(t *testing.T) {
	chunks := &fakeChunkRepo{}
	a := NewAssembler(&fakeFactory{uow: &fakeUOW{chunks: chunks}}, &fakeEmbedder{err: errors.New("quota")}, logger.NewNopLogger())

	results := a.Retrieve(context.Background(), uuid.New(), "hi", 3, 0.6)

	assert.Empty(t, results)
	assert.Equal(t, 0, chunks.gotLimit, "search should not run when embedding fails")
}

func TestRetrieveSearchFailureIsEmpty(t *testing.T) {
	chunks := &fakeChunkRepo{searchErr: errors.New("connection reset")}
	a := NewAssembler(&fakeFactory{uow: &fakeUOW{chunks: chunks}}, &fakeEmbedder{}, logger.NewNopLogger())

	results := a.Retrieve(context.Background(), uuid.New(), "hi", 3, 0.6)
	assert.Empty(t, results)
}

func TestRetrieveNoMatches(t *testing.T) {
	chunks := &fakeChunkRepo{scored: nil}
	a := NewAssembler(&fakeFactory{uow: &fakeUOW{chunks: chunks}}, &fakeEmbedder{}, logger.NewNopLogger())

	results := a.Retrieve(context.Background(), uuid.New(), "hi", 3, 0.6)
	assert.Empty(t, results)
}

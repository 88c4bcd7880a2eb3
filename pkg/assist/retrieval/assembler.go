package retrieval

import (
	"context"

	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/unitofwork"
	"guest-concierge-be/pkg/embedding"

	"github.com/google/uuid"
)

// Result is one retrieved grounding snippet, ranked by similarity.
type Result struct {
	Content    string
	Similarity float64
}

// Assembler fetches the grounding context for a property and query.
// Retrieval is best-effort: any embedding or store failure yields an empty
// result set so the pipeline can proceed ungrounded.
type Assembler struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewAssembler(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	l logger.ILogger,
) *Assembler {
	return &Assembler{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            l,
	}
}

// Retrieve returns at most k results with similarity >= minScore, descending,
// scoped strictly to propertyId.
func (a *Assembler) Retrieve(ctx context.Context, propertyId uuid.UUID, query string, k int, minScore float64) []Result {
	res, err := a.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		a.logger.Warn("retrieval", "query embedding failed, proceeding ungrounded", map[string]interface{}{
			"property_id": propertyId,
			"error":       err.Error(),
		})
		return nil
	}

	uow := a.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeChunkRepository().SearchSimilarWithScore(ctx, propertyId, res.Embedding.Values, k, minScore)
	if err != nil {
		a.logger.Warn("retrieval", "similarity search failed, proceeding ungrounded", map[string]interface{}{
			"property_id": propertyId,
			"error":       err.Error(),
		})
		return nil
	}

	results := make([]Result, 0, len(scored))
	for _, s := range scored {
		results = append(results, Result{
			Content:    s.Chunk.Content,
			Similarity: s.Similarity,
		})
	}
	return results
}

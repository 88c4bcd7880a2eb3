package embedding

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates embeddings via the OpenAI API. The dimension is
// pinned to 768 so rows stay compatible with the knowledge_chunks column.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIProvider(apiKey string) EmbeddingProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.SmallEmbedding3,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      p.model,
		Dimensions: 768,
	})
	if err != nil {
		return nil, err
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: resp.Data[0].Embedding,
		},
	}, nil
}

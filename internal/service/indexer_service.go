package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"
	"guest-concierge-be/pkg/embedding"
	"guest-concierge-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Chunk sizing for document splitting. 1500 chars keeps each chunk well
// inside the embedding model's context window.
const (
	indexChunkSize    = 1500
	indexChunkOverlap = 200
)

// IIndexerService consumes re-index jobs and maintains the knowledge chunks
// for properties and documents.
type IIndexerService interface {
	Consume(ctx context.Context) error
}

type indexerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	l logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            l,
	}
}

func (is *indexerService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		is.logger.Error("indexer", "unmarshal failed, dropping job", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	var err error
	if payload.DocumentId != nil {
		err = is.indexDocument(ctx, payload.PropertyId, *payload.DocumentId)
	} else {
		err = is.indexPropertyDetails(ctx, payload.PropertyId)
	}
	if err != nil {
		is.logger.Error("indexer", "index job failed", map[string]interface{}{
			"property_id": payload.PropertyId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

// indexPropertyDetails rebuilds the property_details chunks from the
// structured property fields. Replace-by-source: old chunks go first so a
// half-written state never mixes generations.
func (is *indexerService) indexPropertyDetails(ctx context.Context, propertyId uuid.UUID) error {
	uow := is.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByID{ID: propertyId})
	if err != nil {
		return err
	}
	if property == nil {
		// Deleted before the job ran. Nothing to index.
		return nil
	}

	content := renderPropertyDetails(property)
	chunks, err := is.buildChunks(ctx, propertyId, content, entity.ChunkMetadata{
		Source: constant.ChunkSourcePropertyDetails,
	})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeChunkRepository().DeleteBySource(ctx, propertyId, constant.ChunkSourcePropertyDetails); err != nil {
		return err
	}
	if len(chunks) > 0 {
		if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, chunks); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (is *indexerService) indexDocument(ctx context.Context, propertyId, documentId uuid.UUID) error {
	uow := is.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if document == nil {
		return nil
	}

	content := fmt.Sprintf("%s\n\n%s", document.Title, document.Content)
	chunks, err := is.buildChunks(ctx, propertyId, content, entity.ChunkMetadata{
		Source:     constant.ChunkSourceDocument,
		DocumentId: &documentId,
	})
	if err != nil {
		if statusErr := uow.DocumentRepository().UpdateStatus(ctx, documentId, entity.DocumentStatusFailed); statusErr != nil {
			is.logger.Warn("indexer", "status update failed", map[string]interface{}{
				"document_id": documentId,
				"error":       statusErr.Error(),
			})
		}
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if len(chunks) > 0 {
		if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, chunks); err != nil {
			return err
		}
	}
	if err := uow.DocumentRepository().UpdateStatus(ctx, documentId, entity.DocumentStatusIndexed); err != nil {
		return err
	}

	return uow.Commit()
}

func (is *indexerService) buildChunks(ctx context.Context, propertyId uuid.UUID, content string, metadata entity.ChunkMetadata) ([]*entity.KnowledgeChunk, error) {
	pieces := utils.SplitText(content, indexChunkSize, indexChunkOverlap)

	chunks := make([]*entity.KnowledgeChunk, 0, len(pieces))
	for i, piece := range pieces {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		res, err := is.embeddingProvider.Generate(ctx, piece, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}

		meta := metadata
		meta.ChunkIndex = i
		chunks = append(chunks, &entity.KnowledgeChunk{
			Id:         uuid.New(),
			PropertyId: propertyId,
			Content:    piece,
			Embedding:  res.Embedding.Values,
			Metadata:   meta,
			CreatedAt:  time.Now(),
		})
	}
	return chunks, nil
}

// renderPropertyDetails flattens the structured property fields into one
// indexable text. Empty fields are skipped entirely.
func renderPropertyDetails(p *entity.Property) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Property: %s\n", p.Name)
	writeDetail(&b, "Check-in time", p.CheckInTime)
	writeDetail(&b, "Check-out time", p.CheckOutTime)
	writeDetail(&b, "Location and directions", p.Location)
	writeDetail(&b, "Door access code", p.AccessCode)
	writeDetail(&b, "WiFi network", p.WifiName)
	writeDetail(&b, "WiFi password", p.WifiPassword)
	writeDetail(&b, "House rules", p.HouseRules)
	writeDetail(&b, "Additional notes", p.CustomNotes)

	for _, faq := range p.FAQs {
		if strings.TrimSpace(faq.Question) == "" {
			continue
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", faq.Question, faq.Answer)
	}

	return b.String()
}

func writeDetail(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

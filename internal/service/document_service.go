package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, accountId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, accountId uuid.UUID, documentId uuid.UUID) error
	GetAll(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) ([]*dto.DocumentResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	l logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           l,
	}
}

// Create stores the document as pending and queues it for chunking and
// embedding. The document only becomes retrievable once the indexer marks
// it indexed.
func (s *documentService) Create(ctx context.Context, accountId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: req.PropertyId},
		specification.ByAccountID{AccountID: accountId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("property not found")
	}

	document := &entity.Document{
		Id:         uuid.New(),
		PropertyId: req.PropertyId,
		Title:      req.Title,
		Content:    req.Content,
		Status:     entity.DocumentStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishIndexJobMessage{
		PropertyId: document.PropertyId,
		DocumentId: &document.Id,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("document", "index publish failed", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
	}

	return documentToResponse(document), nil
}

func (s *documentService) Delete(ctx context.Context, accountId uuid.UUID, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if document == nil {
		return errors.New("document not found")
	}

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: document.PropertyId},
		specification.ByAccountID{AccountID: accountId},
	)
	if err != nil {
		return err
	}
	if property == nil {
		return errors.New("document not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}
	if err := uow.KnowledgeChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *documentService) GetAll(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: propertyId},
		specification.ByAccountID{AccountID: accountId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("property not found")
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		response = append(response, documentToResponse(d))
	}
	return response, nil
}

func documentToResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:         d.Id,
		PropertyId: d.PropertyId,
		Title:      d.Title,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
	}
}

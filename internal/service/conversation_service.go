package service

import (
	"context"
	"errors"

	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConversationService interface {
	GetAll(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) ([]*dto.ConversationResponse, error)
	GetMessages(ctx context.Context, accountId uuid.UUID, conversationId uuid.UUID, limit int) ([]*dto.MessageResponse, error)
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
	}
}

func (s *conversationService) GetAll(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) ([]*dto.ConversationResponse, error) {
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

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
		specification.OrderBy{Field: "last_message_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		response = append(response, &dto.ConversationResponse{
			Id:            c.Id,
			PropertyId:    c.PropertyId,
			GuestAddress:  c.GuestAddress,
			GuestName:     c.GuestName,
			LastMessageAt: c.LastMessageAt,
		})
	}
	return response, nil
}

func (s *conversationService) GetMessages(ctx context.Context, accountId uuid.UUID, conversationId uuid.UUID, limit int) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, errors.New("conversation not found")
	}

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: conversation.PropertyId},
		specification.ByAccountID{AccountID: accountId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("conversation not found")
	}

	if limit <= 0 {
		limit = 50
	}

	messages, err := uow.MessageRepository().FindRecent(ctx, conversationId, limit)
	if err != nil {
		return nil, err
	}

	// FindRecent is newest first; the transcript reads oldest first.
	response := make([]*dto.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		response = append(response, &dto.MessageResponse{
			Id:        m.Id,
			Content:   m.Content,
			FromGuest: m.FromGuest,
			CreatedAt: m.CreatedAt,
		})
	}
	return response, nil
}

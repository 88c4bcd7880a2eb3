package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPropertyService interface {
	Create(ctx context.Context, accountId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error)
	Update(ctx context.Context, accountId uuid.UUID, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error)
	Delete(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) error
	GetOne(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) (*dto.PropertyResponse, error)
	GetAll(ctx context.Context, accountId uuid.UUID) ([]*dto.PropertyResponse, error)
	GetQRCode(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) (*dto.QRCodeResponse, error)
}

type propertyService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	messageService   IMessageService
	logger           logger.ILogger
}

func NewPropertyService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	messageService IMessageService,
	l logger.ILogger,
) IPropertyService {
	return &propertyService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		messageService:   messageService,
		logger:           l,
	}
}

func (s *propertyService) Create(ctx context.Context, accountId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.PropertyRepository().FindOne(ctx, specification.ByChannelAddress{ChannelAddress: req.ChannelAddress})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("channel address already assigned to a property")
	}

	property := &entity.Property{
		Id:             uuid.New(),
		AccountId:      accountId,
		Name:           req.Name,
		ChannelAddress: req.ChannelAddress,
		Active:         true,
		CheckInTime:    req.CheckInTime,
		CheckOutTime:   req.CheckOutTime,
		AccessCode:     req.AccessCode,
		WifiName:       req.WifiName,
		WifiPassword:   req.WifiPassword,
		Location:       req.Location,
		HouseRules:     req.HouseRules,
		CustomNotes:    req.CustomNotes,
		FAQs:           req.FAQs,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uow.PropertyRepository().Create(ctx, property); err != nil {
		return nil, err
	}

	s.requestReindex(ctx, property.Id, nil)
	return propertyToResponse(property), nil
}

func (s *propertyService) Update(ctx context.Context, accountId uuid.UUID, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := s.findOwned(ctx, uow, accountId, req.Id)
	if err != nil {
		return nil, err
	}

	previousAddress := property.ChannelAddress

	property.Name = req.Name
	property.ChannelAddress = req.ChannelAddress
	property.Active = req.Active
	property.CheckInTime = req.CheckInTime
	property.CheckOutTime = req.CheckOutTime
	property.AccessCode = req.AccessCode
	property.WifiName = req.WifiName
	property.WifiPassword = req.WifiPassword
	property.Location = req.Location
	property.HouseRules = req.HouseRules
	property.CustomNotes = req.CustomNotes
	property.FAQs = req.FAQs
	property.UpdatedAt = time.Now()

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, err
	}

	s.messageService.InvalidateProperty(previousAddress)
	if req.ChannelAddress != previousAddress {
		s.messageService.InvalidateProperty(req.ChannelAddress)
	}

	s.requestReindex(ctx, property.Id, nil)
	return propertyToResponse(property), nil
}

func (s *propertyService) Delete(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := s.findOwned(ctx, uow, accountId, propertyId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PropertyRepository().Delete(ctx, propertyId); err != nil {
		return err
	}
	if err := uow.KnowledgeChunkRepository().DeleteByPropertyId(ctx, propertyId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.messageService.InvalidateProperty(property.ChannelAddress)
	return nil
}

func (s *propertyService) GetOne(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := s.findOwned(ctx, uow, accountId, propertyId)
	if err != nil {
		return nil, err
	}
	return propertyToResponse(property), nil
}

func (s *propertyService) GetAll(ctx context.Context, accountId uuid.UUID) ([]*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	properties, err := uow.PropertyRepository().FindAll(ctx,
		specification.ByAccountID{AccountID: accountId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		response = append(response, propertyToResponse(p))
	}
	return response, nil
}

// GetQRCode builds a scannable link guests use to open a chat with the
// property's channel address.
func (s *propertyService) GetQRCode(ctx context.Context, accountId uuid.UUID, propertyId uuid.UUID) (*dto.QRCodeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := s.findOwned(ctx, uow, accountId, propertyId)
	if err != nil {
		return nil, err
	}

	messageLink := fmt.Sprintf("https://wa.me/%s", url.PathEscape(property.ChannelAddress))
	imageURL := fmt.Sprintf(
		"https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=%s",
		url.QueryEscape(messageLink),
	)

	return &dto.QRCodeResponse{
		ChannelAddress: property.ChannelAddress,
		MessageLink:    messageLink,
		ImageURL:       imageURL,
	}, nil
}

func (s *propertyService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, accountId, propertyId uuid.UUID) (*entity.Property, error) {
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
	return property, nil
}

func (s *propertyService) requestReindex(ctx context.Context, propertyId uuid.UUID, documentId *uuid.UUID) {
	payload, err := json.Marshal(dto.PublishIndexJobMessage{
		PropertyId: propertyId,
		DocumentId: documentId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("property", "reindex publish failed", map[string]interface{}{
			"property_id": propertyId,
			"error":       err.Error(),
		})
	}
}

func propertyToResponse(p *entity.Property) *dto.PropertyResponse {
	return &dto.PropertyResponse{
		Id:             p.Id,
		Name:           p.Name,
		ChannelAddress: p.ChannelAddress,
		Active:         p.Active,
		CheckInTime:    p.CheckInTime,
		CheckOutTime:   p.CheckOutTime,
		Location:       p.Location,
		HouseRules:     p.HouseRules,
		CustomNotes:    p.CustomNotes,
		FAQs:           p.FAQs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

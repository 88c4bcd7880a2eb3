package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/pkg/mailer"
	"guest-concierge-be/internal/repository/contract"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"
	"guest-concierge-be/pkg/assist/prompt"
	"guest-concierge-be/pkg/assist/quota"
	"guest-concierge-be/pkg/assist/retrieval"
	"guest-concierge-be/pkg/channel"
	"guest-concierge-be/pkg/events"
	"guest-concierge-be/pkg/llm"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// ErrPropertyNotFound means the destination address maps to no active
// property. The webhook drops such events after logging.
var ErrPropertyNotFound = errors.New("no active property for channel address")

const propertyCacheTTL = 5 * time.Minute

// EventPublisher decouples the pipeline from the concrete broker.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IMessageService runs the inbound guest message pipeline and host-initiated
// manual sends.
type IMessageService interface {
	ProcessInbound(ctx context.Context, event *dto.InboundMessageEvent) error
	SendManual(ctx context.Context, accountId uuid.UUID, request *dto.ManualSendRequest) (*dto.MessageResponse, error)

	// InvalidateProperty evicts one channel address from the resolution
	// cache so routing picks up host edits without waiting out the TTL.
	InvalidateProperty(channelAddress string)
}

type messageService struct {
	uowFactory    unitofwork.RepositoryFactory
	llmProvider   llm.LLMProvider
	quotaGate     *quota.Gate
	retriever     *retrieval.Assembler
	dispatcher    channel.Dispatcher
	publisher     EventPublisher
	emailService  mailer.IEmailService
	logger        logger.ILogger
	propertyCache *gocache.Cache
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	quotaGate *quota.Gate,
	retriever *retrieval.Assembler,
	dispatcher channel.Dispatcher,
	publisher EventPublisher,
	emailService mailer.IEmailService,
	l logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:    uowFactory,
		llmProvider:   llmProvider,
		quotaGate:     quotaGate,
		retriever:     retriever,
		dispatcher:    dispatcher,
		publisher:     publisher,
		emailService:  emailService,
		logger:        l,
		propertyCache: gocache.New(propertyCacheTTL, 10*time.Minute),
	}
}

// ProcessInbound runs one guest message through the full pipeline:
// resolution, admission, persistence, retrieval, generation, dispatch.
// Dispatch failure does not undo persisted state.
func (ms *messageService) ProcessInbound(ctx context.Context, event *dto.InboundMessageEvent) error {
	property, err := ms.resolveProperty(ctx, event.To)
	if err != nil {
		return err
	}

	if err := ms.quotaGate.Admit(ctx, property.AccountId); err != nil {
		if errors.Is(err, quota.ErrLimitReached) {
			return ms.handleQuotaExceeded(ctx, property, event)
		}
		return err
	}

	conversation, err := ms.lookupOrCreateConversation(ctx, property.Id, event.From, event.ProfileName)
	if err != nil {
		return err
	}

	inbound := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Content:        event.Body,
		FromGuest:      true,
		CreatedAt:      time.Now(),
	}
	if err := ms.persistMessage(ctx, inbound, property.AccountId); err != nil {
		return err
	}

	reply := ms.generateReply(ctx, property, conversation, inbound)

	outbound := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Content:        reply,
		FromGuest:      false,
		CreatedAt:      time.Now(),
	}
	if err := ms.persistMessage(ctx, outbound, property.AccountId); err != nil {
		return err
	}

	if _, err := ms.dispatcher.Send(ctx, property.ChannelAddress, event.From, reply); err != nil {
		ms.logger.Error("message", "reply dispatch failed", map[string]interface{}{
			"conversation_id": conversation.Id,
			"guest_address":   event.From,
			"error":           err.Error(),
		})
		ms.publishEvent(ctx, events.NewDispatchFailed(conversation.Id.String(), event.From, err.Error()))
		return fmt.Errorf("dispatch reply: %w", err)
	}

	ms.publishEvent(ctx, events.NewMessageProcessed(conversation.Id.String(), property.Id.String()))
	return nil
}

// SendManual lets the host inject a reply into an existing conversation.
// It consumes one quota unit but is not admission gated; hosts may always
// answer their guests.
func (ms *messageService) SendManual(ctx context.Context, accountId uuid.UUID, request *dto.ManualSendRequest) (*dto.MessageResponse, error) {
	uow := ms.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: request.ConversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found")
	}

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: conversation.PropertyId},
		specification.ByAccountID{AccountID: accountId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("conversation not found")
	}

	outbound := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Content:        request.Content,
		FromGuest:      false,
		CreatedAt:      time.Now(),
	}
	if err := ms.persistMessage(ctx, outbound, accountId); err != nil {
		return nil, err
	}

	if _, err := ms.dispatcher.Send(ctx, property.ChannelAddress, conversation.GuestAddress, request.Content); err != nil {
		ms.logger.Error("message", "manual dispatch failed", map[string]interface{}{
			"conversation_id": conversation.Id,
			"error":           err.Error(),
		})
		return nil, fmt.Errorf("dispatch reply: %w", err)
	}

	return &dto.MessageResponse{
		Id:        outbound.Id,
		Content:   outbound.Content,
		FromGuest: false,
		CreatedAt: outbound.CreatedAt,
	}, nil
}

// resolveProperty maps the destination channel address to its active
// property, consulting the in-process cache first.
func (ms *messageService) resolveProperty(ctx context.Context, channelAddress string) (*entity.Property, error) {
	if cached, found := ms.propertyCache.Get(channelAddress); found {
		return cached.(*entity.Property), nil
	}

	uow := ms.uowFactory.NewUnitOfWork(ctx)
	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByChannelAddress{ChannelAddress: channelAddress},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		ms.logger.Warn("message", "inbound for unknown channel address", map[string]interface{}{
			"channel_address": channelAddress,
		})
		return nil, ErrPropertyNotFound
	}

	ms.propertyCache.Set(channelAddress, property, gocache.DefaultExpiration)
	return property, nil
}

func (ms *messageService) InvalidateProperty(channelAddress string) {
	ms.propertyCache.Delete(channelAddress)
}

// handleQuotaExceeded sends the fixed limit notice and tells the host. It
// writes nothing and consumes nothing.
func (ms *messageService) handleQuotaExceeded(ctx context.Context, property *entity.Property, event *dto.InboundMessageEvent) error {
	if _, err := ms.dispatcher.Send(ctx, property.ChannelAddress, event.From, constant.QuotaExceededReply); err != nil {
		ms.logger.Error("message", "quota notice dispatch failed", map[string]interface{}{
			"property_id":   property.Id,
			"guest_address": event.From,
			"error":         err.Error(),
		})
	}

	ms.notifyHostQuotaExceeded(ctx, property, event.From)
	ms.publishEvent(ctx, events.NewQuotaExceeded(property.AccountId.String(), property.Id.String()))
	return nil
}

func (ms *messageService) notifyHostQuotaExceeded(ctx context.Context, property *entity.Property, guestAddress string) {
	uow := ms.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: property.AccountId})
	if err != nil || account == nil {
		return
	}
	if err := ms.emailService.SendQuotaExceededNotice(account.Email, property.Name, guestAddress); err != nil {
		ms.logger.Warn("message", "quota notice email failed", map[string]interface{}{
			"account_id": property.AccountId,
			"error":      err.Error(),
		})
	}
}

// lookupOrCreateConversation finds the (property, guest) thread or creates
// it. A concurrent insert loses the unique-index race and retries as a
// lookup, so both racers converge on one row.
func (ms *messageService) lookupOrCreateConversation(ctx context.Context, propertyId uuid.UUID, guestAddress, guestName string) (*entity.Conversation, error) {
	uow := ms.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ConversationRepository().FindOpen(ctx, propertyId, guestAddress)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conversation := &entity.Conversation{
		Id:            uuid.New(),
		PropertyId:    propertyId,
		GuestAddress:  guestAddress,
		GuestName:     guestName,
		LastMessageAt: time.Now(),
		CreatedAt:     time.Now(),
	}
	err = uow.ConversationRepository().Create(ctx, conversation)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, contract.ErrConversationExists) {
		return nil, err
	}

	existing, err = uow.ConversationRepository().FindOpen(ctx, propertyId, guestAddress)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("conversation insert lost race but lookup found nothing")
	}
	return existing, nil
}

// persistMessage stores one turn, bumps the conversation recency marker and
// consumes one quota unit. Each stored turn costs exactly one unit.
func (ms *messageService) persistMessage(ctx context.Context, message *entity.Message, accountId uuid.UUID) error {
	uow := ms.uowFactory.NewUnitOfWork(ctx)

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return err
	}
	if err := uow.ConversationRepository().TouchLastMessageAt(ctx, message.ConversationId); err != nil {
		ms.logger.Warn("message", "touch last_message_at failed", map[string]interface{}{
			"conversation_id": message.ConversationId,
			"error":           err.Error(),
		})
	}
	return ms.quotaGate.Consume(ctx, accountId, 1)
}

// generateReply loads history, retrieves grounding and asks the model.
// Any generation failure degrades to the fixed fallback text and notifies
// the host so the question is not lost.
func (ms *messageService) generateReply(ctx context.Context, property *entity.Property, conversation *entity.Conversation, inbound *entity.Message) string {
	uow := ms.uowFactory.NewUnitOfWork(ctx)
	guestMessage := inbound.Content

	// FindRecent returns newest first; prompt assembly wants chronological.
	// The turn being answered is already stored, so it is dropped here and
	// rendered once as the current guest message.
	recent, err := uow.MessageRepository().FindRecent(ctx, conversation.Id, constant.HistoryTurnLimit+1)
	if err != nil {
		ms.logger.Warn("message", "history load failed, proceeding without", map[string]interface{}{
			"conversation_id": conversation.Id,
			"error":           err.Error(),
		})
		recent = nil
	}
	history := make([]*entity.Message, 0, len(recent))
	for _, m := range recent {
		if m.Id == inbound.Id {
			continue
		}
		history = append(history, m)
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	results := ms.retriever.Retrieve(ctx, property.Id, guestMessage, constant.RetrievalTopK, constant.RetrievalMinScore)
	grounding := make([]string, 0, len(results))
	for _, r := range results {
		grounding = append(grounding, r.Content)
	}

	messages := []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(property, grounding, guestMessage)},
		{Role: "user", Content: prompt.BuildUserTurn(history, guestMessage, constant.HistoryTurnLimit)},
	}

	reply, err := ms.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(constant.CompletionTemperature),
		llm.WithMaxTokens(constant.CompletionMaxTokens),
	)
	if err != nil {
		ms.logger.Error("message", "completion failed, sending fallback", map[string]interface{}{
			"conversation_id": conversation.Id,
			"error":           err.Error(),
		})
		ms.notifyHostRelay(ctx, property, conversation.GuestAddress, guestMessage)
		return constant.GenerationFallbackReply
	}
	if reply == "" {
		ms.notifyHostRelay(ctx, property, conversation.GuestAddress, guestMessage)
		return constant.GenerationFallbackReply
	}
	return reply
}

// notifyHostRelay forwards an unanswered guest question to the host by
// email whenever the fallback reply is substituted.
func (ms *messageService) notifyHostRelay(ctx context.Context, property *entity.Property, guestAddress, question string) {
	uow := ms.uowFactory.NewUnitOfWork(ctx)
	account, err := uow.AccountRepository().FindOne(ctx, specification.ByID{ID: property.AccountId})
	if err != nil || account == nil {
		return
	}
	if err := ms.emailService.SendRelayNotice(account.Email, property.Name, guestAddress, question); err != nil {
		ms.logger.Warn("message", "relay notice email failed", map[string]interface{}{
			"account_id": property.AccountId,
			"error":      err.Error(),
		})
	}
}

func (ms *messageService) publishEvent(ctx context.Context, event events.Event) {
	if ms.publisher == nil {
		return
	}
	if err := ms.publisher.Publish(ctx, event); err != nil {
		ms.logger.Warn("message", "event publish failed", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

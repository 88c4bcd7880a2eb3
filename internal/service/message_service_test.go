package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/repository/contract"
	"guest-concierge-be/internal/repository/specification"
	"guest-concierge-be/internal/repository/unitofwork"
	"guest-concierge-be/pkg/assist/quota"
	"guest-concierge-be/pkg/assist/retrieval"
	"guest-concierge-be/pkg/channel"
	"guest-concierge-be/pkg/embedding"
	"guest-concierge-be/pkg/events"
	"guest-concierge-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes implementing the repository contracts.

type memAccounts struct {
	contract.AccountRepository
	mu       sync.Mutex
	account  *entity.Account
	consumed int
}

func (r *memAccounts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.account, nil
}

func (r *memAccounts) IncrementMessageCount(ctx context.Context, accountId uuid.UUID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consumed += n
	r.account.MessageCount += n
	return nil
}

type memProperties struct {
	contract.PropertyRepository
	property *entity.Property
}

func (r *memProperties) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Property, error) {
	return r.property, nil
}

type memConversations struct {
	contract.ConversationRepository
	mu          sync.Mutex
	byKey       map[string]*entity.Conversation
	failCreates int
	touched     int
}

func convKey(propertyId uuid.UUID, guestAddress string) string {
	return propertyId.String() + "|" + guestAddress
}

func (r *memConversations) FindOpen(ctx context.Context, propertyId uuid.UUID, guestAddress string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byKey[convKey(propertyId, guestAddress)], nil
}

func (r *memConversations) Create(ctx context.Context, c *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := convKey(c.PropertyId, c.GuestAddress)
	if _, exists := r.byKey[key]; exists {
		return contract.ErrConversationExists
	}
	if r.failCreates > 0 {
		// Simulate losing the unique-index race: another writer inserted
		// between our lookup and insert.
		r.failCreates--
		r.byKey[key] = &entity.Conversation{
			Id:           uuid.New(),
			PropertyId:   c.PropertyId,
			GuestAddress: c.GuestAddress,
		}
		return contract.ErrConversationExists
	}
	r.byKey[key] = c
	return nil
}

func (r *memConversations) TouchLastMessageAt(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched++
	return nil
}

func (r *memConversations) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byKey {
		return c, nil
	}
	return nil, nil
}

type memMessages struct {
	contract.MessageRepository
	mu     sync.Mutex
	stored []*entity.Message
}

func (r *memMessages) Create(ctx context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = append(r.stored, m)
	return nil
}

func (r *memMessages) FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for i := len(r.stored) - 1; i >= 0 && len(out) < limit; i-- {
		if r.stored[i].ConversationId == conversationId {
			out = append(out, r.stored[i])
		}
	}
	return out, nil
}

type memChunks struct {
	contract.KnowledgeChunkRepository
	scored []*entity.ScoredChunk
}

func (r *memChunks) SearchSimilarWithScore(ctx context.Context, propertyId uuid.UUID, emb []float32, limit int, threshold float64) ([]*entity.ScoredChunk, error) {
	return r.scored, nil
}

type memUOW struct {
	unitofwork.UnitOfWork
	accounts      *memAccounts
	properties    *memProperties
	conversations *memConversations
	messages      *memMessages
	chunks        *memChunks
}

func (u *memUOW) Begin(ctx context.Context) error { return nil }
func (u *memUOW) Commit() error                   { return nil }
func (u *memUOW) Rollback() error                 { return nil }

func (u *memUOW) AccountRepository() contract.AccountRepository               { return u.accounts }
func (u *memUOW) PropertyRepository() contract.PropertyRepository             { return u.properties }
func (u *memUOW) ConversationRepository() contract.ConversationRepository     { return u.conversations }
func (u *memUOW) MessageRepository() contract.MessageRepository               { return u.messages }
func (u *memUOW) KnowledgeChunkRepository() contract.KnowledgeChunkRepository { return u.chunks }

type memFactory struct {
	uow *memUOW
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// Collaborator fakes.

type stubEmbedder struct{}

func (s *stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.5}}}, nil
}

type stubLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	history []llm.Message
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = history
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

type sentMessage struct {
	From, To, Body string
}

type stubDispatcher struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (s *stubDispatcher) Send(ctx context.Context, from, to, body string) (*channel.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMessage{From: from, To: to, Body: body})
	if s.err != nil {
		return nil, s.err
	}
	return &channel.Receipt{ProviderMessageId: "SM1", AcceptedAt: time.Now()}, nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *stubPublisher) Publish(ctx context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubPublisher) eventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		out = append(out, e.EventType())
	}
	return out
}

type stubMailer struct {
	quotaNotices int
	relayNotices int
}

func (s *stubMailer) SendQuotaExceededNotice(toEmail, propertyName, guestAddress string) error {
	s.quotaNotices++
	return nil
}

func (s *stubMailer) SendRelayNotice(toEmail, propertyName, guestAddress, question string) error {
	s.relayNotices++
	return nil
}

type pipelineFixture struct {
	svc        IMessageService
	accounts   *memAccounts
	properties *memProperties
	convs      *memConversations
	messages   *memMessages
	llm        *stubLLM
	dispatcher *stubDispatcher
	publisher  *stubPublisher
	mailer     *stubMailer
	property   *entity.Property
}

func newPipelineFixture() *pipelineFixture {
	account := &entity.Account{
		Id:           uuid.New(),
		Email:        "host@example.com",
		MessageCount: 0,
		MessageLimit: 100,
	}
	property := &entity.Property{
		Id:             uuid.New(),
		AccountId:      account.Id,
		Name:           "Seaview Loft",
		ChannelAddress: "+15550100100",
		Active:         true,
		CheckInTime:    "15:00",
	}

	accounts := &memAccounts{account: account}
	properties := &memProperties{property: property}
	convs := &memConversations{byKey: map[string]*entity.Conversation{}}
	messages := &memMessages{}
	chunks := &memChunks{}

	uow := &memUOW{
		accounts:      accounts,
		properties:    properties,
		conversations: convs,
		messages:      messages,
		chunks:        chunks,
	}
	factory := &memFactory{uow: uow}

	nop := logger.NewNopLogger()
	llmStub := &stubLLM{reply: "Check-in is at 15:00."}
	dispatcher := &stubDispatcher{}
	publisher := &stubPublisher{}
	mail := &stubMailer{}

	svc := NewMessageService(
		factory,
		llmStub,
		quota.NewGate(factory, nop),
		retrieval.NewAssembler(factory, &stubEmbedder{}, nop),
		dispatcher,
		publisher,
		mail,
		nop,
	)

	return &pipelineFixture{
		svc:        svc,
		accounts:   accounts,
		properties: properties,
		convs:      convs,
		messages:   messages,
		llm:        llmStub,
		dispatcher: dispatcher,
		publisher:  publisher,
		mailer:     mail,
		property:   property,
	}
}

func inbound(property *entity.Property) *dto.InboundMessageEvent {
	return &dto.InboundMessageEvent{
		From:        "+15550199999",
		To:          property.ChannelAddress,
		Body:        "When is check-in?",
		ProfileName: "Alex",
	}
}

func TestProcessInboundHappyPath(t *testing.T) {
	f := newPipelineFixture()

	err := f.svc.ProcessInbound(context.Background(), inbound(f.property))
	require.NoError(t, err)

	require.Len(t, f.messages.stored, 2)
	assert.True(t, f.messages.stored[0].FromGuest)
	assert.Equal(t, "When is check-in?", f.messages.stored[0].Content)
	assert.False(t, f.messages.stored[1].FromGuest)
	assert.Equal(t, "Check-in is at 15:00.", f.messages.stored[1].Content)

	// One unit per stored turn.
	assert.Equal(t, 2, f.accounts.consumed)

	require.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, f.property.ChannelAddress, f.dispatcher.sent[0].From)
	assert.Equal(t, "+15550199999", f.dispatcher.sent[0].To)
	assert.Equal(t, "Check-in is at 15:00.", f.dispatcher.sent[0].Body)

	assert.Contains(t, f.publisher.eventTypes(), events.TypeMessageProcessed)
	assert.Equal(t, 2, f.convs.touched)
	assert.Equal(t, 0, f.mailer.relayNotices)
}

func TestProcessInboundCreatesConversationOnce(t *testing.T) {
	f := newPipelineFixture()

	require.NoError(t, f.svc.ProcessInbound(context.Background(), inbound(f.property)))
	require.NoError(t, f.svc.ProcessInbound(context.Background(), inbound(f.property)))

	assert.Len(t, f.convs.byKey, 1)
	assert.Len(t, f.messages.stored, 4)
}

func TestProcessInboundLostInsertRace(t *testing.T) {
	f := newPipelineFixture()
	f.convs.failCreates = 1

	err := f.svc.ProcessInbound(context.Background(), inbound(f.property))
	require.NoError(t, err)

	// The retry converged on the winner's row.
	assert.Len(t, f.convs.byKey, 1)
	require.Len(t, f.messages.stored, 2)
	winner := f.convs.byKey[convKey(f.property.Id, "+15550199999")]
	assert.Equal(t, winner.Id, f.messages.stored[0].ConversationId)
}

func TestProcessInboundLastUnit(t *testing.T) {
	f := newPipelineFixture()
	f.accounts.account.MessageCount = 99
	f.accounts.account.MessageLimit = 100

	// Admission happens once, before either turn is stored, so the final
	// count may land above the limit.
	err := f.svc.ProcessInbound(context.Background(), inbound(f.property))
	require.NoError(t, err)

	assert.Equal(t, 101, f.accounts.account.MessageCount)
	assert.Len(t, f.messages.stored, 2)
	assert.Len(t, f.dispatcher.sent, 1)
}

func TestProcessInboundQuotaExceeded(t *testing.T) {
	f := newPipelineFixture()
	f.accounts.account.MessageCount = 100
	f.accounts.account.MessageLimit = 100

	err := f.svc.ProcessInbound(context.Background(), inbound(f.property))
	require.NoError(t, err)

	assert.Empty(t, f.messages.stored, "denied messages must not be persisted")
	assert.Empty(t, f.convs.byKey, "no conversation for a denied message")
	assert.Equal(t, 0, f.accounts.consumed, "denial must not consume quota")

	require.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, constant.QuotaExceededReply, f.dispatcher.sent[0].Body)

	assert.Equal(t, 1, f.mailer.quotaNotices)
	assert.Contains(t, f.publisher.eventTypes(), events.TypeQuotaExceeded)
}

func TestProcessInboundUnknownProperty(t *testing.T) {
	f := newPipelineFixture()
	f.properties.property = nil

	err := f.svc.ProcessInbound(context.Background(), inbound(f.property))
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Empty(t, f.messages.stored)
	assert.Empty(t, f.dispatcher.sent)
}

func TestProcessInboundGenerationFailureDegrades(t *testing.T) {
	f := newPipelineFixture()
	f.llm.err = errors.New("model overloaded")

	err := f.svc.ProcessInbound(context.Background(), inbound(f.property))
	require.NoError(t, err, "generation failure must not abort the pipeline")

	require.Len(t, f.messages.stored, 2)
	assert.Equal(t, constant.GenerationFallbackReply, f.messages.stored[1].Content)
	require.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, constant.GenerationFallbackReply, f.dispatcher.sent[0].Body)
	assert.Equal(t, 2, f.accounts.consumed)

	// The unanswered question is relayed to the host.
	assert.Equal(t, 1, f.mailer.relayNotices)
}

func TestProcessInboundDispatchFailureKeepsState(t *testing.T) {
	f := newPipelineFixture()
	f.dispatcher.err = channel.ErrTransport

	err := f.svc.ProcessInbound(context.Background(), inbound(f.property))
	require.Error(t, err)

	// Persisted state stands even though delivery failed.
	assert.Len(t, f.messages.stored, 2)
	assert.Equal(t, 2, f.accounts.consumed)
	assert.Contains(t, f.publisher.eventTypes(), events.TypeDispatchFailed)
}

func TestProcessInboundHistoryIsChronological(t *testing.T) {
	f := newPipelineFixture()

	require.NoError(t, f.svc.ProcessInbound(context.Background(), inbound(f.property)))

	second := inbound(f.property)
	second.Body = "And check-out?"
	require.NoError(t, f.svc.ProcessInbound(context.Background(), second))

	require.Len(t, f.llm.history, 2)
	userTurn := f.llm.history[1].Content

	first := strings.Index(userTurn, "When is check-in?")
	reply := strings.Index(userTurn, "Check-in is at 15:00.")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, reply, 0)
	assert.Less(t, first, reply, "history must read oldest to newest")
}

func TestProcessInboundPromptRendersCurrentTurnOnce(t *testing.T) {
	f := newPipelineFixture()

	require.NoError(t, f.svc.ProcessInbound(context.Background(), inbound(f.property)))

	// The turn being answered is persisted before the prompt is built; it
	// must appear only as the current guest message, not also as history.
	require.Len(t, f.llm.history, 2)
	assert.Equal(t, 1, strings.Count(f.llm.history[1].Content, "When is check-in?"))
}

func TestRecentMessagesTieBreak(t *testing.T) {
	repo := &memMessages{}
	convId := uuid.New()
	at := time.Now()
	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(context.Background(), &entity.Message{
			Id:             uuid.New(),
			ConversationId: convId,
			Content:        content,
			CreatedAt:      at,
		}))
	}

	// Equal timestamps read back newest first by insertion order, matching
	// the store's created_at DESC, seq DESC ordering.
	recent, err := repo.FindRecent(context.Background(), convId, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "third", recent[0].Content)
	assert.Equal(t, "second", recent[1].Content)
	assert.Equal(t, "first", recent[2].Content)
}

func TestProcessInboundConcurrentSameGuest(t *testing.T) {
	f := newPipelineFixture()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.svc.ProcessInbound(context.Background(), inbound(f.property))
		}()
	}
	wg.Wait()

	assert.Len(t, f.convs.byKey, 1, "concurrent messages from one guest share one conversation")
}

func TestSendManual(t *testing.T) {
	f := newPipelineFixture()

	require.NoError(t, f.svc.ProcessInbound(context.Background(), inbound(f.property)))
	conv := f.convs.byKey[convKey(f.property.Id, "+15550199999")]
	consumedBefore := f.accounts.consumed

	res, err := f.svc.SendManual(context.Background(), f.property.AccountId, &dto.ManualSendRequest{
		ConversationId: conv.Id,
		Content:        "I left extra towels in the closet.",
	})
	require.NoError(t, err)
	assert.False(t, res.FromGuest)

	last := f.messages.stored[len(f.messages.stored)-1]
	assert.Equal(t, "I left extra towels in the closet.", last.Content)
	assert.False(t, last.FromGuest)
	assert.Equal(t, consumedBefore+1, f.accounts.consumed)

	lastSent := f.dispatcher.sent[len(f.dispatcher.sent)-1]
	assert.Equal(t, conv.GuestAddress, lastSent.To)
}

package unitofwork

import (
	"context"

	"guest-concierge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() contract.AccountRepository
	PropertyRepository() contract.PropertyRepository
	DocumentRepository() contract.DocumentRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	BillingRepository() contract.BillingRepository
}

package implementation

import (
	"context"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/mapper"
	"guest-concierge-be/internal/model"
	"guest-concierge-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

// FindRecent orders newest first; the seq tiebreak keeps equal timestamps
// in insertion order.
func (r *MessageRepositoryImpl) FindRecent(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Order("created_at DESC, seq DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*entity.Message, len(models))
	for i, m := range models {
		messages[i] = r.mapper.MessageToEntity(m)
	}
	return messages, nil
}

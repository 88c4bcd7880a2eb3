package mapper

import (
	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:            c.Id,
		PropertyId:    c.PropertyId,
		GuestAddress:  c.GuestAddress,
		GuestName:     c.GuestName,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:            c.Id,
		PropertyId:    c.PropertyId,
		GuestAddress:  c.GuestAddress,
		GuestName:     c.GuestName,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntities(conversations []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(conversations))
	for i, c := range conversations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ConversationMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Content:        msg.Content,
		FromGuest:      msg.FromGuest,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Content:        msg.Content,
		FromGuest:      msg.FromGuest,
		CreatedAt:      msg.CreatedAt,
	}
}

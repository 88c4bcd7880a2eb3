package mapper

import (
	"encoding/json"
	"time"

	"guest-concierge-be/internal/entity"
	"guest-concierge-be/internal/model"

	"gorm.io/datatypes"
)

type PropertyMapper struct{}

func NewPropertyMapper() *PropertyMapper {
	return &PropertyMapper{}
}

func (m *PropertyMapper) ToEntity(p *model.Property) *entity.Property {
	if p == nil {
		return nil
	}

	var faqs []entity.FAQEntry
	if len(p.FAQs) > 0 {
		// Malformed rows degrade to no FAQs rather than failing the read.
		_ = json.Unmarshal(p.FAQs, &faqs)
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Property{
		Id:             p.Id,
		AccountId:      p.AccountId,
		Name:           p.Name,
		ChannelAddress: p.ChannelAddress,
		Active:         p.Active,
		CheckInTime:    p.CheckInTime,
		CheckOutTime:   p.CheckOutTime,
		AccessCode:     p.AccessCode,
		WifiName:       p.WifiName,
		WifiPassword:   p.WifiPassword,
		Location:       p.Location,
		HouseRules:     p.HouseRules,
		CustomNotes:    p.CustomNotes,
		FAQs:           faqs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *PropertyMapper) ToModel(p *entity.Property) *model.Property {
	if p == nil {
		return nil
	}

	var faqs datatypes.JSON
	if len(p.FAQs) > 0 {
		if raw, err := json.Marshal(p.FAQs); err == nil {
			faqs = raw
		}
	}

	return &model.Property{
		Id:             p.Id,
		AccountId:      p.AccountId,
		Name:           p.Name,
		ChannelAddress: p.ChannelAddress,
		Active:         p.Active,
		CheckInTime:    p.CheckInTime,
		CheckOutTime:   p.CheckOutTime,
		AccessCode:     p.AccessCode,
		WifiName:       p.WifiName,
		WifiPassword:   p.WifiPassword,
		Location:       p.Location,
		HouseRules:     p.HouseRules,
		CustomNotes:    p.CustomNotes,
		FAQs:           faqs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (m *PropertyMapper) ToEntities(properties []*model.Property) []*entity.Property {
	entities := make([]*entity.Property, len(properties))
	for i, p := range properties {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

package mapper

import (
	"encoding/json"
	"time"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OfferMapper struct{}

func NewOfferMapper() *OfferMapper {
	return &OfferMapper{}
}

func (m *OfferMapper) ToEntity(e *model.Offer) *entity.Offer {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var aliases []string
	if len(e.Aliases) > 0 {
		// Malformed alias JSON degrades to no aliases rather than failing the read.
		_ = json.Unmarshal(e.Aliases, &aliases)
	}

	return &entity.Offer{
		Id:          e.Id,
		SiteId:      e.SiteId,
		Title:       e.Title,
		Brand:       e.Brand,
		Model:       e.Model,
		BrandNorm:   e.BrandNorm,
		ModelNorm:   e.ModelNorm,
		Url:         e.Url,
		Description: e.Description,
		Aliases:     aliases,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   e.DeletedAt.Valid,
	}
}

func (m *OfferMapper) ToModel(e *entity.Offer) *model.Offer {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var aliases datatypes.JSON
	if len(e.Aliases) > 0 {
		if raw, err := json.Marshal(e.Aliases); err == nil {
			aliases = raw
		}
	}

	return &model.Offer{
		Id:          e.Id,
		SiteId:      e.SiteId,
		Title:       e.Title,
		Brand:       e.Brand,
		Model:       e.Model,
		BrandNorm:   e.BrandNorm,
		ModelNorm:   e.ModelNorm,
		Url:         e.Url,
		Description: e.Description,
		Aliases:     aliases,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *OfferMapper) ToEntities(offers []*model.Offer) []*entity.Offer {
	entities := make([]*entity.Offer, len(offers))
	for i, o := range offers {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

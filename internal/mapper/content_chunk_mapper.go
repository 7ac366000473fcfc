package mapper

import (
	"encoding/json"
	"time"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentChunkMapper struct{}

func NewContentChunkMapper() *ContentChunkMapper {
	return &ContentChunkMapper{}
}

func (m *ContentChunkMapper) ToEntity(e *model.ContentChunk) *entity.ContentChunk {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.ContentChunk{
		Id:             e.Id,
		SiteId:         e.SiteId,
		MaterialId:     e.MaterialId,
		MaterialTitle:  e.MaterialTitle,
		Content:        e.Content,
		ContentType:    e.ContentType,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *ContentChunkMapper) ToModel(e *entity.ContentChunk) *model.ContentChunk {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var metadata datatypes.JSON
	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.ContentChunk{
		Id:             e.Id,
		SiteId:         e.SiteId,
		MaterialId:     e.MaterialId,
		MaterialTitle:  e.MaterialTitle,
		Content:        e.Content,
		ContentType:    e.ContentType,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *ContentChunkMapper) ToEntities(chunks []*model.ContentChunk) []*entity.ContentChunk {
	entities := make([]*entity.ContentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

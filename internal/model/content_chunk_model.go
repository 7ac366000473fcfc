package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SiteId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialTitle  string          `gorm:"type:text"`
	Content        string          `gorm:"type:text"`
	ContentType    string          `gorm:"type:text;default:general"`
	ChunkIndex     int             `gorm:"default:0"` // 0-based index for ordering
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	Metadata       datatypes.JSON
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (ContentChunk) TableName() string {
	return "content_chunks"
}

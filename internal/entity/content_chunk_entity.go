package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContentChunk is a unit of ingested site content with its embedding.
// Chunks are produced by the ingestion pipeline and are immutable here;
// this core only reads them for retrieval.
type ContentChunk struct {
	Id             uuid.UUID
	SiteId         uuid.UUID
	MaterialId     uuid.UUID
	MaterialTitle  string
	Content        string
	ContentType    string // ranking | comparison | product_page | review | service | tutorial | general
	ChunkIndex     int
	EmbeddingValue []float32
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

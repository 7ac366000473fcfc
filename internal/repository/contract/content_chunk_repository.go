package contract

import (
	"context"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredContentChunk wraps a ContentChunk with its cosine similarity score.
type ScoredContentChunk struct {
	Chunk      *entity.ContentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ContentChunkRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore returns the site's chunks ranked by cosine
	// similarity against the query embedding, filtered by threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, siteId uuid.UUID, limit int, threshold float64) ([]*ScoredContentChunk, error)
}

package implementation

import (
	"context"
	"errors"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/mapper"
	"ai-shopassist-be/internal/model"
	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ContentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentChunkMapper
}

func NewContentChunkRepository(db *gorm.DB) contract.ContentChunkRepository {
	return &ContentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentChunkMapper(),
	}
}

func (r *ContentChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContentChunkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentChunk, error) {
	var m model.ContentChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ContentChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentChunk, error) {
	var models []*model.ContentChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ContentChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ContentChunk{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore ranks chunks by pgvector cosine similarity.
// Cosine distance in pgvector is 1 - cosine_similarity, so we select
// 1 - (embedding_value <=> query_vector) and filter by threshold in SQL.
func (r *ContentChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, siteId uuid.UUID, limit int, threshold float64) ([]*contract.ScoredContentChunk, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		model.ContentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("content_chunks").
		Select("content_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("site_id = ?", siteId).
		Where("deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredContentChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredContentChunk{
			Chunk:      r.mapper.ToEntity(&res.ContentChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

package implementation

import (
	"context"
	"errors"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/mapper"
	"ai-shopassist-be/internal/model"
	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/internal/repository/specification"
	"ai-shopassist-be/pkg/textnorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OfferMapper
}

func NewOfferRepository(db *gorm.DB) contract.OfferRepository {
	return &OfferRepositoryImpl{
		db:     db,
		mapper: mapper.NewOfferMapper(),
	}
}

func (r *OfferRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// syncNorms recomputes the derived columns so they can never drift from the
// raw brand/model values on a write path.
func syncNorms(offer *entity.Offer) {
	offer.BrandNorm = textnorm.Normalize(offer.Brand)
	offer.ModelNorm = textnorm.Normalize(offer.Model)
}

func (r *OfferRepositoryImpl) Create(ctx context.Context, offer *entity.Offer) error {
	syncNorms(offer)
	m := r.mapper.ToModel(offer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*offer = *r.mapper.ToEntity(m)
	return nil
}

func (r *OfferRepositoryImpl) Update(ctx context.Context, offer *entity.Offer) error {
	syncNorms(offer)
	m := r.mapper.ToModel(offer)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*offer = *r.mapper.ToEntity(m)
	return nil
}

func (r *OfferRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Offer{}, id).Error
}

func (r *OfferRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Offer, error) {
	var m model.Offer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OfferRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Offer, error) {
	var models []*model.Offer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *OfferRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Offer{}).Count(&count).Error
	return count, err
}

func (r *OfferRepositoryImpl) FindByTokens(ctx context.Context, siteId uuid.UUID, tokens []string) ([]*entity.Offer, error) {
	if len(tokens) == 0 {
		return []*entity.Offer{}, nil
	}
	return r.FindAll(ctx,
		specification.BySiteID{SiteID: siteId},
		specification.ByNormalizedTokens{Tokens: tokens},
	)
}

package contract

import (
	"context"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	Update(ctx context.Context, offer *entity.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Offer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Offer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByTokens returns the offers of a site whose normalized brand, model
	// or alias forms intersect the given tokens. This is the catalog-lookup
	// contract behind offer resolution; tokens must already be normalized.
	FindByTokens(ctx context.Context, siteId uuid.UUID, tokens []string) ([]*entity.Offer, error)
}

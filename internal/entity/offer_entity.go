package entity

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a catalog entry (product or service) owned by a site.
// BrandNorm/ModelNorm are derived by pkg/textnorm and recomputed whenever
// Brand/Model change; resolution only ever reads the normalized columns.
type Offer struct {
	Id          uuid.UUID
	SiteId      uuid.UUID
	Title       string
	Brand       string
	Model       string
	BrandNorm   string
	ModelNorm   string
	Url         string
	Description string
	Aliases     []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Offer struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SiteId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:text;not null"`
	Brand       string    `gorm:"type:text"`
	Model       string    `gorm:"type:text"`
	BrandNorm   string    `gorm:"type:text;index"`
	ModelNorm   string    `gorm:"type:text;index"`
	Url         string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	Aliases     datatypes.JSON
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Offer) TableName() string {
	return "offers"
}

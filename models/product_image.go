package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductImage belongs to exactly one product and is removed with it.
// The image flagged primary is the product's representative thumbnail;
// DisplayOrder drives the gallery sequence, primary conventionally first.
type ProductImage struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProductID    uint           `gorm:"not null;index" json:"product_id"`
	ImageURL     string         `gorm:"not null" json:"image_url"`
	AltText      *string        `json:"alt_text,omitempty"`
	DisplayOrder int            `gorm:"default:0" json:"display_order"`
	IsPrimary    bool           `gorm:"default:false" json:"is_primary"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

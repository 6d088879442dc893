package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"not null;index" json:"name"`
	Slug          string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description   *string          `gorm:"type:text" json:"description,omitempty"`
	Price         decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"original_price,omitempty"`
	CategoryID    *uint            `gorm:"index" json:"category_id,omitempty"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsFeatured    bool             `gorm:"default:false;index" json:"is_featured"`
	Stock         int              `gorm:"default:0" json:"stock"`
	Brand         *string          `gorm:"index" json:"brand,omitempty"`
	Rating        float64          `gorm:"default:0" json:"rating"`
	ReviewCount   int              `gorm:"default:0" json:"review_count"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	Images        []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

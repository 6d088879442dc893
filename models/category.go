package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Icon         *string        `json:"icon,omitempty"` // Icon name or identifier
	ImageURL     *string        `json:"image_url,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Color        *string        `json:"color,omitempty"`
	IsPopular    bool           `gorm:"default:false" json:"is_popular"`
	DisplayOrder int            `gorm:"default:0;index" json:"display_order"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Products     []Product      `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

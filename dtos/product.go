package dtos

import (
	"sort"
	"time"

	"delyloco-backend/catalog"
	"delyloco-backend/models"

	"github.com/shopspring/decimal"
)

// ProductResponse is the serialized shape of a product on every public
// surface. Discount fields always come from the catalog pricing helpers so
// cards, detail pages and the cart cannot diverge.
type ProductResponse struct {
	ID                 uint                  `json:"id"`
	Name               string                `json:"name"`
	Slug               string                `json:"slug"`
	Description        *string               `json:"description,omitempty"`
	Price              decimal.Decimal       `json:"price"`
	OriginalPrice      *decimal.Decimal      `json:"original_price,omitempty"`
	HasDiscount        bool                  `json:"has_discount"`
	DiscountPercentage int                   `json:"discount_percentage"`
	CategoryID         *uint                 `json:"category_id,omitempty"`
	Category           *models.Category      `json:"category,omitempty"`
	IsFeatured         bool                  `json:"is_featured"`
	Stock              int                   `json:"stock"`
	InStock            bool                  `json:"in_stock"`
	Brand              *string               `json:"brand,omitempty"`
	Rating             float64               `json:"rating"`
	ReviewCount        int                   `json:"review_count"`
	PrimaryImageURL    *string               `json:"primary_image_url,omitempty"`
	Images             []models.ProductImage `json:"images"`
	CreatedAt          time.Time             `json:"created_at"`
}

// NewProductResponse builds the response view of a product. Images are
// ordered primary-first then by display order; the input product is not
// modified.
func NewProductResponse(p models.Product) ProductResponse {
	images := make([]models.ProductImage, len(p.Images))
	copy(images, p.Images)
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].IsPrimary != images[j].IsPrimary {
			return images[i].IsPrimary
		}
		return images[i].DisplayOrder < images[j].DisplayOrder
	})

	var primaryURL *string
	if len(images) > 0 {
		primaryURL = &images[0].ImageURL
	}

	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		Description:        p.Description,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		HasDiscount:        catalog.HasDiscount(p.Price, p.OriginalPrice),
		DiscountPercentage: catalog.DiscountPercentage(p.Price, p.OriginalPrice),
		CategoryID:         p.CategoryID,
		Category:           p.Category,
		IsFeatured:         p.IsFeatured,
		Stock:              p.Stock,
		InStock:            p.Stock > 0,
		Brand:              p.Brand,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		PrimaryImageURL:    primaryURL,
		Images:             images,
		CreatedAt:          p.CreatedAt,
	}
}

// ProductListResponse is the catalog query envelope.
type ProductListResponse struct {
	Items          []ProductResponse `json:"items"`
	TotalCount     int               `json:"totalCount"`
	CategoryCounts map[string]int    `json:"categoryCounts"`
	Uncategorized  int               `json:"uncategorized"`
	Page           int               `json:"page"`
	PageSize       int               `json:"pageSize"`
}

type ProductImageRequest struct {
	ImageURL     string  `json:"image_url" binding:"required"`
	AltText      *string `json:"alt_text"`
	DisplayOrder int     `json:"display_order"`
	IsPrimary    bool    `json:"is_primary"`
}

type CreateProductRequest struct {
	Name          string                `json:"name" binding:"required"`
	Slug          string                `json:"slug"`
	Description   *string               `json:"description"`
	Price         decimal.Decimal       `json:"price"`
	OriginalPrice *decimal.Decimal      `json:"original_price"`
	CategoryID    *uint                 `json:"category_id"`
	IsFeatured    bool                  `json:"is_featured"`
	Stock         int                   `json:"stock"`
	Brand         *string               `json:"brand"`
	Rating        float64               `json:"rating" binding:"gte=0,lte=5"`
	ReviewCount   int                   `json:"review_count" binding:"gte=0"`
	Images        []ProductImageRequest `json:"images"`
}

// UpdateProductRequest carries only the fields the caller wants to change.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Slug          *string          `json:"slug"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	CategoryID    *uint            `json:"category_id"`
	IsFeatured    *bool            `json:"is_featured"`
	Stock         *int             `json:"stock"`
	Brand         *string          `json:"brand"`
	Rating        *float64         `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ReviewCount   *int             `json:"review_count" binding:"omitempty,gte=0"`
}

type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Slug         string  `json:"slug"`
	Icon         *string `json:"icon"`
	ImageURL     *string `json:"image_url"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	IsPopular    bool    `json:"is_popular"`
	DisplayOrder int     `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Icon         *string `json:"icon"`
	ImageURL     *string `json:"image_url"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	IsPopular    *bool   `json:"is_popular"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"delyloco-backend/catalog"
	"delyloco-backend/dtos"
	"delyloco-backend/models"
	"delyloco-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

// parseCriteria translates the query string into typed catalog criteria.
// Structurally invalid values (non-numeric bounds, bad booleans) are
// collected into a single InvalidCriteriaError.
func parseCriteria(c *gin.Context) (catalog.Criteria, error) {
	crit := catalog.Criteria{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		Sort:         catalog.SortKey(c.Query("sort")),
		Brand:        c.Query("brand"),
		Page:         catalog.DefaultPage,
		PageSize:     catalog.DefaultPageSize,
	}

	fields := map[string]string{}

	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fields["featured"] = "must be a boolean"
		}
		crit.FeaturedOnly = b
	}
	if v := c.Query("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fields["available"] = "must be a boolean"
		}
		crit.AvailableOnly = b
	}
	if v := c.Query("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			fields["minPrice"] = "must be numeric"
		} else {
			crit.MinPrice = &d
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			fields["maxPrice"] = "must be numeric"
		} else {
			crit.MaxPrice = &d
		}
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["page"] = "must be an integer"
		} else {
			crit.Page = n
		}
	}
	if v := c.Query("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["pageSize"] = "must be an integer"
		} else {
			crit.PageSize = n
		}
	}

	if len(fields) > 0 {
		return catalog.Criteria{}, &catalog.InvalidCriteriaError{Fields: fields}
	}
	return crit, nil
}

// GetProducts runs the catalog query engine over the current product
// snapshot and returns one result page plus aggregate counts.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	crit, err := parseCriteria(c)
	if err != nil {
		respondInvalidCriteria(c, err)
		return
	}

	var products []models.Product
	if err := h.DB.Preload("Category").Preload("Images").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var categories []models.Category
	if err := h.DB.Where("is_active = ?", true).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	result, err := catalog.Query(products, categories, crit)
	if err != nil {
		respondInvalidCriteria(c, err)
		return
	}

	items := make([]dtos.ProductResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, dtos.NewProductResponse(p))
	}

	c.JSON(http.StatusOK, dtos.ProductListResponse{
		Items:          items,
		TotalCount:     result.TotalCount,
		CategoryCounts: result.CategoryCounts,
		Uncategorized:  result.UncategorizedCount,
		Page:           result.Page,
		PageSize:       result.PageSize,
	})
}

func respondInvalidCriteria(c *gin.Context, err error) {
	var invalid *catalog.InvalidCriteriaError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid criteria", "fields": invalid.Fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// GetProduct fetches a single product by slug. A missing slug is a 404,
// distinct from an empty catalog listing.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	var product models.Product

	if err := h.DB.Preload("Category").Preload("Images").Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, dtos.NewProductResponse(product))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dtos.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must not be negative"})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if !utils.IsValidSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	var existing models.Product
	if err := h.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already in use"})
		return
	}

	if req.CategoryID != nil {
		if err := h.DB.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
	}

	product := models.Product{
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CategoryID:    req.CategoryID,
		IsFeatured:    req.IsFeatured,
		Stock:         req.Stock,
		Brand:         req.Brand,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		Images:        buildImages(req.Images),
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	h.DB.Preload("Category").Preload("Images").First(&product, product.ID)
	c.JSON(http.StatusCreated, dtos.NewProductResponse(product))
}

// buildImages converts image payloads, keeping at most one primary flag. If
// no image is flagged, the first one becomes primary.
func buildImages(reqs []dtos.ProductImageRequest) []models.ProductImage {
	if len(reqs) == 0 {
		return nil
	}

	images := make([]models.ProductImage, 0, len(reqs))
	primarySeen := false
	for _, r := range reqs {
		img := models.ProductImage{
			ImageURL:     r.ImageURL,
			AltText:      r.AltText,
			DisplayOrder: r.DisplayOrder,
			IsPrimary:    r.IsPrimary && !primarySeen,
		}
		if img.IsPrimary {
			primarySeen = true
		}
		images = append(images, img)
	}
	if !primarySeen {
		images[0].IsPrimary = true
	}
	return images
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req dtos.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		if !utils.IsValidSlug(*req.Slug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
			return
		}
		var count int64
		h.DB.Model(&models.Product{}).Where("slug = ? AND id <> ?", *req.Slug, product.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already in use"})
			return
		}
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = req.OriginalPrice
	}
	if req.CategoryID != nil {
		if err := h.DB.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		product.CategoryID = req.CategoryID
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must not be negative"})
			return
		}
		product.Stock = *req.Stock
	}
	if req.Brand != nil {
		product.Brand = req.Brand
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.ReviewCount != nil {
		product.ReviewCount = *req.ReviewCount
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.DB.Preload("Category").Preload("Images").First(&product, product.ID)
	c.JSON(http.StatusOK, dtos.NewProductResponse(product))
}

// DeleteProduct removes a product and all of its images; image lifetime is
// bounded by the product's.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.DB.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product images"})
		return
	}
	if err := h.DB.Delete(&models.Product{}, "id = ?", product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// AddProductImage attaches an image to an existing product.
func (h *ProductHandler) AddProductImage(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req dtos.ProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	image := models.ProductImage{
		ProductID:    product.ID,
		ImageURL:     req.ImageURL,
		AltText:      req.AltText,
		DisplayOrder: req.DisplayOrder,
		IsPrimary:    req.IsPrimary || len(product.Images) == 0,
	}

	if image.IsPrimary {
		// Demote any other primary so at most one remains
		h.DB.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).
			Update("is_primary", false)
	}

	if err := h.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

// SetPrimaryImage promotes one image and demotes its siblings.
func (h *ProductHandler) SetPrimaryImage(c *gin.Context) {
	id := c.Param("id")
	imageID := c.Param("imageId")

	var image models.ProductImage
	if err := h.DB.Where("id = ? AND product_id = ?", imageID, id).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product image not found"})
		return
	}

	if err := h.DB.Model(&models.ProductImage{}).
		Where("product_id = ?", image.ProductID).
		Update("is_primary", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product images"})
		return
	}
	if err := h.DB.Model(&models.ProductImage{}).
		Where("id = ?", image.ID).
		Update("is_primary", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated"})
}

func (h *ProductHandler) DeleteProductImage(c *gin.Context) {
	id := c.Param("id")
	imageID := c.Param("imageId")

	var image models.ProductImage
	if err := h.DB.Where("id = ? AND product_id = ?", imageID, id).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product image not found"})
		return
	}

	if err := h.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product image deleted successfully"})
}

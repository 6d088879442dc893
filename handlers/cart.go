package handlers

import (
	"net/http"
	"strconv"

	"delyloco-backend/catalog"
	"delyloco-backend/dtos"
	"delyloco-backend/models"
	"delyloco-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionHeader carries the opaque cart session token.
const SessionHeader = "X-Session-Token"

type CartHandler struct {
	DB    *gorm.DB
	Carts *utils.CartStore
}

// CreateSession mints a new empty cart session and returns its token.
func (h *CartHandler) CreateSession(c *gin.Context) {
	cart := h.Carts.Create()
	c.JSON(http.StatusCreated, cart)
}

// sessionID extracts and parses the session token header. Responds with the
// appropriate error and returns false when the token is missing or invalid.
func (h *CartHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	token := c.GetHeader(SessionHeader)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session token"})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	cart, exists := h.Carts.Get(id)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var product models.Product
	if err := h.DB.Preload("Images").Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if product.Stock < req.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
		return
	}

	cart, exists := h.Carts.Update(id, func(cart *dtos.Cart) {
		for i := range cart.Items {
			if cart.Items[i].ProductID == product.ID {
				cart.Items[i].Quantity += req.Quantity
				if cart.Items[i].Quantity > product.Stock {
					cart.Items[i].Quantity = product.Stock
				}
				return
			}
		}
		cart.Items = append(cart.Items, newCartLine(product, req.Quantity))
	})
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if product.Stock < req.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
		return
	}

	found := false
	cart, exists := h.Carts.Update(id, func(cart *dtos.Cart) {
		for i := range cart.Items {
			if cart.Items[i].ProductID == uint(productID) {
				cart.Items[i].Quantity = req.Quantity
				found = true
				return
			}
		}
	})
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	cart, exists := h.Carts.Update(id, func(cart *dtos.Cart) {
		items := cart.Items[:0]
		for _, line := range cart.Items {
			if line.ProductID != uint(productID) {
				items = append(items, line)
			}
		}
		cart.Items = items
	})
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	cart, exists := h.Carts.Update(id, func(cart *dtos.Cart) {
		cart.Items = []dtos.CartLine{}
	})
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// newCartLine snapshots the product data checkout needs into a cart line.
func newCartLine(product models.Product, quantity int) dtos.CartLine {
	var imageURL *string
	for i := range product.Images {
		if product.Images[i].IsPrimary {
			imageURL = &product.Images[i].ImageURL
			break
		}
	}
	if imageURL == nil && len(product.Images) > 0 {
		imageURL = &product.Images[0].ImageURL
	}

	return dtos.CartLine{
		ProductID:          product.ID,
		Name:               product.Name,
		Slug:               product.Slug,
		UnitPrice:          product.Price,
		OriginalPrice:      product.OriginalPrice,
		HasDiscount:        catalog.HasDiscount(product.Price, product.OriginalPrice),
		DiscountPercentage: catalog.DiscountPercentage(product.Price, product.OriginalPrice),
		Quantity:           quantity,
		ImageURL:           imageURL,
	}
}

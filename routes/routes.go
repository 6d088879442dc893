package routes

import (
	"time"

	"delyloco-backend/handlers"
	"delyloco-backend/middleware"
	"delyloco-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *utils.CartStore) {
	// Initialize handlers
	productHandler := &handlers.ProductHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db, Carts: carts}

	limiter := middleware.NewRateLimiter(120, time.Minute)

	// Public storefront routes
	api := r.Group("/api")
	api.Use(limiter.Middleware())
	{
		// Catalog
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:slug", productHandler.GetProduct)
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:slug", categoryHandler.GetCategory)

		// Session cart
		api.POST("/cart/session", cartHandler.CreateSession)
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/items", cartHandler.AddToCart)
		api.PUT("/cart/items/:productId", cartHandler.UpdateCartItem)
		api.DELETE("/cart/items/:productId", cartHandler.RemoveFromCart)
		api.DELETE("/cart", cartHandler.ClearCart)
	}

	// Admin routes (deployed behind the private admin ingress)
	admin := r.Group("/api/admin")
	{
		// Product management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		// Product image management
		admin.POST("/products/:id/images", productHandler.AddProductImage)
		admin.PUT("/products/:id/images/:imageId/primary", productHandler.SetPrimaryImage)
		admin.DELETE("/products/:id/images/:imageId", productHandler.DeleteProductImage)

		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

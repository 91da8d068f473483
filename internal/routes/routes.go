package routes

import (
	"linkdao-marketplace-api/internal/auth"
	"linkdao-marketplace-api/internal/handlers"
	"linkdao-marketplace-api/internal/middleware"
	"linkdao-marketplace-api/internal/pricing"
	"linkdao-marketplace-api/internal/profiles"

	"github.com/gin-gonic/gin"
)

// Deps carries the explicitly constructed services the handlers need.
// They are created once at startup and injected here; none of them are
// package-level globals.
type Deps struct {
	Profiles *profiles.Service
	Pricing  *pricing.Service
	Nonces   *auth.NonceStore
}

func SetupRoutes(deps Deps) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "LinkDAO Marketplace API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		// Wallet login challenge + session
		api.POST("/auth/nonce", handlers.Nonce(deps.Nonces))
		api.POST("/auth/login", handlers.Login(deps.Nonces))

		// Public marketplace surfaces
		api.GET("/profiles/:address", handlers.GetProfile(deps.Profiles))
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id", handlers.GetProductByID(deps.Pricing))
		api.GET("/feed", handlers.GetFeed)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Profile
		protectedRoutes.PUT("/profile", handlers.UpdateProfile(deps.Profiles))
		// Listings
		protectedRoutes.POST("/products", handlers.CreateProduct)
		protectedRoutes.PUT("/products/:id", handlers.UpdateProduct)
		protectedRoutes.PUT("/products/:id/tiers", handlers.SetPriceTiers(deps.Pricing))
		protectedRoutes.DELETE("/products/:id", handlers.DeleteProduct)
		// Cart & orders
		protectedRoutes.GET("/cart", handlers.GetCart)
		protectedRoutes.POST("/cart/items", handlers.AddCartItem)
		protectedRoutes.DELETE("/cart/items/:id", handlers.RemoveCartItem)
		protectedRoutes.POST("/checkout", handlers.Checkout(deps.Pricing))
		protectedRoutes.GET("/orders", handlers.GetOrders)
		// Feed
		protectedRoutes.POST("/posts", handlers.CreatePost)
		// Messaging
		protectedRoutes.GET("/conversations/:address/messages", handlers.GetConversation)
		protectedRoutes.POST("/messages", handlers.SendMessage)
		// Users endpoint
		protectedRoutes.GET("/users", handlers.GetAllUsers)
		// Realtime events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}

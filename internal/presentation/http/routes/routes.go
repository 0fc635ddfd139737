package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbianou/chopchap-api/internal/config"
	domainRepo "github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/internal/presentation/http/handler"
	"github.com/mbianou/chopchap-api/internal/presentation/http/middleware"
	"github.com/mbianou/chopchap-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Catalog  *handler.CatalogHandler
	Loyalty  *handler.LoyaltyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/delivery-areas", h.Catalog.ListDeliveryAreas)
			catalog.GET("/add-ons", h.Catalog.ListAddOnGroups)
		}

		// Checkout accepts both authenticated users and guests. Duplicate
		// submissions by authenticated users are absorbed by the
		// idempotency middleware.
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.OptionalAuthMiddleware(deps.JWTManager))
		checkout.Use(rateLimiter.Middleware())
		checkout.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		{
			checkout.POST("", h.Checkout.Checkout)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())
		{
			protected.GET("/profile", h.Auth.GetProfile)
			protected.PUT("/profile/push-token", h.Auth.UpdatePushToken)

			protected.GET("/orders", h.Order.ListOrders)
			protected.GET("/orders/:id", h.Order.GetOrder)

			protected.GET("/loyalty/balance", h.Loyalty.GetBalance)
			protected.GET("/loyalty/transactions", h.Loyalty.ListTransactions)
		}
	}

	return router
}

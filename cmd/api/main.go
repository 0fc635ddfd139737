package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbianou/chopchap-api/internal/application/service"
	"github.com/mbianou/chopchap-api/internal/config"
	"github.com/mbianou/chopchap-api/internal/domain/loyalty"
	"github.com/mbianou/chopchap-api/internal/infrastructure/database"
	"github.com/mbianou/chopchap-api/internal/infrastructure/gateway"
	"github.com/mbianou/chopchap-api/internal/infrastructure/push"
	"github.com/mbianou/chopchap-api/internal/infrastructure/repository"
	"github.com/mbianou/chopchap-api/internal/presentation/http/handler"
	"github.com/mbianou/chopchap-api/internal/presentation/http/routes"
	"github.com/mbianou/chopchap-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed delivery areas and the add-on catalog
	if err := database.SeedReferenceData(db); err != nil {
		log.Printf("Warning: Failed to seed reference data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Payment gateway client and the connectivity probe guarding it
	gatewayClient := gateway.NewClient(gateway.Config{
		BaseURL:    cfg.Gateway.BaseURL,
		SuccessURL: cfg.Gateway.SuccessURL,
		FailureURL: cfg.Gateway.FailureURL,
		Timeout:    time.Duration(cfg.Gateway.TimeoutSec) * time.Second,
	})
	probe := gateway.NewProbe(cfg.Gateway.BaseURL, 5*time.Second)

	loyaltyParams := loyalty.Params{
		CreditPerPoint: cfg.Loyalty.CreditPerPoint,
		Threshold:      cfg.Loyalty.Threshold,
		FirstOrderRate: cfg.Loyalty.FirstOrderRate,
		NormalRate:     cfg.Loyalty.NormalRate,
	}

	// Initialize services
	paymentOrchestrator := service.NewPaymentOrchestrator(gatewayClient, probe)
	checkoutService := service.NewCheckoutService(
		orderRepo, loyaltyRepo, catalogRepo, notificationRepo,
		paymentOrchestrator, probe, loyaltyParams,
	)
	defer checkoutService.Wait()
	authService := service.NewAuthService(userRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo)

	// Background notifier draining queued push notifications
	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()
	if cfg.Push.Endpoint != "" {
		notifier := service.NewNotifierService(
			notificationRepo,
			userRepo,
			push.NewClient(push.Config{Endpoint: cfg.Push.Endpoint}),
			cfg.Push.DrainInterval,
			cfg.Push.DrainBatch,
		)
		go notifier.Run(notifierCtx)
	} else {
		log.Println("PUSH_ENDPOINT not set, notifier worker disabled")
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Loyalty:  handler.NewLoyaltyHandler(loyaltyService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

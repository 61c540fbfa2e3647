package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrfandu1/Inventory-Stocks/internal/application/service"
	"github.com/mrfandu1/Inventory-Stocks/internal/config"
	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/cache"
	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/database"
	"github.com/mrfandu1/Inventory-Stocks/internal/infrastructure/repository"
	"github.com/mrfandu1/Inventory-Stocks/internal/presentation/http/handler"
	"github.com/mrfandu1/Inventory-Stocks/internal/presentation/http/routes"
	"github.com/mrfandu1/Inventory-Stocks/pkg/oauth"
	"github.com/mrfandu1/Inventory-Stocks/pkg/utils"
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

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize report cache. Falls back to a no-op cache when Redis is
	// not configured or unreachable so reports are simply rebuilt per request.
	var reportCache cache.ReportCache = cache.NoopReportCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Printf("Warning: Redis unavailable, report caching disabled: %v", err)
		} else {
			reportCache = redisCache
		}
		cancel()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize Google token verifier
	googleVerifier := oauth.NewGoogleVerifier(cfg.OAuth.GoogleClientID)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleVerifier)
	inventoryService := service.NewInventoryService(inventoryRepo)
	saleService := service.NewSaleService(saleRepo, inventoryRepo)
	reportService := service.NewReportService(saleRepo, inventoryRepo, reportCache, cfg.Redis.ReportTTL)
	dashboardService := service.NewDashboardService(inventoryRepo, saleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Sale:      handler.NewSaleHandler(saleService),
		Report:    handler.NewReportHandler(reportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

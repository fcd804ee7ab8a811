package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bazaar/internal/config"
	"bazaar/internal/handlers"
	"bazaar/internal/logging"
	"bazaar/internal/metrics"
	"bazaar/internal/middleware"
	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"
	"bazaar/internal/worker"
	"bazaar/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.Review{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		logger.Fatal("auto-migration failed", zap.Error(err))
	}

	// The broker is optional: without it the API still serves requests,
	// events are skipped and aggregates stay stale until it returns.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Warn("RabbitMQ unavailable, continuing without events", zap.Error(err))
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// Repositories.
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	paymentRepo := repositories.NewGORMPaymentRepository(db)

	// Services. The concrete publisher may be nil; services handle that.
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	storeService := services.NewStoreService(storeRepo)
	productService := services.NewProductService(productRepo, storeRepo, publisher)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, nil)

	// Handlers.
	authHandler := handlers.NewAuthHandler(authService)
	storeHandler := handlers.NewStoreHandler(storeService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	app := fiber.New()
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")
	authMW := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(apiV1, authMW)
	storeHandler.RegisterRoutes(apiV1, authMW)
	productHandler.RegisterRoutes(apiV1, authMW)
	cartHandler.RegisterRoutes(apiV1, authMW)
	orderHandler.RegisterRoutes(apiV1, authMW)
	paymentHandler.RegisterRoutes(apiV1, authMW)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Background worker for rating and sales aggregates.
	if mqClient != nil {
		w := worker.New(mqClient, productService)
		if err := w.Start(); err != nil {
			logger.Error("failed to start event worker", zap.Error(err))
		}
	}

	// Prometheus scrape endpoint on its own port.
	go func() {
		if err := metrics.Serve(cfg.MetricsPort); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// openDatabase dials the configured database. TranslateError makes GORM
// surface driver duplicate-key violations as gorm.ErrDuplicatedKey, which
// the repositories rely on for conflict detection.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	if cfg.DBDriver == "postgres" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	}
	return gorm.Open(sqlite.Open(cfg.DatabaseURL), gormCfg)
}

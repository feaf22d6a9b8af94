package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tradehub/b2b-marketplace/internal/catalog"
	catalogdomain "github.com/tradehub/b2b-marketplace/internal/catalog/domain"
	"github.com/tradehub/b2b-marketplace/internal/inventory"
	inventorydomain "github.com/tradehub/b2b-marketplace/internal/inventory/domain"
	"github.com/tradehub/b2b-marketplace/internal/order"
	orderhttp "github.com/tradehub/b2b-marketplace/internal/order/delivery/http"
	orderdomain "github.com/tradehub/b2b-marketplace/internal/order/domain"
	"github.com/tradehub/b2b-marketplace/internal/order/usecase/command"
	"github.com/tradehub/b2b-marketplace/internal/partner"
	partnerdomain "github.com/tradehub/b2b-marketplace/internal/partner/domain"
	"github.com/tradehub/b2b-marketplace/kafka"
	"github.com/tradehub/b2b-marketplace/pkg/database"
	"github.com/tradehub/b2b-marketplace/pkg/logger"
	"github.com/tradehub/b2b-marketplace/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "marketplace-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting marketplace service")

	// Tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Database
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "marketplacedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(
		&partnerdomain.Retailer{},
		&partnerdomain.Supplier{},
		&catalogdomain.Product{},
		&catalogdomain.ProductVariant{},
		&catalogdomain.PriceTier{},
		&inventorydomain.Inventory{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	transactor := database.NewGormTransactor(db)

	// Kafka publisher; the service runs without events when no brokers
	// are configured
	var events command.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("brokers", brokers).Msg("Failed to connect to Kafka")
		}
		defer publisher.Close()
		events = publisher
		logger.Logger.Info().Str("brokers", brokers).Msg("Kafka publisher initialized")
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, events disabled")
	}

	// Redis for rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	})
	defer redisClient.Close()

	// Wire-initialized handlers
	orderHandler, err := order.InitializeHTTPHandler(db, transactor, events)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}
	inventoryHandler, err := inventory.InitializeHTTPHandler(db, transactor)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	catalogHandler, err := catalog.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}
	partnerHandler, err := partner.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize partner handler")
	}

	// Router
	router := mux.NewRouter()
	middlewareConfig := orderhttp.DefaultMiddlewareConfig()
	orderhttp.RegisterMiddlewares(router, middlewareConfig)

	rateLimiter := orderhttp.NewRateLimiter(redisClient, getEnvInt("RATE_LIMIT_MAX", 100), time.Minute)
	router.Use(rateLimiter.Middleware())

	orderHandler.RegisterRoutes(router)
	inventoryHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	partnerHandler.RegisterRoutes(router)
	orderHandler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	corsHandler := orderhttp.SetupCORS(middlewareConfig)

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: corsHandler(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}

	logger.Logger.Info().Msg("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

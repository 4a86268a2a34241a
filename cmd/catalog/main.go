package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	httpDelivery "github.com/tair/product-catalog/internal/catalog/delivery/http"
	"github.com/tair/product-catalog/internal/catalog/repository"
	"github.com/tair/product-catalog/internal/currency"
	"github.com/tair/product-catalog/kafka"
	"github.com/tair/product-catalog/pkg/database"
	"github.com/tair/product-catalog/pkg/logger"
	"github.com/tair/product-catalog/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "catalog-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting catalog service")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "catalogdb"),
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

	gormRepo := repository.NewGormProductRepository(db)
	if err := gormRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	repo := repository.NewProductRepositoryWithTracing(gormRepo)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := getEnv("KAFKA_PRODUCTS_TOPIC", "products")
	publisher, err := kafka.NewPublisher(brokers, topic)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
	}
	defer publisher.Close()

	rateClient := currency.NewHnbClient(getEnv(
		"HNB_CURRENCY_USD_URL",
		"https://api.hnb.hr/tecajn-eur/v3?valuta=USD",
	))
	rateCache := currency.NewCache(rateClient)
	converter := currency.NewConverter(rateCache)

	refreshInterval, err := time.ParseDuration(getEnv("CURRENCY_REFRESH_INTERVAL", "1h"))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Invalid CURRENCY_REFRESH_INTERVAL")
	}
	refresher := currency.NewRefresher(rateCache, currency.RefresherConfig{
		Interval: refreshInterval,
		Enabled:  getEnv("CURRENCY_REFRESH_ENABLED", "false") == "true",
	})
	refresher.Start()
	defer refresher.Stop()

	handler := httpDelivery.NewProductHandler(repo, publisher, converter, prometheus.DefaultRegisterer)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	go func() {
		logger.Logger.Info().Str("port", port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

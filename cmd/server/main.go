// Command server runs the property booking API.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/property-booking/internal/cache"
	"github.com/iliyamo/property-booking/internal/config"
	"github.com/iliyamo/property-booking/internal/database"
	"github.com/iliyamo/property-booking/internal/handler"
	"github.com/iliyamo/property-booking/internal/payment"
	"github.com/iliyamo/property-booking/internal/queue"
	"github.com/iliyamo/property-booking/internal/repository"
	"github.com/iliyamo/property-booking/internal/router"
	"github.com/iliyamo/property-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	store := repository.NewMySQLStore(db)

	// Redis is optional: without it the subtree cache and rate limiter
	// degrade to pass-through behaviour.
	rdb := config.NewRedisClient()
	var kv cache.KV
	if rdb != nil {
		kv = cache.NewRedisKV(rdb)
	}

	providers := payment.DefaultRegistry(logger)
	events := queue.NewPublisher()

	bookings := service.NewBookingService(store, logger)
	payments := service.NewPaymentService(store, providers, events, logger)
	recommend := service.NewRecommendService(store, kv, config.LoadSubtreeCacheConfig(), logger)

	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			logger.Warn("payment consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Reservations: handler.NewReservationHandler(bookings),
		Payments:     handler.NewPaymentHandler(payments, logger),
		Catalog:      handler.NewCatalogHandler(recommend),
		JWTSecret:    cfg.JWTSecret,
		Redis:        rdb,
		RateLimit:    config.LoadRateLimitConfig(),
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

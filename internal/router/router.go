// Package router binds handlers to routes.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/property-booking/internal/config"
	"github.com/iliyamo/property-booking/internal/handler"
	"github.com/iliyamo/property-booking/internal/middleware"
)

// Deps carries everything the route table needs.
type Deps struct {
	Reservations *handler.ReservationHandler
	Payments     *handler.PaymentHandler
	Catalog      *handler.CatalogHandler

	JWTSecret string
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
}

// Register wires all routes onto the Echo instance.  Discovery and
// provider webhooks are public; booking and payment initiation sit
// behind JWT auth.  The rate limiter covers the whole v1 surface.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1", middleware.RateLimit(d.Redis, d.RateLimit))

	v1.GET("/categories/:id/recommended", d.Catalog.Recommended)
	v1.POST("/payments/webhook/:provider", d.Payments.Webhook)

	auth := v1.Group("", middleware.JWTAuth(d.JWTSecret))
	auth.POST("/properties/:id/reserve", d.Reservations.Reserve)
	auth.POST("/bookings/:id/payments", d.Payments.Initiate)
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/property-booking/internal/config"
)

// RateLimit returns a fixed window limiter keyed by client IP.  Each
// request increments a Redis counter for the current window; the first
// increment sets the window's expiry.  When the counter exceeds the
// configured limit the request is rejected with 429.  If Redis is nil
// or unreachable the limiter fails open so the API stays usable.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Enabled || rdb == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := fmt.Sprintf("%s:%s", cfg.Prefix, c.RealIP())

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if count > int64(cfg.Limit) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}

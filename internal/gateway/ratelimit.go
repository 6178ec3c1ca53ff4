package gateway

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api/metrics"
	"github.com/ordersuite/order-system/internal/core/domain"
)

// RateLimit is a fixed-window per-IP limiter backed by Redis. Window state
// lives in a counter key that expires with the window. Redis failures fail
// open: the gateway keeps serving rather than refusing all traffic.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%d", c.RealIP(), time.Now().Unix()/int64(window.Seconds()))

			pipe := rdb.Pipeline()
			count := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			if count.Val() > int64(limit) {
				metrics.RateLimitedTotal.Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/storelab/storefront/common/config"
	"github.com/storelab/storefront/common/ratelimit"
)

// clientID identifies the caller for per-client limiting. Prefers the
// X-Client-ID header, falling back to the remote address.
func clientID(c echo.Context) string {
	if id := c.Request().Header.Get("X-Client-ID"); id != "" {
		return id
	}
	return c.RealIP()
}

// GlobalRateLimit checks the service-wide rate limit.
// Protects the entire service from being overwhelmed.
func GlobalRateLimit(rateLimiter *ratelimit.RateLimiter, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result, err := rateLimiter.CheckGlobalLimit(c.Request().Context(), cfg.GlobalLimit, cfg.WindowSeconds)
			if err != nil {
				// On error, allow request (fail open for availability)
				return next(c)
			}

			if !result.Allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":   "global_rate_limit_exceeded",
					"message": "Service is experiencing high load. Please try again later.",
					"details": map[string]interface{}{
						"limit":               result.Limit,
						"window_seconds":      cfg.WindowSeconds,
						"retry_after_seconds": result.RetryAfterSeconds,
					},
				})
			}

			return next(c)
		}
	}
}

// ClientRateLimit checks per-client rate limits
func ClientRateLimit(rateLimiter *ratelimit.RateLimiter, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := clientID(c)

			result, err := rateLimiter.CheckClientLimit(c.Request().Context(), client, cfg.ClientLimit, cfg.WindowSeconds)
			if err != nil {
				// On error, allow request (fail open for availability)
				return next(c)
			}

			if !result.Allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":   "client_rate_limit_exceeded",
					"message": "You have exceeded your request quota. Please wait before trying again.",
					"details": map[string]interface{}{
						"client":              client,
						"limit":               result.Limit,
						"window_seconds":      cfg.WindowSeconds,
						"current_count":       result.CurrentCount,
						"retry_after_seconds": result.RetryAfterSeconds,
					},
				})
			}

			return next(c)
		}
	}
}

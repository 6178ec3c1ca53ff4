// Package middleware holds the single auth/RBAC middleware shared by the
// gateway and both backend services. Each deployment parameterizes it with
// its own public-route skipper; the verification logic never forks.
package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/api/metrics"
	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
)

// AuthConfig parameterizes the shared auth middleware.
type AuthConfig struct {
	Codec *auth.Codec
	// Skipper exempts public routes from verification. Nil means no route
	// is public.
	Skipper func(c echo.Context) bool
}

// Auth verifies the bearer credential on every request and injects the
// claims into the echo context.
func Auth(codec *auth.Codec) echo.MiddlewareFunc {
	return AuthWithConfig(AuthConfig{Codec: codec})
}

// AuthWithConfig verifies the bearer credential according to cfg. A missing
// or unparseable authorization header yields UNAUTHORIZED; a credential that
// fails verification yields INVALID_TOKEN with the failure reason.
func AuthWithConfig(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthorized
			}

			claims, err := cfg.Codec.Verify(token)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return domain.ErrInvalidToken.WithMessage(err.Error())
			}

			c.Set(handler.ClaimsKey, claims)
			c.Set("userId", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed"
	}
}

// Package gateway implements the edge service: it verifies credentials
// once, stamps trusted identity headers onto the request, and proxies to
// the backend services. It performs no business logic.
//
// Downstream services re-verify the raw credential themselves; the identity
// headers are informational and are never an authentication source.
package gateway

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api"
	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/api/middleware"
	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/infrastructure/config"
)

// Identity headers stamped on forwarded requests.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserRoles = "X-User-Roles"
	HeaderUserEmail = "X-User-Email"
)

// New assembles the gateway router. rdb may be nil, which disables rate
// limiting and the redis readiness check.
func New(cfg *config.GatewayConfig, codec *auth.Codec, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	usersURL, err := url.Parse(cfg.UsersServiceURL)
	if err != nil {
		return nil, fmt.Errorf("users service url: %w", err)
	}
	ordersURL, err := url.Parse(cfg.OrdersServiceURL)
	if err != nil {
		return nil, fmt.Errorf("orders service url: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gateway"))
	e.GET("/metrics", echoprometheus.NewHandler())

	health := handler.NewHealthHandler()
	ready := handler.NewReadinessHandler(nil, rdb)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", ready.Readiness)

	if rdb != nil {
		e.Use(RateLimit(rdb, cfg.RateLimit, cfg.RateWindow, log))
	}

	e.Use(stripIdentityHeaders)
	e.Use(middleware.AuthWithConfig(middleware.AuthConfig{
		Codec:   codec,
		Skipper: publicRoute,
	}))
	e.Use(stampIdentityHeaders)

	// /v1/users/* -> users service, prefix stripped.
	e.Group("/v1/users").Use(newProxy("users", usersURL, map[string]string{
		"/v1/users":   "/",
		"/v1/users/*": "/$1",
	}, log))

	// /v1/orders/* and /v1/admin/* -> orders service, /v1 stripped.
	ordersRewrite := map[string]string{"/v1/*": "/$1"}
	e.Group("/v1/orders").Use(newProxy("orders", ordersURL, ordersRewrite, log))
	e.Group("/v1/admin").Use(newProxy("orders", ordersURL, ordersRewrite, log))

	return e, nil
}

// publicRoute reports whether the path bypasses credential verification:
// registration, login, health probes, metrics.
func publicRoute(c echo.Context) bool {
	p := strings.TrimSuffix(c.Request().URL.Path, "/")
	switch p {
	case "/v1/users/register", "/v1/users/login", "/health", "/metrics":
		return true
	}
	return strings.HasSuffix(p, "/health") || strings.HasPrefix(p, "/health/")
}

// stripIdentityHeaders drops any client-supplied identity headers before
// verification so they cannot be spoofed through the gateway.
func stripIdentityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header
		h.Del(HeaderUserID)
		h.Del(HeaderUserRoles)
		h.Del(HeaderUserEmail)
		return next(c)
	}
}

// stampIdentityHeaders copies the verified claims onto the outbound request.
func stampIdentityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, ok := c.Get(handler.ClaimsKey).(*auth.Claims); ok && claims != nil {
			h := c.Request().Header
			h.Set(HeaderUserID, claims.UserID)
			h.Set(HeaderUserRoles, claims.Role)
			h.Set(HeaderUserEmail, claims.Email)
		}
		return next(c)
	}
}

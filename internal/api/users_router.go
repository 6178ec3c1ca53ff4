// Package api assembles the Echo instances for the two backend services.
// The gateway has its own assembly in internal/gateway.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/api/middleware"
	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/core/ports"
)

// NewUsersRouter builds the identity service router. Routes are mounted at
// the root; the gateway rewrites /v1/users/* onto them.
func NewUsersRouter(svc ports.UserService, codec *auth.Codec, ready *handler.ReadinessHandler, log zerolog.Logger) *echo.Echo {
	e := newEcho("users", log)

	h := handler.NewUserHandler(svc)
	health := handler.NewHealthHandler()
	authMW := middleware.Auth(codec)

	// Public routes: registration, login, health.
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", ready.Readiness)

	e.GET("/profile", h.GetProfile, authMW)
	e.PUT("/profile", h.UpdateProfile, authMW)

	e.GET("/users", h.List, authMW, middleware.RequireRoles(domain.RoleAdmin))
	e.GET("/users/:userId", h.GetByID, authMW, middleware.SelfOrAdmin("userId"))
	e.DELETE("/users/:userId", h.Delete, authMW, middleware.SelfOrAdmin("userId"))

	return e
}

// newEcho applies the middleware stack common to both backend services.
func newEcho(subsystem string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware(subsystem))
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

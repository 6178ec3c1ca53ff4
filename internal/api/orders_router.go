package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/api/middleware"
	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/core/ports"
)

// NewOrdersRouter builds the order service router. Routes are mounted at
// the root; the gateway rewrites /v1/* onto them.
func NewOrdersRouter(svc ports.OrderService, codec *auth.Codec, ready *handler.ReadinessHandler, log zerolog.Logger) *echo.Echo {
	e := newEcho("orders", log)

	h := handler.NewOrderHandler(svc)
	health := handler.NewHealthHandler()
	authMW := middleware.Auth(codec)

	e.GET("/health", health.Liveness)
	e.GET("/health/ready", ready.Readiness)

	e.POST("/orders", h.Create, authMW)
	e.GET("/orders", h.ListOwn, authMW)
	e.GET("/orders/:orderId", h.Get, authMW)
	e.PUT("/orders/:orderId/status", h.UpdateStatus, authMW)
	e.DELETE("/orders/:orderId", h.Delete, authMW)

	e.GET("/admin/orders", h.ListAll, authMW, middleware.RequireRoles(domain.RoleAdmin))

	return e
}

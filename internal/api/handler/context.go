package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
)

// ClaimsKey is the context key under which the auth middleware stores the
// verified claims.
const ClaimsKey = "claims"

// ctxClaims extracts the verified claims injected by the auth middleware.
// Absence proves the middleware did not run on this route; treat as an
// unauthenticated request rather than a server fault.
func ctxClaims(c echo.Context) (*auth.Claims, error) {
	claims, _ := c.Get(ClaimsKey).(*auth.Claims)
	if claims == nil || claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

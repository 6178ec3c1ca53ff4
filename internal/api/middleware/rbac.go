package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
)

// RequireRoles rejects requests whose verified role is not in the allowed set.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(handler.ClaimsKey).(*auth.Claims)
			if claims == nil {
				return domain.ErrUnauthorized
			}
			role, ok := claims.UserRole()
			if !ok {
				return domain.ErrForbidden
			}
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// SelfOrAdmin permits the request when the path parameter names the caller's
// own id, or the caller is an admin.
func SelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(handler.ClaimsKey).(*auth.Claims)
			if claims == nil {
				return domain.ErrUnauthorized
			}
			if claims.Role == string(domain.RoleAdmin) || c.Param(param) == claims.UserID {
				return next(c)
			}
			return domain.ErrForbidden
		}
	}
}

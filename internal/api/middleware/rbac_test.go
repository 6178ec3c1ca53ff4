package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
)

func contextWithClaims(e *echo.Echo, claims *auth.Claims) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if claims != nil {
		c.Set(handler.ClaimsKey, claims)
	}
	return c
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()
	mw := RequireRoles(domain.RoleAdmin)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	if err := mw(ok)(contextWithClaims(e, &auth.Claims{UserID: "u1", Role: "admin"})); err != nil {
		t.Errorf("admin rejected: %v", err)
	}
	if err := mw(ok)(contextWithClaims(e, &auth.Claims{UserID: "u1", Role: "user"})); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("user: expected ErrForbidden, got %v", err)
	}
	if err := mw(ok)(contextWithClaims(e, &auth.Claims{UserID: "u1", Role: "nonsense"})); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unknown role: expected ErrForbidden, got %v", err)
	}
	if err := mw(ok)(contextWithClaims(e, nil)); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("no claims: expected ErrUnauthorized, got %v", err)
	}
}

func TestRequireRoles_MultipleRoles(t *testing.T) {
	e := echo.New()
	mw := RequireRoles(domain.RoleAdmin, domain.RoleEngineer)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	if err := mw(ok)(contextWithClaims(e, &auth.Claims{UserID: "u1", Role: "engineer"})); err != nil {
		t.Errorf("engineer rejected: %v", err)
	}
	if err := mw(ok)(contextWithClaims(e, &auth.Claims{UserID: "u1", Role: "user"})); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("user: expected ErrForbidden, got %v", err)
	}
}

func TestSelfOrAdmin(t *testing.T) {
	e := echo.New()
	mw := SelfOrAdmin("userId")
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(claims *auth.Claims, param string) error {
		c := contextWithClaims(e, claims)
		c.SetParamNames("userId")
		c.SetParamValues(param)
		return mw(ok)(c)
	}

	if err := run(&auth.Claims{UserID: "u1", Role: "user"}, "u1"); err != nil {
		t.Errorf("self access rejected: %v", err)
	}
	if err := run(&auth.Claims{UserID: "u1", Role: "user"}, "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign access: expected ErrForbidden, got %v", err)
	}
	if err := run(&auth.Claims{UserID: "u1", Role: "admin"}, "u2"); err != nil {
		t.Errorf("admin access rejected: %v", err)
	}
	if err := run(nil, "u1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("no claims: expected ErrUnauthorized, got %v", err)
	}
}

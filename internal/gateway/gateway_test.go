package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/infrastructure/config"
)

type capturedRequest struct {
	Path    string
	UserID  string
	Roles   string
	Email   string
	HasAuth bool
}

// newBackend records what the gateway actually forwards.
func newBackend(t *testing.T) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.UserID = r.Header.Get(HeaderUserID)
		captured.Roles = r.Header.Get(HeaderUserRoles)
		captured.Email = r.Header.Get(HeaderUserEmail)
		captured.HasAuth = r.Header.Get("Authorization") != ""
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestGateway(t *testing.T, usersURL, ordersURL string) (*echo.Echo, *auth.Codec) {
	t.Helper()
	codec, err := auth.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	cfg := &config.GatewayConfig{
		UsersServiceURL:  usersURL,
		OrdersServiceURL: ordersURL,
	}
	e, err := New(cfg, codec, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	return e, codec
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, codec *auth.Codec) string {
	t.Helper()
	token, err := codec.Issue(&domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return "Bearer " + token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if body.Error == nil {
		t.Fatalf("no error in body: %s", rec.Body.String())
	}
	return body.Error.Code
}

func TestGateway_PublicRoutesBypassAuth(t *testing.T) {
	users, captured := newBackend(t)
	gw, _ := newTestGateway(t, users.URL, users.URL)

	rec := do(gw, httptest.NewRequest(http.MethodPost, "/v1/users/register", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	if captured.Path != "/register" {
		t.Errorf("forwarded path = %q, want /register", captured.Path)
	}

	rec = do(gw, httptest.NewRequest(http.MethodPost, "/v1/users/login", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	if captured.Path != "/login" {
		t.Errorf("forwarded path = %q, want /login", captured.Path)
	}
}

func TestGateway_Health(t *testing.T) {
	users, _ := newBackend(t)
	gw, _ := newTestGateway(t, users.URL, users.URL)

	rec := do(gw, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}

func TestGateway_RejectsMissingCredential(t *testing.T) {
	users, captured := newBackend(t)
	gw, _ := newTestGateway(t, users.URL, users.URL)

	rec := do(gw, httptest.NewRequest(http.MethodGet, "/v1/orders", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := decodeError(t, rec); code != "UNAUTHORIZED" {
		t.Errorf("error code = %q", code)
	}
	if captured.Path != "" {
		t.Fatal("unauthenticated request reached the backend")
	}
}

func TestGateway_RejectsBadCredential(t *testing.T) {
	users, _ := newBackend(t)
	gw, _ := newTestGateway(t, users.URL, users.URL)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := do(gw, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := decodeError(t, rec); code != "INVALID_TOKEN" {
		t.Errorf("error code = %q", code)
	}
}

func TestGateway_StampsIdentityHeaders(t *testing.T) {
	orders, captured := newBackend(t)
	gw, codec := newTestGateway(t, orders.URL, orders.URL)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	req.Header.Set("Authorization", bearer(t, codec))
	rec := do(gw, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if captured.Path != "/orders" {
		t.Errorf("forwarded path = %q, want /orders", captured.Path)
	}
	if captured.UserID != "user-1" || captured.Roles != "user" || captured.Email != "alice@example.com" {
		t.Errorf("identity headers = %+v", captured)
	}
	// The raw credential travels too; services re-verify it themselves.
	if !captured.HasAuth {
		t.Error("authorization header not forwarded")
	}
}

func TestGateway_StripsSpoofedIdentityHeaders(t *testing.T) {
	orders, captured := newBackend(t)
	gw, codec := newTestGateway(t, orders.URL, orders.URL)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	req.Header.Set("Authorization", bearer(t, codec))
	req.Header.Set(HeaderUserID, "admin-999")
	req.Header.Set(HeaderUserRoles, "admin")
	rec := do(gw, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if captured.UserID != "user-1" || captured.Roles != "user" {
		t.Fatalf("spoofed headers survived: %+v", captured)
	}
}

func TestGateway_AdminRoutesReachOrdersService(t *testing.T) {
	orders, captured := newBackend(t)
	gw, codec := newTestGateway(t, orders.URL, orders.URL)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/orders", nil)
	req.Header.Set("Authorization", bearer(t, codec))
	rec := do(gw, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if captured.Path != "/admin/orders" {
		t.Errorf("forwarded path = %q, want /admin/orders", captured.Path)
	}
}

func TestGateway_DeadUpstreamYields503(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	deadURL := dead.URL
	dead.Close() // nothing listens here anymore

	gw, codec := newTestGateway(t, deadURL, deadURL)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	req.Header.Set("Authorization", bearer(t, codec))
	rec := do(gw, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (body %s)", rec.Code, rec.Body.String())
	}
	if code := decodeError(t, rec); code != "SERVICE_UNAVAILABLE" {
		t.Errorf("error code = %q", code)
	}
}

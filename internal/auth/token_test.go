package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ordersuite/order-system/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  domain.RoleUser,
	}
}

func TestNewCodec_EmptySecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	token, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token is not a three-part JWT: %q", token)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("userId = %q, want user-1", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", claims.Email)
	}
	if claims.Role != "user" {
		t.Errorf("role = %q, want user", claims.Role)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("missing exp/iat claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("ttl = %v, want 1h", got)
	}

	role, ok := claims.UserRole()
	if !ok || role != domain.RoleUser {
		t.Errorf("UserRole() = %v, %v", role, ok)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := &Codec{secret: []byte("secret"), ttl: -time.Hour}

	token, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer, _ := NewCodec("secret-a", time.Hour)
	verifier, _ := NewCodec("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestCodec_TamperedPayload(t *testing.T) {
	codec, _ := NewCodec("secret", time.Hour)

	token, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	parts[1] = "eyJyb2xlIjoiYWRtaW4ifQ" // forged payload, signature now stale
	if _, err := codec.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatal("tampered token verified")
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec, _ := NewCodec("secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Verify(%q) = %v, want ErrTokenMalformed", raw, err)
		}
	}
}

func TestCodec_RejectsUnsignedAlg(t *testing.T) {
	codec, _ := NewCodec("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": "user-1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := codec.Verify(raw); err == nil {
		t.Fatal("alg=none token verified")
	}
}

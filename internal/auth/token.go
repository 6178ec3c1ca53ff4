// Package auth owns the credential contract shared by all three services:
// the signed token codec and the role/action authorization engine. Every
// service verifies tokens itself; nothing trusts another hop's verification.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ordersuite/order-system/internal/core/domain"
)

const DefaultTokenTTL = 24 * time.Hour

var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	// ErrEmptySecret is returned by NewCodec when no signing secret is
	// configured. There is deliberately no fallback secret.
	ErrEmptySecret = errors.New("jwt secret must not be empty")
)

// Claims is the decoded payload of a credential. It never carries password
// material.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserRole resolves the claim's role against the closed role set.
func (c *Claims) UserRole() (domain.Role, bool) {
	return domain.ParseRole(c.Role)
}

// Codec issues and verifies HS256-signed credentials.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. The secret is mandatory; ttl defaults to 24h
// when non-positive.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a credential for the user, valid for the codec's ttl.
func (c *Codec) Issue(u *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a credential, returning its claims.
// Failure modes are deterministic: ErrTokenExpired past expiry,
// ErrTokenSignatureInvalid on a signature mismatch, ErrTokenMalformed
// for anything that does not parse as a token at all.
func (c *Codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenSignatureInvalid
	case err != nil:
		return nil, ErrTokenMalformed
	case !parsed.Valid:
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

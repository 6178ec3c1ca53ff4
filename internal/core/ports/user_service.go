package ports

import (
	"context"

	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/query"
)

// RegisterInput carries a registration request. Role must be one of the
// self-registerable roles.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// UpdateProfileInput carries a profile update; empty fields are unchanged.
type UpdateProfileInput struct {
	Name  string
	Email string
}

// AuthResult pairs a sanitized user with a freshly issued credential.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// UserService defines the identity service use cases.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error)
	List(ctx context.Context, p query.Params) (*query.Result[*domain.User], error)
	// Delete removes the target account on behalf of claims. Self-deletion
	// requires the admin role, and the last admin account is protected.
	Delete(ctx context.Context, targetID string, claims *auth.Claims) error
	// EnsureAdmin provisions the bootstrap admin account if absent.
	EnsureAdmin(ctx context.Context, email, password, name string) error
}

package ports

import (
	"context"

	"github.com/ordersuite/order-system/internal/core/domain"
)

// UserRepository defines persistence operations for users. Implementations
// must serialize mutations per record and enforce case-insensitive email
// uniqueness on Create and Mutate.
type UserRepository interface {
	// Create stores a new user; ErrUserExists when the email is taken.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively; ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Mutate applies fn to the record identified by id under mutual
	// exclusion and persists the result. An error from fn aborts the write.
	Mutate(ctx context.Context, id string, fn func(*domain.User) error) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// List returns every user; filtering and pagination happen in the
	// query pipeline, not the store.
	List(ctx context.Context) ([]*domain.User, error)
}

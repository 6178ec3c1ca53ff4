package ports

import (
	"context"

	"github.com/ordersuite/order-system/internal/core/domain"
)

// OrderRepository defines persistence operations for orders. Concurrent
// mutations on the same order must serialize; different orders may proceed
// independently.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// Mutate applies fn to the order identified by id under per-key mutual
	// exclusion and persists the result. An error from fn aborts the write.
	Mutate(ctx context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error)
	// Delete removes the order after guard approves it, atomically with
	// respect to concurrent mutations of the same order.
	Delete(ctx context.Context, id string, guard func(*domain.Order) error) error
	List(ctx context.Context) ([]*domain.Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error)
}

package ports

import (
	"context"

	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/query"
)

// CreateOrderInput carries a new order request. TotalAmount must equal the
// item sum within domain.TotalTolerance.
type CreateOrderInput struct {
	Items       []domain.OrderItem
	TotalAmount float64
}

// OrderService defines the order service use cases. Every operation takes
// the verified claims of the caller; authorization is decided inside, never
// assumed from transport.
type OrderService interface {
	Create(ctx context.Context, claims *auth.Claims, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, claims *auth.Claims, id string) (*domain.Order, error)
	ListOwn(ctx context.Context, claims *auth.Claims, p query.Params) (*query.Result[*domain.Order], error)
	ListAll(ctx context.Context, claims *auth.Claims, p query.Params) (*query.Result[*domain.Order], error)
	UpdateStatus(ctx context.Context, claims *auth.Claims, id string, next domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, claims *auth.Claims, id string) error
}

// EventPublisher emits domain events for observability. Publishing never
// feeds back into business decisions.
type EventPublisher interface {
	Publish(ev domain.OrderEvent)
}

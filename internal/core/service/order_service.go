package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/auth"
	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/core/ports"
	"github.com/ordersuite/order-system/internal/query"
)

// OrderService implements order creation, retrieval, the lifecycle state
// machine and deletion, all gated by the authorization engine.
type OrderService struct {
	repo      ports.OrderRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, publisher ports.EventPublisher, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, log: log}
}

// orderListSchema drives the shared query pipeline for order listings.
var orderListSchema = query.Schema[*domain.Order]{
	Filters: map[string]query.Matcher[*domain.Order]{
		"status": func(o *domain.Order, v string) bool {
			return string(o.Status) == v
		},
		"userId": func(o *domain.Order, v string) bool {
			return o.OwnerID == v
		},
	},
	Sort: map[string]query.Less[*domain.Order]{
		"createdAt":   func(a, b *domain.Order) bool { return a.CreatedAt.Before(b.CreatedAt) },
		"updatedAt":   func(a, b *domain.Order) bool { return a.UpdatedAt.Before(b.UpdatedAt) },
		"totalAmount": func(a, b *domain.Order) bool { return a.TotalAmount < b.TotalAmount },
		"status":      func(a, b *domain.Order) bool { return a.Status < b.Status },
	},
	DefaultSort: "createdAt",
}

func (s *OrderService) Create(ctx context.Context, claims *auth.Claims, in ports.CreateOrderInput) (*domain.Order, error) {
	if claims == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := domain.ValidateItems(in.Items, in.TotalAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          uuid.NewString(),
		OwnerID:     claims.UserID,
		Items:       in.Items,
		Status:      domain.StatusCreated,
		TotalAmount: in.TotalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.publish(domain.OrderEvent{
		Type:        domain.EventOrderCreated,
		OrderID:     created.ID,
		OwnerID:     created.OwnerID,
		NewStatus:   created.Status,
		TotalAmount: created.TotalAmount,
		OccurredAt:  now,
	})

	s.log.Info().Str("order_id", created.ID).Str("user_id", claims.UserID).
		Float64("total_amount", created.TotalAmount).Msg("order created")
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, claims *auth.Claims, id string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	action := auth.ActionListOwn
	if claims == nil || claims.UserID != order.OwnerID {
		action = auth.ActionListAll
	}
	if err := auth.Authorize(claims, action, order.OwnerID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOwn(ctx context.Context, claims *auth.Claims, p query.Params) (*query.Result[*domain.Order], error) {
	if claims == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := auth.Authorize(claims, auth.ActionListOwn, claims.UserID); err != nil {
		return nil, err
	}
	orders, err := s.repo.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	delete(p.Filters, "userId") // owner scope is fixed, not caller-selectable
	res := query.Run(orders, p, orderListSchema)
	return &res, nil
}

func (s *OrderService) ListAll(ctx context.Context, claims *auth.Claims, p query.Params) (*query.Result[*domain.Order], error) {
	if err := auth.Authorize(claims, auth.ActionListAll, ""); err != nil {
		return nil, err
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	res := query.Run(orders, p, orderListSchema)
	return &res, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, claims *auth.Claims, id string, next domain.OrderStatus) (*domain.Order, error) {
	if claims == nil {
		return nil, domain.ErrUnauthorized
	}
	role, ok := claims.UserRole()
	if !ok {
		return nil, domain.ErrForbidden
	}

	var oldStatus domain.OrderStatus
	updated, err := s.repo.Mutate(ctx, id, func(o *domain.Order) error {
		oldStatus = o.Status
		isOwner := o.OwnerID == claims.UserID
		if err := domain.ValidateTransition(role, o.Status, next, isOwner); err != nil {
			return err
		}
		o.Status = next
		o.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(domain.OrderEvent{
		Type:        domain.EventOrderStatusUpdated,
		OrderID:     updated.ID,
		OwnerID:     updated.OwnerID,
		OldStatus:   oldStatus,
		NewStatus:   updated.Status,
		TotalAmount: updated.TotalAmount,
		OccurredAt:  updated.UpdatedAt,
	})

	s.log.Info().Str("order_id", id).Str("old_status", string(oldStatus)).
		Str("new_status", string(next)).Str("user_id", claims.UserID).
		Str("role", string(role)).Msg("order status updated")
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}

	err := s.repo.Delete(ctx, id, func(o *domain.Order) error {
		action := auth.ActionDeleteOwn
		if o.OwnerID != claims.UserID {
			action = auth.ActionDeleteAny
		}
		if err := auth.Authorize(claims, action, o.OwnerID); err != nil {
			return err
		}
		// Admin deletes unconditionally; owners only before work started.
		if claims.Role != string(domain.RoleAdmin) && !domain.Deletable(o.Status) {
			return domain.ErrCannotDeleteOrder
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("order_id", id).Str("deleted_by", claims.UserID).Msg("order deleted")
	return nil
}

func (s *OrderService) publish(ev domain.OrderEvent) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}

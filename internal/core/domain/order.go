package domain

import (
	"fmt"
	"math"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusCreated    OrderStatus = "created"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusCreated, StatusInProgress, StatusCompleted, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Order is the aggregate owned by the order service.
type Order struct {
	ID          string      `json:"orderId" bson:"_id,omitempty"`
	OwnerID     string      `json:"userId" bson:"owner_id"`
	Items       []OrderItem `json:"items" bson:"items"`
	Status      OrderStatus `json:"status" bson:"status"`
	TotalAmount float64     `json:"totalAmount" bson:"total_amount"`
	CreatedAt   time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updated_at"`
}

// Clone returns a deep copy, items included.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = make([]OrderItem, len(o.Items))
	copy(clone.Items, o.Items)
	return &clone
}

// ItemsTotal sums price*quantity across all items.
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// TotalTolerance is the maximum accepted drift between the declared total
// and the computed item sum.
const TotalTolerance = 0.01

// ValidateItems checks item-level invariants and the declared total against
// the item sum. A mismatch is rejected, never silently corrected.
func ValidateItems(items []OrderItem, declaredTotal float64) error {
	if len(items) == 0 {
		return ErrInvalidTotal.WithMessage("order must contain at least one item")
	}
	var sum float64
	for i, it := range items {
		if it.Quantity <= 0 {
			return Validation(fmt.Sprintf("item %d: quantity must be positive", i), nil)
		}
		if it.Price <= 0 {
			return Validation(fmt.Sprintf("item %d: price must be positive", i), nil)
		}
		sum += it.Price * float64(it.Quantity)
	}
	if math.Abs(sum-declaredTotal) > TotalTolerance {
		return ErrInvalidTotal.WithDetails(map[string]string{
			"declared":   fmt.Sprintf("%.2f", declaredTotal),
			"calculated": fmt.Sprintf("%.2f", sum),
		})
	}
	return nil
}

// engineerTransitions is the fixed set of edges an engineer may walk,
// regardless of who owns the order.
var engineerTransitions = map[OrderStatus]OrderStatus{
	StatusCreated:    StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// ValidateTransition is the authoritative transition rule set:
//   - admin: any transition, unconditionally
//   - user: owner only, and only created -> cancelled
//   - engineer: created -> in_progress and in_progress -> completed,
//     not ownership-gated (operational role)
//
// Roles outside the closed set are rejected outright.
func ValidateTransition(role Role, current, next OrderStatus, isOwner bool) error {
	switch role {
	case RoleAdmin:
		return nil
	case RoleUser:
		if !isOwner {
			return ErrForbidden.WithMessage("only own orders can be modified")
		}
		if current == StatusCreated && next == StatusCancelled {
			return nil
		}
		return ErrInvalidStatusTransition.WithMessage(
			fmt.Sprintf("a user may only cancel orders in status %q", StatusCreated))
	case RoleEngineer:
		if allowed, ok := engineerTransitions[current]; ok && allowed == next {
			return nil
		}
		return ErrInvalidStatusTransition.WithMessage(
			fmt.Sprintf("an engineer cannot move an order from %q to %q", current, next))
	default:
		return ErrForbidden
	}
}

// DeletableStatuses are the states from which a non-admin owner may delete.
func Deletable(status OrderStatus) bool {
	return status == StatusCreated || status == StatusCancelled
}

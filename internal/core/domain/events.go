package domain

import "time"

// EventType tags a domain event emitted by the order service.
type EventType string

const (
	EventOrderCreated       EventType = "ORDER_CREATED"
	EventOrderStatusUpdated EventType = "ORDER_STATUS_UPDATED"
)

// OrderEvent is emitted after a successful order mutation. Events feed
// observability only; nothing in the lifecycle reads them back.
type OrderEvent struct {
	Type        EventType
	OrderID     string
	OwnerID     string
	OldStatus   OrderStatus
	NewStatus   OrderStatus
	TotalAmount float64
	OccurredAt  time.Time
}

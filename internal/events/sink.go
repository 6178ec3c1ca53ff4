package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api/metrics"
	"github.com/ordersuite/order-system/internal/core/domain"
)

// LogSink records each event as a structured log line and bumps the
// corresponding metrics.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Process(_ context.Context, ev domain.OrderEvent) error {
	switch ev.Type {
	case domain.EventOrderCreated:
		metrics.OrdersCreatedTotal.Inc()
	case domain.EventOrderStatusUpdated:
		metrics.OrderTransitionsTotal.WithLabelValues(string(ev.OldStatus), string(ev.NewStatus)).Inc()
	}

	s.log.Info().
		Str("event", string(ev.Type)).
		Str("order_id", ev.OrderID).
		Str("user_id", ev.OwnerID).
		Str("old_status", string(ev.OldStatus)).
		Str("new_status", string(ev.NewStatus)).
		Float64("total_amount", ev.TotalAmount).
		Time("occurred_at", ev.OccurredAt).
		Msg("domain event")
	return nil
}

// Package events delivers order domain events to a sink through a fixed set
// of workers. Sharding by order id keeps events for one order in emission
// order; the sink is observability-only and never feeds back into the
// lifecycle.
package events

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api/metrics"
	"github.com/ordersuite/order-system/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sink consumes delivered events.
type Sink interface {
	Process(ctx context.Context, ev domain.OrderEvent) error
}

// Dispatcher routes order events to workers by consistent hashing on the
// order id.
type Dispatcher struct {
	workers []chan domain.OrderEvent
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.OrderEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.OrderEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its order id.
// Implements ports.EventPublisher. When the worker's buffer is full the
// event is dropped with a warning; observability must not block mutations.
func (d *Dispatcher) Publish(ev domain.OrderEvent) {
	idx := d.shardIndex(ev.OrderID)
	select {
	case d.workers[idx] <- ev:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("order_id", ev.OrderID).Str("event", string(ev.Type)).Msg("event dropped, worker queue full")
	}
}

func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.OrderEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.sink.Process(ctx, ev); err != nil {
				d.log.Error().Err(err).
					Str("order_id", ev.OrderID).
					Int("worker_id", id).
					Msg("event processing failed")
			}
		}
	}
}

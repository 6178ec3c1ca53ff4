package events

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/core/domain"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	done   chan struct{} // closed when expected events arrive
	expect int
}

func newRecordingSink(expect int) *recordingSink {
	return &recordingSink{expect: expect, done: make(chan struct{})}
}

func (s *recordingSink) Process(_ context.Context, ev domain.OrderEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if len(s.events) == s.expect {
		close(s.done)
	}
	return nil
}

func (s *recordingSink) wait(t *testing.T) []domain.OrderEvent {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events, got %d of %d", len(s.events), s.expect)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.OrderEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversAllEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 20
	sink := newRecordingSink(n)
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Publish(domain.OrderEvent{
			Type:    domain.EventOrderCreated,
			OrderID: fmt.Sprintf("order-%d", i),
		})
	}

	got := sink.wait(t)
	seen := make(map[string]bool, n)
	for _, ev := range got {
		seen[ev.OrderID] = true
	}
	if len(seen) != n {
		t.Fatalf("delivered %d distinct orders, want %d", len(seen), n)
	}
}

func TestDispatcher_SameOrderStaysOrdered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 50
	sink := newRecordingSink(n)
	d := NewDispatcher(8, sink, zerolog.Nop())
	d.Start(ctx)

	// All events target one order, so they hash to one worker and must
	// arrive in publish order.
	statuses := []domain.OrderStatus{domain.StatusCreated, domain.StatusInProgress, domain.StatusCompleted}
	for i := 0; i < n; i++ {
		d.Publish(domain.OrderEvent{
			Type:      domain.EventOrderStatusUpdated,
			OrderID:   "order-1",
			NewStatus: statuses[i%len(statuses)],
			OccurredAt: time.Unix(int64(i), 0),
		})
	}

	got := sink.wait(t)
	for i := 1; i < len(got); i++ {
		if !got[i-1].OccurredAt.Before(got[i].OccurredAt) {
			t.Fatalf("events reordered at index %d", i)
		}
	}
}

func TestDispatcher_PublishNeverBlocks(t *testing.T) {
	// No workers started: buffers fill, further publishes must drop
	// instead of blocking the caller.
	d := NewDispatcher(1, newRecordingSink(1), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			d.Publish(domain.OrderEvent{Type: domain.EventOrderCreated, OrderID: "order-1"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}

func TestNewDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingSink(1), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}

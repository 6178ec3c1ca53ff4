package memory

import (
	"context"
	"sync"

	"github.com/ordersuite/order-system/internal/core/domain"
)

// keyedMutex hands out one mutex per key. Locks are retained for the
// process lifetime; the key space is bounded by the number of orders.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// OrderRepository is an in-memory order store. The map itself is guarded by
// an RWMutex; each record additionally gets its own mutex so that
// read-modify-write cycles on the same order serialize while different
// orders proceed independently.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	locks  *keyedMutex
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
		locks:  newKeyedMutex(),
	}
}

func (r *OrderRepository) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := o.Clone()
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) Mutate(_ context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error) {
	lock := r.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	current, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.orders[id] = next
	r.mu.Unlock()
	return next.Clone(), nil
}

func (r *OrderRepository) Delete(_ context.Context, id string, guard func(*domain.Order) error) error {
	lock := r.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	o, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return domain.ErrOrderNotFound
	}

	if guard != nil {
		if err := guard(o.Clone()); err != nil {
			return err
		}
	}

	r.mu.Lock()
	delete(r.orders, id)
	r.mu.Unlock()
	return nil
}

func (r *OrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (r *OrderRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Order
	for _, o := range r.orders {
		if o.OwnerID == ownerID {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

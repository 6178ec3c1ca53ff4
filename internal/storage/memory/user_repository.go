// Package memory provides the default in-process stores. Records are cloned
// on every read and write so handlers never share mutable state with the
// store, and mutations on a single record always serialize.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/ordersuite/order-system/internal/core/domain"
)

// UserRepository is a single-writer in-memory user store. One RWMutex guards
// both the record map and the email index; email uniqueness needs a global
// view anyway, so finer striping buys nothing here.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string // lowercased email -> user id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, taken := r.byEmail[key]; taken {
		return nil, domain.ErrUserExists
	}

	clone := u.Clone()
	r.users[clone.ID] = clone
	r.byEmail[key] = clone.ID
	return clone.Clone(), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *UserRepository) Mutate(_ context.Context, id string, fn func(*domain.User) error) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	oldKey := strings.ToLower(current.Email)
	newKey := strings.ToLower(next.Email)
	if newKey != oldKey {
		if owner, taken := r.byEmail[newKey]; taken && owner != id {
			return nil, domain.ErrEmailExists
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = id
	}

	r.users[id] = next
	return next.Clone(), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, strings.ToLower(u.Email))
	delete(r.users, id)
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

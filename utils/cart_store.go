package utils

import (
	"sync"
	"time"

	"delyloco-backend/dtos"

	"github.com/google/uuid"
)

// CartStore holds session carts in memory. Sessions are addressed by opaque
// UUID tokens and expire after sitting idle for the configured TTL.
type CartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*dtos.Cart
	ttl   time.Duration
}

// NewCartStore creates a cart store whose sessions expire after ttl of
// inactivity.
func NewCartStore(ttl time.Duration) *CartStore {
	return &CartStore{
		carts: make(map[uuid.UUID]*dtos.Cart),
		ttl:   ttl,
	}
}

// CleanupStale removes carts idle longer than the TTL.
func (s *CartStore) CleanupStale() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, cart := range s.carts {
		if cart.UpdatedAt.Before(cutoff) {
			delete(s.carts, id)
		}
	}
}

// Create mints a new empty cart session.
func (s *CartStore) Create() dtos.Cart {
	// Opportunistic cleanup on each new session
	s.CleanupStale()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cart := &dtos.Cart{
		SessionID: uuid.New(),
		Items:     []dtos.CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.carts[cart.SessionID] = cart
	return snapshot(cart)
}

// Get returns a copy of the cart for the given session.
func (s *CartStore) Get(id uuid.UUID) (dtos.Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[id]
	if !exists {
		return dtos.Cart{}, false
	}
	return snapshot(cart), true
}

// Update applies fn to the cart under the store lock, refreshes its
// timestamp and subtotal, and returns the updated copy.
func (s *CartStore) Update(id uuid.UUID, fn func(*dtos.Cart)) (dtos.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return dtos.Cart{}, false
	}

	fn(cart)
	cart.RecalculateSubtotal()
	cart.UpdatedAt = time.Now()
	return snapshot(cart), true
}

// Delete drops a cart session entirely.
func (s *CartStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

// snapshot copies a cart so callers never share the stored slice.
func snapshot(cart *dtos.Cart) dtos.Cart {
	out := *cart
	out.Items = make([]dtos.CartLine, len(cart.Items))
	copy(out.Items, cart.Items)
	return out
}

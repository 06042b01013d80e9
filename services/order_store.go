package services

import (
	"context"
	"sync"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// OrderStore holds the master order collection for the signed-in user.
// In remote mode the collection lives server-side and every query goes to
// the source; in local mode the source's in-memory collection is cached
// here and invalidated whenever a mutation touches it. The store is only
// ever mutated through the OrderGateway.
type OrderStore struct {
	source OrderSource

	mu     sync.Mutex
	orders []models.Order
	loaded bool
}

// NewOrderStore wraps an injected OrderSource. The remote/local decision
// was made when the source was constructed; the store never re-decides it
// mid-session.
func NewOrderStore(source OrderSource) *OrderStore {
	return &OrderStore{source: source}
}

// IsRemote reports whether queries are delegated to the source.
func (s *OrderStore) IsRemote() bool {
	return s.source.IsRemote()
}

// Source exposes the underlying OrderSource for query delegation and
// mutations.
func (s *OrderStore) Source() OrderSource {
	return s.source
}

// Orders returns the full collection for local computation, fetching from
// the source on first use or after an invalidation.
func (s *OrderStore) Orders(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		orders, err := s.source.All(ctx)
		if err != nil {
			return nil, err
		}
		s.orders = orders
		s.loaded = true
	}
	return s.orders, nil
}

// Invalidate drops the cached collection so the next derivation recomputes
// over fresh data. Called by the gateway after every successful mutation.
func (s *OrderStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	s.loaded = false
}

package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// OrderSource is the capability the order subsystem consumes for all data
// access. Exactly one implementation is injected per session: the remote
// API client, or the in-memory mock when no backend is reachable. The rest
// of the subsystem never branches on environment directly.
type OrderSource interface {
	// IsRemote reports whether queries should be delegated to the source
	// (true) or computed locally over the full collection (false).
	IsRemote() bool

	// QueryOrders returns one page of orders matching the spec.
	QueryOrders(ctx context.Context, spec models.QuerySpec) (*models.OrderPage, error)

	// All returns the full collection for local filtering.
	All(ctx context.Context) ([]models.Order, error)

	// Cancel transitions an order to cancelled. Terminal orders return
	// ErrInvalidTransition, unknown ids ErrNotFound.
	Cancel(ctx context.Context, id string) error

	// FetchInvoice returns the invoice artifact for an order.
	FetchInvoice(ctx context.Context, id string) ([]byte, error)

	// FetchDetail returns the full order detail.
	FetchDetail(ctx context.Context, id string) (*models.OrderDetail, error)
}

// MockOrderSource is the local OrderSource backing the order table when the
// backend is unreachable: a seeded in-memory collection, patched in place
// by mutations. The mutex only guards against overlapping handler calls;
// the data model stays last-write-wins per order.
type MockOrderSource struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewMockOrderSource builds a local source over the given collection, or
// over the standard seed when orders is nil.
func NewMockOrderSource(orders []models.Order) *MockOrderSource {
	if orders == nil {
		orders = models.MockOrders()
	}
	return &MockOrderSource{orders: orders}
}

// IsRemote reports false: views are computed locally.
func (s *MockOrderSource) IsRemote() bool {
	return false
}

// All returns a copy of the current collection.
func (s *MockOrderSource) All(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// QueryOrders runs the same filter/sort/slice pipeline DeriveView uses in
// local mode, so both paths of the dual-mode design provably agree.
func (s *MockOrderSource) QueryOrders(ctx context.Context, spec models.QuerySpec) (*models.OrderPage, error) {
	orders, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	view := composeView(orders, spec.Normalized())
	return &models.OrderPage{
		Items:      view.PageItems,
		Total:      view.TotalMatching,
		TotalPages: view.TotalPages,
		Page:       view.Page,
	}, nil
}

// Cancel patches the order's status in place.
func (s *MockOrderSource) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].PublicID != id {
			continue
		}
		if !s.orders[i].CanCancel() {
			return ErrInvalidTransition
		}
		s.orders[i].Status = models.StatusCancelled
		return nil
	}
	return ErrNotFound
}

// FetchInvoice synthesizes the placeholder invoice artifact from the held
// order fields; no network is involved and the output is deterministic.
func (s *MockOrderSource) FetchInvoice(ctx context.Context, id string) ([]byte, error) {
	detail, err := s.FetchDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return RenderInvoice(detail), nil
}

// FetchDetail surfaces the already-held summary. The mock collection holds
// no structured line items, so the detail carries the summary string and a
// breakdown reconstructed from the total.
func (s *MockOrderSource) FetchDetail(ctx context.Context, id string) (*models.OrderDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.PublicID == id {
			return &models.OrderDetail{Order: o, Subtotal: o.TotalAmount}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

package services

import (
	"context"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// OrderGateway owns the three state-changing operations of the order
// subsystem. Every operation has a remote and a local path behind the
// injected source; after a successful mutation the store is invalidated so
// the very next DeriveView reflects the change without the caller doing a
// second round-trip.
type OrderGateway struct {
	store *OrderStore
}

// NewOrderGateway builds a gateway over the store.
func NewOrderGateway(store *OrderStore) *OrderGateway {
	return &OrderGateway{store: store}
}

// CancelOrder transitions the order to cancelled. Terminal orders fail
// with ErrInvalidTransition and leave the collection untouched; unknown
// ids fail with ErrNotFound. Both are handled, user-visible conditions,
// not crashes.
func (g *OrderGateway) CancelOrder(ctx context.Context, id string) error {
	if err := g.store.Source().Cancel(ctx, id); err != nil {
		return err
	}
	g.store.Invalidate()
	return nil
}

// DownloadInvoice returns the invoice artifact for the order. Remote
// failures are reported, not retried; the download trigger itself is the
// caller's concern.
func (g *OrderGateway) DownloadInvoice(ctx context.Context, id string) ([]byte, error) {
	return g.store.Source().FetchInvoice(ctx, id)
}

// ViewOrderDetail returns the full order detail, or ErrNotFound.
func (g *OrderGateway) ViewOrderDetail(ctx context.Context, id string) (*models.OrderDetail, error) {
	return g.store.Source().FetchDetail(ctx, id)
}

package services

import (
	"context"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// OrderFilters groups the filter-modal fields the UI changes together.
type OrderFilters struct {
	DateStart     string
	DateEnd       string
	MinAmount     string
	MaxAmount     string
	PaymentStatus string
	SortBy        string
}

// OrderBrowser holds the current QuerySpec for the order table and
// enforces the one stateful invariant of the subsystem: any change to the
// tab, the search text or a filter resets the page to 1 in the same
// operation, so a stale page number can never point past the new result
// set. Derivations themselves stay pure in DeriveView.
type OrderBrowser struct {
	store *OrderStore
	spec  models.QuerySpec
}

// NewOrderBrowser starts a browser over the store with the default spec:
// all orders, newest first, page 1.
func NewOrderBrowser(store *OrderStore) *OrderBrowser {
	return &OrderBrowser{
		store: store,
		spec:  models.QuerySpec{}.Normalized(),
	}
}

// Spec returns the spec the next derivation will use.
func (b *OrderBrowser) Spec() models.QuerySpec {
	return b.spec
}

// SetTab switches the status tab and resets to page 1.
func (b *OrderBrowser) SetTab(tab string) {
	b.spec.Tab = tab
	b.spec.Page = 1
	b.spec = b.spec.Normalized()
}

// SetSearchText replaces the search text and resets to page 1. Debouncing
// is the caller's concern.
func (b *OrderBrowser) SetSearchText(text string) {
	b.spec.SearchText = text
	b.spec.Page = 1
}

// SetFilters applies the filter modal and resets to page 1.
func (b *OrderBrowser) SetFilters(f OrderFilters) {
	b.spec.DateStart = f.DateStart
	b.spec.DateEnd = f.DateEnd
	b.spec.MinAmount = f.MinAmount
	b.spec.MaxAmount = f.MaxAmount
	b.spec.PaymentStatus = f.PaymentStatus
	if f.SortBy != "" {
		b.spec.SortBy = f.SortBy
	}
	b.spec.Page = 1
	b.spec = b.spec.Normalized()
}

// SetPage moves to another page of the unchanged query.
func (b *OrderBrowser) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	b.spec.Page = page
}

// Reset returns the browser to the default spec.
func (b *OrderBrowser) Reset() {
	b.spec = models.QuerySpec{}.Normalized()
}

// Derive computes the view for the current spec.
func (b *OrderBrowser) Derive(ctx context.Context) (*models.ViewResult, error) {
	return DeriveView(ctx, b.store, b.spec)
}

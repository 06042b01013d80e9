package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

func TestNewOrderBrowserDefaults(t *testing.T) {
	browser := NewOrderBrowser(localStore(nil))

	spec := browser.Spec()
	assert.Equal(t, models.TabAll, spec.Tab)
	assert.Equal(t, models.PaymentAll, spec.PaymentStatus)
	assert.Equal(t, models.SortNewest, spec.SortBy)
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, models.DefaultPageSize, spec.PageSize)
}

func TestOrderBrowserResetsPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(b *OrderBrowser)
	}{
		{"tab change", func(b *OrderBrowser) { b.SetTab("shipping") }},
		{"search change", func(b *OrderBrowser) { b.SetSearchText("diesel") }},
		{"filter change", func(b *OrderBrowser) { b.SetFilters(OrderFilters{MinAmount: "500000"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser := NewOrderBrowser(localStore(nil))
			browser.SetPage(4)
			assert.Equal(t, 4, browser.Spec().Page)

			tt.change(browser)
			assert.Equal(t, 1, browser.Spec().Page)
		})
	}
}

func TestOrderBrowserSetFilters(t *testing.T) {
	browser := NewOrderBrowser(localStore(nil))

	browser.SetFilters(OrderFilters{
		DateStart:     "20/12/2024",
		DateEnd:       "24/12/2024",
		MinAmount:     "500000",
		MaxAmount:     "2000000",
		PaymentStatus: "paid",
		SortBy:        models.SortHighest,
	})

	spec := browser.Spec()
	assert.Equal(t, "20/12/2024", spec.DateStart)
	assert.Equal(t, "24/12/2024", spec.DateEnd)
	assert.Equal(t, "500000", spec.MinAmount)
	assert.Equal(t, "2000000", spec.MaxAmount)
	assert.Equal(t, "paid", spec.PaymentStatus)
	assert.Equal(t, models.SortHighest, spec.SortBy)

	// Omitting the sort key keeps the previous one.
	browser.SetFilters(OrderFilters{PaymentStatus: "paid"})
	assert.Equal(t, models.SortHighest, browser.Spec().SortBy)
}

func TestOrderBrowserSetPageFloorsAtOne(t *testing.T) {
	browser := NewOrderBrowser(localStore(nil))
	browser.SetPage(0)
	assert.Equal(t, 1, browser.Spec().Page)
	browser.SetPage(-3)
	assert.Equal(t, 1, browser.Spec().Page)
}

func TestOrderBrowserReset(t *testing.T) {
	browser := NewOrderBrowser(localStore(nil))
	browser.SetTab("completed")
	browser.SetSearchText("pin")
	browser.SetPage(2)

	browser.Reset()
	assert.Equal(t, models.QuerySpec{}.Normalized(), browser.Spec())
}

func TestOrderBrowserDerive(t *testing.T) {
	browser := NewOrderBrowser(localStore(fiveStatusOrders()))
	browser.SetTab("pending")

	view, err := browser.Derive(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"#ORD-2024-003"}, orderNumbers(view.PageItems))
}

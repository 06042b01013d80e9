package services

import (
	"context"
	"errors"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// DeriveView computes the order-list view for one QuerySpec. It is the
// single entry point for both branches of the dual-mode design: remote
// sources get the spec forwarded verbatim and their page trusted after a
// shape check, local sources get the full filter/sort/slice pipeline run
// here. The function is synchronous and pure apart from the source call;
// search debouncing belongs to the UI boundary.
func DeriveView(ctx context.Context, store *OrderStore, spec models.QuerySpec) (*models.ViewResult, error) {
	spec = spec.Normalized()

	if store.IsRemote() {
		page, err := store.Source().QueryOrders(ctx, spec)
		if errors.Is(err, ErrMalformedResponse) {
			// A garbled payload becomes an empty view, not a UI-facing
			// shape error.
			return emptyView(), nil
		}
		if err != nil {
			return nil, err
		}
		if page.Total < 0 || page.TotalPages < 0 || len(page.Items) > spec.PageSize {
			return emptyView(), nil
		}
		return &models.ViewResult{
			PageItems:     page.Items,
			TotalMatching: page.Total,
			TotalPages:    page.TotalPages,
			Page:          page.Page,
		}, nil
	}

	orders, err := store.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return composeView(orders, spec), nil
}

// composeView is the local derivation pipeline: predicate filter, sort,
// then page slice. MockOrderSource.QueryOrders routes through the same
// function so the two modes cannot drift.
func composeView(orders []models.Order, spec models.QuerySpec) *models.ViewResult {
	matching := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if MatchesSpec(o, spec) {
			matching = append(matching, o)
		}
	}
	return paginate(SortOrders(matching, spec.SortBy), spec.Page, spec.PageSize)
}

// paginate slices one page out of the sorted matching set. Zero matches
// yield the empty view (no pages) rather than page 1 of 1; otherwise the
// requested page is clamped into [1, totalPages] so a stale page number
// never produces an out-of-range window.
func paginate(sorted []models.Order, page, pageSize int) *models.ViewResult {
	total := len(sorted)
	if total == 0 {
		return emptyView()
	}

	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]models.Order, end-start)
	copy(items, sorted[start:end])

	return &models.ViewResult{
		PageItems:     items,
		TotalMatching: total,
		TotalPages:    totalPages,
		Page:          page,
	}
}

func emptyView() *models.ViewResult {
	return &models.ViewResult{PageItems: []models.Order{}}
}

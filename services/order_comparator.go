package services

import (
	"sort"
	"strings"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// CompareOrders totally orders two orders under a sort key, returning
// -1, 0 or 1. Ties on the primary key fall back to OrderNumber ascending
// so that pagination stays reproducible across repeated derivations; ties
// are never left to insertion order.
func CompareOrders(a, b models.Order, sortBy string) int {
	var c int
	switch sortBy {
	case models.SortOldest:
		c = a.CreatedDate().Compare(b.CreatedDate())
	case models.SortHighest:
		c = -compareInt64(a.TotalAmount, b.TotalAmount)
	case models.SortLowest:
		c = compareInt64(a.TotalAmount, b.TotalAmount)
	default: // newest
		c = -a.CreatedDate().Compare(b.CreatedDate())
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.OrderNumber, b.OrderNumber)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortOrders returns a sorted copy of the collection; the caller's slice
// is never mutated.
func SortOrders(orders []models.Order, sortBy string) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareOrders(sorted[i], sorted[j], sortBy) < 0
	})
	return sorted
}

package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// MatchesSpec decides whether one order belongs to the matching set of a
// QuerySpec. It is the AND of five independent predicates: tab, free-text
// search, date range, amount range and payment status. Each predicate is
// vacuously true when its field is absent or set to its "all" default, so
// an empty spec matches everything.
func MatchesSpec(o models.Order, spec models.QuerySpec) bool {
	return matchesTab(o, spec.Tab) &&
		matchesSearch(o, spec.SearchText) &&
		matchesDateRange(o, spec.DateStart, spec.DateEnd) &&
		matchesAmountRange(o, spec.MinAmount, spec.MaxAmount) &&
		matchesPaymentStatus(o, spec.PaymentStatus)
}

func matchesTab(o models.Order, tab string) bool {
	return tab == "" || tab == models.TabAll || string(o.Status) == tab
}

func matchesSearch(o models.Order, text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.OrderNumber), needle) ||
		strings.Contains(strings.ToLower(o.Items), needle)
}

func matchesDateRange(o models.Order, start, end string) bool {
	created := o.CreatedDate()
	if from, ok := ParseOrderDate(start); ok && created.Before(from) {
		return false
	}
	if to, ok := ParseOrderDate(end); ok && created.After(to) {
		return false
	}
	return true
}

func matchesAmountRange(o models.Order, minText, maxText string) bool {
	if min, ok := ParseAmount(minText); ok && o.TotalAmount < min {
		return false
	}
	if max, ok := ParseAmount(maxText); ok && o.TotalAmount > max {
		return false
	}
	return true
}

func matchesPaymentStatus(o models.Order, payment string) bool {
	return payment == "" || payment == models.PaymentAll || string(o.PaymentStatus) == payment
}

// ParseAmount parses a user-entered amount. Thousand separators are
// tolerated; anything that still fails to parse means "no bound" rather
// than an error, so a typo in the filter never empties the list.
func ParseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var orderDateLayouts = []string{"02/01/2006", "2006-01-02"}

// ParseOrderDate parses the calendar dates the UI works with: dd/mm/yyyy
// as rendered in the order table, or ISO yyyy-mm-dd as produced by date
// inputs. Timestamps are truncated to the date. Malformed input reads as
// "no bound".
func ParseOrderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// ISO timestamps reduce to their date part.
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

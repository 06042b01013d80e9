package models

// Sort keys supported by the order list.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortHighest = "highest"
	SortLowest  = "lowest"
)

// TabAll matches every status; the other tabs carry a status value.
const TabAll = "all"

// PaymentAll disables the payment-status filter.
const PaymentAll = "all"

// DefaultPageSize is the page size the order table renders with.
const DefaultPageSize = 5

// QuerySpec describes one derivation of the order list view: active tab,
// free-text search, optional filters, sort key and page window. Filter
// fields are carried as the raw strings the UI holds; malformed numeric or
// date text means "no constraint", never an error.
type QuerySpec struct {
	Tab           string `json:"tab" form:"tab"`
	SearchText    string `json:"search_text" form:"q"`
	DateStart     string `json:"date_start" form:"date_start"`
	DateEnd       string `json:"date_end" form:"date_end"`
	MinAmount     string `json:"min_amount" form:"min_amount"`
	MaxAmount     string `json:"max_amount" form:"max_amount"`
	PaymentStatus string `json:"payment_status" form:"payment_status"`
	SortBy        string `json:"sort_by" form:"sort_by"`
	Page          int    `json:"page" form:"page"`
	PageSize      int    `json:"page_size" form:"limit"`
}

// Normalized returns a copy of the spec with defaults filled in: tab "all",
// payment status "all", sort "newest", page 1, the default page size.
func (s QuerySpec) Normalized() QuerySpec {
	if s.Tab == "" {
		s.Tab = TabAll
	}
	if s.PaymentStatus == "" {
		s.PaymentStatus = PaymentAll
	}
	switch s.SortBy {
	case SortNewest, SortOldest, SortHighest, SortLowest:
	default:
		s.SortBy = SortNewest
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	return s
}

// OrderPage is one page of query results as returned by an OrderSource.
type OrderPage struct {
	Items      []Order `json:"items"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Page       int     `json:"page"`
}

// ViewResult is the derived order-list view for one QuerySpec. When nothing
// matches, TotalPages and Page are 0 and PageItems is empty; the UI renders
// the empty state rather than "page 1 of 1". The same convention applies in
// remote and local mode.
type ViewResult struct {
	PageItems     []Order `json:"page_items"`
	TotalMatching int     `json:"total_matching"`
	TotalPages    int     `json:"total_pages"`
	Page          int     `json:"page"`
}

// Pagination is the wire shape of the pagination block in list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

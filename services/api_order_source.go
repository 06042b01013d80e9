package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dekii2275/oilandenegry-website-sub000/models"
)

// APIOrderSource is the remote OrderSource: a thin client for the orders
// API. Filtering, sorting and pagination all happen server-side; the spec
// is forwarded verbatim as query parameters and the returned page is
// trusted as-is.
type APIOrderSource struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIOrderSource builds a remote source rooted at baseURL (e.g.
// "https://zenergy.cloud/api/v1"). The bearer token authenticates every
// request.
func NewAPIOrderSource(baseURL, token string) *APIOrderSource {
	return &APIOrderSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IsRemote reports true: queries are delegated to the backend.
func (s *APIOrderSource) IsRemote() bool {
	return true
}

// listEnvelope is the wire shape of GET /orders responses.
type listEnvelope struct {
	Success    bool               `json:"success"`
	Data       []models.Order     `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

// detailEnvelope is the wire shape of single-order responses.
type detailEnvelope struct {
	Success bool                `json:"success"`
	Data    *models.OrderDetail `json:"data"`
}

// QueryOrders forwards the spec to GET /orders and returns the page the
// backend computed.
func (s *APIOrderSource) QueryOrders(ctx context.Context, spec models.QuerySpec) (*models.OrderPage, error) {
	spec = spec.Normalized()

	params := url.Values{}
	params.Set("tab", spec.Tab)
	if spec.SearchText != "" {
		params.Set("q", spec.SearchText)
	}
	if spec.DateStart != "" {
		params.Set("date_start", spec.DateStart)
	}
	if spec.DateEnd != "" {
		params.Set("date_end", spec.DateEnd)
	}
	if spec.MinAmount != "" {
		params.Set("min_amount", spec.MinAmount)
	}
	if spec.MaxAmount != "" {
		params.Set("max_amount", spec.MaxAmount)
	}
	params.Set("payment_status", spec.PaymentStatus)
	params.Set("sort_by", spec.SortBy)
	params.Set("page", strconv.Itoa(spec.Page))
	params.Set("limit", strconv.Itoa(spec.PageSize))

	body, err := s.get(ctx, "/orders?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !envelope.Success || envelope.Pagination == nil {
		return nil, ErrMalformedResponse
	}

	return &models.OrderPage{
		Items:      envelope.Data,
		Total:      envelope.Pagination.Total,
		TotalPages: envelope.Pagination.TotalPages,
		Page:       envelope.Pagination.Page,
	}, nil
}

// All fetches the whole collection in one oversized page. Only used when a
// caller wants local computation over remote data.
func (s *APIOrderSource) All(ctx context.Context) ([]models.Order, error) {
	page, err := s.QueryOrders(ctx, models.QuerySpec{Page: 1, PageSize: 200})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Cancel issues POST /orders/{id}/cancel.
func (s *APIOrderSource) Cancel(ctx context.Context, id string) error {
	req, err := s.newRequest(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	return statusToError(resp.StatusCode)
}

// FetchInvoice downloads the invoice artifact as raw bytes.
func (s *APIOrderSource) FetchInvoice(ctx context.Context, id string) ([]byte, error) {
	return s.get(ctx, "/orders/"+url.PathEscape(id)+"/invoice")
}

// FetchDetail fetches the full order detail.
func (s *APIOrderSource) FetchDetail(ctx context.Context, id string) (*models.OrderDetail, error) {
	body, err := s.get(ctx, "/orders/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var envelope detailEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !envelope.Success || envelope.Data == nil {
		return nil, ErrMalformedResponse
	}
	return envelope.Data, nil
}

func (s *APIOrderSource) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return req, nil
}

func (s *APIOrderSource) get(ctx context.Context, path string) ([]byte, error) {
	req, err := s.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusToError(resp.StatusCode); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return body, nil
}

// statusToError maps the backend's status codes onto the subsystem's error
// taxonomy.
func statusToError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrInvalidTransition
	default:
		return fmt.Errorf("%w: backend returned status %d", ErrSourceUnavailable, code)
	}
}

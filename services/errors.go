package services

import "errors"

// Business errors surfaced by the order subsystem. All of them are
// recoverable at the call site; handlers translate them into response codes.
var (
	// ErrInvalidTransition is returned when a cancel is attempted on an
	// order whose status is terminal.
	ErrInvalidTransition = errors.New("order status does not allow this transition")

	// ErrNotFound is returned when an order id resolves to nothing.
	ErrNotFound = errors.New("order not found")

	// ErrSourceUnavailable is returned when the remote order source cannot
	// be reached or answers with a server error. Once a session runs in
	// remote mode it stays there; callers surface the failure instead of
	// silently showing mock data as if it were live.
	ErrSourceUnavailable = errors.New("order source unavailable")

	// ErrMalformedResponse is returned when the remote source answers with
	// a payload that does not decode into the expected shape. DeriveView
	// replaces it with an empty view rather than passing it to the UI.
	ErrMalformedResponse = errors.New("order source returned a malformed response")
)

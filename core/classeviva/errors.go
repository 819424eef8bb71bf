package classeviva

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies failures of upstream-facing operations. Handlers recover
// every Kind into a structured JSON error body; the facade reacts to the
// non-login kinds by switching to mock data for the rest of the process
// lifetime.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindBlocked
	KindUpstreamRejected
	KindMalformedResponse
	KindNetworkFailure
)

// APIError carries the HTTP status to serve, a user-facing message and a
// truncated diagnostic excerpt of whatever upstream sent back.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func NewBadRequest(msg string) error {
	return &APIError{Kind: KindBadRequest, Status: http.StatusBadRequest, Message: msg}
}

func NewUnauthorized(msg string) error {
	return &APIError{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

// NewBlocked marks a WAF/geo block disguised as an HTML error page.
// Served as 403 regardless of the literal upstream status.
func NewBlocked(details string) error {
	return &APIError{
		Kind:    KindBlocked,
		Status:  http.StatusForbidden,
		Message: "API Access Blocked",
		Details: details,
	}
}

func NewUpstreamRejected(status int, body string) error {
	return &APIError{
		Kind:    KindUpstreamRejected,
		Status:  status,
		Message: "Login failed",
		Details: fmt.Sprintf("HTTP %d: %s", status, body),
	}
}

// NewRequestFailed is the generic-proxy flavor of an upstream rejection: the
// upstream status and body are relayed unchanged as diagnostic detail.
func NewRequestFailed(status int, body string) error {
	return &APIError{
		Kind:    KindUpstreamRejected,
		Status:  status,
		Message: "API request failed",
		Details: body,
	}
}

func NewMalformedResponse(details string) error {
	return &APIError{
		Kind:    KindMalformedResponse,
		Status:  http.StatusInternalServerError,
		Message: "Invalid response format",
		Details: details,
	}
}

func NewNetworkFailure(err error) error {
	return &APIError{
		Kind:    KindNetworkFailure,
		Status:  http.StatusBadGateway,
		Message: "Unable to reach ClasseViva API",
		Details: err.Error(),
	}
}

// KindOf unwraps err and reports its Kind, or 0 for foreign errors.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(errors.Cause(err), &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func IsBlocked(err error) bool { return KindOf(err) == KindBlocked }

// Truncate caps diagnostic excerpts the way the handlers report them.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

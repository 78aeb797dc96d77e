package newsapi

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when the query is empty after trimming.
// No request is issued in that case.
var ErrEmptyQuery = errors.New("empty query")

// Kind classifies a failed or degenerate search.
type Kind int

const (
	KindMissingCredential Kind = iota
	KindInvalidCredential
	KindQuotaExceeded
	KindRateLimited
	KindAPIError
	KindTransportFailure
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing credential"
	case KindInvalidCredential:
		return "invalid credential"
	case KindQuotaExceeded:
		return "quota exceeded"
	case KindRateLimited:
		return "rate limited"
	case KindAPIError:
		return "api error"
	case KindTransportFailure:
		return "transport failure"
	case KindEmptyResult:
		return "empty result"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by Client.Search. Status is only
// set for KindAPIError and the specific-status kinds (401/403/429).
type Error struct {
	Kind   Kind
	Status int
	cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.Status)
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the Kind from an error returned by Search.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func classifyStatus(status int) *Error {
	switch status {
	case 401:
		return &Error{Kind: KindInvalidCredential, Status: status}
	case 403:
		return &Error{Kind: KindQuotaExceeded, Status: status}
	case 429:
		return &Error{Kind: KindRateLimited, Status: status}
	default:
		return &Error{Kind: KindAPIError, Status: status}
	}
}

package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Messages shown when a failure carries nothing more specific.
const (
	FetchFailedMessage = "Failed to fetch data"
	GenericMessage     = "An error occurred"
	TimeoutMessage     = "Request timed out"
)

// StatusError is returned when a backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	// Detail is the "detail" field of the JSON error body, if any.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// UnreachableError is returned when no HTTP response was received.
type UnreachableError struct {
	Backend string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("could not reach backend %s: %v", e.Backend, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// ErrorMessage collapses any fetch error into the single string shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Detail != "" {
			return statusErr.Detail
		}
		return FetchFailedMessage
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutMessage
	}

	var unreachable *UnreachableError
	if errors.As(err, &unreachable) {
		return fmt.Sprintf("Could not reach backend %s", unreachable.Backend)
	}

	return GenericMessage
}

var errInvalidJSON = errors.New("invalid JSON body")

// extractDetail reads the "detail" field of an error body.
// Strings are returned as is; arrays, objects (validation errors), non-zero
// numbers and true as raw JSON. Zero, false and null count as absent.
func extractDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.Str
	case detail.IsArray(), detail.IsObject(), detail.Type == gjson.True:
		return detail.Raw
	case detail.Type == gjson.Number && detail.Num != 0:
		return detail.Raw
	default:
		return ""
	}
}

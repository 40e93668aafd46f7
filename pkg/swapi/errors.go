package swapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/umputun/swbrowse/pkg/decode"
)

// TransportError reports a failed request: network failure, cancellation or a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int // set for unexpected statuses, 0 otherwise
	Err        error
}

// Error implements error.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("get %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("get %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// Canceled reports whether the request failed because its context was canceled.
func (e *TransportError) Canceled() bool {
	return errors.Is(e.Err, context.Canceled)
}

// DecodeError reports a response body that does not match the expected schema.
type DecodeError struct {
	URL string
	Err *decode.Error
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.URL, e.Err.Error())
}

// Unwrap returns the structural diagnostic.
func (e *DecodeError) Unwrap() error { return e.Err }

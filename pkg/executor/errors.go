package executor

import (
	"fmt"
	"time"
)

// TimeoutError marks an attempt that exceeded its allotted time. It is
// distinct from an HTTP-level failure so callers can tell the two apart.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("attempt timed out after %s", e.Timeout)
}

// HTTPError is a non-2xx response from the partner API.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("http status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("http status %d", e.Status)
}

// ParseError is a response body that is not valid JSON or lacks the
// fields the caller expected.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

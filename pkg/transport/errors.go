package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidConfiguration = errors.New("invalid transport configuration")
	ErrInvalidURL           = errors.New("invalid request URL")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrNetwork              = errors.New("network failure")
	ErrTimeout              = errors.New("request timeout")
	ErrCircuitOpen          = errors.New("transport circuit breaker is open")
	ErrResponseTooLarge     = errors.New("response body too large")
	ErrUnexpectedStatus     = errors.New("unexpected response status")
)

// StatusError describes a non-2xx response.
type StatusError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d: %s", e.Status, http.StatusText(e.Status))
}

// Is makes every StatusError match ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// IsUnauthorized reports whether err is a 401 StatusError.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}

// IsNetwork reports whether err is a transport-level failure rather than an
// HTTP response.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrCircuitOpen)
}

package shopify

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned by NewClient when the shop domain or the
// access token is not configured.
var ErrMissingCredentials = errors.New("shopify credentials missing")

// ErrRepeatedCursor is returned when the remote API hands back a cursor that
// was already followed during the same fetch.
var ErrRepeatedCursor = errors.New("shopify returned a repeated page cursor")

// TransportError reports a request that produced no usable response:
// network failures, timeouts and cancellation.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shopify request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("shopify returned %d", e.StatusCode)
	}
	return fmt.Sprintf("shopify returned %d: %s", e.StatusCode, e.Body)
}

// DecodeError reports a response body that is not a valid products page.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode shopify response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsRemoteError reports whether err was caused by the remote API: a transport
// failure, an error status, an undecodable body or a broken cursor chain.
func IsRemoteError(err error) bool {
	var transportErr *TransportError
	var statusErr *StatusError
	var decodeErr *DecodeError
	return errors.As(err, &transportErr) ||
		errors.As(err, &statusErr) ||
		errors.As(err, &decodeErr) ||
		errors.Is(err, ErrRepeatedCursor)
}

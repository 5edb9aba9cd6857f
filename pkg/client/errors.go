package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTimeout indicates the request did not complete within the client timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrNetwork indicates the request target could not be reached.
	ErrNetwork = errors.New("network error")

	// ErrResponseTooLarge indicates the response body exceeded MaxResponseSize.
	ErrResponseTooLarge = errors.New("response too large")
)

// StatusError is returned for responses outside the 2xx range.
// The response is still available through Response.
type StatusError struct {
	Response *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d %s", e.Response.StatusCode, http.StatusText(e.Response.StatusCode))
}

package backend

import (
	"errors"
	"fmt"
)

// Upload failures surfaced to the user as-is.
var (
	ErrInvalidResponse = errors.New("Invalid response format")
	ErrUploadTimeout   = errors.New("Upload timeout")
	ErrUploadNetwork   = errors.New("Network error during upload")
)

// NetworkError is a transport failure: the request never produced a response.
// It is the only retryable error class.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Message is the backend's detail when it
// sent one.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string { return e.Message }

// ParseError is a 2xx response whose body was not the expected JSON.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transport failure worth retrying.
func IsRetryable(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

package planclient

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport failures where no response was received.
var ErrNetwork = errors.New("network failure")

// ErrEmptyID is returned before any request is made when an identifier is blank.
var ErrEmptyID = errors.New("empty identifier")

// HTTPError is a response received with a non-success status.
type HTTPError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("planclient: %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

// ParseError is a response body that is not the expected JSON shape.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("planclient: decode %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind classifies err for logging: "network", "http", "parse" or "unknown".
func Kind(err error) string {
	var httpErr *HTTPError
	var parseErr *ParseError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.As(err, &httpErr):
		return "http"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "unknown"
	}
}

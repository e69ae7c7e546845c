package digitalocean

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrNotFound reports that the droplet does not exist or the token cannot see it.
var ErrNotFound = errors.New("droplet not found")

// NotFoundError is returned for 404 answers on droplet lookups.
type NotFoundError struct {
	DropletID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("droplet %d not found", e.DropletID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// APIError is an unexpected HTTP status from the API.
// Error renders Message when the body carried one and "HTTP <status>" otherwise.
type APIError struct {
	Op        string
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "HTTP " + strconv.Itoa(e.Status)
}

// Code implements the handler summary error code.
func (e *APIError) Code() string { return "do_api_" + strconv.Itoa(e.Status) }

// DecodeError is an error response whose body was not a JSON object.
// Body holds at most the first 100 characters.
type DecodeError struct {
	Op     string
	Status int
	Body   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

func (e *DecodeError) Code() string { return "do_decode" }

// TransportError wraps network failures, including timeouts.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Timeout() {
		return "timeout: " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request gave up waiting for the API.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

func (e *TransportError) Code() string {
	if e.Timeout() {
		return "do_timeout"
	}
	return "do_transport"
}

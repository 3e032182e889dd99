package api

import (
	"errors"
	"fmt"
)

// Kind categorises a failed API call.
type Kind int

const (
	// KindServer means the service answered but rejected or failed the
	// request: non-2xx status, GraphQL errors, or an error field in a
	// mutation payload.
	KindServer Kind = iota
	// KindNetwork means no usable answer arrived: connection failure,
	// timeout, or a cancelled context.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server error"
	case KindNetwork:
		return "network error"
	default:
		return "unknown error"
	}
}

// Error is returned by every Client call that fails.
type Error struct {
	Op     string
	Kind   Kind
	Status int // HTTP status when a response was received
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the category of err, and false if err is not an API error.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsNetwork reports whether err is a transport-level API failure.
func IsNetwork(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNetwork
}

// IsServer reports whether err is a server-side API failure.
func IsServer(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindServer
}

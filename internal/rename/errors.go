package rename

import (
	"errors"
	"fmt"
)

// Kind classifies flow failures.
type Kind int

const (
	// KindLookup covers account or droplet lookups before any state exists.
	KindLookup Kind = iota + 1
	// KindValidation covers rejected names. The context survives.
	KindValidation
	// KindCommit covers failures once the context was consumed.
	KindCommit
)

func (k Kind) String() string {
	switch k {
	case KindLookup:
		return "lookup"
	case KindValidation:
		return "validation"
	case KindCommit:
		return "commit"
	}
	return "unknown"
}

var (
	ErrLookup     = errors.New("rename: lookup failed")
	ErrValidation = errors.New("rename: invalid name")
	ErrCommit     = errors.New("rename: commit failed")

	ErrNameLength  = errors.New("name must be 3-63 characters")
	ErrNameCharset = errors.New("name may only contain letters, digits, hyphens and underscores")
)

// Error is a classified flow failure. errors.Is matches it against
// ErrLookup, ErrValidation and ErrCommit by Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rename %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrLookup:
		return e.Kind == KindLookup
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrCommit:
		return e.Kind == KindCommit
	}
	return false
}

// Code implements the handler summary error code.
func (e *Error) Code() string { return "rename_" + e.Kind.String() }

// DeliveryError reports that a message could not be sent or edited.
type DeliveryError struct {
	Op  string
	Err error
}

func (e *DeliveryError) Error() string { return "rename: deliver " + e.Op + ": " + e.Err.Error() }

func (e *DeliveryError) Unwrap() error { return e.Err }

func delivery(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DeliveryError{Op: op, Err: err}
}

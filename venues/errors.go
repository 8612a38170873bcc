package venues

import (
	"errors"
	"fmt"
)

// Kind classifies a failure returned by the Service.
type Kind int

const (
	// KindInvalidInput means client supplied data is missing a required field.
	KindInvalidInput Kind = iota + 1
	// KindNotFound means the operation targeted a venue that does not exist.
	KindNotFound
	// KindStoreUnavailable means the store failed to serve the request.
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindNotFound:
		return "NotFound"
	case KindStoreUnavailable:
		return "StoreUnavailable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is checks against a *Error of the matching kind.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable}
)

// Error is the failure type of every Service operation.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func notFound(id string) *Error {
	return newError(KindNotFound, fmt.Sprintf("Venue with ID %s not found", id), nil)
}

func storeUnavailable(action string, cause error) *Error {
	return newError(KindStoreUnavailable, fmt.Sprintf("failed to %s: %v", action, cause), cause)
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of err, or zero if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err is a KindNotFound failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is a KindInvalidInput failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStoreUnavailable reports whether err is a KindStoreUnavailable failure.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// Package fault classifies errors into the kinds the HTTP layer reports:
// validation problems, missing entities and everything else.
package fault

import (
	"errors"
	"fmt"
)

// Kind is the category of a Fault.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

// String returns the name used in error envelopes.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	default:
		return "InternalError"
	}
}

// Fault carries a kind, a caller-facing message and an optional cause.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Fault) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *Fault) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input.
func Validation(msg string) error {
	return &Fault{Kind: KindValidation, Message: msg}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return &Fault{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a referenced entity that does not exist.
func NotFound(msg string) error {
	return &Fault{Kind: KindNotFound, Message: msg}
}

// NotFoundf is NotFound with formatting.
func NotFoundf(format string, args ...any) error {
	return &Fault{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) error {
	return &Fault{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind of the first Fault in err's chain.
// Errors that carry no Fault are internal.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message of err, or fallback when err
// carries no Fault or is internal.
func MessageOf(err error, fallback string) string {
	var f *Fault
	if errors.As(err, &f) && f.Kind != KindInternal && f.Message != "" {
		return f.Message
	}
	return fallback
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Package errs holds the error taxonomy shared by the storefront packages.
// Callers test kinds with errors.Is against the sentinels below.
package errs

import (
	"errors"
	"fmt"
)

// Kind-level sentinels.
var (
	ErrNetwork    = errors.New("network error")
	ErrParse      = errors.New("parse error")
	ErrValidation = errors.New("validation error")
	ErrState      = errors.New("state error")
)

// Kind identifies one branch of the taxonomy.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindParse      Kind = "parse"
	KindValidation Kind = "validation"
	KindState      Kind = "state"
)

// Sentinel returns the package-level error matching k, or nil.
func (k Kind) Sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindParse:
		return ErrParse
	case KindValidation:
		return ErrValidation
	case KindState:
		return ErrState
	}
	return nil
}

// Error carries the failed operation, its kind and the underlying cause.
type Error struct {
	Op      string
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = fmt.Sprintf("%s error", e.Kind)
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match against the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && target == s
}

// New builds an Error with a message and no cause.
func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, Message: msg}
}

// Wrap builds an Error around err.
func Wrap(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Validation is shorthand for a validation failure with a formatted message.
func Validation(op, format string, args ...interface{}) *Error {
	return &Error{Op: op, Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrState):
		return KindState
	}
	return ""
}

package pickup

import (
	"errors"
	"fmt"
	"strings"

	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/storage"
)

var (
	ErrNotFound          = errors.New("pickup request not found")
	ErrInvalidTransition = errors.New("pickup request not in a state that allows this action")
	ErrNotLinked         = child.ErrNotLinked
	ErrTransport         = storage.ErrUnavailable
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field  string
	Reason string
}

type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(flds ...FieldError) error { return &ValidationError{Fields: flds} }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid pickup request: " + strings.Join(parts, "; ")
}

// TransitionError carries the status found when op was refused.
type TransitionError struct {
	Op      Op
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s pickup request in status %q", e.Op, e.Current)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Transport wraps a collaborator failure so callers can match ErrTransport.
func Transport(err error) error { return storage.Wrap(err) }

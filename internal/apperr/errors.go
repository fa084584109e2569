// Package apperr holds the error taxonomy shared by the table stores and
// the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a point lookup or update targets an absent id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus is returned for a status outside the entity's fixed set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrTransitionNotAllowed is returned in strict mode for an edge missing from the transition table.
	ErrTransitionNotAllowed = errors.New("invalid transition")
	// ErrStatusConflict is returned in strict mode when the status changed between read and write.
	ErrStatusConflict = errors.New("status changed concurrently")
)

// ValidationError lists the request fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request"
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// InvalidStatusError carries the allowed set for the message returned to callers.
type InvalidStatusError struct {
	Status  string
	Allowed []string
}

func (e *InvalidStatusError) Error() string {
	return "Invalid status. Must be one of: " + strings.Join(e.Allowed, ", ")
}

func (e *InvalidStatusError) Is(target error) bool { return target == ErrInvalidStatus }

// TransitionError describes a rejected edge and the edges that are allowed.
type TransitionError struct {
	From, To string
	Next     []string
}

func (e *TransitionError) Error() string {
	next := "none (terminal state)"
	if len(e.Next) > 0 {
		next = strings.Join(e.Next, ", ")
	}
	return fmt.Sprintf("invalid transition: %s -> %s is not allowed. Valid transitions from %s are: %s", e.From, e.To, e.From, next)
}

func (e *TransitionError) Is(target error) bool { return target == ErrTransitionNotAllowed }

// StoreError wraps a failure of the underlying key-value store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError for op. nil stays nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

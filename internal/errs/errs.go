// Package errs defines the failure taxonomy shared by the core, the
// application services, and the driving adapters.
// This package has no internal dependencies to avoid import cycles.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is any error that did not come through this package.
	KindUnknown Kind = iota
	// KindNotFound means a referenced program, rundown, block, item, or user does not resolve.
	KindNotFound
	// KindInvalidTransition means a status workflow rule was violated.
	KindInvalidTransition
	// KindPersistence means a gateway call failed or timed out.
	KindPersistence
	// KindPartialOrdering means a bulk order update only partially applied.
	KindPartialOrdering
	// KindInvalidInput means a request failed validation before any I/O.
	KindInvalidInput
	// KindConflict means the request collides with existing state (e.g. an occupied rundown slot).
	KindConflict
	// KindUnauthenticated means no valid session is available.
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindPersistence:
		return "persistence_failure"
	case KindPartialOrdering:
		return "partial_ordering_failure"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Category tells a caller how to react to a failure.
type Category string

const (
	CategoryRecoverable    Category = "recoverable"
	CategoryRetryable      Category = "retryable"
	CategoryReloadRequired Category = "reload_required"
	CategoryUnauthorized   Category = "unauthorized"
	CategoryFatal          Category = "fatal"
)

// Category maps the kind to its handling category.
func (k Kind) Category() Category {
	switch k {
	case KindNotFound, KindInvalidTransition, KindInvalidInput, KindConflict:
		return CategoryRecoverable
	case KindPersistence:
		return CategoryRetryable
	case KindPartialOrdering:
		return CategoryReloadRequired
	case KindUnauthenticated:
		return CategoryUnauthorized
	default:
		return CategoryFatal
	}
}

// Error is a classified failure.
type Error struct {
	Kind   Kind
	Entity string // program, rundown, block, item, comment, user
	ID     string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, errs.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Entity == "" && t.ID == "" && t.Msg == "" && t.Err == nil
}

// Sentinels for errors.Is.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrPersistence       = &Error{Kind: KindPersistence}
	ErrPartialOrdering   = &Error{Kind: KindPartialOrdering}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
)

// NotFound reports that entity id does not resolve.
func NotFound(entity, id string) error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Msg: fmt.Sprintf("%s %s not found", entity, id)}
}

// InvalidTransition reports a rejected status change.
func InvalidTransition(entity, from, to string) error {
	return &Error{
		Kind:   KindInvalidTransition,
		Entity: entity,
		Msg:    fmt.Sprintf("cannot move %s from %s to %s", entity, from, to),
	}
}

// InvalidInput reports a validation failure.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports a collision with existing state.
func Conflict(entity, id, format string, args ...any) error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Msg: fmt.Sprintf(format, args...)}
}

// Unauthenticated reports a missing or invalid session.
func Unauthenticated(msg string) error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

// Persistence wraps a gateway failure. Errors that are already classified
// are returned unmodified.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	var partial *PartialOrderError
	if errors.As(err, &partial) {
		return err
	}
	return &Error{Kind: KindPersistence, Msg: op, Err: err}
}

// PartialOrderError reports a bulk order update where some rows were
// written and others were not. In-memory and persisted order may differ
// until the caller reloads.
type PartialOrderError struct {
	Entity  string
	Applied []string
	Failed  map[string]error
}

func (e *PartialOrderError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("%s order partially saved (%d applied, %d failed: %s); reload before editing",
		e.Entity, len(e.Applied), len(e.Failed), strings.Join(ids, ", "))
}

// Is lets errors.Is(err, ErrPartialOrdering) match.
func (e *PartialOrderError) Is(target error) bool {
	return target == ErrPartialOrdering
}

// KindOf classifies any error.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var partial *PartialOrderError
	if errors.As(err, &partial) {
		return KindPartialOrdering
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}

// CategoryOf returns the handling category for err.
func CategoryOf(err error) Category {
	return KindOf(err).Category()
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidTransition reports whether err is an InvalidTransition failure.
func IsInvalidTransition(err error) bool { return KindOf(err) == KindInvalidTransition }

// IsPartialOrdering reports whether err is a PartialOrderingFailure.
func IsPartialOrdering(err error) bool { return KindOf(err) == KindPartialOrdering }

// Package apperr defines the typed error taxonomy of the core.
// Services return these; the HTTP layer maps each kind to a status code.
// The underlying storage error (if any) travels wrapped for logging but is
// never shown to clients.
package apperr

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind int

const (
	// KindValidation: malformed input (query too short, bad pagination,
	// unknown filter value). Retriable with corrected input.
	KindValidation Kind = iota + 1
	// KindNotFound: the referenced id does not exist at all.
	KindNotFound
	// KindConflict: uniqueness violation or redundant state transition
	// (e.g. deleting an already-inactive row).
	KindConflict
	// KindTimeout: the storage backend did not answer in time. Safe to
	// retry with backoff — the transaction left no partial state.
	KindTimeout
	// KindUnavailable: the storage backend failed for infrastructure
	// reasons. Also safe to retry with backoff.
	KindUnavailable
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Timeout(msg string, cause error) *Error {
	return &Error{Kind: KindTimeout, Msg: msg, Err: cause}
}

func Unavailable(msg string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Msg: msg, Err: cause}
}

func is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsValidation(err error) bool  { return is(err, KindValidation) }
func IsNotFound(err error) bool    { return is(err, KindNotFound) }
func IsConflict(err error) bool    { return is(err, KindConflict) }
func IsTimeout(err error) bool     { return is(err, KindTimeout) }
func IsUnavailable(err error) bool { return is(err, KindUnavailable) }

// FromDB translates a storage error into the taxonomy.
//
// The duplicate-key case matters most: the app-level uniqueness pre-check
// only exists for a friendly message, the DB unique index is the real
// guard, and a commit-time violation must surface as the same conflict
// the pre-check would have produced.
func FromDB(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Msg: notFoundMsg}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Msg: conflictMsg}
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout("La base de datos no respondió a tiempo", err)
	case errors.Is(err, context.Canceled):
		// Caller abandoned the operation; the transaction rolls back.
		return err
	default:
		return Unavailable("Error de base de datos", err)
	}
}

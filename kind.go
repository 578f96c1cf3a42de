package accounts

import (
	"errors"
	"fmt"
)

// A Kind classifies an error by how the service reacts to it.
// The set of Kinds is closed; KindOf maps every error onto exactly one.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not-found"
	KindConflict     Kind = "conflict"
	KindAuthFailure  Kind = "auth-failure"
	KindStoreFailure Kind = "store-failure"
)

var _ Enumerable = KindValidation

func (k Kind) String() string { return string(k) }

func (k Kind) Valid() error {
	switch k {
	case KindValidation, KindNotFound, KindConflict, KindAuthFailure, KindStoreFailure:
		return nil
	default:
		return fmt.Errorf("%w: %q is not a Kind", ErrNotValid, string(k))
	}
}

// KindOf classifies err by the sentinel error it wraps.
//
// Errors wrapping none of the known sentinels are KindStoreFailure:
// anything unrecognized is treated as a failure of the underlying infrastructure.
// KindOf returns the zero value for a nil error.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrExists):
		return KindConflict

	case errors.Is(err, ErrNotFound):
		return KindNotFound

	case errors.Is(err, ErrUnauthorized):
		return KindAuthFailure

	case errors.Is(err, ErrNotValid), errors.Is(err, ErrBadFormat), errors.Is(err, ErrMissingData):
		return KindValidation

	default:
		return KindStoreFailure
	}
}

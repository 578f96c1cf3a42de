package accounts

import "errors"

var (
	ErrBadAny         = errors.New("bad any")
	ErrBadConfig      = errors.New("bad config")
	ErrBadFormat      = errors.New("bad format")
	ErrExists         = errors.New("exists")
	ErrMissingData    = errors.New("missing data")
	ErrNotFound       = errors.New("not found")
	ErrNotImplemented = errors.New("not implemented")
	ErrNotValid       = errors.New("invalid")
	ErrUnaddressable  = errors.New("unaddressable value")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUnexpected     = errors.New("unexpected")
)

package auth

import (
	"fmt"

	"github.com/xy-planning-network/accounts"
)

var (
	// ErrCredentials is the one error for an unknown email, a password-less account and a wrong password.
	ErrCredentials = fmt.Errorf("%w: username or password incorrect", accounts.ErrUnauthorized)

	ErrNoToken          = fmt.Errorf("%w: no token found", accounts.ErrUnauthorized)
	ErrInvalidToken     = fmt.Errorf("%w: invalid token", accounts.ErrUnauthorized)
	ErrInvalidSignature = fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	ErrMalformedToken   = fmt.Errorf("%w: token is malformed", ErrInvalidToken)
	ErrInvalidAudience  = fmt.Errorf("%w: audience does not match", ErrInvalidToken)
)

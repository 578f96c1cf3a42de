package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/accounts"
)

// Claims identify the user a token was issued to, as of issuance.
//
// The registered claims are empty unless Tokens has a TTL,
// so the default payload is exactly {id, email, username, firstname, lastname}.
type Claims struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`

	jwt.RegisteredClaims
}

// ClaimsFor derives Claims from u.
func ClaimsFor(u accounts.User) Claims {
	return Claims{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
	}
}

// GetID implements logger.LogUser.
func (c Claims) GetID() uint { return c.ID }

// GetEmail implements logger.LogUser.
func (c Claims) GetEmail() string { return c.Email }

// Tokens issues and verifies HS256 JWTs signed with a shared secret.
type Tokens struct {
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
	ttl    time.Duration
}

// A TokensOpt configures Tokens.
type TokensOpt func(*Tokens)

// WithTTL adds "iat" and "exp" claims to issued tokens when ttl is positive.
func WithTTL(ttl time.Duration) TokensOpt {
	return func(t *Tokens) {
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// WithNow replaces the clock used to stamp "iat" and "exp".
func WithNow(now func() time.Time) TokensOpt {
	return func(t *Tokens) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTokens constructs a *Tokens signing with secret.
func NewTokens(secret string, opts ...TokensOpt) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf(`%w: secret cannot be ""`, accounts.ErrBadConfig)
	}

	t := &Tokens{
		key:    []byte(secret),
		now:    time.Now,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Issue signs claims into a token.
func (t *Tokens) Issue(claims Claims) (string, error) {
	if t.ttl > 0 {
		now := t.now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("%w: failed signing token: %s", accounts.ErrUnexpected, err)
	}

	return token, nil
}

// Verify checks the signature of token and decodes its Claims.
//
// A structurally invalid token returns ErrMalformedToken.
// A token whose signature does not match, or is signed with another algorithm, returns ErrInvalidSignature.
// Any other failure, such as an expired token, returns ErrInvalidToken.
func (t *Tokens) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrNoToken
	}

	var claims Claims
	_, err := t.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	})

	switch {
	case err == nil:
		return claims, nil

	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, fmt.Errorf("%w: %s", ErrMalformedToken, err)

	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, fmt.Errorf("%w: %s", ErrInvalidSignature, err)

	default:
		return Claims{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
}

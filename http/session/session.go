// Package session carries the session token between the accounts service and its clients in a cookie.
package session

import (
	"fmt"
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
)

const (
	// CookieName names the cookie holding the session token.
	CookieName = "token"

	// DefaultMaxAge is the number of seconds a session cookie lives.
	DefaultMaxAge = 3600
)

// A Transport writes, clears and reads the session cookie.
type Transport struct {
	name string
	opts gorilla.Options
}

// A TransportOpt configures a Transport.
type TransportOpt func(*Transport)

// WithMaxAge sets the number of seconds a session cookie lives.
func WithMaxAge(seconds int) TransportOpt {
	return func(t *Transport) {
		if seconds > 0 {
			t.opts.MaxAge = seconds
		}
	}
}

// NewTransport constructs a Transport for env.
//
// Cookies are HttpOnly, SameSite=Strict and scoped to the whole site.
// They are Secure only in PRODUCTION, so local HTTP clients can still log in.
func NewTransport(env accounts.Environment, opts ...TransportOpt) (Transport, error) {
	if err := env.Valid(); err != nil {
		return Transport{}, fmt.Errorf("%w: %s", accounts.ErrBadConfig, err)
	}

	t := Transport{
		name: CookieName,
		opts: gorilla.Options{
			Path:     "/",
			MaxAge:   DefaultMaxAge,
			Secure:   env.IsProduction(),
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		},
	}
	for _, opt := range opts {
		opt(&t)
	}

	return t, nil
}

// Set writes token into the session cookie.
func (t Transport) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, gorilla.NewCookie(t.name, token, &t.opts))
}

// Clear expires the session cookie.
// A token read before Clear stays valid; only the client forgets it.
func (t Transport) Clear(w http.ResponseWriter) {
	opts := t.opts
	opts.MaxAge = -1
	http.SetCookie(w, gorilla.NewCookie(t.name, "", &opts))
}

// Read retrieves the session token from r.
// A missing or empty cookie returns auth.ErrNoToken.
func (t Transport) Read(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", auth.ErrNoToken
	}

	return c.Value, nil
}

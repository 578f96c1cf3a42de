package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"github.com/xy-planning-network/accounts/http/resp"
	"github.com/xy-planning-network/accounts/http/session"
)

// A SessionReader verifies a session token into its claims.
// *auth.Service implements SessionReader.
type SessionReader interface {
	ReadSession(token string) (auth.Claims, error)
}

// RequireSession reads the session token carried by the request
// and stores the verified auth.Claims in *http.Request.Context under accounts.ClaimsKey.
//
// A request without a token is answered 401 {"msg":"No token found"};
// one whose token fails verification is answered 400 {"msg":"Invalid token","error":...}.
// Neither reaches the wrapped handler.
func RequireSession(t session.Transport, sr SessionReader, d *resp.Responder) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := t.Read(r)
			if err == nil {
				var claims auth.Claims
				claims, err = sr.ReadSession(token)
				if err == nil {
					h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), accounts.ClaimsKey, claims)))
					return
				}
			}

			if errors.Is(err, auth.ErrNoToken) {
				d.Json(w, r, resp.Code(http.StatusUnauthorized), resp.Msg("No token found"))
				return
			}

			d.Json(
				w,
				r,
				resp.Code(http.StatusBadRequest),
				resp.Data(map[string]any{"error": err.Error()}),
				resp.Msg("Invalid token"),
			)
		})
	}
}

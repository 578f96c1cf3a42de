package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/accounts"
)

// RequestIDHeader carries a request's ID in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestID adds an ID to the request context under accounts.RequestIDKey
// and sets it on the response's RequestIDHeader.
//
// A UUID the client or a proxy already sent in RequestIDHeader is kept
// so log lines on either side of the proxy line up.
// Anything else is replaced with a fresh UUID.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.New()
			}

			w.Header().Set(RequestIDHeader, id.String())
			ctx := context.WithValue(r.Context(), accounts.RequestIDKey, id.String())
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

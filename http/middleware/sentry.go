package middleware

import (
	"errors"
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/accounts/http/resp"
)

// ReportPanic reports panics in the wrapped handler to Sentry and panics again,
// leaving the response to Recover.
//
// If dsn is empty, Sentry is not configured and NoopAdapter returns.
func ReportPanic(dsn string) Adapter {
	if dsn == "" {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return sh.Handle
}

// Recover turns a panic in the wrapped handler into a 500 {"error": <message>} response.
// http.ErrAbortHandler is let through so the server can abort the connection.
//
// If d is nil, NoopAdapter returns.
func Recover(d *resp.Responder) Adapter {
	if d == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}

				if errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				d.Err(w, r, err)
			}()

			h.ServeHTTP(w, r)
		})
	}
}

package resp

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
// Data overwrites anything set by a previous Data or Msg.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(r.r, e, r.data))
		}

		r.code = http.StatusInternalServerError
		return nil
	}
}

// KindCode sets the status code matching the accounts.Kind of e.
//
// Failures of the store are logged as Err does;
// every other kind is an expected outcome of a request and is not logged.
func KindCode(e error) Fn {
	return func(d Responder, r *Response) error {
		kind := accounts.KindOf(e)
		if kind == accounts.KindStoreFailure {
			return Err(e)(d, r)
		}

		r.code = StatusFor(kind)
		return nil
	}
}

// Msg sets the "msg" key of the JSON body.
//
// Msg merges into data set by Data if that data is a map[string]any.
// If Data set any other type, Msg returns accounts.ErrNotValid.
func Msg(msg string) Fn {
	return func(_ Responder, r *Response) error {
		if r.data == nil {
			r.data = map[string]any{"msg": msg}
			return nil
		}

		m, ok := r.data.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: cannot set msg on %T", accounts.ErrNotValid, r.data)
		}

		m["msg"] = msg
		return nil
	}
}

// Warn logs msg at warn level alongside e without changing the status code.
func Warn(msg string, e error) Fn {
	return func(d Responder, r *Response) error {
		d.logger.Warn(msg, newLogContext(r.r, e, r.data))
		return nil
	}
}

// StatusFor maps a Kind onto its default HTTP status code.
func StatusFor(k accounts.Kind) int {
	switch k {
	case accounts.KindValidation:
		return http.StatusBadRequest
	case accounts.KindNotFound:
		return http.StatusNotFound
	case accounts.KindConflict:
		return http.StatusConflict
	case accounts.KindAuthFailure:
		return http.StatusUnauthorized
	case "":
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// newLogContext helps structure a logger.LogContext from the provided parts.
// The session claims set under accounts.ClaimsKey, if any, identify the user.
func newLogContext(r *http.Request, err error, data any) *logger.LogContext {
	if r == nil && err == nil && data == nil {
		return nil
	}

	ctx := new(logger.LogContext)
	if r != nil {
		ctx.Request = r
		if u, ok := r.Context().Value(accounts.ClaimsKey).(logger.LogUser); ok {
			ctx.User = u
		}
	}

	if err != nil {
		ctx.Error = err
	}

	if mapped, ok := data.(map[string]any); ok {
		ctx.Data = mapped
	}

	return ctx
}

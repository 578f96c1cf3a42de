package logger

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/xy-planning-network/accounts"
)

const (
	callerTmpl    = "%s:%d"
	logContextKey = "log_context"
)

var _ slog.LogValuer = (*LogContext)(nil)

// LogUser is the interface exposing attributes of a user to a LogContext.
type LogUser interface {
	// GetID retrieves the application's identifier for a user.
	GetID() uint

	// GetEmail retrieves the email address of the user.
	GetEmail() string
}

// A LogContext provides additional information for a [Logger] method
// that cannot be tersely captured in the message itself.
type LogContext struct {
	// Caller overrides the call site with the provided value.
	// Goroutines use it to identify the process that spawned them.
	Caller string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request

	// User is the user whose session was active during the logging event.
	User LogUser
}

// LogValue renders lc as a group, eliding zero-value fields.
// A password query param on the request is masked.
//
// LogValue implements [log/slog.LogValuer].
func (lc *LogContext) LogValue() slog.Value {
	if lc == nil {
		return slog.GroupValue()
	}

	var attrs []slog.Attr
	if len(lc.Data) > 0 {
		data := make([]any, 0, len(lc.Data)*2)
		for k, v := range lc.Data {
			data = append(data, k, v)
		}
		attrs = append(attrs, slog.Group("data", data...))
	}

	if lc.Error != nil {
		attrs = append(attrs, slog.String("error", lc.Error.Error()))
	}

	if lc.Request != nil && lc.Request.URL != nil {
		u := *lc.Request.URL
		q := u.Query()
		accounts.Mask(q, accounts.SecretParams...)
		u.RawQuery = q.Encode()

		attrs = append(attrs, slog.Group(
			"request",
			slog.String("method", lc.Request.Method),
			slog.String("url", u.String()),
		))
	}

	if lc.User != nil {
		var user []any
		if id := lc.User.GetID(); id != 0 {
			user = append(user, slog.Uint64("id", uint64(id)))
		}

		if email := lc.User.GetEmail(); email != "" {
			user = append(user, slog.String("email", email))
		}

		if len(user) > 0 {
			attrs = append(attrs, slog.Group("user", user...))
		}
	}

	return slog.GroupValue(attrs...)
}

// CurrentCaller retrieves the caller of the function calling CurrentCaller,
// formatted for use as LogContext.Caller.
func CurrentCaller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
}

package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// knownFrames skips runtime.Callers, log and the Logger method.
const knownFrames = 3

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)
}

// AccountsLogger implements Logger over a [*log/slog.Logger].
//
// The call site recorded is the caller of the AccountsLogger method,
// unless LogContext.Caller overrides it.
type AccountsLogger struct {
	l *slog.Logger
}

// New constructs an *AccountsLogger writing through l.
// A nil l falls back to [log/slog.Default].
func New(l *slog.Logger) *AccountsLogger {
	if l == nil {
		l = slog.Default()
	}

	return &AccountsLogger{l: l}
}

// Debug writes a debug log.
func (al *AccountsLogger) Debug(msg string, ctx *LogContext) { al.log(slog.LevelDebug, msg, ctx) }

// Error writes an error log.
func (al *AccountsLogger) Error(msg string, ctx *LogContext) { al.log(slog.LevelError, msg, ctx) }

// Info writes an info log.
func (al *AccountsLogger) Info(msg string, ctx *LogContext) { al.log(slog.LevelInfo, msg, ctx) }

// Warn writes a warning log.
func (al *AccountsLogger) Warn(msg string, ctx *LogContext) { al.log(slog.LevelWarn, msg, ctx) }

// Slogger exposes the [*log/slog.Logger] backing al.
func (al *AccountsLogger) Slogger() *slog.Logger { return al.l }

func (al *AccountsLogger) log(level slog.Level, msg string, ctx *LogContext) {
	bg := context.Background()
	if !al.l.Enabled(bg, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(knownFrames, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if ctx != nil {
		if ctx.Caller != "" {
			r.AddAttrs(slog.String("caller", ctx.Caller))
		}

		r.AddAttrs(slog.Any(logContextKey, ctx))
	}

	_ = al.l.Handler().Handle(bg, r)
}

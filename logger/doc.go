/*
Package logger provides structured logging to the accounts service by defining the required behavior in [Logger]
and implementing it over [log/slog] with [AccountsLogger].

# LogContext

Every [Logger] method accepts an optional [*LogContext].
It carries data inessential to the message proper
but that gives a fuller picture of the application state at the time of logging:
an error, the open request, the user whose session was active and free-form data.
A LogContext renders as the "log_context" group.

# Handlers

[TruncSourceAttr], [ColorizeLevel], [DeleteLevelAttr] and [DeleteMessageAttr]
are ReplaceAttr functions for [log/slog.HandlerOptions].
The accounts service composes them into the handlers of its app and HTTP loggers.

# SentryLogger

[SentryLogger] decorates another [Logger], capturing the errors of warnings and errors in Sentry.
*/
package logger

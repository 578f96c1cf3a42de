package middleware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/accounts"
)

// A LogRequestRecord is the set of attributes LogRequest writes for every request.
type LogRequestRecord struct {
	BodySize       int    `json:"bodySize"`
	Host           string `json:"host"`
	ID             string `json:"requestId"`
	IPAddr         string `json:"ipAddr"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer"`
	ReqContentType string `json:"reqContentType"`
	Scheme         string `json:"scheme"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent"`
}

func (rec LogRequestRecord) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("bodySize", rec.BodySize),
		slog.String("host", rec.Host),
		slog.String("requestId", rec.ID),
		slog.String("ipAddr", rec.IPAddr),
		slog.String("method", rec.Method),
		slog.String("path", rec.Path),
		slog.String("protocol", rec.Protocol),
		slog.String("referrer", rec.Referrer),
		slog.String("reqContentType", rec.ReqContentType),
		slog.String("scheme", rec.Scheme),
		slog.Int("status", rec.Status),
		slog.String("uri", rec.URI),
		slog.String("userAgent", rec.UserAgent),
	}
}

// LogRequest writes one info-level line per request to log
// once the wrapped handler has responded.
// The line carries a LogRequestRecord and the time taken to respond.
//
// LogRequest masks the query params named in accounts.SecretParams.
//
// If log is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(log *slog.Logger) Adapter {
	if log == nil {
		return NoopAdapter
	}

	formatter := func(_ io.Writer, params handlers.LogFormatterParams) {
		r := params.Request

		q := params.URL.Query()
		accounts.Mask(q, accounts.SecretParams...)

		uri := params.URL.Path
		if query := q.Encode(); query != "" {
			uri += "?" + query
		}

		rec := LogRequestRecord{
			BodySize:       params.Size,
			Host:           r.Host,
			Method:         r.Method,
			Path:           params.URL.Path,
			Protocol:       r.Proto,
			Referrer:       r.Referer(),
			ReqContentType: r.Header.Get("Content-Type"),
			Scheme:         params.URL.Scheme,
			Status:         params.StatusCode,
			URI:            uri,
			UserAgent:      r.UserAgent(),
		}

		if id, ok := r.Context().Value(accounts.RequestIDKey).(string); ok {
			rec.ID = id
		}

		if ip, ok := r.Context().Value(accounts.IpAddrKey).(string); ok {
			rec.IPAddr = ip
		}

		attrs := append(rec.attrs(), slog.Duration("duration", time.Since(params.TimeStamp)))
		log.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf("%s %s", rec.Method, rec.URI), attrs...)
	}

	return func(h http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, h, formatter)
	}
}

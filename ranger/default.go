package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"github.com/xy-planning-network/accounts/logger"
	"github.com/xy-planning-network/accounts/memory"
	"github.com/xy-planning-network/accounts/postgres"
)

const (
	certFile  = "cert.pem"
	chainFile = "chain.pem"
	keyFile   = "privkey.pem"
)

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
func defaultAppLogger(cfg Config, output io.Writer) (logger.Logger, *slog.Logger) {
	slogger := newSlogger(accounts.AppLogKind, cfg, output)
	var l logger.Logger = logger.New(slogger)
	l.Debug("setting up app logger", nil)
	if cfg.SentryDSN != "" {
		l = logger.NewSentryLogger(cfg.Env, l, cfg.SentryDSN)
		l.Debug("using SentryLogger for app logger", nil)
	}

	return l, slogger
}

// defaultHTTPLogger constructs a [*log/slog.Logger] for the access log.
func defaultHTTPLogger(cfg Config, output io.Writer) *slog.Logger {
	sl := newSlogger(accounts.HTTPLogKind, cfg, output)
	sl.Debug("setting up HTTP logger")

	return sl
}

// newSlogger toggles constructing the specific [*log/slog.Logger]
// from the given parameters.
func newSlogger(kind slog.Value, cfg Config, out io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(cfg.LogLevel)

	useJSON := !cfg.Env.IsDevelopment() || cfg.LogJSON
	isHTTP := kind.String() == accounts.HTTPLogKind.String()

	var handler slog.Handler
	switch {
	case isHTTP:
		opts := &slog.HandlerOptions{
			Level: lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}
		if useJSON {
			handler = slog.NewJSONHandler(out, opts)
		} else {
			handler = slog.NewTextHandler(out, opts)
		}

	case useJSON:
		opts := &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		}
		handler = slog.NewJSONHandler(out, opts)

	default:
		opts := &tint.Options{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: "2006-01-02 15:04:05.000",
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.ColorizeLevel(groups, a)
				return logger.TruncSourceAttr(groups, a)
			},
		}
		handler = tint.NewHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		{Key: accounts.LogKindKey, Value: kind},
	})

	return slog.New(handler)
}

// defaultUserStore connects to the database cfg names and returns a store backed by it.
// Without a database, environments allowing service stubs fall back to the in-memory store.
func defaultUserStore(cfg Config, l logger.Logger, slogger *slog.Logger) (accounts.UserStore, *postgres.DB, error) {
	pgCfg := cfg.PostgresConfig()
	if pgCfg.Configured() {
		db, err := postgres.Connect(pgCfg, postgres.Migrations(), cfg.Env, slogger)
		if err != nil {
			return nil, nil, err
		}

		return postgres.NewUserStore(db), db, nil
	}

	if !cfg.Env.CanUseServiceStub() {
		return nil, nil, fmt.Errorf("%w: no database configured for %s", accounts.ErrBadConfig, cfg.Env)
	}

	l.Warn("no database configured, storing users in memory", nil)

	return memory.NewUserStore(), nil, nil
}

// seed creates the user described by cfg.Seed unless one with that email exists.
func seed(ctx context.Context, service *auth.Service, cfg SeedConfig, l logger.Logger) error {
	if cfg.Email == "" {
		return nil
	}

	_, err := service.Signup(ctx, cfg.NewUser())
	if errors.Is(err, accounts.ErrExists) {
		l.Debug("seed user exists", &logger.LogContext{Data: map[string]any{"email": cfg.Email}})
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed seeding user: %w", err)
	}

	l.Info("seeded user", &logger.LogContext{Data: map[string]any{"email": cfg.Email}})

	return nil
}

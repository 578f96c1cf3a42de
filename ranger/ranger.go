package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"github.com/xy-planning-network/accounts/http/handler"
	"github.com/xy-planning-network/accounts/http/middleware"
	"github.com/xy-planning-network/accounts/http/resp"
	"github.com/xy-planning-network/accounts/http/router"
	"github.com/xy-planning-network/accounts/http/session"
	"github.com/xy-planning-network/accounts/logger"
	"github.com/xy-planning-network/accounts/postgres"
)

const shutdownTimeout = 5 * time.Second

// A Ranger wires together and runs every component of the accounts service.
type Ranger struct {
	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc
	db     *postgres.DB
	errLog *log.Logger
	l      logger.Logger
	router *router.Router
	srvs   []*http.Server

	identities  auth.IdentityVerifier
	out         io.Writer
	serviceOpts []auth.ServiceOpt
	users       accounts.UserStore
}

// New constructs a *Ranger from cfg.
// opts apply before any component is built and override what cfg would otherwise configure.
func New(cfg Config, opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{cfg: cfg, out: os.Stdout}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.ctx, r.cancel = context.WithCancel(context.Background())

	var slogger *slog.Logger
	r.l, slogger = defaultAppLogger(cfg, r.out)
	r.errLog = slog.NewLogLogger(slogger.Handler(), slog.LevelError)
	httpLog := defaultHTTPLogger(cfg, r.out)

	if r.users == nil {
		users, db, err := defaultUserStore(cfg, r.l, slogger)
		if err != nil {
			return nil, err
		}
		r.users, r.db = users, db
	}

	service, err := r.newService()
	if err != nil {
		return nil, err
	}

	if err := seed(r.ctx, service, cfg.Seed, r.l); err != nil {
		return nil, err
	}

	transport, err := session.NewTransport(cfg.Env)
	if err != nil {
		return nil, err
	}

	d := resp.NewResponder(resp.WithLogger(r.l))

	r.router = router.New()
	r.router.OnEveryRequest(
		middleware.RequestID(),
		middleware.InjectIPAddress(cfg.IPHeaders...),
		middleware.LogRequest(httpLog),
		middleware.CORS(cfg.ClientURL),
		middleware.Recover(d),
		middleware.ReportPanic(cfg.SentryDSN),
	)
	handler.New(r.users, service, transport, d).Register(r.router)

	if err := r.newServers(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Ranger) newService() (*auth.Service, error) {
	tokens, err := auth.NewTokens(r.cfg.Secret, auth.WithTTL(r.cfg.TokenTTL))
	if err != nil {
		return nil, err
	}

	opts := r.serviceOpts
	if r.identities == nil && r.cfg.GoogleClientID != "" {
		v, err := auth.NewGoogleVerifier(r.ctx, r.cfg.GoogleClientID)
		if err != nil {
			return nil, err
		}
		r.identities = v
	}

	if r.identities != nil {
		opts = append(opts, auth.WithIdentityVerifier(r.identities))
	} else {
		r.l.Info("GOOGLE_CLIENT_ID not set, federated login disabled", nil)
	}

	return auth.NewService(r.users, tokens, opts...)
}

func (r *Ranger) newServers() error {
	r.srvs = []*http.Server{r.newServer(r.cfg.Port)}
	if r.cfg.PortHTTPS == "" {
		return nil
	}

	tlsCfg, err := loadTLSConfig(r.cfg.CertDir)
	if err != nil {
		return err
	}

	srv := r.newServer(r.cfg.PortHTTPS)
	srv.TLSConfig = tlsCfg
	r.srvs = append(r.srvs, srv)

	return nil
}

func (r *Ranger) newServer(port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      r.router,
		ReadTimeout:  r.cfg.ReadTimeout,
		WriteTimeout: r.cfg.WriteTimeout,
		IdleTimeout:  r.cfg.IdleTimeout,
		ErrorLog:     r.errLog,
	}
}

// Handler exposes the fully wired router.
func (r *Ranger) Handler() http.Handler { return r.router }

// Logger exposes the app logger.
func (r *Ranger) Logger() logger.Logger { return r.l }

// Cancel stops a running Guide.
func (r *Ranger) Cancel() { r.cancel() }

// Guide begins the web servers: HTTP always and HTTPS when PORTHTTPS is set.
//
// These, (*Ranger).Cancel, and a listener failing stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	errs := make(chan error, len(r.srvs))
	for _, srv := range r.srvs {
		go func(srv *http.Server) {
			var err error
			if srv.TLSConfig != nil {
				r.l.Info(fmt.Sprintf("running web server at %s (https)", srv.Addr), nil)
				err = srv.ListenAndServeTLS("", "")
			} else {
				r.l.Info(fmt.Sprintf("running web server at %s", srv.Addr), nil)
				err = srv.ListenAndServe()
			}

			if !errors.Is(err, http.ErrServerClosed) {
				err = fmt.Errorf("could not listen: %w", err)
				r.l.Error(err.Error(), nil)
				errs <- err
			}
		}(srv)
	}

	r.l.Info(fmt.Sprintf("accounts service available at %s:%s", r.cfg.ServerURL, r.cfg.Port), nil)

	var err error
	select {
	case <-r.ctx.Done():
	case err = <-errs:
		r.cancel()
	}

	return errors.Join(err, r.Shutdown())
}

// Shutdown shuts down the web servers and closes the database connection.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)

	var errs []error
	for _, srv := range r.srvs {
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, fmt.Errorf("could not shutdown %s: %w", srv.Addr, err))
		}
	}

	if r.db != nil {
		if sqlDB, err := r.db.DB().DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

// Migrate connects to the database cfg names and runs every migration.
func Migrate(cfg Config, out io.Writer) error {
	_, slogger := defaultAppLogger(cfg, out)

	db, err := postgres.Connect(cfg.PostgresConfig(), postgres.Migrations(), cfg.Env, slogger)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB().DB()
	if err != nil {
		return fmt.Errorf("%w: %s", accounts.ErrUnexpected, err)
	}

	return sqlDB.Close()
}

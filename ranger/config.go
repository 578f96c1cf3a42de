package ranger

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"github.com/xy-planning-network/accounts/postgres"
)

const (
	envPathEnvVar  = "ENV_PATH"
	defaultEnvPath = ".env"
)

// Config holds everything an accounts service reads from its environment.
type Config struct {
	Env            accounts.Environment `env:"ENVIRONMENT" envDefault:"DEVELOPMENT"`
	Secret         string               `env:"SECRET"`
	TokenTTL       time.Duration        `env:"TOKEN_TTL" envDefault:"0s"`
	GoogleClientID string               `env:"GOOGLE_CLIENT_ID"`

	ClientURL string `env:"URL_CLIENT" envDefault:"http://localhost:5173"`
	ServerURL string `env:"URL_SERVER" envDefault:"http://localhost"`

	Port         string        `env:"PORT" envDefault:"3000"`
	PortHTTPS    string        `env:"PORTHTTPS"`
	CertDir      string        `env:"CERT_DIR" envDefault:"certs"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"5s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`

	// IPHeaders are the request headers a trusted proxy sets with the client's address.
	IPHeaders []string `env:"TRUSTED_IP_HEADERS" envDefault:"X-Forwarded-For,X-Real-Ip" envSeparator:","`

	DB DBConfig `envPrefix:"DATABASE_"`

	// DB_URL and PASSWORD_SERVER name the database the way earlier deployments did.
	LegacyDBURL      string `env:"DB_URL"`
	LegacyDBPassword string `env:"PASSWORD_SERVER"`

	Seed SeedConfig

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogJSON   bool       `env:"LOG_JSON" envDefault:"false"`
	SentryDSN string     `env:"SENTRY_DSN"`
}

// DBConfig holds the DATABASE_* variables.
type DBConfig struct {
	URL         string `env:"URL"`
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        string `env:"PORT" envDefault:"5432"`
	Name        string `env:"NAME"`
	User        string `env:"USER"`
	Password    string `env:"PASSWORD"`
	SSLMode     string `env:"SSLMODE" envDefault:"prefer"`
	MaxIdleCxns int    `env:"MAX_IDLE_CXNS" envDefault:"1"`
}

// SeedConfig describes the user created on startup when Email is set.
type SeedConfig struct {
	Email     string `env:"SEED_EMAIL"`
	Firstname string `env:"SEED_FIRSTNAME"`
	Lastname  string `env:"SEED_LASTNAME"`
	Username  string `env:"SEED_USERNAME"`
	Password  string `env:"PASSWORD_DB_EXAMPLE"`
}

// LoadConfig reads the env file named by ENV_PATH (default: .env) into the process environment
// and parses a Config from it.
// A missing env file is not an error.
func LoadConfig() (Config, error) {
	path := os.Getenv(envPathEnvVar)
	if path == "" {
		path = defaultEnvPath
	}

	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: failed loading %s: %s", accounts.ErrBadConfig, path, err)
	}

	return ParseConfig(nil)
}

// ParseConfig parses a Config from environ, or from the process environment when environ is nil.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	parse := func() error { return env.Parse(&cfg) }
	if environ != nil {
		parse = func() error { return env.ParseWithOptions(&cfg, env.Options{Environment: environ}) }
	}

	if err := parse(); err != nil {
		return Config{}, fmt.Errorf("%w: %s", accounts.ErrBadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("%w: SECRET is required", accounts.ErrBadConfig)
	}

	if c.Port == "" {
		return fmt.Errorf("%w: PORT cannot be empty", accounts.ErrBadConfig)
	}

	if c.Seed.Email != "" && c.Seed.Password == "" {
		return fmt.Errorf("%w: SEED_EMAIL requires PASSWORD_DB_EXAMPLE", accounts.ErrBadConfig)
	}

	return nil
}

// PostgresConfig builds the connection config for the database c names.
//
// DATABASE_URL wins, then the legacy DB_URL form, then the DATABASE_* parts.
func (c Config) PostgresConfig() *postgres.CxnConfig {
	cfg := &postgres.CxnConfig{
		MaxIdleCxns: c.DB.MaxIdleCxns,
		Host:        c.DB.Host,
		Port:        c.DB.Port,
		Name:        c.DB.Name,
		User:        c.DB.User,
		Password:    c.DB.Password,
		SSLMode:     c.DB.SSLMode,
	}

	switch {
	case c.DB.URL != "":
		cfg.URL = c.DB.URL

	case c.LegacyDBURL != "":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword("postgres", c.LegacyDBPassword),
			Host:   c.LegacyDBURL,
			Path:   "/postgres",
		}
		cfg.URL = u.String()
	}

	return cfg
}

// NewUser returns the seed user as auth.NewUser.
func (s SeedConfig) NewUser() auth.NewUser {
	return auth.NewUser{
		Email:     s.Email,
		Firstname: s.Firstname,
		Lastname:  s.Lastname,
		Username:  s.Username,
		Password:  s.Password,
	}
}

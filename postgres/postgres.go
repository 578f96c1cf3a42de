package postgres

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xy-planning-network/accounts"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

// CxnConfig holds connection information used to connect to a PostgreSQL database.
//
// URL takes precedence over the individual parts.
type CxnConfig struct {
	IsTestDB    bool
	MaxIdleCxns int
	URL         string
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
}

// Configured asserts whether c names a database: either a URL or a database name.
func (c *CxnConfig) Configured() bool {
	return c != nil && (c.URL != "" || c.Name != "")
}

// Connect opens a database connection through GORM according to config and runs migrations.
// GORM's warnings and slow queries are written to log at warn level.
//
// If config.IsTestDB is set, the public schema is dropped first.
func Connect(config *CxnConfig, migrations []Migration, env accounts.Environment, log *slog.Logger) (*DB, error) {
	if !config.Configured() {
		return nil, fmt.Errorf("%w: no database configured", accounts.ErrBadConfig)
	}

	if log == nil {
		log = slog.Default()
	}

	// https://gorm.io/docs/logger.html
	c := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  env.IsDevelopment(),
	}

	gdb, err := gorm.Open(postgres.Open(buildCxnStr(config)), &gorm.Config{
		Logger: logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), c),
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed connecting: %s", accounts.ErrBadConfig, err)
	}

	if config.MaxIdleCxns > 0 {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", accounts.ErrUnexpected, err)
		}
		sqlDB.SetMaxIdleConns(config.MaxIdleCxns)
	}

	if config.IsTestDB {
		if err := gdb.Exec("DROP SCHEMA IF EXISTS public CASCADE;").Error; err != nil {
			return nil, fmt.Errorf("%w: %s", accounts.ErrUnexpected, err)
		}
	}

	if err := MigrateUp(gdb, "public", migrations); err != nil {
		return nil, err
	}

	return NewDB(gdb), nil
}

func buildCxnStr(config *CxnConfig) string {
	if config.URL != "" {
		return config.URL
	}

	sslMode := config.SSLMode
	if sslMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		config.Host,
		config.Port,
		config.Name,
		config.User,
		config.Password,
		sslMode,
	)
}

// WipeDB truncates every table in schema.
func WipeDB(db *gorm.DB, schema string) error {
	var tables []string
	err := db.
		Table("information_schema.tables").
		Select("table_name").
		Where("table_schema = ?", schema).
		Not("table_type = ?", "VIEW").
		Pluck("table_name", &tables).
		Error
	if err != nil {
		return err
	}

	if len(tables) == 0 {
		return nil
	}

	return db.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE;", strings.Join(tables, ", "))).Error
}

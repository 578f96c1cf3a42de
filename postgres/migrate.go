package postgres

import (
	"fmt"
	"slices"
	"time"

	"github.com/xy-planning-network/accounts"
	"gorm.io/gorm"
)

// A Migration is one keyed schema change.
// Keys are recorded in the migrations table once their Executor succeeds
// and never run again.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

func (m Migration) execute(db *gorm.DB) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := m.Executor(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

// MigrateUp ensures schema and the migrations table exist
// and runs, in order, each of migrations not yet recorded.
func MigrateUp(db *gorm.DB, schema string, migrations []Migration) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("%w: failed creating schema %s: %s", accounts.ErrUnexpected, schema, err)
	}

	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("%w: failed creating migrations table: %s", accounts.ErrUnexpected, err)
	}

	var ran []string
	if err := db.Raw("SELECT key FROM migrations").Scan(&ran).Error; err != nil {
		return fmt.Errorf("%w: failed fetching ran migrations: %s", accounts.ErrUnexpected, err)
	}

	for _, m := range migrations {
		if slices.Contains(ran, m.Key) {
			continue
		}

		if err := m.execute(db); err != nil {
			return fmt.Errorf("%w: migration %s failed: %s", accounts.ErrUnexpected, m.Key, err)
		}

		err := db.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, m.Key, time.Now().Unix()).Error
		if err != nil {
			return fmt.Errorf("%w: failed recording migration %s: %s", accounts.ErrUnexpected, m.Key, err)
		}
	}

	return nil
}

// Migrations lists the schema of the accounts service, oldest first.
func Migrations() []Migration {
	return []Migration{
		{
			Key: "20240301_create_users",
			Executor: func(tx *gorm.DB) error {
				return tx.Exec(`
					CREATE TABLE IF NOT EXISTS users (
						id SERIAL PRIMARY KEY,
						firstname VARCHAR(30) NOT NULL,
						lastname VARCHAR(30) NOT NULL,
						username VARCHAR(30) NOT NULL,
						email VARCHAR(50) NOT NULL,
						password VARCHAR(255),
						CONSTRAINT users_email_key UNIQUE (email)
					)
				`).Error
			},
		},
	}
}

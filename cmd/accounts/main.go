package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/xy-planning-network/accounts/ranger"
)

func main() {
	app := &cli.App{
		Name:  "accounts",
		Usage: "Sign up, log in and manage the users of XYPN apps",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("accounts failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API until interrupted",
		Action: func(_ *cli.Context) error {
			cfg, err := ranger.LoadConfig()
			if err != nil {
				return err
			}

			r, err := ranger.New(cfg)
			if err != nil {
				return fmt.Errorf("failed starting: %w", err)
			}

			return r.Guide()
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply every database migration and exit",
		Action: func(_ *cli.Context) error {
			cfg, err := ranger.LoadConfig()
			if err != nil {
				return err
			}

			return ranger.Migrate(cfg, os.Stdout)
		},
	}
}

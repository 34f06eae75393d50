package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Logger     *logrus.Logger
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the migration-index CLI application with the given
// version and command-line arguments.
//
// The application registers every command provided in the "commands" group
// and handles two global flags:
//   - --dir, -d: Laravel project directory (defaults to current directory)
//   - --log-level: debug, info, warn or error (defaults to info)
//
// The working directory is changed to --dir before any command runs, so
// configuration and migration paths resolve against the project root.
//
// Example usage:
//
//	migration-index index
//	migration-index --dir /path/to/app index --type tenant --refresh
//	migration-index --log-level debug inspect database/migrations/2024_01_15_100000_create_users_table.php
//
// When the command fails, the error is logged and the application shuts down
// with exit code 1.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "migration-index",
		Usage: "Index Laravel migrations into searchable reports",
		Description: `migration-index analyzes the migration files of a Laravel project and
writes markdown reports (by type, by table, by operation) plus a JSON summary
that make the database history searchable.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the Laravel project directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := logrus.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, errors.Wrap(err, "invalid log level")
			}
			p.Logger.SetLevel(level)

			if err := os.Chdir(cmd.String("dir")); err != nil {
				return ctx, errors.Wrap(err, "failed to change to project directory")
			}

			return ctx, nil
		},
		Commands: p.Commands,
	}

	// watch runs until interrupted, so the command cannot block the start hook
	p.Lifecycle.Append(fx.StartHook(func() {
		go func() {
			if err := app.Run(p.Ctx, p.Args); err != nil {
				p.Logger.WithError(err).Error("Error running command")
				_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				return
			}

			_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
		}()
	}))
}

// newLogger creates the logger shared by all commands. The level is adjusted
// from --log-level before a command runs.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return logger
}

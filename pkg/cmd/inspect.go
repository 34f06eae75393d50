package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/analyzer"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/pseudomuto/migrationindex/pkg/format"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// inspect returns a CLI command that analyzes a single migration file and
// prints its full-detail section without writing any report.
//
// Example usage:
//
//	migration-index inspect database/migrations/2024_01_15_100000_create_users_table.php
//	migration-index inspect --category tenant database/tenant/2024_02_01_000000_add_plan.php
func inspect(load config.Loader, logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Analyze a single migration and print its details",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "migration type label attached to the result",
				Value: consts.DefaultMigrationType,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("a migration FILE is required")
			}

			ws, err := loadWorkspace(load)
			if err != nil {
				return err
			}

			abs := ws.project.Path(path)
			logger.WithField("path", abs).Debug("inspecting migration")

			f, err := ws.analyzer.AnalyzeFile(analyzer.Input{
				Path:         abs,
				RelativePath: ws.project.Rel(abs),
				Category:     cmd.String("category"),
			})
			if err != nil {
				return errors.Wrapf(err, "failed to analyze %s", path)
			}

			return format.NewDefault().Migration(output(cmd), f)
		},
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/analyzer"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/format"
	"github.com/pseudomuto/migrationindex/pkg/index"
	"github.com/pseudomuto/migrationindex/pkg/project"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type (
	indexOptions struct {
		Type    string
		Refresh bool
		Output  string
		Workers int
	}

	typeCount struct {
		Name  string
		Count int
	}

	indexResult struct {
		OutputDir string
		Types     []typeCount
		Facts     []*fact.Fact
		Failures  int
		Files     []index.GeneratedFile
	}

	// indexer runs a complete indexing pass for a workspace.
	indexer struct {
		ws     *workspace
		logger *logrus.Logger
		now    func() time.Time
	}
)

// indexCmd returns a CLI command that analyzes every configured migration type
// and writes the reports.
//
// The indexing process:
//  1. Removes the output directory when --refresh is given
//  2. Discovers and analyzes the migrations of each selected type
//  3. Renders the full, by-type, by-table and by-operation reports plus stats.json
//  4. Copies SKILL.md into the output directory unless it already exists
//  5. Prints the generated files and a per-type summary
//
// Files that cannot be analyzed are logged and skipped; they never fail the run.
//
// Example usage:
//
//	# Index every migration type
//	migration-index index
//
//	# Rebuild the index of a single type into a custom directory
//	migration-index index --type tenant --refresh --output docs/migrations
func indexCmd(load config.Loader, logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Index all migrations and generate the reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "only index the named migration type",
			},
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "remove the existing index before generating",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output directory (overrides output_path)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of files analyzed concurrently (overrides workers)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ws, err := loadWorkspace(load)
			if err != nil {
				return err
			}

			ix := &indexer{ws: ws, logger: logger, now: time.Now}
			_, err = ix.run(ctx, output(cmd), indexOptions{
				Type:    cmd.String("type"),
				Refresh: cmd.Bool("refresh"),
				Output:  cmd.String("output"),
				Workers: int(cmd.Int("workers")),
			})

			return err
		},
	}
}

func (ix *indexer) run(ctx context.Context, w io.Writer, opts indexOptions) (*indexResult, error) {
	start := ix.now()

	types, err := selectTypes(ix.ws.config, opts.Type)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(w, "🔍 Starting Laravel migration indexing...")
	fmt.Fprintln(w)

	res := &indexResult{OutputDir: ix.ws.project.OutputDir(opts.Output)}

	if opts.Refresh {
		removed, err := ix.ws.project.Refresh(res.OutputDir)
		if err != nil {
			return nil, err
		}
		if removed {
			fmt.Fprintln(w, "Cleaning existing index...")
		}
	}

	a := ix.ws.analyzer.WithWorkers(opts.Workers)
	for _, mt := range types {
		fmt.Fprintf(w, "📂 Indexing migrations: %s\n", mt.Name)

		facts, failed, err := ix.indexType(ctx, w, a, mt)
		if err != nil {
			return nil, err
		}

		res.Failures += failed
		res.Facts = append(res.Facts, facts...)
		res.Types = append(res.Types, typeCount{Name: mt.Name, Count: len(facts)})
		fmt.Fprintf(w, "   Found: %d migrations\n", len(facts))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "📊 Total found: %d migrations\n", len(res.Facts))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "📝 Generating index files...")

	formatter := format.New(&format.FormatterOptions{GeneratedAt: ix.now()})
	res.Files, err = index.NewGenerator(res.OutputDir, formatter, nil).Generate(res.Facts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate index")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "✅ Generated files:")
	for _, f := range res.Files {
		fmt.Fprintf(w, "   - %s: %s (%s)\n", f.Report, f.Path, formatSize(f.Size))
	}

	installed, err := ix.ws.project.InstallSkill(res.OutputDir)
	switch {
	case errors.Cause(err) == project.ErrTemplateNotFound:
		fmt.Fprintln(w, "   SKILL.md template not found - check skill_template_path")
		ix.logger.WithError(err).Warn("SKILL.md template not found")
	case err != nil:
		return nil, err
	case installed:
		fmt.Fprintln(w, "📋 Copied SKILL.md template")
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "⏱️  Execution time: %.2fs\n", ix.now().Sub(start).Seconds())
	fmt.Fprintln(w)

	printSummary(w, res)
	return res, nil
}

// indexType analyzes the migrations of a single type. A missing directory is
// reported and yields no Facts.
func (ix *indexer) indexType(ctx context.Context, w io.Writer, a *analyzer.Analyzer, mt *config.MigrationType) ([]*fact.Fact, int, error) {
	log := ix.logger.WithField("category", mt.Name)

	inputs, err := ix.ws.project.Discover(mt)
	if errors.Cause(err) == project.ErrMissingDir {
		fmt.Fprintf(w, "   Directory doesn't exist: %s\n", ix.ws.project.Path(mt.Path))
		log.WithField("path", mt.Path).Warn("migration directory does not exist")
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	started := time.Now()
	facts, failures, err := a.AnalyzeAll(ctx, inputs)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "indexing %s interrupted", mt.Name)
	}

	for _, f := range failures {
		fmt.Fprintf(w, "   Error analyzing %s: %v\n", ix.ws.project.Rel(f.Path), f.Err)
		log.WithField("path", f.Path).WithError(f.Err).Warn("failed to analyze migration")
	}

	log.WithFields(logrus.Fields{
		"files":    len(inputs),
		"failures": len(failures),
		"elapsed":  time.Since(started),
	}).Debug("analyzed migration type")

	return facts, len(failures), nil
}

func printSummary(w io.Writer, res *indexResult) {
	fmt.Fprintln(w, "📈 Summary:")
	fmt.Fprintln(w)

	rows := make([][]string, len(res.Types))
	for i, tc := range res.Types {
		rows[i] = []string{tc.Name, strconv.Itoa(tc.Count)}
	}
	printTable(w, []string{"Type", "Migrations Count"}, rows)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "💡 Index is available at: %s\n", res.OutputDir)
	fmt.Fprintln(w, "   To refresh the index: migration-index index --refresh")
	fmt.Fprintln(w, "   To index a specific type: migration-index index --type=default")
}

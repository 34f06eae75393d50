package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/hbollon/go-edlib"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/analyzer"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/project"
	"github.com/urfave/cli/v3"
)

// suggestionThreshold is the lowest Levenshtein similarity offered as a
// "did you mean" suggestion.
const suggestionThreshold = 0.5

// workspace bundles what a command needs once the configuration is resolved.
type workspace struct {
	config   *config.Config
	project  *project.Project
	analyzer *analyzer.Analyzer
}

// loadWorkspace resolves the configuration and builds the project rooted at
// the working directory.
func loadWorkspace(load config.Loader) (*workspace, error) {
	cfg, err := load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current working directory")
	}

	return &workspace{
		config:  cfg,
		project: project.New(project.ProjectParams{Dir: pwd, Config: cfg}),
		analyzer: analyzer.New(analyzer.Params{
			MaxFileSize: cfg.MaxFileSize,
			Workers:     cfg.Workers,
		}),
	}, nil
}

// selectTypes returns the migration type called name, or every type when name
// is empty. Unknown names produce an error listing the available types.
func selectTypes(cfg *config.Config, name string) ([]*config.MigrationType, error) {
	if name == "" {
		return cfg.MigrationTypes, nil
	}

	if mt, ok := cfg.Type(name); ok {
		return []*config.MigrationType{mt}, nil
	}

	names := cfg.TypeNames()
	msg := fmt.Sprintf("Invalid type: %s\nAvailable types: %s", name, strings.Join(names, ", "))
	if suggestion := suggest(name, names); suggestion != "" {
		msg += fmt.Sprintf("\nDid you mean %q?", suggestion)
	}

	return nil, errors.New(msg)
}

// suggest returns the candidate closest to input, or an empty string when none
// is similar enough.
func suggest(input string, candidates []string) string {
	match, err := edlib.FuzzySearchThreshold(input, candidates, suggestionThreshold, edlib.Levenshtein)
	if err != nil {
		return ""
	}

	return match
}

// formatSize renders a byte count for humans, e.g. "1.5 KiB".
func formatSize(size int64) string {
	if size < 0 {
		size = 0
	}

	return humanize.IBytes(uint64(size))
}

// output returns the writer commands print to.
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

// printTable writes rows aligned in columns under the given headers.
func printTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	fmt.Fprintln(tw, "   "+strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, "   "+strings.Join(row, "\t"))
	}

	_ = tw.Flush()
}

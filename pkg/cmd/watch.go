package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// defaultDebounce is how long the watcher waits for changes to settle.
const defaultDebounce = 500 * time.Millisecond

// watch returns a CLI command that indexes once, then re-indexes whenever a
// migration file changes until interrupted.
//
// Bursts of events (editors often write a file several times) are coalesced:
// indexing starts once no event arrived for --debounce. Changes to the output
// directory never trigger a run.
//
// Example usage:
//
//	migration-index watch
//	migration-index watch --type default --debounce 2s
func watch(load config.Loader, logger *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-index whenever migrations change",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "only watch and index the named migration type",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "quiet period before re-indexing",
				Value: defaultDebounce,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output directory (overrides output_path)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ws, err := loadWorkspace(load)
			if err != nil {
				return err
			}

			types, err := selectTypes(ws.config, cmd.String("type"))
			if err != nil {
				return err
			}

			w := &watcher{
				indexer:  &indexer{ws: ws, logger: logger, now: time.Now},
				logger:   logger,
				types:    types,
				debounce: cmd.Duration("debounce"),
				opts: indexOptions{
					Type:   cmd.String("type"),
					Output: cmd.String("output"),
				},
			}

			return w.run(ctx, output(cmd))
		},
	}
}

type watcher struct {
	indexer  *indexer
	logger   *logrus.Logger
	types    []*config.MigrationType
	debounce time.Duration
	opts     indexOptions

	// ran is notified after every indexing pass. Used by tests.
	ran chan<- struct{}
}

// run indexes once and then on every settled batch of changes. It returns nil
// when ctx is cancelled.
func (w *watcher) run(ctx context.Context, out io.Writer) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	proj := w.indexer.ws.project
	dirs, err := proj.MigrationDirs(w.types)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
		w.logger.WithField("path", dir).Debug("watching directory")
	}

	outputDir := proj.OutputDir(w.opts.Output)

	w.index(ctx, out)
	fmt.Fprintf(out, "👀 Watching %d directories for changes (Ctrl+C to stop)\n", len(dirs))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if isWithin(event.Name, outputDir) {
				continue
			}

			// new subdirectories may hold migrations too
			if event.Has(fsnotify.Create) {
				_ = addIfDir(fsw, event.Name)
			}

			w.logger.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("change detected")
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("file watcher error")

		case <-timer.C:
			fmt.Fprintln(out)
			fmt.Fprintln(out, "🔄 Changes detected, re-indexing...")
			w.index(ctx, out)
		}
	}
}

// index runs a pass, logging instead of returning failures so the watcher
// keeps running.
func (w *watcher) index(ctx context.Context, out io.Writer) {
	if _, err := w.indexer.run(ctx, out, w.opts); err != nil && ctx.Err() == nil {
		w.logger.WithError(err).Error("indexing failed")
	}

	if w.ran != nil {
		select {
		case w.ran <- struct{}{}:
		case <-ctx.Done():
		}
	}
}

func addIfDir(fsw *fsnotify.Watcher, path string) error {
	if !isDir(path) {
		return nil
	}

	return fsw.Add(path)
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

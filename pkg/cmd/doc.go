// Package cmd provides CLI commands for the migration-index tool.
//
// This package implements the command-line interface that turns the
// migrations of a Laravel project into searchable reports. Each command is a
// factory returning a *cli.Command (urfave/cli/v3) and is registered through
// fx in the "commands" group.
//
// # Available Commands
//
//   - index: analyze every configured migration type and write the reports
//   - inspect: analyze one migration file and print its details
//   - watch: index, then re-index whenever migrations change
//
// # Global Options
//
// All commands support global flags:
//   - --dir, -d: Laravel project directory (defaults to current directory)
//   - --log-level: debug, info, warn or error (defaults to info)
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Configuration
//
// Commands resolve migration-index.yaml (or the file named by
// MIGRATION_INDEX_CONFIG) from the project directory after --dir has been
// applied. Without a config file the standard Laravel layout is indexed:
// database/migrations into .claude/skills/laravel-migration-searcher.
//
// # Example Usage
//
//	migration-index index                          # Index every migration type
//	migration-index index --type tenant --refresh  # Rebuild one type from scratch
//	migration-index index -o docs/migrations       # Write reports elsewhere
//	migration-index inspect path/to/migration.php  # Print a single migration
//	migration-index watch --debounce 1s            # Keep the index up to date
//
// Progress is printed to standard output while diagnostics go through a
// logrus logger on standard error. Files that cannot be analyzed are reported
// and skipped; they never fail a run.
package cmd

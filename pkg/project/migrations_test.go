package project_test

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/analyzer"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/project"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	proj, dir := newProject(t, nil)
	migrations := filepath.Join(dir, "database", "migrations")

	writeFile(t, filepath.Join(migrations, "2024_02_01_000000_b.php"), "<?php")
	writeFile(t, filepath.Join(migrations, "2024_01_01_000000_a.php"), "<?php")
	writeFile(t, filepath.Join(migrations, "README.md"), "docs")
	writeFile(t, filepath.Join(migrations, "tenant", "2024_03_01_000000_c.php"), "<?php")
	writeFile(t, filepath.Join(migrations, "archive", "2020_01_01_000000_old.php"), "<?php")

	t.Run("default include", func(t *testing.T) {
		mt, ok := proj.Config().Type("default")
		require.True(t, ok)

		inputs, err := proj.Discover(mt)
		require.NoError(t, err)
		require.Equal(t, []analyzer.Input{
			{
				Path:         filepath.Join(migrations, "2024_01_01_000000_a.php"),
				RelativePath: "database/migrations/2024_01_01_000000_a.php",
				Category:     "default",
			},
			{
				Path:         filepath.Join(migrations, "2024_02_01_000000_b.php"),
				RelativePath: "database/migrations/2024_02_01_000000_b.php",
				Category:     "default",
			},
		}, inputs)
	})

	t.Run("recursive include with exclude", func(t *testing.T) {
		mt := &config.MigrationType{
			Name:    "all",
			Path:    "database/migrations",
			Include: []string{"**/*.php", "*.php"},
			Exclude: []string{"archive/**"},
		}

		inputs, err := proj.Discover(mt)
		require.NoError(t, err)

		var rel []string
		for _, in := range inputs {
			require.Equal(t, "all", in.Category)
			rel = append(rel, in.RelativePath)
		}

		require.Equal(t, []string{
			"database/migrations/2024_01_01_000000_a.php",
			"database/migrations/2024_02_01_000000_b.php",
			"database/migrations/tenant/2024_03_01_000000_c.php",
		}, rel)
	})

	t.Run("empty include falls back to php files", func(t *testing.T) {
		inputs, err := proj.Discover(&config.MigrationType{Name: "x", Path: "database/migrations"})
		require.NoError(t, err)
		require.Len(t, inputs, 2)
	})

	t.Run("missing directory", func(t *testing.T) {
		inputs, err := proj.Discover(&config.MigrationType{Name: "x", Path: "nope"})
		require.Error(t, err)
		require.Nil(t, inputs)
		require.Equal(t, project.ErrMissingDir, errors.Cause(err))
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := proj.Discover(&config.MigrationType{Name: "x", Path: "database/migrations/README.md"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "is not a directory")
	})

	t.Run("invalid patterns", func(t *testing.T) {
		_, err := proj.Discover(&config.MigrationType{Name: "x", Path: "database/migrations", Include: []string{"[*.php"}})
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid include pattern")

		_, err = proj.Discover(&config.MigrationType{Name: "x", Path: "database/migrations", Exclude: []string{"[*.php"}})
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid exclude pattern")
	})
}

func TestMigrationDirs(t *testing.T) {
	proj, dir := newProject(t, nil)
	migrations := filepath.Join(dir, "database", "migrations")
	writeFile(t, filepath.Join(migrations, "tenant", "a.php"), "<?php")

	dirs, err := proj.MigrationDirs([]*config.MigrationType{
		{Name: "default", Path: "database/migrations"},
		{Name: "dup", Path: "database/migrations/tenant"},
		{Name: "missing", Path: "nope"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{migrations, filepath.Join(migrations, "tenant")}, dirs)
}

package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pseudomuto/migrationindex/pkg/cmd/testutil"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress log output during tests
	return logger
}

func loaderFor(fixture *testutil.ProjectFixture) config.Loader {
	return func() (*config.Config, error) {
		return fixture.Config, nil
	}
}

func standardFixture(t *testing.T) *testutil.ProjectFixture {
	t.Helper()

	fixture := testutil.TestProject(t).
		WithMigrations("default",
			testutil.CreateTeamsMigration(),
			testutil.CreateUsersMigration(),
			testutil.BackfillMigration(),
			testutil.MigrationFile{Name: "not_a_migration.txt", Content: "ignore me"},
		)
	t.Chdir(fixture.Dir)

	return fixture
}

func readStats(t *testing.T, fixture *testutil.ProjectFixture, dir string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "stats.json"))
	require.NoError(t, err)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(data, &stats))
	return stats
}

func TestIndexCommand(t *testing.T) {
	t.Run("generates every report", func(t *testing.T) {
		fixture := standardFixture(t)

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()))
		require.NoError(t, err)

		require.Contains(t, out, "📂 Indexing migrations: default")
		require.Contains(t, out, "   Found: 3 migrations")
		require.Contains(t, out, "📊 Total found: 3 migrations")
		require.Contains(t, out, "index-full.md")
		require.Contains(t, out, "📋 Copied SKILL.md template")
		require.Contains(t, out, "Migrations Count")

		for _, name := range []string{
			"index-full.md",
			"index-by-type.md",
			"index-by-table.md",
			"index-by-operation.md",
			"stats.json",
			consts.SkillFileName,
		} {
			require.FileExists(t, filepath.Join(fixture.OutputDir(), name))
		}

		require.Contains(t, fixture.ReadOutput("index-full.md"), "**Generated:** ")
		require.Contains(t, fixture.ReadOutput("index-by-table.md"), "### [DATA] 2024_05_15_100000_backfill_users.php")

		info, err := os.Stat(fixture.OutputDir())
		require.NoError(t, err)
		require.Equal(t, consts.ModeDir, info.Mode().Perm())
	})

	t.Run("skips non php files", func(t *testing.T) {
		fixture := standardFixture(t)

		_, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()))
		require.NoError(t, err)

		stats := readStats(t, fixture, fixture.OutputDir())
		require.EqualValues(t, 3, stats["total_migrations"])
	})

	t.Run("records migration dependencies", func(t *testing.T) {
		fixture := standardFixture(t)

		_, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()))
		require.NoError(t, err)

		deps := readStats(t, fixture, fixture.OutputDir())["dependencies"].(map[string]any)
		edges := deps["edges"].([]any)
		require.Len(t, edges, 1)

		edge := edges[0].(map[string]any)
		require.Equal(t, "2024_01_10_100000_create_teams_table.php", edge["from"])
		require.Equal(t, "2024_01_15_100000_create_users_table.php", edge["to"])
	})

	t.Run("output override", func(t *testing.T) {
		fixture := standardFixture(t)
		custom := filepath.Join(fixture.Dir, "custom-output")

		_, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()), "--output", "custom-output")
		require.NoError(t, err)

		require.FileExists(t, filepath.Join(custom, "index-full.md"))
		require.NoDirExists(t, fixture.OutputDir())
	})

	t.Run("type filter", func(t *testing.T) {
		fixture := standardFixture(t).
			WithType("tenant", "database/tenant").
			WithMigrations("tenant", testutil.MigrationFile{
				Name:    "2024_02_01_000000_create_plans_table.php",
				Content: "<?php Schema::create('plans', function (Blueprint $table) { $table->id(); });",
			})

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()), "-t", "tenant")
		require.NoError(t, err)
		require.Contains(t, out, "📂 Indexing migrations: tenant")
		require.NotContains(t, out, "📂 Indexing migrations: default")

		stats := readStats(t, fixture, fixture.OutputDir())
		require.EqualValues(t, 1, stats["total_migrations"])
		require.Equal(t, map[string]any{"tenant": float64(1)}, stats["by_type"])
	})

	t.Run("invalid type", func(t *testing.T) {
		fixture := standardFixture(t)

		_, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()), "--type", "defualt")
		require.Error(t, err)
		require.Contains(t, err.Error(), "Invalid type: defualt")
		require.Contains(t, err.Error(), "Available types: default")
		require.Contains(t, err.Error(), `Did you mean "default"?`)
		require.NoDirExists(t, fixture.OutputDir())
	})

	t.Run("refresh removes stale files", func(t *testing.T) {
		fixture := standardFixture(t)
		cmd := indexCmd(loaderFor(fixture), quietLogger())

		_, err := testutil.RunCommand(t, cmd)
		require.NoError(t, err)

		marker := filepath.Join(fixture.OutputDir(), "should-be-deleted.txt")
		require.NoError(t, os.WriteFile(marker, []byte("marker"), consts.ModeFile))

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()), "--refresh")
		require.NoError(t, err)
		require.Contains(t, out, "Cleaning existing index...")
		require.NoFileExists(t, marker)
		require.FileExists(t, filepath.Join(fixture.OutputDir(), "index-full.md"))
	})

	t.Run("refresh without existing index", func(t *testing.T) {
		fixture := standardFixture(t)

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()), "--refresh")
		require.NoError(t, err)
		require.NotContains(t, out, "Cleaning existing index...")
		require.DirExists(t, fixture.OutputDir())
	})

	t.Run("existing SKILL.md is preserved", func(t *testing.T) {
		fixture := standardFixture(t)
		require.NoError(t, os.MkdirAll(fixture.OutputDir(), consts.ModeDir))
		skill := filepath.Join(fixture.OutputDir(), consts.SkillFileName)
		require.NoError(t, os.WriteFile(skill, []byte("CUSTOM CONTENT"), consts.ModeFile))

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()))
		require.NoError(t, err)
		require.NotContains(t, out, "Copied SKILL.md")
		require.Equal(t, "CUSTOM CONTENT", fixture.ReadOutput(consts.SkillFileName))
	})

	t.Run("missing template only warns", func(t *testing.T) {
		fixture := standardFixture(t)
		fixture.Config.SkillTemplatePath = "/nonexistent/SKILL.md"

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()))
		require.NoError(t, err)
		require.Contains(t, out, "template not found")
		require.FileExists(t, filepath.Join(fixture.OutputDir(), "index-full.md"))
	})

	t.Run("missing migration directory", func(t *testing.T) {
		fixture := testutil.TestProject(t)
		t.Chdir(fixture.Dir)

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()))
		require.NoError(t, err)
		require.Contains(t, out, "Directory doesn't exist")

		stats := readStats(t, fixture, fixture.OutputDir())
		require.EqualValues(t, 0, stats["total_migrations"])
	})

	t.Run("analysis errors do not fail the run", func(t *testing.T) {
		fixture := standardFixture(t).
			WithMigrations("default", testutil.MigrationFile{
				Name:    "2099_01_01_000000_huge.php",
				Content: "<?php " + strings.Repeat("// padding\n", 200),
			})
		fixture.Config.MaxFileSize = 1024

		out, err := testutil.RunCommand(t, indexCmd(loaderFor(fixture), quietLogger()), "--workers", "2")
		require.NoError(t, err)
		require.Contains(t, out, "Error analyzing database/migrations/2099_01_01_000000_huge.php: file exceeds maximum allowed size")
		require.Contains(t, out, "   Found: 3 migrations")
	})
}

func TestIndexerRun(t *testing.T) {
	fixture := standardFixture(t)

	ws, err := loadWorkspace(loaderFor(fixture))
	require.NoError(t, err)

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ix := &indexer{ws: ws, logger: quietLogger(), now: func() time.Time { return clock }}

	var out strings.Builder
	res, err := ix.run(context.Background(), &out, indexOptions{})
	require.NoError(t, err)

	require.Equal(t, fixture.OutputDir(), res.OutputDir)
	require.Equal(t, []typeCount{{Name: "default", Count: 3}}, res.Types)
	require.Len(t, res.Facts, 3)
	require.Zero(t, res.Failures)
	require.Len(t, res.Files, 5)
	require.Contains(t, out.String(), "⏱️  Execution time: 0.00s")
	require.Contains(t, fixture.ReadOutput("index-by-type.md"), "**Generated:** 2024-06-01 12:00:00")

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ix.run(ctx, &out, indexOptions{})
		require.ErrorIs(t, err, context.Canceled)
	})
}

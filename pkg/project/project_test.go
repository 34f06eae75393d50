package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/pseudomuto/migrationindex/pkg/project"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T, cfg *config.Config) (*project.Project, string) {
	t.Helper()

	dir := t.TempDir()
	return project.New(project.ProjectParams{Dir: dir, Config: cfg}), dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
	require.NoError(t, os.WriteFile(path, []byte(content), consts.ModeFile))
}

func TestNew(t *testing.T) {
	proj, dir := newProject(t, nil)

	require.Equal(t, dir, proj.Root())
	require.Equal(t, config.Default(), proj.Config())
}

func TestPaths(t *testing.T) {
	proj, dir := newProject(t, nil)

	require.Equal(t, filepath.Join(dir, "database", "migrations"), proj.Path("database/migrations"))
	require.Equal(t, "/abs/path", proj.Path("/abs/path"))

	require.Equal(t, "database/migrations/a.php", proj.Rel(filepath.Join(dir, "database", "migrations", "a.php")))
	require.Equal(t, "/elsewhere/a.php", proj.Rel("/elsewhere/a.php"))

	require.Equal(t, filepath.Join(dir, ".claude", "skills", "laravel-migration-searcher"), proj.OutputDir(""))
	require.Equal(t, filepath.Join(dir, "docs"), proj.OutputDir("docs"))
}

func TestRefresh(t *testing.T) {
	proj, dir := newProject(t, nil)
	out := filepath.Join(dir, "out")

	removed, err := proj.Refresh(out)
	require.NoError(t, err)
	require.False(t, removed)

	writeFile(t, filepath.Join(out, "index-full.md"), "stale")
	writeFile(t, filepath.Join(out, "nested", "old.md"), "stale")

	removed, err = proj.Refresh(out)
	require.NoError(t, err)
	require.True(t, removed)
	require.NoDirExists(t, out)
}

func TestInstallSkill(t *testing.T) {
	t.Run("embedded template", func(t *testing.T) {
		proj, dir := newProject(t, nil)
		out := filepath.Join(dir, "out")

		installed, err := proj.InstallSkill(out)
		require.NoError(t, err)
		require.True(t, installed)

		data, err := os.ReadFile(filepath.Join(out, consts.SkillFileName))
		require.NoError(t, err)
		require.Contains(t, string(data), "# Laravel Migration Searcher")
	})

	t.Run("preserves existing file", func(t *testing.T) {
		proj, dir := newProject(t, nil)
		out := filepath.Join(dir, "out")
		writeFile(t, filepath.Join(out, consts.SkillFileName), "custom")

		installed, err := proj.InstallSkill(out)
		require.NoError(t, err)
		require.False(t, installed)

		data, err := os.ReadFile(filepath.Join(out, consts.SkillFileName))
		require.NoError(t, err)
		require.Equal(t, "custom", string(data))
	})

	t.Run("configured template", func(t *testing.T) {
		cfg := config.Default()
		cfg.SkillTemplatePath = "resources/SKILL.md"

		proj, dir := newProject(t, cfg)
		writeFile(t, filepath.Join(dir, "resources", "SKILL.md"), "team template")

		installed, err := proj.InstallSkill(filepath.Join(dir, "out"))
		require.NoError(t, err)
		require.True(t, installed)

		data, err := os.ReadFile(filepath.Join(dir, "out", consts.SkillFileName))
		require.NoError(t, err)
		require.Equal(t, "team template", string(data))
	})

	t.Run("missing configured template", func(t *testing.T) {
		cfg := config.Default()
		cfg.SkillTemplatePath = "resources/SKILL.md"

		proj, dir := newProject(t, cfg)

		installed, err := proj.InstallSkill(filepath.Join(dir, "out"))
		require.Error(t, err)
		require.False(t, installed)
		require.Equal(t, project.ErrTemplateNotFound, errors.Cause(err))
		require.NoFileExists(t, filepath.Join(dir, "out", consts.SkillFileName))
	})
}

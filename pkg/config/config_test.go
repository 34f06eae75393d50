package config_test

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/migration-index.yaml
var testConfigYAML string

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, consts.DefaultOutputPath, cfg.OutputPath)
	require.Equal(t, int64(5242880), cfg.MaxFileSize)
	require.Zero(t, cfg.Workers)
	require.Empty(t, cfg.SkillTemplatePath)
	require.Equal(t, []string{"default"}, cfg.TypeNames())

	mt, ok := cfg.Type("default")
	require.True(t, ok)
	require.Equal(t, "database/migrations", mt.Path)
	require.Equal(t, []string{"*.php"}, mt.Include)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)
		validateTestConfig(t, cfg)
	})

	t.Run("empty input", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("partial document keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("output_path: out\n"))
		require.NoError(t, err)
		require.Equal(t, "out", cfg.OutputPath)
		require.Equal(t, consts.DefaultMaxFileSize, cfg.MaxFileSize)
		require.Equal(t, []string{"default"}, cfg.TypeNames())
	})

	t.Run("error", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "failed to unmarshal config")

		cfg, err = LoadConfig(strings.NewReader("migration_types:\n  - default\n"))
		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "migration_types must be a mapping")
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), consts.DefaultConfigFile)
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		validateTestConfig(t, cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfigFile("nonexistent.yaml")
		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "failed to open file")
	})
}

func TestMigrationTypesRoundTrip(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(testConfigYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	require.NoError(t, enc.Encode(cfg))
	require.NoError(t, enc.Close())

	// declaration order survives encoding
	out := buf.String()
	require.Less(t, strings.Index(out, "default:"), strings.Index(out, "tenant:"))
	require.Less(t, strings.Index(out, "tenant:"), strings.Index(out, "legacy:"))

	decoded, err := LoadConfig(&buf)
	require.NoError(t, err)
	require.Equal(t, cfg, decoded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    string
	}{
		{"zero max size", func(c *Config) { c.MaxFileSize = 0 }, "max_file_size must be positive"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers must not be negative"},
		{"no types", func(c *Config) { c.MigrationTypes = nil }, "at least one migration type"},
		{"type without path", func(c *Config) { c.MigrationTypes[0].Path = "" }, `migration type "default" has no path`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("config file in working directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(consts.DefaultConfigFile, []byte(testConfigYAML), consts.ModeFile))

		cfg, err := Load()
		require.NoError(t, err)
		validateTestConfig(t, cfg)
	})

	t.Run("config path from environment", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output_path: custom\n"), consts.ModeFile))
		t.Setenv(consts.EnvConfig, path)

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "custom", cfg.OutputPath)
	})

	t.Run("missing explicit config path", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv(consts.EnvConfig, "missing.yaml")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to stat config file")
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile(consts.DefaultConfigFile, []byte(testConfigYAML), consts.ModeFile))
		t.Setenv(consts.EnvOutput, "env/out")
		t.Setenv(consts.EnvMaxFileSize, "2048")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "env/out", cfg.OutputPath)
		require.Equal(t, int64(2048), cfg.MaxFileSize)
	})

	t.Run("dotenv file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv(consts.EnvOutput, "")
		require.NoError(t, os.WriteFile(consts.DefaultEnvFile, []byte("MIGRATION_INDEX_MAX_FILE_SIZE=4096\n"), consts.ModeFile))

		// godotenv writes into the process environment
		t.Cleanup(func() { _ = os.Unsetenv(consts.EnvMaxFileSize) })

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, int64(4096), cfg.MaxFileSize)
	})

	t.Run("invalid size override", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv(consts.EnvMaxFileSize, "lots")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid MIGRATION_INDEX_MAX_FILE_SIZE")
	})

	t.Run("invalid result", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv(consts.EnvMaxFileSize, "-1")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "max_file_size must be positive")
	})
}

// validateTestConfig validates that a config contains the expected test data
func validateTestConfig(t *testing.T, cfg *Config) {
	t.Helper()
	require.NotNil(t, cfg)
	require.Equal(t, "docs/migrations", cfg.OutputPath)
	require.Equal(t, int64(1048576), cfg.MaxFileSize)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, "resources/SKILL.md", cfg.SkillTemplatePath)
	require.Equal(t, []string{"default", "tenant", "legacy"}, cfg.TypeNames())

	tenant, ok := cfg.Type("tenant")
	require.True(t, ok)
	require.Equal(t, &MigrationType{
		Name:    "tenant",
		Path:    "database/migrations/tenant",
		Include: []string{"**/*.php"},
		Exclude: []string{"archive/**"},
	}, tenant)

	legacy, ok := cfg.Type("legacy")
	require.True(t, ok)
	require.Equal(t, []string{"*.php"}, legacy.Include)

	_, ok = cfg.Type("missing")
	require.False(t, ok)
}

func TestModule(t *testing.T) {
	t.Chdir(t.TempDir())

	var load Loader
	app := fxtest.New(t, Module, fx.Populate(&load))
	app.RequireStart()
	defer app.RequireStop()

	cfg, err := load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

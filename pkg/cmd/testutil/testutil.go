package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/pseudomuto/migrationindex/pkg/project"
	"github.com/stretchr/testify/require"
)

// ProjectFixture represents a Laravel project in a temp directory
type ProjectFixture struct {
	Dir     string
	Config  *config.Config
	Project *project.Project
	t       *testing.T
}

// MigrationFile represents a test migration
type MigrationFile struct {
	Name    string
	Content string
}

// TestProject creates an isolated temp directory configured with the default
// migration type
func TestProject(t *testing.T) *ProjectFixture {
	t.Helper()

	tmpDir := t.TempDir()
	cfg := config.Default()

	fixture := &ProjectFixture{
		Dir:    tmpDir,
		Config: cfg,
		t:      t,
	}
	fixture.refresh()

	return fixture
}

// WithType adds a migration type
func (p *ProjectFixture) WithType(name, path string) *ProjectFixture {
	p.t.Helper()

	p.Config.MigrationTypes = append(p.Config.MigrationTypes, &config.MigrationType{
		Name:    name,
		Path:    path,
		Include: []string{consts.DefaultInclude},
	})
	p.refresh()

	return p
}

// WithMigrations writes migrations into the directory of the named type
func (p *ProjectFixture) WithMigrations(typeName string, files ...MigrationFile) *ProjectFixture {
	p.t.Helper()

	mt, ok := p.Config.Type(typeName)
	require.True(p.t, ok, "unknown migration type: %s", typeName)

	dir := p.Project.Path(mt.Path)
	require.NoError(p.t, os.MkdirAll(dir, consts.ModeDir))

	for _, f := range files {
		require.NoError(p.t, os.WriteFile(filepath.Join(dir, f.Name), []byte(f.Content), consts.ModeFile))
	}

	return p
}

// OutputDir returns the configured output directory
func (p *ProjectFixture) OutputDir() string {
	return p.Project.OutputDir("")
}

// ReadOutput reads a file from the output directory
func (p *ProjectFixture) ReadOutput(name string) string {
	p.t.Helper()

	data, err := os.ReadFile(filepath.Join(p.OutputDir(), name))
	require.NoError(p.t, err, "Failed to read output file: %s", name)

	return string(data)
}

func (p *ProjectFixture) refresh() {
	p.Project = project.New(project.ProjectParams{Dir: p.Dir, Config: p.Config})
}

// CreateUsersMigration creates a users table with a foreign key to teams
func CreateUsersMigration() MigrationFile {
	return MigrationFile{
		Name: "2024_01_15_100000_create_users_table.php",
		Content: `<?php

return new class extends Migration
{
    public function up(): void
    {
        Schema::create('users', function (Blueprint $table) {
            $table->id();
            $table->string('email')->unique();
            $table->foreignId('team_id')->nullable();
            $table->foreign('team_id')->references('id')->on('teams');
        });
    }
};
`,
	}
}

// CreateTeamsMigration creates the teams table
func CreateTeamsMigration() MigrationFile {
	return MigrationFile{
		Name: "2024_01_10_100000_create_teams_table.php",
		Content: `<?php

return new class extends Migration
{
    public function up(): void
    {
        Schema::create('teams', function (Blueprint $table) {
            $table->id();
            $table->string('name');
        });
    }
};
`,
	}
}

// BackfillMigration updates users through the query builder
func BackfillMigration() MigrationFile {
	return MigrationFile{
		Name: "2024_05_15_100000_backfill_users.php",
		Content: `<?php

return new class extends Migration
{
    public function up(): void
    {
        DB::table('users')->where('active', false)->update(['status' => 'inactive']);
    }
};
`,
	}
}

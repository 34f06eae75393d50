package cmd

import (
	"testing"

	"github.com/pseudomuto/migrationindex/pkg/cmd/testutil"
	"github.com/stretchr/testify/require"
)

func TestInspectCommand(t *testing.T) {
	fixture := standardFixture(t)

	t.Run("prints the migration section", func(t *testing.T) {
		out, err := testutil.RunCommand(t, inspect(loaderFor(fixture), quietLogger()),
			"database/migrations/2024_01_15_100000_create_users_table.php")
		require.NoError(t, err)

		require.Contains(t, out, "### 2024_01_15_100000_create_users_table.php")
		require.Contains(t, out, "`database/migrations/2024_01_15_100000_create_users_table.php`")
		require.Contains(t, out, "users")
		require.Contains(t, out, "teams")
		require.NoDirExists(t, fixture.OutputDir())
	})

	t.Run("category flag", func(t *testing.T) {
		out, err := testutil.RunCommand(t, inspect(loaderFor(fixture), quietLogger()),
			"--category", "tenant", "database/migrations/2024_05_15_100000_backfill_users.php")
		require.NoError(t, err)
		require.Contains(t, out, "tenant")
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := testutil.RunCommand(t, inspect(loaderFor(fixture), quietLogger()))
		require.EqualError(t, err, "a migration FILE is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := testutil.RunCommand(t, inspect(loaderFor(fixture), quietLogger()), "nope.php")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to analyze nope.php")
	})
}

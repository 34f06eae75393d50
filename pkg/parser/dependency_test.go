package parser_test

import (
	"testing"

	"github.com/pseudomuto/migrationindex/pkg/fact"
	. "github.com/pseudomuto/migrationindex/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestExtractDependencies(t *testing.T) {
	t.Run("annotations and foreign keys", func(t *testing.T) {
		deps := ExtractDependencies(`
/**
 * @requires create_teams_table
 * @depends on 2024_01_01_000000_create_users_table
 * @require seed_roles
 */
$table->foreign('user_id')->references('id')->on('users');
$table->foreign('team_id')->references('id');
`)

		require.Equal(t, []string{"create_teams_table", "seed_roles"}, deps.Requires)
		require.Equal(t, []string{"2024_01_01_000000_create_users_table"}, deps.DependsOn)
		require.Equal(t, []fact.ForeignKeyDependency{
			{Column: "user_id", References: "id", OnTable: "users"},
		}, deps.ForeignKeys)
		require.Equal(t, []fact.DependencyCount{
			{Name: "requires", Count: 2},
			{Name: "depends_on", Count: 1},
			{Name: "foreign_keys", Count: 1},
		}, deps.Counts())
	})

	t.Run("nothing declared", func(t *testing.T) {
		deps := ExtractDependencies("<?php\n")
		require.True(t, deps.IsEmpty())
		require.Empty(t, deps.Counts())
	})
}

package parser_test

import (
	"testing"

	"github.com/pseudomuto/migrationindex/pkg/fact"
	. "github.com/pseudomuto/migrationindex/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestDetectTables(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []fact.TableEntry
	}{
		{
			name:     "no tables",
			content:  "<?php\n",
			expected: nil,
		},
		{
			name: "create wins over later data reference",
			content: `
Schema::create('users', function (Blueprint $table) {
    $table->id();
});
DB::table('users')->insert(['name' => 'admin']);
`,
			expected: []fact.TableEntry{{Name: "users", Operation: fact.TableCreate}},
		},
		{
			name: "create wins over earlier alteration",
			content: `
Schema::table('users', function (Blueprint $table) {});
Schema::create('users', function (Blueprint $table) {});
`,
			expected: []fact.TableEntry{{Name: "users", Operation: fact.TableCreate}},
		},
		{
			name: "drop overrides create",
			content: `
Schema::create('tmp_import', function (Blueprint $table) {});
Schema::dropIfExists('tmp_import');
`,
			expected: []fact.TableEntry{{Name: "tmp_import", Operation: fact.TableDrop}},
		},
		{
			name:     "rename",
			content:  `Schema::rename('orders', 'purchases');`,
			expected: []fact.TableEntry{{Name: "orders", Operation: fact.TableRename}},
		},
		{
			name: "multiple tables",
			content: `
Schema::table("posts", function (Blueprint $table) {});
Schema::create("comments", function (Blueprint $table) {});
Schema::drop("legacy");
DB::table("settings")->where('key', 'a')->delete();
`,
			expected: []fact.TableEntry{
				{Name: "comments", Operation: fact.TableCreate},
				{Name: "posts", Operation: fact.TableAlter},
				{Name: "legacy", Operation: fact.TableDrop},
				{Name: "settings", Operation: fact.TableData},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DetectTables(tt.content)
			require.Equal(t, tt.expected, tables.Entries())
		})
	}
}

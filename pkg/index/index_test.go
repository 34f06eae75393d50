package index_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/format"
	. "github.com/pseudomuto/migrationindex/pkg/index"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	dirs    []string
	files   map[string]string
	order   []string
	failing string
}

func (m *memWriter) EnsureDir(path string) error {
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *memWriter) Write(path string, data []byte) error {
	if filepath.Base(path) == m.failing {
		return errors.New("disk full")
	}

	if m.files == nil {
		m.files = make(map[string]string)
	}
	m.files[path] = string(data)
	m.order = append(m.order, filepath.Base(path))
	return nil
}

func sampleFacts() []*fact.Fact {
	f := &fact.Fact{
		Identity: fact.Identity{
			SequenceKey: "2024_01_15_100000",
			DisplayName: "create_users_table",
			Filename:    "2024_01_15_100000_create_users_table.php",
			Category:    "default",
		},
		ComplexityScore: 2,
	}
	f.Tables.Set("users", fact.TableCreate)

	return []*fact.Fact{f}
}

func TestFilename(t *testing.T) {
	require.Equal(t, "index-full.md", Filename(consts.ReportFull))
	require.Equal(t, "index-by-type.md", Filename(consts.ReportByCategory))
	require.Equal(t, "index-by-table.md", Filename(consts.ReportByTable))
	require.Equal(t, "index-by-operation.md", Filename(consts.ReportByOperation))
	require.Equal(t, "stats.json", Filename(consts.ReportStats))
	require.Equal(t, "other.md", Filename("other"))
}

func TestGenerate(t *testing.T) {
	t.Run("writes every report in order", func(t *testing.T) {
		w := &memWriter{}
		gen := NewGenerator("out", format.NewDefault(), w)

		files, err := gen.Generate(sampleFacts())
		require.NoError(t, err)

		require.Equal(t, []string{"out"}, w.dirs)
		require.Equal(t, []string{
			"index-full.md",
			"index-by-type.md",
			"index-by-table.md",
			"index-by-operation.md",
			"stats.json",
		}, w.order)

		require.Len(t, files, 5)
		for _, f := range files {
			body, ok := w.files[f.Path]
			require.True(t, ok, f.Path)
			require.Equal(t, int64(len(body)), f.Size)
		}

		require.Equal(t, consts.ReportFull, files[0].Report)
		require.Contains(t, w.files[filepath.Join("out", "index-by-table.md")], "## Table: `users`")
	})

	t.Run("write failure", func(t *testing.T) {
		w := &memWriter{failing: "index-by-table.md"}
		gen := NewGenerator("out", nil, w)

		files, err := gen.Generate(sampleFacts())
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to write by-table report")
		require.Len(t, files, 2)
	})
}

func TestFileWriter(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "skills")
	gen := NewGenerator(out, nil, nil)
	require.Equal(t, out, gen.OutputDir())

	files, err := gen.Generate(nil)
	require.NoError(t, err)
	require.DirExists(t, out)

	for _, f := range files {
		info, err := os.Stat(f.Path)
		require.NoError(t, err)
		require.Equal(t, f.Size, info.Size())
		require.Equal(t, consts.ModeFile, info.Mode().Perm()&consts.ModeFile)
	}

	stats, err := os.ReadFile(filepath.Join(out, "stats.json"))
	require.NoError(t, err)
	require.Contains(t, string(stats), `"total_migrations": 0`)

	// regenerating overwrites in place
	_, err = gen.Generate(sampleFacts())
	require.NoError(t, err)

	stats, err = os.ReadFile(filepath.Join(out, "stats.json"))
	require.NoError(t, err)
	require.Contains(t, string(stats), `"total_migrations": 1`)
}

package format

import (
	"encoding/json"
	"io"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/depgraph"
	"github.com/pseudomuto/migrationindex/pkg/fact"
)

type (
	// Statistics is the aggregate summary written by Stats.
	Statistics struct {
		GeneratedAt       string          `json:"generated_at,omitempty"`
		TotalMigrations   int             `json:"total_migrations"`
		ByType            map[string]int  `json:"by_type"`
		Tables            []TableStats    `json:"tables"`
		Complexity        ComplexityStats `json:"complexity"`
		DataModifications int             `json:"data_modifications"`
		RawSQLCount       int             `json:"raw_sql_count"`
		Dependencies      depgraph.Report `json:"dependencies"`
	}

	// TableStats counts the migrations touching a table.
	TableStats struct {
		Table           string         `json:"table"`
		MigrationsCount int            `json:"migrations_count"`
		Operations      map[string]int `json:"operations"`
	}

	// ComplexityStats summarizes complexity scores.
	ComplexityStats struct {
		Average        float64 `json:"average"`
		Max            int     `json:"max"`
		HighComplexity int     `json:"high_complexity"`
	}
)

// Stats writes the statistics summary as indented JSON. Markup characters in
// table names and categories are written as \u escapes.
func (f *Formatter) Stats(w io.Writer, facts []*fact.Fact) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")

	return errors.Wrap(enc.Encode(f.Statistics(facts)), "failed to encode statistics")
}

// Statistics aggregates the facts. Tables are ordered by the number of
// migrations touching them (ties keep discovery order) and capped to the
// configured number of tables.
func (f *Formatter) Statistics(facts []*fact.Fact) Statistics {
	sorted := chronological(facts)

	stats := Statistics{
		TotalMigrations: len(sorted),
		ByType:          make(map[string]int),
		Tables:          f.tableStats(sorted),
		Dependencies:    depgraph.Build(sorted).Report(),
	}

	if !f.options.GeneratedAt.IsZero() {
		stats.GeneratedAt = f.options.GeneratedAt.Format(time.RFC3339)
	}

	total := 0
	for _, ft := range sorted {
		stats.ByType[ft.Identity.Category]++
		total += ft.ComplexityScore
		stats.Complexity.Max = max(stats.Complexity.Max, ft.ComplexityScore)

		if ft.ComplexityScore >= f.options.HighComplexity {
			stats.Complexity.HighComplexity++
		}
		if ft.HasDataModifications {
			stats.DataModifications++
		}
		if ft.HasRawStatements() {
			stats.RawSQLCount++
		}
	}

	if len(sorted) > 0 {
		stats.Complexity.Average = math.Round(float64(total)/float64(len(sorted))*100) / 100
	}

	return stats
}

func (f *Formatter) tableStats(facts []*fact.Fact) []TableStats {
	tables := []TableStats{}
	index := make(map[string]int)

	for _, ft := range facts {
		for _, entry := range ft.Tables.Entries() {
			i, ok := index[entry.Name]
			if !ok {
				i = len(tables)
				index[entry.Name] = i
				tables = append(tables, TableStats{Table: entry.Name, Operations: make(map[string]int)})
			}

			tables[i].MigrationsCount++
			tables[i].Operations[string(entry.Operation)]++
		}
	}

	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].MigrationsCount > tables[j].MigrationsCount
	})

	if len(tables) > f.options.TopTables {
		tables = tables[:f.options.TopTables]
	}

	return tables
}

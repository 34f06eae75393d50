package parser

import (
	"math"

	"github.com/pseudomuto/migrationindex/pkg/fact"
)

const (
	MinComplexity = 1
	MaxComplexity = 10

	// HighComplexity is the score from which a migration is considered risky.
	HighComplexity = 7
)

// Complexity scores a migration from the number of things it touches:
//
//	tables + 0.5*structural + 2*data + 3*raw + 1.5*foreignKeys
//
// The sum is rounded half away from zero and clamped to [1, 10].
func Complexity(tables, structural, data, raw, foreignKeys int) int {
	score := float64(tables) +
		float64(structural)*0.5 +
		float64(data)*2 +
		float64(raw)*3 +
		float64(foreignKeys)*1.5

	return min(MaxComplexity, max(MinComplexity, int(math.Round(score))))
}

// FactComplexity scores a Fact from its extracted counts.
func FactComplexity(f *fact.Fact) int {
	return Complexity(
		f.Tables.Len(),
		len(f.StructuralOps),
		len(f.DataOps),
		len(f.RawStatements),
		len(f.ForeignKeys),
	)
}

package format

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/consts"
	"github.com/pseudomuto/migrationindex/pkg/fact"
)

const (
	headerTimeFormat = "2006-01-02 15:04:05"

	// DefaultTopTables is the number of tables listed in the statistics report
	DefaultTopTables = 50

	// DefaultHighComplexity is the score from which a migration counts as complex
	DefaultHighComplexity = 7
)

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")

type (
	// FormatterOptions controls rendering behavior.
	FormatterOptions struct {
		// GeneratedAt is written into the report headers. Headers omit the
		// timestamp when it is zero.
		GeneratedAt time.Time

		// TopTables caps the number of tables in the statistics report.
		TopTables int

		// HighComplexity is the lowest score counted as high complexity.
		HighComplexity int
	}

	// Formatter renders collections of Facts into reports.
	Formatter struct {
		options *FormatterOptions
	}

	// Report is a rendered report body identified by its logical name.
	Report struct {
		Name string
		Body string
	}
)

// DefaultOptions returns the standard rendering options.
func DefaultOptions() *FormatterOptions {
	return &FormatterOptions{
		TopTables:      DefaultTopTables,
		HighComplexity: DefaultHighComplexity,
	}
}

// New creates a new Formatter with the specified options.
func New(options *FormatterOptions) *Formatter {
	if options == nil {
		options = DefaultOptions()
	}

	opts := *options
	if opts.TopTables <= 0 {
		opts.TopTables = DefaultTopTables
	}
	if opts.HighComplexity <= 0 {
		opts.HighComplexity = DefaultHighComplexity
	}

	return &Formatter{options: &opts}
}

// NewDefault creates a new Formatter with default options.
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

// Reports renders all five reports in a fixed order: full, by-category,
// by-table, by-operation and stats.
func (f *Formatter) Reports(facts []*fact.Fact) ([]Report, error) {
	renderers := []struct {
		name   string
		render func(io.Writer, []*fact.Fact) error
	}{
		{consts.ReportFull, f.Full},
		{consts.ReportByCategory, f.ByCategory},
		{consts.ReportByTable, f.ByTable},
		{consts.ReportByOperation, f.ByOperation},
		{consts.ReportStats, f.Stats},
	}

	reports := make([]Report, 0, len(renderers))
	for _, r := range renderers {
		var buf strings.Builder
		if err := r.render(&buf, facts); err != nil {
			return nil, errors.Wrapf(err, "failed to render %s report", r.name)
		}

		reports = append(reports, Report{Name: r.name, Body: buf.String()})
	}

	return reports, nil
}

// writeHeader writes a report title followed by the generation timestamp.
// When more header lines follow, the timestamp is not separated from them.
func (f *Formatter) writeHeader(b *strings.Builder, title string, continued bool) {
	fmt.Fprintf(b, "# %s\n\n", title)
	if f.options.GeneratedAt.IsZero() {
		return
	}

	fmt.Fprintf(b, "**Generated:** %s\n", f.options.GeneratedAt.Format(headerTimeFormat))
	if !continued {
		b.WriteString("\n")
	}
}

// flush writes the rendered body to w.
func flush(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "failed to write report")
}

// escape neutralizes the characters that could break the surrounding markup.
func escape(s string) string {
	return markupEscaper.Replace(s)
}

func escapeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = escape(v)
	}
	return out
}

// chronological returns the facts sorted by sequence key. Facts sharing a key
// keep their relative order.
func chronological(facts []*fact.Fact) []*fact.Fact {
	sorted := slices.Clone(facts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Identity.SequenceKey < sorted[j].Identity.SequenceKey
	})
	return sorted
}

// dataOpSummary counts data operations per kind, e.g. "UPDATE: 2, DELETE: 1".
func dataOpSummary(ops []fact.DataOp) string {
	var kinds []fact.DataOpKind
	counts := make(map[fact.DataOpKind]int)

	for _, op := range ops {
		if _, ok := counts[op.Kind]; !ok {
			kinds = append(kinds, op.Kind)
		}
		counts[op.Kind]++
	}

	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = fmt.Sprintf("%s: %d", kind, counts[kind])
	}

	return strings.Join(parts, ", ")
}

// dataOpTarget returns what a data operation acts on.
func dataOpTarget(op fact.DataOp) string {
	switch {
	case op.Table != "":
		return op.Table
	case op.Model != "":
		return op.Model
	default:
		return "unknown"
	}
}

// Package format renders collections of migration Facts into reports.
//
// A Formatter produces five independent reports from the same collection:
//
//   - Full: every migration in chronological order with all of its details,
//     including each data operation and every raw SQL statement
//   - ByCategory: compact summaries grouped by migration type
//   - ByTable: one group per table, a migration appearing once for each table
//     it touches
//   - ByOperation: one section per table operation (CREATE, ALTER, DROP, DATA,
//     RENAME) followed by the raw SQL of every migration that embeds some
//   - Stats: an aggregate summary encoded as JSON
//
// The markdown reports escape & and < in every value that comes from the
// migration sources. Rendering never fails on an empty collection; the reports
// are simply mostly empty.
//
// The formatter never reads the clock. The generation timestamp shown in the
// report headers is supplied through FormatterOptions.GeneratedAt and omitted
// when zero, which keeps the output deterministic.
//
// # Usage Example
//
//	formatter := format.New(&format.FormatterOptions{GeneratedAt: time.Now()})
//
//	var buf bytes.Buffer
//	if err := formatter.ByTable(&buf, facts); err != nil {
//		return err
//	}
//
//	// or render everything at once
//	reports, err := formatter.Reports(facts)
package format

// Package index writes the rendered migration reports to disk.
//
// A Generator renders every report of a Fact collection with a
// format.Formatter and hands the bodies to a Writer, which creates the output
// directory on demand and stores one file per report:
//
//	index-full.md          chronological list with full detail
//	index-by-type.md       grouped by migration type
//	index-by-table.md      grouped by table
//	index-by-operation.md  grouped by table operation, plus raw SQL
//	stats.json             aggregate statistics
//
// # Usage Example
//
//	gen := index.NewGenerator(".claude/skills/laravel-migration-searcher", format.NewDefault(), nil)
//	files, err := gen.Generate(facts)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, f := range files {
//		fmt.Printf("%s: %s (%d bytes)\n", f.Report, f.Path, f.Size)
//	}
package index

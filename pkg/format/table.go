package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
)

type tableTouch struct {
	fact      *fact.Fact
	operation fact.TableOperation
}

// ByTable renders one group per table, sorted by table name. A migration
// appears in the group of every table it touches, tagged with the operation it
// performs on that table.
func (f *Formatter) ByTable(w io.Writer, facts []*fact.Fact) error {
	var b strings.Builder

	f.writeHeader(&b, "Migrations Index - Grouped by Tables", false)

	groups := make(map[string][]tableTouch)
	for _, ft := range chronological(facts) {
		for _, entry := range ft.Tables.Entries() {
			groups[entry.Name] = append(groups[entry.Name], tableTouch{fact: ft, operation: entry.Operation})
		}
	}

	tables := make([]string, 0, len(groups))
	for table := range groups {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		touches := groups[table]

		fmt.Fprintf(&b, "## Table: `%s`\n\n", escape(table))
		fmt.Fprintf(&b, "**Number of migrations:** %d\n\n", len(touches))

		for _, t := range touches {
			id := t.fact.Identity

			fmt.Fprintf(&b, "### [%s] %s\n\n", t.operation, escape(id.Filename))
			fmt.Fprintf(&b, "- **Migration type:** %s\n", escape(id.Category))
			fmt.Fprintf(&b, "- **Path:** `%s`\n", escape(id.RelativePath))
			fmt.Fprintf(&b, "- **Timestamp:** %s\n", escape(id.SequenceKey))

			if t.fact.Columns.Len() > 0 {
				fmt.Fprintf(&b, "- **Columns:** %s\n", strings.Join(escapeAll(t.fact.Columns.Names()), ", "))
			}

			if len(t.fact.StructuralOps) > 0 {
				fmt.Fprintf(&b, "- **DDL Operations:** %d\n", len(t.fact.StructuralOps))
			}

			if len(t.fact.DataOps) > 0 {
				fmt.Fprintf(&b, "- **DML Operations:** %s\n", dataOpSummary(t.fact.DataOps))
			}

			fmt.Fprintf(&b, "- **Complexity:** %d/10\n\n", t.fact.ComplexityScore)
		}

		b.WriteString("---\n\n")
	}

	return flush(w, &b)
}

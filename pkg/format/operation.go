package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
)

var operationTitles = map[fact.TableOperation]string{
	fact.TableCreate: "Table Creation",
	fact.TableAlter:  "Structure Modifications",
	fact.TableDrop:   "Table Deletion",
	fact.TableData:   "Data Modifications",
	fact.TableRename: "Renaming",
}

// ByOperation renders one section per table operation (CREATE, ALTER, DROP,
// DATA, RENAME) listing every migration and table classified under it,
// followed by a section with the raw SQL of every migration that embeds some.
func (f *Formatter) ByOperation(w io.Writer, facts []*fact.Fact) error {
	var b strings.Builder

	f.writeHeader(&b, "Migrations Index - Grouped by Operations", false)
	sorted := chronological(facts)

	for _, op := range fact.TableOperations {
		var touches []tableTouch
		var tables []string

		for _, ft := range sorted {
			for _, entry := range ft.Tables.Entries() {
				if entry.Operation == op {
					touches = append(touches, tableTouch{fact: ft, operation: op})
					tables = append(tables, entry.Name)
				}
			}
		}

		fmt.Fprintf(&b, "## %s (%s)\n\n", operationTitles[op], op)
		fmt.Fprintf(&b, "**Number of operations:** %d\n\n", len(touches))

		for i, t := range touches {
			writeOperationEntry(&b, t, tables[i])
		}

		b.WriteString("---\n\n")
	}

	var withRaw []*fact.Fact
	for _, ft := range sorted {
		if ft.HasRawStatements() {
			withRaw = append(withRaw, ft)
		}
	}

	b.WriteString("## Raw SQL\n\n")
	fmt.Fprintf(&b, "**Number of migrations with raw SQL:** %d\n\n", len(withRaw))

	for _, ft := range withRaw {
		id := ft.Identity

		fmt.Fprintf(&b, "### %s\n\n", escape(id.Filename))
		fmt.Fprintf(&b, "- **Migration type:** %s\n", escape(id.Category))
		fmt.Fprintf(&b, "- **Path:** `%s`\n", escape(id.RelativePath))
		fmt.Fprintf(&b, "- **Number of statements:** %d\n\n", len(ft.RawStatements))

		for _, stmt := range ft.RawStatements {
			fmt.Fprintf(&b, "**[%s]** (%s):\n", stmt.Kind, stmt.Form)
			fmt.Fprintf(&b, "```sql\n%s\n```\n\n", escape(stmt.SQL))
		}
	}

	return flush(w, &b)
}

func writeOperationEntry(b *strings.Builder, t tableTouch, table string) {
	id := t.fact.Identity

	fmt.Fprintf(b, "### %s\n\n", escape(id.Filename))
	fmt.Fprintf(b, "- **Table:** `%s`\n", escape(table))
	fmt.Fprintf(b, "- **Migration type:** %s\n", escape(id.Category))
	fmt.Fprintf(b, "- **Path:** `%s`\n", escape(id.RelativePath))

	if t.operation == fact.TableAlter && t.fact.Columns.Len() > 0 {
		fmt.Fprintf(b, "- **Affected columns:** %s\n", strings.Join(escapeAll(t.fact.Columns.Names()), ", "))
	}

	if t.operation == fact.TableData && len(t.fact.DataOps) > 0 {
		b.WriteString("- **DML Operations:**\n")
		for _, op := range t.fact.DataOps {
			fmt.Fprintf(b, "  - **%s** on `%s`", op.Kind, escape(dataOpTarget(op)))
			if len(op.Conditions) > 0 {
				b.WriteString(" WHERE: " + strings.Join(escapeAll(op.Conditions), " AND "))
			}
			if len(op.ColumnsUpdated) > 0 {
				b.WriteString(" (columns: " + strings.Join(escapeAll(op.ColumnsUpdated), ", ") + ")")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
}

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/utils"
)

// rawExpressionPreview bounds DB::raw expressions listed under data operations.
const rawExpressionPreview = 100

// Full renders the chronological index with every detail of each migration.
func (f *Formatter) Full(w io.Writer, facts []*fact.Fact) error {
	var b strings.Builder

	f.writeHeader(&b, "Full Laravel Migrations Index", true)
	fmt.Fprintf(&b, "**Number of migrations:** %d\n\n", len(facts))
	b.WriteString("---\n\n")

	for _, ft := range chronological(facts) {
		writeMigration(&b, ft)
		b.WriteString("\n---\n\n")
	}

	return flush(w, &b)
}

// Migration renders the full detail section of a single migration.
func (f *Formatter) Migration(w io.Writer, ft *fact.Fact) error {
	var b strings.Builder
	writeMigration(&b, ft)
	return flush(w, &b)
}

func writeMigration(b *strings.Builder, ft *fact.Fact) {
	id := ft.Identity

	fmt.Fprintf(b, "### %s\n\n", escape(id.Filename))
	fmt.Fprintf(b, "**Type:** %s  \n", escape(id.Category))
	fmt.Fprintf(b, "**Path:** `%s`  \n", escape(id.RelativePath))
	fmt.Fprintf(b, "**Timestamp:** %s  \n", escape(id.SequenceKey))
	fmt.Fprintf(b, "**Name:** %s  \n", escape(id.DisplayName))
	fmt.Fprintf(b, "**Complexity:** %d/10  \n", ft.ComplexityScore)
	if id.Checksum != "" {
		fmt.Fprintf(b, "**Checksum:** `%s`  \n", id.Checksum)
	}
	b.WriteString("\n")

	if ft.Tables.Len() > 0 {
		b.WriteString("**Tables:**\n")
		for _, entry := range ft.Tables.Entries() {
			fmt.Fprintf(b, "- `%s` (%s)\n", escape(entry.Name), entry.Operation)
		}
		b.WriteString("\n")
	}

	if ft.Columns.Len() > 0 {
		b.WriteString("**Columns:**\n")
		for _, col := range ft.Columns.Entries() {
			modifiers := ""
			if len(col.Modifiers) > 0 {
				modifiers = " [" + strings.Join(escapeAll(col.Modifiers), ", ") + "]"
			}
			fmt.Fprintf(b, "- `%s` (%s%s)\n", escape(col.Name), escape(col.Type), modifiers)
		}
		b.WriteString("\n")
	}

	if len(ft.StructuralOps) > 0 {
		b.WriteString("**DDL Operations:**\n")
		for _, group := range groupStructuralOps(ft.StructuralOps) {
			fmt.Fprintf(b, "- **%s:** %d operations\n", group.category, group.count)
		}
		b.WriteString("\n")
	}

	if len(ft.DataOps) > 0 {
		b.WriteString("**DML Operations:**\n")
		for _, op := range ft.DataOps {
			writeDataOp(b, op)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(ft.RawStatements) > 0 {
		fmt.Fprintf(b, "**Raw SQL:** %d statement(s)\n\n", len(ft.RawStatements))
		for _, stmt := range ft.RawStatements {
			fmt.Fprintf(b, "- **[%s]** (%s)\n", stmt.Kind, stmt.Form)
			fmt.Fprintf(b, "  ```sql\n  %s\n  ```\n", escape(stmt.SQL))
		}
		b.WriteString("\n")
	}

	if len(ft.ForeignKeys) > 0 {
		b.WriteString("**Foreign Keys:**\n")
		for _, fk := range ft.ForeignKeys {
			fmt.Fprintf(b, "- `%s` → `%s`\n", escape(fk.Column), foreignKeyTarget(fk))
		}
		b.WriteString("\n")
	}

	if len(ft.Indexes) > 0 {
		fmt.Fprintf(b, "**Indexes:** %d\n\n", len(ft.Indexes))
	}

	if !ft.Dependencies.IsEmpty() {
		b.WriteString("**Dependencies:**\n")
		for _, c := range ft.Dependencies.Counts() {
			fmt.Fprintf(b, "- **%s:** %d\n", c.Name, c.Count)
		}
		b.WriteString("\n")
	}
}

// writeDataOp writes one data operation without the trailing newline. The
// layout depends on the shape the operation was found in.
func writeDataOp(b *strings.Builder, op fact.DataOp) {
	switch op.Shape {
	case fact.ShapeTableUpdate, fact.ShapeTableInsert, fact.ShapeTableDelete:
		fmt.Fprintf(b, "- **%s** on `%s`", op.Kind, escape(op.Table))

		if len(op.Conditions) > 0 {
			b.WriteString("\n  - WHERE: " + strings.Join(escapeAll(op.Conditions), " AND "))
		}

		if len(op.ColumnsUpdated) > 0 {
			b.WriteString("\n  - Columns: " + strings.Join(escapeAll(op.ColumnsUpdated), ", "))
		}

		if op.HasRawExpression && len(op.RawExpressions) > 0 {
			b.WriteString("\n  - **⚠️ Uses DB::raw:**")
			for _, expr := range op.RawExpressions {
				preview := utils.Truncate(expr, rawExpressionPreview, "...")
				fmt.Fprintf(b, "\n    ```sql\n    %s\n    ```", escape(preview))
			}
		}

		if op.DataPreview != "" && !op.HasRawExpression {
			b.WriteString("\n  - Data: " + escape(op.DataPreview))
		}

	case fact.ShapeModelCreate:
		fmt.Fprintf(b, "- **%s** via `%s::%s`", op.Kind, escape(op.Model), escape(op.Method))
		writeNote(b, op.Note)

	case fact.ShapeInstanceSave, fact.ShapeRelationCreate, fact.ShapeInstanceDelete:
		fmt.Fprintf(b, "- **%s** via `%s->%s`", op.Kind, escape(op.Variable), escape(op.Method))
		if op.Relation != "" {
			fmt.Fprintf(b, " (relation: %s)", escape(op.Relation))
		}
		writeNote(b, op.Note)

	case fact.ShapeLoop:
		fmt.Fprintf(b, "- **🔁 LOOP** (%s)", escape(op.Method))
		if len(op.LoopOperations) > 0 {
			b.WriteString("\n  - Operations: " + strings.Join(escapeAll(op.LoopOperations), ", "))
		}
		writeNote(b, op.Note)
	}
}

func writeNote(b *strings.Builder, note string) {
	if note != "" {
		b.WriteString("\n  - " + escape(note))
	}
}

func foreignKeyTarget(fk fact.ForeignKey) string {
	var references string
	if fk.References != nil {
		references = escape(*fk.References)
	}

	if fk.OnTable != nil && *fk.OnTable != "" {
		return escape(*fk.OnTable) + "." + references
	}

	return references
}

type structuralGroup struct {
	category fact.StructuralCategory
	count    int
}

// groupStructuralOps counts operations per category in order of first appearance.
func groupStructuralOps(ops []fact.StructuralOp) []structuralGroup {
	var groups []structuralGroup
	index := make(map[fact.StructuralCategory]int)

	for _, op := range ops {
		i, ok := index[op.Category]
		if !ok {
			i = len(groups)
			index[op.Category] = i
			groups = append(groups, structuralGroup{category: op.Category})
		}
		groups[i].count++
	}

	return groups
}

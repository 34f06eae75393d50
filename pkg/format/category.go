package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
)

// ByCategory renders the migrations grouped by migration type. Groups are
// sorted by name and their migrations chronologically.
func (f *Formatter) ByCategory(w io.Writer, facts []*fact.Fact) error {
	var b strings.Builder

	f.writeHeader(&b, "Migrations Index - Grouped by Type", false)

	groups := make(map[string][]*fact.Fact)
	for _, ft := range chronological(facts) {
		groups[ft.Identity.Category] = append(groups[ft.Identity.Category], ft)
	}

	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		members := groups[category]

		fmt.Fprintf(&b, "## %s\n\n", escape(category))
		fmt.Fprintf(&b, "**Count:** %d\n\n", len(members))

		for _, ft := range members {
			writeCompact(&b, ft)
			b.WriteString("\n")
		}

		b.WriteString("\n---\n\n")
	}

	if len(categories) == 0 {
		b.WriteString("*No migrations found*\n\n")
	}

	return flush(w, &b)
}

func writeCompact(b *strings.Builder, ft *fact.Fact) {
	fmt.Fprintf(b, "### %s\n\n", escape(ft.Identity.Filename))

	tables := "none"
	if ft.Tables.Len() > 0 {
		tables = strings.Join(escapeAll(ft.Tables.Names()), ", ")
	}
	fmt.Fprintf(b, "**Tables:** %s  \n", tables)

	if ft.Columns.Len() > 0 {
		fmt.Fprintf(b, "**Columns:** %s  \n", strings.Join(escapeAll(ft.Columns.Names()), ", "))
	}

	if ft.HasDataModifications {
		b.WriteString("**⚠️ Modifies data**  \n")
	}

	fmt.Fprintf(b, "**Complexity:** %d/10  \n", ft.ComplexityScore)
}

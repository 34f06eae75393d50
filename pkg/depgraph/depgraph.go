package depgraph

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/yourbasic/graph"
)

type (
	// Graph is the dependency graph of a set of migrations. Vertices are the
	// migrations in chronological order.
	Graph struct {
		names []string
		edges []Edge
		raw   []rawEdge
		g     *graph.Immutable
	}

	// Edge records that To depends on From.
	Edge struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Reason string `json:"reason"`
	}

	// Report summarizes a Graph for serialization.
	Report struct {
		Edges      []Edge     `json:"edges"`
		Order      []string   `json:"order,omitempty"`
		Cycles     [][]string `json:"cycles,omitempty"`
		OutOfOrder []Edge     `json:"out_of_order,omitempty"`
	}
)

// Build creates the dependency graph of the given facts. Migrations are
// identified by filename, or by relative path when several migration types
// hold the same filename.
func Build(facts []*fact.Fact) *Graph {
	sorted := slices.Clone(facts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Identity.SequenceKey < sorted[j].Identity.SequenceKey
	})

	names := vertexNames(sorted)
	creators := make(map[string][]int)
	aliases := make(map[string][]int)

	for i, f := range sorted {
		for _, entry := range f.Tables.Entries() {
			if entry.Operation == fact.TableCreate {
				creators[entry.Name] = append(creators[entry.Name], i)
			}
		}

		for _, alias := range aliasesOf(f) {
			aliases[alias] = append(aliases[alias], i)
		}
	}

	b := &builder{g: graph.New(len(sorted)), seen: make(map[[2]int]struct{})}

	for i, f := range sorted {
		for _, fk := range f.ForeignKeys {
			if fk.OnTable == nil {
				continue
			}

			for _, j := range creators[*fk.OnTable] {
				b.add(j, i, "foreign key "+fk.Column+" on "+*fk.OnTable)
			}
		}

		for _, req := range f.Dependencies.Requires {
			for _, j := range aliases[req] {
				b.add(j, i, "@requires "+req)
			}
		}

		for _, dep := range f.Dependencies.DependsOn {
			for _, j := range aliases[dep] {
				b.add(j, i, "@depends on "+dep)
			}
		}
	}

	edges := make([]Edge, len(b.edges))
	for k, e := range b.edges {
		edges[k] = Edge{From: names[e.from], To: names[e.to], Reason: e.reason}
	}

	return &Graph{names: names, edges: edges, raw: b.edges, g: graph.Sort(b.g)}
}

// Edges returns every dependency in discovery order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Order returns the migrations in an order that satisfies every dependency.
// The second result is false (and the order nil) when the graph has a cycle.
func (g *Graph) Order() ([]string, bool) {
	order, ok := graph.TopSort(g.g)
	if !ok {
		return nil, false
	}

	return g.lookup(order), true
}

// Cycles returns the groups of migrations that depend on each other. Members
// of a group and the groups themselves are in chronological order.
func (g *Graph) Cycles() [][]string {
	var cycles [][]int
	for _, component := range graph.StrongComponents(g.g) {
		if len(component) < 2 {
			continue
		}

		component = slices.Clone(component)
		slices.Sort(component)
		cycles = append(cycles, component)
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })

	out := make([][]string, len(cycles))
	for i, c := range cycles {
		out[i] = g.lookup(c)
	}

	return out
}

// OutOfOrder returns the edges whose dependency is newer than its dependent.
func (g *Graph) OutOfOrder() []Edge {
	var out []Edge
	for k, e := range g.raw {
		if e.from > e.to {
			out = append(out, g.edges[k])
		}
	}

	return out
}

// Report summarizes the graph.
func (g *Graph) Report() Report {
	r := Report{
		Edges:      g.Edges(),
		Cycles:     g.Cycles(),
		OutOfOrder: g.OutOfOrder(),
	}

	if r.Edges == nil {
		r.Edges = []Edge{}
	}

	if order, ok := g.Order(); ok && len(g.edges) > 0 {
		r.Order = order
	}

	return r
}

func (g *Graph) lookup(vertices []int) []string {
	out := make([]string, len(vertices))
	for i, v := range vertices {
		out[i] = g.names[v]
	}
	return out
}

type (
	builder struct {
		g     *graph.Mutable
		edges []rawEdge
		seen  map[[2]int]struct{}
	}

	rawEdge struct {
		from, to int
		reason   string
	}
)

func (b *builder) add(from, to int, reason string) {
	if from == to {
		return
	}

	key := [2]int{from, to}
	if _, ok := b.seen[key]; ok {
		return
	}

	b.seen[key] = struct{}{}
	b.g.Add(from, to)
	b.edges = append(b.edges, rawEdge{from: from, to: to, reason: reason})
}

// vertexNames names each fact by filename. Filenames shared by several facts
// are qualified with the relative path, or the category when the path is
// unknown.
func vertexNames(facts []*fact.Fact) []string {
	counts := make(map[string]int, len(facts))
	for _, f := range facts {
		counts[f.Identity.Filename]++
	}

	names := make([]string, len(facts))
	for i, f := range facts {
		id := f.Identity
		switch {
		case counts[id.Filename] < 2:
			names[i] = id.Filename
		case id.RelativePath != "":
			names[i] = id.RelativePath
		default:
			names[i] = id.Category + "/" + id.Filename
		}
	}

	return names
}

// aliasesOf returns the names an annotation may use to refer to f.
func aliasesOf(f *fact.Fact) []string {
	id := f.Identity
	aliases := []string{id.Filename}

	if stem := strings.TrimSuffix(id.Filename, filepath.Ext(id.Filename)); stem != id.Filename {
		aliases = append(aliases, stem)
	}

	if id.DisplayName != "" && id.DisplayName != id.Filename {
		aliases = append(aliases, id.DisplayName)
	}

	return aliases
}

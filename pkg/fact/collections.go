package fact

import "slices"

type (
	// TableEntry is a table touched by a migration.
	TableEntry struct {
		Name      string
		Operation TableOperation
	}

	// Tables is an insertion ordered set of table names with their operation.
	// The zero value is ready to use.
	Tables struct {
		entries []TableEntry
		index   map[string]int
	}

	// Columns is an insertion ordered set of columns keyed by name. The zero
	// value is ready to use.
	Columns struct {
		entries []Column
		index   map[string]int
	}
)

// Get returns the operation recorded for name.
func (t *Tables) Get(name string) (TableOperation, bool) {
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.entries[i].Operation, true
}

// Has reports whether name has been classified.
func (t *Tables) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Set records op for name. An existing name keeps its position.
func (t *Tables) Set(name string, op TableOperation) {
	if t.index == nil {
		t.index = make(map[string]int)
	}

	if i, ok := t.index[name]; ok {
		t.entries[i].Operation = op
		return
	}

	t.index[name] = len(t.entries)
	t.entries = append(t.entries, TableEntry{Name: name, Operation: op})
}

// SetIfAbsent records op for name unless name is already classified.
func (t *Tables) SetIfAbsent(name string, op TableOperation) {
	if !t.Has(name) {
		t.Set(name, op)
	}
}

// Len returns the number of tables.
func (t *Tables) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the tables in discovery order.
func (t *Tables) Entries() []TableEntry {
	return slices.Clone(t.entries)
}

// Names returns the table names in discovery order.
func (t *Tables) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Get returns the column called name.
func (c *Columns) Get(name string) (Column, bool) {
	i, ok := c.index[name]
	if !ok {
		return Column{}, false
	}
	return c.entries[i], true
}

// Set stores col, replacing a previous column with the same name in place.
func (c *Columns) Set(col Column) {
	if c.index == nil {
		c.index = make(map[string]int)
	}

	if i, ok := c.index[col.Name]; ok {
		c.entries[i] = col
		return
	}

	c.index[col.Name] = len(c.entries)
	c.entries = append(c.entries, col)
}

// Len returns the number of columns.
func (c *Columns) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the columns in discovery order. Modifier slices
// are shared with the set and must not be modified.
func (c *Columns) Entries() []Column {
	return slices.Clone(c.entries)
}

// Names returns the column names in discovery order.
func (c *Columns) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

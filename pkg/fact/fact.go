package fact

// UnknownSequence is the sequence key of files without a timestamp prefix.
const UnknownSequence = "unknown"

type (
	// Identity describes where a Fact came from.
	Identity struct {
		// SequenceKey is the timestamp prefix (YYYY_MM_DD_HHMMSS) or UnknownSequence
		SequenceKey string `json:"sequence_key"`

		// DisplayName is the filename without the timestamp prefix and extension
		DisplayName string `json:"display_name"`

		// Filename is the base name of the source file
		Filename string `json:"filename"`

		// Path is the path the file was read from
		Path string `json:"path"`

		// RelativePath is Path relative to the project root
		RelativePath string `json:"relative_path"`

		// Category is the caller supplied migration type label
		Category string `json:"category"`

		// Checksum is the xxhash64 of the file content, hex encoded
		Checksum string `json:"checksum"`
	}

	// Column is a declared column.
	Column struct {
		Name      string   `json:"name"`
		Type      string   `json:"type"`
		Modifiers []string `json:"modifiers"`
	}

	// StructuralOp is one schema builder call.
	StructuralOp struct {
		Method   string             `json:"method"`
		Params   []string           `json:"params"`
		Category StructuralCategory `json:"category"`
	}

	// Index is a standalone index or unique declaration.
	Index struct {
		Kind       IndexKind `json:"kind"`
		Definition string    `json:"definition"`
	}

	// ForeignKey is a foreign key declaration. References and OnTable are nil
	// when the declaration does not name them.
	ForeignKey struct {
		Column     string  `json:"column"`
		References *string `json:"references"`
		OnTable    *string `json:"on_table"`
	}

	// DataOp is a data mutation. Shape decides which fields are meaningful:
	//
	//   - ShapeTableUpdate: Table, Conditions, ColumnsUpdated, HasRawExpression, RawExpressions, DataPreview
	//   - ShapeTableInsert: Table, Conditions, DataPreview
	//   - ShapeTableDelete: Table, Conditions
	//   - ShapeModelCreate: Model, Method, Note
	//   - ShapeInstanceSave, ShapeInstanceDelete: Variable, Method, Note
	//   - ShapeRelationCreate: Variable, Relation, Method, Note
	//   - ShapeLoop: Method, LoopOperations, Note
	DataOp struct {
		Kind             DataOpKind  `json:"type"`
		Shape            DataOpShape `json:"-"`
		Table            string      `json:"table,omitempty"`
		Model            string      `json:"model,omitempty"`
		Variable         string      `json:"variable,omitempty"`
		Relation         string      `json:"relation,omitempty"`
		Method           string      `json:"method,omitempty"`
		Note             string      `json:"note,omitempty"`
		Conditions       []string    `json:"where_conditions,omitempty"`
		ColumnsUpdated   []string    `json:"columns_updated,omitempty"`
		HasRawExpression bool        `json:"has_db_raw,omitempty"`
		RawExpressions   []string    `json:"db_raw_expressions,omitempty"`
		DataPreview      string      `json:"data_preview,omitempty"`
		LoopOperations   []string    `json:"operations_in_loop,omitempty"`
	}

	// RawStatement is a verbatim statement embedded in the migration.
	RawStatement struct {
		Form StatementForm `json:"type"`
		SQL  string        `json:"sql"`
		Kind StatementKind `json:"operation"`
	}

	// ForeignKeyDependency is a fully specified foreign key chain.
	ForeignKeyDependency struct {
		Column     string `json:"column"`
		References string `json:"references"`
		OnTable    string `json:"on_table"`
	}

	// Dependencies holds what a migration declares it needs. All fields are
	// empty when nothing was found.
	Dependencies struct {
		Requires    []string               `json:"requires,omitempty"`
		DependsOn   []string               `json:"depends_on,omitempty"`
		ForeignKeys []ForeignKeyDependency `json:"foreign_keys,omitempty"`
	}

	// Fact is everything extracted from one migration file.
	Fact struct {
		Identity             Identity
		Tables               Tables
		Columns              Columns
		StructuralOps        []StructuralOp
		Indexes              []Index
		ForeignKeys          []ForeignKey
		DataOps              []DataOp
		RawStatements        []RawStatement
		Dependencies         Dependencies
		MethodsUsed          []string
		HasDataModifications bool
		ComplexityScore      int
	}
)

// IsEmpty reports whether no dependency of any kind was declared.
func (d Dependencies) IsEmpty() bool {
	return len(d.Requires) == 0 && len(d.DependsOn) == 0 && len(d.ForeignKeys) == 0
}

// Counts returns the number of entries per dependency kind, in report order,
// skipping empty kinds.
func (d Dependencies) Counts() []DependencyCount {
	var counts []DependencyCount
	if len(d.Requires) > 0 {
		counts = append(counts, DependencyCount{Name: "requires", Count: len(d.Requires)})
	}
	if len(d.DependsOn) > 0 {
		counts = append(counts, DependencyCount{Name: "depends_on", Count: len(d.DependsOn)})
	}
	if len(d.ForeignKeys) > 0 {
		counts = append(counts, DependencyCount{Name: "foreign_keys", Count: len(d.ForeignKeys)})
	}
	return counts
}

// DependencyCount is a named dependency tally.
type DependencyCount struct {
	Name  string
	Count int
}

// HasRawStatements reports whether the migration embeds raw SQL.
func (f *Fact) HasRawStatements() bool {
	return len(f.RawStatements) > 0
}

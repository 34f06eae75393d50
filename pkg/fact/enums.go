package fact

// TableOperation classifies what a migration does to a table.
type TableOperation string

const (
	TableCreate TableOperation = "CREATE"
	TableAlter  TableOperation = "ALTER"
	TableDrop   TableOperation = "DROP"
	TableRename TableOperation = "RENAME"
	TableData   TableOperation = "DATA"
)

// TableOperations lists every table operation in report order.
var TableOperations = []TableOperation{TableCreate, TableAlter, TableDrop, TableData, TableRename}

// StructuralCategory groups schema builder methods.
type StructuralCategory string

const (
	CategoryColumnCreate   StructuralCategory = "column_create"
	CategoryColumnModify   StructuralCategory = "column_modify"
	CategoryIndex          StructuralCategory = "index"
	CategoryIndexDrop      StructuralCategory = "index_drop"
	CategoryForeignKey     StructuralCategory = "foreign_key"
	CategoryForeignKeyDrop StructuralCategory = "foreign_key_drop"
	CategoryOther          StructuralCategory = "other"
)

// IndexKind distinguishes plain and unique indexes.
type IndexKind string

const (
	IndexPlain  IndexKind = "index"
	IndexUnique IndexKind = "unique"
)

// DataOpKind is the data operation performed. KindSaveAmbiguous is used when
// the source cannot tell an insert from an update.
type DataOpKind string

const (
	KindInsert        DataOpKind = "INSERT"
	KindUpdate        DataOpKind = "UPDATE"
	KindDelete        DataOpKind = "DELETE"
	KindSaveAmbiguous DataOpKind = "UPDATE/INSERT"
	KindLoop          DataOpKind = "LOOP"
)

// DataOpShape tags the textual form a data operation was found in. The shape
// decides which DataOp fields are populated.
type DataOpShape int

const (
	ShapeTableUpdate DataOpShape = iota
	ShapeTableInsert
	ShapeTableDelete
	ShapeModelCreate
	ShapeInstanceSave
	ShapeRelationCreate
	ShapeInstanceDelete
	ShapeLoop
)

// String returns the string representation of the shape.
func (s DataOpShape) String() string {
	switch s {
	case ShapeTableUpdate:
		return "table_update"
	case ShapeTableInsert:
		return "table_insert"
	case ShapeTableDelete:
		return "table_delete"
	case ShapeModelCreate:
		return "model_create"
	case ShapeInstanceSave:
		return "instance_save"
	case ShapeRelationCreate:
		return "relation_create"
	case ShapeInstanceDelete:
		return "instance_delete"
	case ShapeLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// StatementForm is the convention a raw statement was embedded with.
type StatementForm string

const (
	FormStatement  StatementForm = "statement"
	FormUnprepared StatementForm = "unprepared"
	FormExpression StatementForm = "expression"
	FormHeredoc    StatementForm = "heredoc"
)

// StatementKind is the operation of a raw statement, taken from its leading keyword.
type StatementKind string

const (
	StatementSelect     StatementKind = "SELECT"
	StatementInsert     StatementKind = "INSERT"
	StatementUpdate     StatementKind = "UPDATE"
	StatementDelete     StatementKind = "DELETE"
	StatementCreate     StatementKind = "CREATE"
	StatementAlter      StatementKind = "ALTER"
	StatementDrop       StatementKind = "DROP"
	StatementTruncate   StatementKind = "TRUNCATE"
	StatementExpression StatementKind = "EXPRESSION"
	StatementOther      StatementKind = "OTHER"
)

// StatementKeywords lists the keyword-derived kinds in the order they are tested.
var StatementKeywords = []StatementKind{
	StatementSelect,
	StatementInsert,
	StatementUpdate,
	StatementDelete,
	StatementCreate,
	StatementAlter,
	StatementDrop,
	StatementTruncate,
}

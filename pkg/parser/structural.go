package parser

import (
	"regexp"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/utils"
)

var (
	// builderMethods is the vocabulary of schema builder calls recorded as
	// structural operations. Operations are reported in this order.
	builderMethods = []string{
		"id", "foreignId", "bigIncrements", "bigInteger", "binary", "boolean",
		"char", "dateTimeTz", "dateTime", "date", "decimal", "double",
		"enum", "float", "foreignUuid", "geometryCollection", "geometry",
		"increments", "integer", "ipAddress", "json", "jsonb", "lineString",
		"longText", "macAddress", "mediumIncrements", "mediumInteger",
		"mediumText", "morphs", "multiLineString", "multiPoint", "multiPolygon",
		"nullableMorphs", "nullableTimestamps", "nullableUuidMorphs", "point",
		"polygon", "rememberToken", "set", "smallIncrements", "smallInteger",
		"softDeletesTz", "softDeletes", "string", "text", "timeTz", "time",
		"timestampTz", "timestamp", "timestampsTz", "timestamps", "tinyIncrements",
		"tinyInteger", "tinyText", "unsignedBigInteger", "unsignedDecimal",
		"unsignedInteger", "unsignedMediumInteger", "unsignedSmallInteger",
		"unsignedTinyInteger", "uuidMorphs", "uuid", "year",
		"addColumn", "dropColumn", "renameColumn", "modifyColumn",
		"index", "unique", "primary", "foreign", "dropIndex", "dropUnique",
		"dropPrimary", "dropForeign",
	}

	// methodCategories maps builder methods to their category. Methods missing
	// from the table fall into fact.CategoryOther. The lowercase "datetime" entry
	// does not match the dateTime builder method; that mismatch is kept so
	// reports stay comparable with existing indexes.
	methodCategories = map[string]fact.StructuralCategory{
		"id": fact.CategoryColumnCreate, "string": fact.CategoryColumnCreate,
		"integer": fact.CategoryColumnCreate, "text": fact.CategoryColumnCreate,
		"boolean": fact.CategoryColumnCreate, "timestamp": fact.CategoryColumnCreate,
		"datetime": fact.CategoryColumnCreate, "date": fact.CategoryColumnCreate,
		"decimal": fact.CategoryColumnCreate, "float": fact.CategoryColumnCreate,
		"json": fact.CategoryColumnCreate, "enum": fact.CategoryColumnCreate,
		"uuid": fact.CategoryColumnCreate, "foreignId": fact.CategoryColumnCreate,

		"addColumn": fact.CategoryColumnModify, "dropColumn": fact.CategoryColumnModify,
		"renameColumn": fact.CategoryColumnModify, "modifyColumn": fact.CategoryColumnModify,

		"index": fact.CategoryIndex, "unique": fact.CategoryIndex, "primary": fact.CategoryIndex,

		"dropIndex": fact.CategoryIndexDrop, "dropUnique": fact.CategoryIndexDrop,
		"dropPrimary": fact.CategoryIndexDrop,

		"foreign":     fact.CategoryForeignKey,
		"dropForeign": fact.CategoryForeignKeyDrop,
	}

	// columnTypes are the builder methods whose first argument names a column.
	columnTypes = []string{
		"string", "integer", "bigInteger", "text", "boolean", "timestamp",
		"datetime", "date", "decimal", "float", "json", "enum", "uuid",
		"foreignId", "id", "increments", "bigIncrements",
	}

	builderPatterns = make([]*regexp.Regexp, len(builderMethods))
	columnPatterns  = make([]*regexp.Regexp, len(columnTypes))

	defaultModifierPattern = regexp.MustCompile(`->default\(([^)]+)\)`)
	indexPattern           = regexp.MustCompile(`->index\s*\(\s*([^)]+)\)`)
	uniquePattern          = regexp.MustCompile(`->unique\s*\(\s*([^)]+)\)`)
	foreignKeyPattern      = regexp.MustCompile(
		`->foreign\s*\(\s*['"]([^"']+)['"]\s*\)` +
			`(?:\s*->references\s*\(\s*['"]([^"']+)['"]\s*\))?` +
			`(?:\s*->on\s*\(\s*['"]([^"']+)['"]\s*\))?`,
	)
	methodsUsedPattern = regexp.MustCompile(`\$table->([a-zA-Z_]+)\s*\(`)
)

func init() {
	for i, method := range builderMethods {
		builderPatterns[i] = regexp.MustCompile(`\$table->` + regexp.QuoteMeta(method) + `\s*\(([^)]*)\)`)
	}

	for i, typ := range columnTypes {
		columnPatterns[i] = regexp.MustCompile(
			`\$table->` + regexp.QuoteMeta(typ) + `\s*\(\s*['"]([^"']+)['"]([^)]*)\)`,
		)
	}
}

// CategorizeMethod returns the structural category of a builder method.
func CategorizeMethod(method string) fact.StructuralCategory {
	if category, ok := methodCategories[method]; ok {
		return category
	}
	return fact.CategoryOther
}

// ExtractStructuralOps returns one operation per `$table->method(args)` call
// whose method is part of the builder vocabulary. Arguments are split on commas
// and trimmed without further interpretation.
//
// The argument capture stops at the first closing parenthesis, so calls with
// nested parentheses in their arguments are truncated.
func ExtractStructuralOps(content string) []fact.StructuralOp {
	var ops []fact.StructuralOp

	for i, re := range builderPatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			ops = append(ops, fact.StructuralOp{
				Method:   builderMethods[i],
				Params:   splitParams(m[1]),
				Category: CategorizeMethod(builderMethods[i]),
			})
		}
	}

	return ops
}

// ExtractColumns returns the columns declared through column type builders,
// keyed by the first string argument. Modifiers are read from the rest of the
// declaring statement (up to the next semicolon).
func ExtractColumns(content string) fact.Columns {
	var columns fact.Columns

	for i, re := range columnPatterns {
		for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
			columns.Set(fact.Column{
				Name:      content[loc[2]:loc[3]],
				Type:      columnTypes[i],
				Modifiers: ColumnModifiers(statementAt(content, loc[0])),
			})
		}
	}

	return columns
}

// ColumnModifiers lists the known modifiers chained onto a column definition.
func ColumnModifiers(definition string) []string {
	modifiers := []string{}

	if strings.Contains(definition, "->nullable()") {
		modifiers = append(modifiers, "nullable")
	}
	if m := defaultModifierPattern.FindStringSubmatch(definition); m != nil {
		modifiers = append(modifiers, "default("+strings.TrimSpace(m[1])+")")
	}
	if strings.Contains(definition, "->unique()") {
		modifiers = append(modifiers, "unique")
	}
	if strings.Contains(definition, "->unsigned()") {
		modifiers = append(modifiers, "unsigned")
	}
	if strings.Contains(definition, "->index()") {
		modifiers = append(modifiers, "indexed")
	}
	if strings.Contains(definition, "->primary()") {
		modifiers = append(modifiers, "primary")
	}

	return modifiers
}

// ExtractIndexes returns standalone index and unique declarations that carry
// an argument. Plain indexes are listed before unique ones.
func ExtractIndexes(content string) []fact.Index {
	var indexes []fact.Index

	for _, def := range firstGroups(indexPattern, content) {
		indexes = append(indexes, fact.Index{Kind: fact.IndexPlain, Definition: strings.TrimSpace(def)})
	}

	for _, def := range firstGroups(uniquePattern, content) {
		indexes = append(indexes, fact.Index{Kind: fact.IndexUnique, Definition: strings.TrimSpace(def)})
	}

	return indexes
}

// ExtractForeignKeys returns every `->foreign('col')` declaration together with
// the referenced column and table when they are chained directly after it.
// Missing parts are left nil.
func ExtractForeignKeys(content string) []fact.ForeignKey {
	var keys []fact.ForeignKey

	for _, loc := range foreignKeyPattern.FindAllStringSubmatchIndex(content, -1) {
		fk := fact.ForeignKey{Column: content[loc[2]:loc[3]]}
		if loc[4] >= 0 {
			fk.References = utils.Ptr(content[loc[4]:loc[5]])
		}
		if loc[6] >= 0 {
			fk.OnTable = utils.Ptr(content[loc[6]:loc[7]])
		}
		keys = append(keys, fk)
	}

	return keys
}

// ExtractMethodsUsed returns the distinct `$table->` methods called, in order of
// first use. Unlike ExtractStructuralOps it is not limited to the vocabulary.
func ExtractMethodsUsed(content string) []string {
	var methods []string
	seen := make(map[string]struct{})

	for _, method := range firstGroups(methodsUsedPattern, content) {
		if _, ok := seen[method]; ok {
			continue
		}
		seen[method] = struct{}{}
		methods = append(methods, method)
	}

	return methods
}

func splitParams(params string) []string {
	params = strings.TrimSpace(params)
	if params == "" {
		return []string{}
	}

	parts := strings.Split(params, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	return parts
}

// statementAt returns the text from start up to (excluding) the next semicolon.
func statementAt(content string, start int) string {
	if end := strings.IndexByte(content[start:], ';'); end >= 0 {
		return content[start : start+end]
	}
	return content[start:]
}

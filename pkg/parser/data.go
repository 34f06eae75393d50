package parser

import (
	"regexp"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/utils"
)

const (
	// dataPreviewLimit bounds the payload preview of direct table operations
	dataPreviewLimit = 150
)

var (
	tableUpdatePattern = regexp.MustCompile(`(?s)DB::table\(['"]([^"']+)['"]\)((?:[^;])+?)->update\s*\(\s*(\[[^\]]*\])`)
	tableInsertPattern = regexp.MustCompile(`(?s)DB::table\(['"]([^"']+)['"]\)((?:[^;])+?)->insert\s*\(([^)]*)\)`)
	tableDeletePattern = regexp.MustCompile(`(?s)DB::table\(['"]([^"']+)['"]\)((?:[^;])+?)->delete\s*\(\)`)
	rawExprPattern     = regexp.MustCompile(`(?s)DB::raw\s*\(\s*["'](.+?)["']\s*\)`)
	arrayKeyPattern    = regexp.MustCompile(`['"]([a-zA-Z_][a-zA-Z0-9_]*)['"]\s*=>`)

	modelCreatePattern    = regexp.MustCompile(`(?s)\\?App\\[^:]+::create\s*\(`)
	modelNamePattern      = regexp.MustCompile(`\\([A-Z][a-zA-Z]+)::create`)
	instanceSavePattern   = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)->save\s*\(\)`)
	relationCreatePattern = regexp.MustCompile(`(?s)\$([a-zA-Z_][a-zA-Z0-9_]*)->([a-zA-Z_][a-zA-Z0-9_]*)\(\)->create(?:Many)?\s*\(`)
	instanceDeletePattern = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)->(?:each->)?delete\s*\(\)`)

	loopPattern       = regexp.MustCompile(`(?s)foreach\s*\([^)]+\)\s*\{([^}]+(?:\{[^}]+\}[^}]*)*)\}`)
	loopCreatePattern = regexp.MustCompile(`->create(?:Many)?\s*\(`)
	loopDeletePattern = regexp.MustCompile(`->delete\s*\(\)`)
	loopUpdatePattern = regexp.MustCompile(`->update\s*\(`)

	// dataCallMarkers flag data modifications even when no shape matched
	dataCallMarkers = []string{"DB::table", "::create(", "::update(", "::insert("}
)

// ExtractDataOps returns the data mutations performed by a migration. Every
// shape is matched independently and results are concatenated in this order:
//
//  1. DB::table('t')->...->update([...])
//  2. DB::table('t')->...->insert(...)
//  3. DB::table('t')->...->delete()
//  4. \App\...\Model::create(...)
//  5. $var->save()                      (one per variable)
//  6. $var->relation()->create[Many](...)
//  7. $var->delete(), $var->each->delete()  (one per variable)
//  8. foreach (...) { ... }             (summary of the mutations inside)
//
// The direct table shapes need at least one chained call between the table
// reference and the mutation. Loop summaries are added alongside the
// individually matched calls, they do not replace them.
func ExtractDataOps(content string) []fact.DataOp {
	var ops []fact.DataOp

	ops = append(ops, tableUpdates(content)...)
	ops = append(ops, tableInserts(content)...)
	ops = append(ops, tableDeletes(content)...)
	ops = append(ops, modelCreates(content)...)
	ops = append(ops, instanceSaves(content)...)
	ops = append(ops, relationCreates(content)...)
	ops = append(ops, instanceDeletes(content)...)
	ops = append(ops, loops(content)...)

	return ops
}

// HasDataModifications reports whether the migration changes data. Besides the
// structured shapes, any direct table reference or static create/update/insert
// call counts, so files the shapes only partly understand are still flagged.
// The substring check is coarse: Schema::create( matches it too.
func HasDataModifications(content string, ops []fact.DataOp) bool {
	if len(ops) > 0 {
		return true
	}

	for _, marker := range dataCallMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}

	return false
}

// ColumnsFromArray returns the distinct string keys of a PHP array literal.
func ColumnsFromArray(array string) []string {
	return uniqueStrings(firstGroups(arrayKeyPattern, array))
}

// DataPreview collapses whitespace and truncates data to max bytes.
func DataPreview(data string, max int) string {
	return utils.Truncate(utils.CollapseWhitespace(data), max, ellipsis)
}

func tableUpdates(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, m := range tableUpdatePattern.FindAllStringSubmatch(content, -1) {
		payload := m[3]
		op := fact.DataOp{
			Kind:           fact.KindUpdate,
			Shape:          fact.ShapeTableUpdate,
			Table:          m[1],
			Conditions:     ExtractConditions(m[2]),
			ColumnsUpdated: ColumnsFromArray(payload),
			DataPreview:    DataPreview(payload, dataPreviewLimit),
		}

		if strings.Contains(payload, "DB::raw") {
			op.HasRawExpression = true
			op.RawExpressions = firstGroups(rawExprPattern, payload)
		}

		ops = append(ops, op)
	}

	return ops
}

func tableInserts(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, m := range tableInsertPattern.FindAllStringSubmatch(content, -1) {
		ops = append(ops, fact.DataOp{
			Kind:        fact.KindInsert,
			Shape:       fact.ShapeTableInsert,
			Table:       m[1],
			Conditions:  ExtractConditions(m[2]),
			DataPreview: DataPreview(m[3], dataPreviewLimit),
		})
	}

	return ops
}

func tableDeletes(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, m := range tableDeletePattern.FindAllStringSubmatch(content, -1) {
		ops = append(ops, fact.DataOp{
			Kind:       fact.KindDelete,
			Shape:      fact.ShapeTableDelete,
			Table:      m[1],
			Conditions: ExtractConditions(m[2]),
		})
	}

	return ops
}

func modelCreates(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, call := range modelCreatePattern.FindAllString(content, -1) {
		m := modelNamePattern.FindStringSubmatch(call)
		if m == nil {
			continue
		}

		ops = append(ops, fact.DataOp{
			Kind:   fact.KindInsert,
			Shape:  fact.ShapeModelCreate,
			Model:  m[1],
			Method: "Eloquent::create",
			Note:   "Static Model::create() call",
		})
	}

	return ops
}

func instanceSaves(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, name := range uniqueStrings(firstGroups(instanceSavePattern, content)) {
		ops = append(ops, fact.DataOp{
			Kind:     fact.KindSaveAmbiguous,
			Shape:    fact.ShapeInstanceSave,
			Variable: "$" + name,
			Method:   "Eloquent->save()",
			Note:     "Model save - may be INSERT or UPDATE",
		})
	}

	return ops
}

func relationCreates(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, m := range relationCreatePattern.FindAllStringSubmatch(content, -1) {
		ops = append(ops, fact.DataOp{
			Kind:     fact.KindInsert,
			Shape:    fact.ShapeRelationCreate,
			Variable: "$" + m[1],
			Relation: m[2],
			Method:   "Eloquent->relation()->create()",
			Note:     "Record creation through " + m[2] + " relationship",
		})
	}

	return ops
}

func instanceDeletes(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, name := range uniqueStrings(firstGroups(instanceDeletePattern, content)) {
		ops = append(ops, fact.DataOp{
			Kind:     fact.KindDelete,
			Shape:    fact.ShapeInstanceDelete,
			Variable: "$" + name,
			Method:   "Eloquent->delete()",
			Note:     "Model/collection deletion",
		})
	}

	return ops
}

// loops summarizes the mutations inside each foreach body. Bodies are matched
// with a brace balancing heuristic that understands one level of nesting.
func loops(content string) []fact.DataOp {
	var ops []fact.DataOp

	for _, body := range firstGroups(loopPattern, content) {
		var inLoop []string

		if saved := uniqueStrings(firstGroups(instanceSavePattern, body)); len(saved) > 0 {
			inLoop = append(inLoop, "save() on $"+strings.Join(saved, ", $"))
		}
		if loopCreatePattern.MatchString(body) {
			inLoop = append(inLoop, "create()")
		}
		if loopDeletePattern.MatchString(body) {
			inLoop = append(inLoop, "delete()")
		}
		if loopUpdatePattern.MatchString(body) {
			inLoop = append(inLoop, "update()")
		}

		if len(inLoop) == 0 {
			continue
		}

		ops = append(ops, fact.DataOp{
			Kind:           fact.KindLoop,
			Shape:          fact.ShapeLoop,
			Method:         "foreach",
			LoopOperations: inLoop,
			Note:           "Loop operations: " + strings.Join(inLoop, ", "),
		})
	}

	return ops
}

// uniqueStrings drops repeated values, keeping first occurrences in order.
func uniqueStrings(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

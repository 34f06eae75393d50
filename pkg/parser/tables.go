package parser

import (
	"regexp"

	"github.com/pseudomuto/migrationindex/pkg/fact"
)

var (
	schemaCreatePattern = regexp.MustCompile(`Schema::create\s*\(\s*['"]([^"']+)['"]`)
	schemaTablePattern  = regexp.MustCompile(`Schema::table\s*\(\s*['"]([^"']+)['"]`)
	schemaDropPattern   = regexp.MustCompile(`Schema::drop(?:IfExists)?\s*\(\s*['"]([^"']+)['"]`)
	schemaRenamePattern = regexp.MustCompile(`Schema::rename\s*\(\s*['"]([^"']+)['"]`)
	dbTablePattern      = regexp.MustCompile(`DB::table\s*\(\s*['"]([^"']+)['"]`)
)

// DetectTables returns every table the migration touches together with the
// operation performed on it.
//
// Shapes are scanned in a fixed order and later findings respect earlier ones:
//
//   - Schema::create claims a table (repeated creates keep the first)
//   - Schema::table claims only tables not yet classified
//   - Schema::drop / Schema::dropIfExists and Schema::rename always claim the table
//   - DB::table claims only tables not yet classified
//
// A plain data reference therefore never hides a structural change, and the
// result does not depend on where in the file each statement appears.
func DetectTables(content string) fact.Tables {
	var tables fact.Tables

	for _, name := range firstGroups(schemaCreatePattern, content) {
		tables.SetIfAbsent(name, fact.TableCreate)
	}

	for _, name := range firstGroups(schemaTablePattern, content) {
		tables.SetIfAbsent(name, fact.TableAlter)
	}

	for _, name := range firstGroups(schemaDropPattern, content) {
		tables.Set(name, fact.TableDrop)
	}

	for _, name := range firstGroups(schemaRenamePattern, content) {
		tables.Set(name, fact.TableRename)
	}

	for _, name := range firstGroups(dbTablePattern, content) {
		tables.SetIfAbsent(name, fact.TableData)
	}

	return tables
}

// firstGroups returns the first capture group of every match of re in s.
func firstGroups(re *regexp.Regexp, s string) []string {
	matches := re.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

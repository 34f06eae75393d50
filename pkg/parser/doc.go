// Package parser extracts facts from Laravel migration source text.
//
// Every extractor is a pure function over the file contents: there is no
// shared state, nothing is executed, and the same text always yields the same
// result. The extractors work at the level of regular expressions rather than
// a grammar. They accept false positives and negatives at the margin (calls
// with nested parentheses in their arguments are truncated, loop bodies are
// balanced one level deep), and callers should not expect more precision.
//
// # Extractors
//
//   - ParseFilename derives the sequence key and display name of a migration
//   - DetectTables classifies each table as CREATE, ALTER, DROP, RENAME or DATA
//   - ExtractStructuralOps, ExtractColumns, ExtractIndexes, ExtractForeignKeys
//     and ExtractMethodsUsed cover the schema builder ($table->...)
//   - ExtractDataOps and ExtractConditions cover query builder and Eloquent
//     data mutations
//   - ExtractRawStatements finds SQL passed to DB::statement, DB::unprepared,
//     DB::raw or written in SQL heredocs
//   - ExtractDependencies reads @requires / @depends on annotations and
//     foreign key chains
//   - Complexity scores a migration from the counts above
//
// # Table Precedence
//
// A table can be referenced by several statements in one migration. Structural
// changes take priority over data references, and drops and renames override
// creates and alters:
//
//	Schema::create('users', ...);      // users: CREATE
//	DB::table('users')->insert([...]); // still CREATE
//	Schema::dropIfExists('legacy');    // legacy: DROP
//
// # Usage Example
//
//	content := string(data)
//	tables := parser.DetectTables(content)
//	for _, entry := range tables.Entries() {
//		fmt.Println(entry.Name, entry.Operation)
//	}
//
//	ops := parser.ExtractDataOps(content)
//	score := parser.Complexity(tables.Len(), 0, len(ops), 0, 0)
package parser

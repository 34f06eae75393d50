// Package fact defines the normalized record produced for every analyzed
// migration file.
//
// A Fact is built once by the analyzer package from one file's text and a
// category label, and is never modified afterwards. Everything a Fact holds is a
// pure function of the source text: analyzing the same text twice yields equal
// Facts.
//
// # Structure
//
//   - Identity: sequence key, display name, category, paths and a content checksum
//   - Tables: table name to the operation the migration performs on it
//   - Columns: column name to declared type and modifiers
//   - StructuralOps, Indexes, ForeignKeys: schema builder calls
//   - DataOps: data mutations, tagged by the shape they were found in
//   - RawStatements: verbatim SQL embedded in the migration
//   - Dependencies: declared requirements and foreign key edges
//   - HasDataModifications, ComplexityScore: derived values
//
// Ordered collections (Tables, Columns) keep the order in which names were first
// discovered so every report renders them identically across runs.
package fact

// Package depgraph derives the dependency graph between migrations.
//
// A migration depends on another when it declares a foreign key on a table the
// other one creates, or when one of its @requires / @depends on annotations
// names the other migration (by display name, filename or filename without
// extension). Edges point from the dependency to the dependent migration, so
// a topological order of the graph is a valid order in which to run them.
//
// Besides the order, the graph reports dependency cycles and edges whose
// dependency is chronologically newer than the migration relying on it, both
// of which usually indicate a migration that cannot run on a fresh database.
package depgraph

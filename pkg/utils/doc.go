// Package utils provides small helpers shared by the parser, analyzer and
// report packages.
//
// # Text Utilities (text.go)
//
// Extracted source fragments are normalized before they end up in a report:
//
//	// Collapse runs of whitespace (including newlines) into single spaces
//	sql := utils.CollapseWhitespace("UPDATE users\n    SET active = 1")
//	// Result: UPDATE users SET active = 1
//
//	// Limit a fragment to 200 bytes, appending a marker when cut
//	preview := utils.Truncate(sql, 200, "...")
//
// Truncate never splits a multi-byte rune.
//
// # Pointer Utilities (ptr.go)
//
// Optional Fact fields (a foreign key's target table, a column's default) are
// pointers. Ptr builds them from literals:
//
//	fk := fact.ForeignKey{Column: "team_id", OnTable: utils.Ptr("teams")}
package utils

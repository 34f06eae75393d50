package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/fact"
)

var sequencePrefix = regexp.MustCompile(`^(\d{4}_\d{2}_\d{2}_\d{6})_`)

// ParseFilename derives the sequence key and display name from a migration filename.
//
// The sequence key is the YYYY_MM_DD_HHMMSS prefix, or fact.UnknownSequence when the
// filename does not start with one. The display name is the filename without the
// prefix and without its extension.
//
// Example:
//
//	key, name := parser.ParseFilename("2024_01_15_100000_create_users_table.php")
//	// key:  2024_01_15_100000
//	// name: create_users_table
func ParseFilename(filename string) (sequenceKey, displayName string) {
	sequenceKey = fact.UnknownSequence
	if m := sequencePrefix.FindStringSubmatch(filename); m != nil {
		sequenceKey = m[1]
	}

	displayName = strings.TrimSuffix(filename, filepath.Ext(filename))
	displayName = sequencePrefix.ReplaceAllString(displayName, "")

	return sequenceKey, displayName
}

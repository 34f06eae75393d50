package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims s and replaces every run of whitespace with a single space.
//
// Example:
//
//	utils.CollapseWhitespace("  SELECT *\n\t FROM users ")
//	// Result: SELECT * FROM users
func CollapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Truncate shortens s to at most max bytes and appends marker when anything was cut.
// The cut never splits a multi-byte rune, so the kept prefix may be slightly shorter
// than max. Strings that already fit are returned unchanged.
//
// Example:
//
//	utils.Truncate("abcdef", 3, "...")
//	// Result: abc...
func Truncate(s string, max int, marker string) string {
	if len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + marker
}

package parser

import (
	"regexp"
	"strings"

	"github.com/pseudomuto/migrationindex/pkg/utils"
)

const (
	// conditionValueLimit bounds condition values rendered into reports
	conditionValueLimit = 50

	ellipsis = "..."
)

var (
	wherePattern = regexp.MustCompile(
		`(?s)->where\s*\(\s*['"]([^"']+)['"]` +
			`(?:\s*,\s*['"]?([^"'),]+)['"]?)?` +
			`(?:\s*,\s*['"]?([^"')]+)['"]?)?\)`,
	)
	orWherePattern = regexp.MustCompile(
		`(?s)->orWhere\s*\(\s*['"]([^"']+)['"]` +
			`(?:\s*,\s*['"]?([^"'),]+)['"]?)?` +
			`(?:\s*,\s*['"]?([^"')]+)['"]?)?\)`,
	)
	whereInPattern         = regexp.MustCompile(`->whereIn\s*\(\s*['"]([^"']+)['"]`)
	whereNotInPattern      = regexp.MustCompile(`->whereNotIn\s*\(\s*['"]([^"']+)['"]`)
	whereNullPattern       = regexp.MustCompile(`->where(Not)?Null\s*\(\s*['"]([^"']+)['"]`)
	whereBetweenPattern    = regexp.MustCompile(`->whereBetween\s*\(\s*['"]([^"']+)['"]`)
	whereHasPattern        = regexp.MustCompile(`->whereHas\s*\(\s*['"]([^"']+)['"]`)
	whereDoesntHavePattern = regexp.MustCompile(`->whereDoesntHave\s*\(\s*['"]([^"']+)['"]`)
)

// ExtractConditions renders the query qualifiers found in a chain of method
// calls into short, human readable conditions.
//
// Recognized qualifiers, in output order:
//
//	->where('col', value)            col = value
//	->where('col', 'op', value)      col op value
//	->whereIn('col', ...)            col IN (...)
//	->whereNotIn('col', ...)         col NOT IN (...)
//	->whereNull('col')               col IS NULL
//	->whereNotNull('col')            col IS NOT NULL
//	->whereBetween('col', ...)       col BETWEEN (...)
//	->whereHas('rel')                HAS rel
//	->whereDoesntHave('rel')         DOESN'T HAVE rel
//	->orWhere(...)                   OR col op value
//
// Values longer than 50 characters are truncated with "...".
func ExtractConditions(chain string) []string {
	var conditions []string

	conditions = append(conditions, comparisons(wherePattern, chain, "")...)

	for _, col := range firstGroups(whereInPattern, chain) {
		conditions = append(conditions, col+" IN (...)")
	}

	for _, col := range firstGroups(whereNotInPattern, chain) {
		conditions = append(conditions, col+" NOT IN (...)")
	}

	for _, m := range whereNullPattern.FindAllStringSubmatch(chain, -1) {
		if m[1] != "" {
			conditions = append(conditions, m[2]+" IS NOT NULL")
		} else {
			conditions = append(conditions, m[2]+" IS NULL")
		}
	}

	for _, col := range firstGroups(whereBetweenPattern, chain) {
		conditions = append(conditions, col+" BETWEEN (...)")
	}

	for _, rel := range firstGroups(whereHasPattern, chain) {
		conditions = append(conditions, "HAS "+rel)
	}

	for _, rel := range firstGroups(whereDoesntHavePattern, chain) {
		conditions = append(conditions, "DOESN'T HAVE "+rel)
	}

	conditions = append(conditions, comparisons(orWherePattern, chain, "OR ")...)

	return conditions
}

// comparisons renders where-style matches. With three arguments the middle one
// is the operator; with two the operator is "="; with one the value is unknown.
func comparisons(re *regexp.Regexp, chain, prefix string) []string {
	var out []string

	for _, loc := range re.FindAllStringSubmatchIndex(chain, -1) {
		column := chain[loc[2]:loc[3]]
		operator := "="
		value := "unknown"

		switch {
		case loc[6] >= 0:
			operator = ""
			if loc[4] >= 0 {
				operator = strings.TrimSpace(chain[loc[4]:loc[5]])
			}
			value = strings.TrimSpace(chain[loc[6]:loc[7]])
		case loc[4] >= 0:
			value = strings.TrimSpace(chain[loc[4]:loc[5]])
		}

		value = utils.Truncate(value, conditionValueLimit, ellipsis)
		out = append(out, prefix+column+" "+operator+" "+value)
	}

	return out
}

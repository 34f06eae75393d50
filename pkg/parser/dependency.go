package parser

import (
	"regexp"

	"github.com/pseudomuto/migrationindex/pkg/fact"
)

var (
	requiresPattern  = regexp.MustCompile(`@requires?\s+(\S+)`)
	dependsOnPattern = regexp.MustCompile(`@depends?\s+on\s+(\S+)`)
	fkChainPattern   = regexp.MustCompile(
		`->foreign\s*\(['"]([^"']+)['"]\)\s*->references\s*\(['"]([^"']+)['"]\)\s*->on\s*\(['"]([^"']+)['"]`,
	)
)

// ExtractDependencies returns the dependencies a migration declares through
// @requires and @depends on annotations, along with every fully specified
// foreign key chain (->foreign()->references()->on()).
func ExtractDependencies(content string) fact.Dependencies {
	deps := fact.Dependencies{
		Requires:  firstGroups(requiresPattern, content),
		DependsOn: firstGroups(dependsOnPattern, content),
	}

	for _, m := range fkChainPattern.FindAllStringSubmatch(content, -1) {
		deps.ForeignKeys = append(deps.ForeignKeys, fact.ForeignKeyDependency{
			Column:     m[1],
			References: m[2],
			OnTable:    m[3],
		})
	}

	return deps
}

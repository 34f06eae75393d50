package parser

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pseudomuto/migrationindex/pkg/fact"
	"github.com/pseudomuto/migrationindex/pkg/utils"
)

const (
	// statementLimit bounds the captured text of a raw statement
	statementLimit = 500

	truncatedMarker = "... [truncated]"
)

var (
	statementPattern  = regexp.MustCompile(`(?s)DB::statement\s*\(\s*(?:"(.+?)"|'(.+?)')\s*(?:,|\))`)
	unpreparedPattern = regexp.MustCompile(`(?s)DB::unprepared\s*\(\s*(?:"(.+?)"|'(.+?)')\s*(?:,|\))`)
	expressionPattern = regexp.MustCompile(`(?s)DB::raw\s*\(\s*(?:"(.+?)"|'(.+?)')\s*\)`)
	heredocPattern    = regexp.MustCompile(`(?s)<<<(?:"SQL"|'SQL'|SQL)\s*(.+?)\s*SQL`)

	// leadingLexer only needs to find the first word of a statement
	leadingLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Other", Pattern: `.`},
	})

	identToken      = leadingLexer.Symbols()["Ident"]
	whitespaceToken = leadingLexer.Symbols()["Whitespace"]
)

// ExtractRawStatements returns SQL embedded verbatim in the migration. The
// conventions are scanned in a fixed order (DB::statement, DB::unprepared,
// DB::raw, then SQL heredocs) and their results concatenated. Expressions
// wrapped with DB::raw are always of kind EXPRESSION.
func ExtractRawStatements(content string) []fact.RawStatement {
	var stmts []fact.RawStatement

	for _, sql := range quotedBodies(statementPattern, content) {
		stmts = append(stmts, newRawStatement(fact.FormStatement, sql, ClassifyStatement(sql)))
	}

	for _, sql := range quotedBodies(unpreparedPattern, content) {
		stmts = append(stmts, newRawStatement(fact.FormUnprepared, sql, ClassifyStatement(sql)))
	}

	for _, sql := range quotedBodies(expressionPattern, content) {
		stmts = append(stmts, newRawStatement(fact.FormExpression, sql, fact.StatementExpression))
	}

	for _, sql := range firstGroups(heredocPattern, content) {
		stmts = append(stmts, newRawStatement(fact.FormHeredoc, sql, ClassifyStatement(sql)))
	}

	return stmts
}

// ClassifyStatement determines the kind of a SQL statement from its leading
// keyword, ignoring case and leading whitespace. Statements that don't start
// with a known keyword are StatementOther.
func ClassifyStatement(sql string) fact.StatementKind {
	lex, err := leadingLexer.LexString("", sql)
	if err != nil {
		return fact.StatementOther
	}

	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return fact.StatementOther
		}

		if tok.Type == whitespaceToken {
			continue
		}

		if tok.Type != identToken {
			return fact.StatementOther
		}

		word := strings.ToUpper(tok.Value)
		for _, kind := range fact.StatementKeywords {
			if strings.HasPrefix(word, string(kind)) {
				return kind
			}
		}

		return fact.StatementOther
	}
}

// FormatSQL collapses whitespace runs and truncates statements longer than
// 500 bytes, appending a truncation marker.
func FormatSQL(sql string) string {
	return utils.Truncate(utils.CollapseWhitespace(sql), statementLimit, truncatedMarker)
}

func newRawStatement(form fact.StatementForm, sql string, kind fact.StatementKind) fact.RawStatement {
	return fact.RawStatement{
		Form: form,
		SQL:  FormatSQL(sql),
		Kind: kind,
	}
}

// quotedBodies returns the body of each match of a pattern with one group per
// quote style. Only one of the groups participates in a given match.
func quotedBodies(re *regexp.Regexp, s string) []string {
	var bodies []string

	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		for g := 1; g < len(m)/2; g++ {
			if m[2*g] >= 0 {
				bodies = append(bodies, s[m[2*g]:m[2*g+1]])
				break
			}
		}
	}

	return bodies
}

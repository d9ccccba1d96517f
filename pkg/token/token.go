// Package token defines the token types for SQL scanning.
//
// Core tokens are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific tokens are registered dynamically via Register().
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT      // identifier
	NUMBER     // 123, 45.67, 1e10
	STRING     // 'hello'
	BITSTRING  // b'0101'
	HEXSTRING  // x'2F'
	BYTESTRING // e'\n'
	PARAMETER  // $1

	// Operators
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // %
	DPIPE      // ||
	EQ         // =
	NE         // != or <>
	LT         // <
	GT         // >
	LE         // <=
	GE         // >=
	DOT        // .
	COMMA      // ,
	SEMICOLON  // ;
	LPAREN     // (
	RPAREN     // )
	LBRACKET   // [
	RBRACKET   // ]
	DCOLON     // ::
	ARROW      // ->
	DARROW     // ->>
	HASHARROW  // #>
	DHASHARROW // #>>
	QMARK      // ?

	// Pattern-match operators. Distinct token kinds so dialects can map
	// their own lexemes onto them (Postgres ~~, ~~*, ~, ~*).
	LIKE
	ILIKE
	RLIKE
	IRLIKE

	// Keywords (alphabetical)
	ALL
	ALWAYS
	AND
	ARRAY
	AS
	ASC
	BEGIN // transaction start; a bare BEGIN may classify as COMMAND instead
	BETWEEN
	BY
	CASE
	CAST
	COMMAND // opaque statement passed through verbatim
	CREATE
	CURRENT
	DEFAULT
	DESC
	DISTINCT
	DROP
	ELSE
	END
	EXISTS
	FALSE
	FIRST
	FOR
	FROM
	GENERATED
	GROUP
	HAVING
	IDENTITY
	IF
	IN
	INTERVAL
	IS
	KEY
	LAST
	LIMIT
	NOT
	NULL
	NULLS
	OFFSET
	ON
	OR
	ORDER
	PRIMARY
	SELECT
	TABLE
	TEMPORARY
	THEN
	TRUE
	UNIQUE
	WHEN
	WHERE
	WITH

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	// Check dynamic tokens first
	if name, ok := getDynamicName(t); ok {
		return name
	}
	// Then check builtin tokens
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	BITSTRING:  "BITSTRING",
	HEXSTRING:  "HEXSTRING",
	BYTESTRING: "BYTESTRING",
	PARAMETER:  "PARAMETER",

	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	DPIPE:      "||",
	EQ:         "=",
	NE:         "!=",
	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	DOT:        ".",
	COMMA:      ",",
	SEMICOLON:  ";",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACKET:   "[",
	RBRACKET:   "]",
	DCOLON:     "::",
	ARROW:      "->",
	DARROW:     "->>",
	HASHARROW:  "#>",
	DHASHARROW: "#>>",
	QMARK:      "?",

	LIKE:   "LIKE",
	ILIKE:  "ILIKE",
	RLIKE:  "RLIKE",
	IRLIKE: "IRLIKE",

	ALL:       "ALL",
	ALWAYS:    "ALWAYS",
	AND:       "AND",
	ARRAY:     "ARRAY",
	AS:        "AS",
	ASC:       "ASC",
	BEGIN:     "BEGIN",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	COMMAND:   "COMMAND",
	CREATE:    "CREATE",
	CURRENT:   "CURRENT",
	DEFAULT:   "DEFAULT",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	DROP:      "DROP",
	ELSE:      "ELSE",
	END:       "END",
	EXISTS:    "EXISTS",
	FALSE:     "FALSE",
	FIRST:     "FIRST",
	FOR:       "FOR",
	FROM:      "FROM",
	GENERATED: "GENERATED",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	IDENTITY:  "IDENTITY",
	IF:        "IF",
	IN:        "IN",
	INTERVAL:  "INTERVAL",
	IS:        "IS",
	KEY:       "KEY",
	LAST:      "LAST",
	LIMIT:     "LIMIT",
	NOT:       "NOT",
	NULL:      "NULL",
	NULLS:     "NULLS",
	OFFSET:    "OFFSET",
	ON:        "ON",
	OR:        "OR",
	ORDER:     "ORDER",
	PRIMARY:   "PRIMARY",
	SELECT:    "SELECT",
	TABLE:     "TABLE",
	TEMPORARY: "TEMPORARY",
	THEN:      "THEN",
	TRUE:      "TRUE",
	UNIQUE:    "UNIQUE",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
	WITH:      "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":       ALL,
	"always":    ALWAYS,
	"and":       AND,
	"array":     ARRAY,
	"as":        AS,
	"asc":       ASC,
	"between":   BETWEEN,
	"by":        BY,
	"case":      CASE,
	"cast":      CAST,
	"create":    CREATE,
	"current":   CURRENT,
	"default":   DEFAULT,
	"desc":      DESC,
	"distinct":  DISTINCT,
	"drop":      DROP,
	"else":      ELSE,
	"end":       END,
	"exists":    EXISTS,
	"false":     FALSE,
	"first":     FIRST,
	"for":       FOR,
	"from":      FROM,
	"generated": GENERATED,
	"group":     GROUP,
	"having":    HAVING,
	"identity":  IDENTITY,
	"if":        IF,
	"ilike":     ILIKE,
	"in":        IN,
	"interval":  INTERVAL,
	"is":        IS,
	"key":       KEY,
	"last":      LAST,
	"like":      LIKE,
	"limit":     LIMIT,
	"not":       NOT,
	"null":      NULL,
	"nulls":     NULLS,
	"offset":    OFFSET,
	"on":        ON,
	"or":        OR,
	"order":     ORDER,
	"primary":   PRIMARY,
	"select":    SELECT,
	"table":     TABLE,
	"temporary": TEMPORARY,
	"then":      THEN,
	"true":      TRUE,
	"unique":    UNIQUE,
	"when":      WHEN,
	"where":     WHERE,
	"with":      WITH,
}

// LookupIdent returns the token type for the given lowercase identifier.
// If the identifier is a builtin keyword, the keyword token type is
// returned. Otherwise, IDENT is returned. The lexer consults dialect
// keyword phrases before falling back here.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALL && t <= WITH
}

// IsOperator returns true if the token type is an operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= IRLIKE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

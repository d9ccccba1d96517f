// Package postgres provides the PostgreSQL dialect definition: lexical
// rules, function resolvers, render overrides and the time-format table.
// This package is pure Go with no database driver dependencies, making
// it suitable for any tool that needs dialect information without the
// overhead of database connections.
package postgres

import (
	"fmt"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/dialect"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// Dialect-specific type tokens. Registered once at package load so the
// lexer can classify them; TypeTokens below maps them to generic kinds.
var (
	TokenSerial      = token.Register("SERIAL")
	TokenSmallSerial = token.Register("SMALLSERIAL")
	TokenBigSerial   = token.Register("BIGSERIAL")
	TokenVarchar     = token.Register("VARCHAR")
	TokenHStore      = token.Register("HSTORE")
	TokenJSONB       = token.Register("JSONB")
	TokenUUID        = token.Register("UUID")
	TokenCString     = token.Register("CSTRING")
)

func init() {
	dialect.Register(Postgres)
}

// creatables are object classes whose CREATE/DROP statements the
// transpiler does not model. They classify as opaque commands and pass
// through verbatim.
var creatables = []string{
	"AGGREGATE", "CAST", "CONVERSION", "COLLATION", "DEFAULT CONVERSION",
	"CONSTRAINT", "DOMAIN", "EXTENSION", "FOREIGN", "FUNCTION", "OPERATOR",
	"POLICY", "ROLE", "RULE", "SEQUENCE", "TEXT", "TRIGGER", "TYPE",
	"UNLOGGED", "USER",
}

func keywordPhrases() map[string]token.TokenType {
	phrases := map[string]token.TokenType{
		"BEGIN":             token.COMMAND,
		"BEGIN TRANSACTION": token.BEGIN,
		"BIGSERIAL":         TokenBigSerial,
		"CHARACTER VARYING": TokenVarchar,
		"COMMENT ON":        token.COMMAND,
		"CSTRING":           TokenCString,
		"DECLARE":           token.COMMAND,
		"DO":                token.COMMAND,
		"GRANT":             token.COMMAND,
		"HSTORE":            TokenHStore,
		"JSONB":             TokenJSONB,
		"REFRESH":           token.COMMAND,
		"REINDEX":           token.COMMAND,
		"RESET":             token.COMMAND,
		"REVOKE":            token.COMMAND,
		"SERIAL":            TokenSerial,
		"SMALLSERIAL":       TokenSmallSerial,
		"TEMP":              token.TEMPORARY,
		"UUID":              TokenUUID,
	}
	for _, c := range creatables {
		phrases["CREATE "+c] = token.COMMAND
		phrases["DROP "+c] = token.COMMAND
	}
	return phrases
}

// timeMapping associates PostgreSQL to_char/to_timestamp directives with
// the generic strftime vocabulary. The reverse direction is derived at
// build time; AM and PM share %p, so %p maps back to AM.
var timeMapping = map[string]string{
	"AM":      "%p",
	"PM":      "%p",
	"D":       "%u",
	"DD":      "%d",
	"DDD":     "%j",
	"FMDD":    "%-d",
	"FMDDD":   "%-j",
	"FMHH12":  "%-I",
	"FMHH24":  "%-H",
	"FMMI":    "%-M",
	"FMMM":    "%-m",
	"FMSS":    "%-S",
	"HH12":    "%I",
	"HH24":    "%H",
	"MI":      "%M",
	"MM":      "%m",
	"OF":      "%z",
	"SS":      "%S",
	"TMDay":   "%A",
	"TMDy":    "%a",
	"TMMon":   "%b",
	"TMMonth": "%B",
	"TZ":      "%Z",
	"US":      "%f",
	"WW":      "%U",
	"YY":      "%y",
	"YYYY":    "%Y",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.NewDialect("postgres").
	NullsAreLarge().
	TimeFormat("'YYYY-MM-DD HH24:MI:SS'").
	KeywordPhrases(keywordPhrases()).
	LiteralPrefixes(
		dialect.LiteralPrefix{Prefix: "b'", End: "'", Token: token.BITSTRING},
		dialect.LiteralPrefix{Prefix: "B'", End: "'", Token: token.BITSTRING},
		dialect.LiteralPrefix{Prefix: "x'", End: "'", Token: token.HEXSTRING},
		dialect.LiteralPrefix{Prefix: "X'", End: "'", Token: token.HEXSTRING},
		dialect.LiteralPrefix{Prefix: "e'", End: "'", Token: token.BYTESTRING},
		dialect.LiteralPrefix{Prefix: "E'", End: "'", Token: token.BYTESTRING},
	).
	Quotes("'", "$$").
	SingleTokens(map[rune]token.TokenType{
		'$': token.PARAMETER,
	}).
	Symbols(map[string]token.TokenType{
		"~~":  token.LIKE,
		"~~*": token.ILIKE,
		"~*":  token.IRLIKE,
		"~":   token.RLIKE,
	}).
	Functions(map[string]dialect.FunctionResolver{
		"TO_TIMESTAMP": resolveToTimestamp,
		"TO_CHAR":      resolveToChar,
	}).
	Renders(map[ast.Kind]dialect.RenderFunc{
		ast.KindDateAdd:            dateArithSQL("+"),
		ast.KindDateSub:            dateArithSQL("-"),
		ast.KindDateDiff:           dateDiffSQL,
		ast.KindColumnDef:          columnDefSQL,
		ast.KindDataType:           dataTypeSQL,
		ast.KindArray:              arraySQL,
		ast.KindGroupConcat:        stringAggSQL,
		ast.KindSubstring:          substringSQL,
		ast.KindStrToTime:          strToTimeSQL,
		ast.KindTimeToStr:          timeToStrSQL,
		ast.KindUnixToTime:         unixToTimeSQL,
		ast.KindTimeStrToTime:      timeStrToTimeSQL,
		ast.KindTryCast:            tryCastSQL,
		ast.KindJSONExtract:        jsonExtractSQL("->"),
		ast.KindJSONExtractScalar:  jsonExtractSQL("->>"),
		ast.KindJSONBExtract:       jsonExtractSQL("#>"),
		ast.KindJSONBExtractScalar: jsonExtractSQL("#>>"),
		ast.KindJSONBContains:      jsonbContainsSQL,
		ast.KindRegexpLike:         regexpSQL("~"),
		ast.KindRegexpILike:        regexpSQL("~*"),
		ast.KindStrPosition:        strPositionSQL,
	}).
	TypeNames(map[ast.TypeKind]string{
		ast.TypeTinyInt:   "SMALLINT",
		ast.TypeFloat:     "REAL",
		ast.TypeDouble:    "DOUBLE PRECISION",
		ast.TypeBinary:    "BYTEA",
		ast.TypeVarBinary: "BYTEA",
		ast.TypeDateTime:  "TIMESTAMP",
	}).
	TypeTokens(map[token.TokenType]ast.TypeKind{
		TokenSerial:      ast.TypeSerial,
		TokenSmallSerial: ast.TypeSmallSerial,
		TokenBigSerial:   ast.TypeBigSerial,
		TokenVarchar:     ast.TypeVarchar,
		TokenHStore:      ast.TypeHStore,
		TokenJSONB:       ast.TypeJSONB,
		TokenUUID:        ast.TypeUUID,
		TokenCString:     ast.TypePseudo,
	}).
	TimeMapping(timeMapping).
	Build()

// resolveToTimestamp disambiguates TO_TIMESTAMP by arity: a single
// argument is a Unix epoch conversion, two arguments parse a string
// against a format.
func resolveToTimestamp(args []ast.Expr) (ast.Expr, error) {
	switch len(args) {
	case 1:
		return &ast.UnixToTime{This: args[0]}, nil
	case 2:
		format, err := genericFormat(args[1])
		if err != nil {
			return nil, fmt.Errorf("TO_TIMESTAMP: %w", err)
		}
		return &ast.StrToTime{This: args[0], Format: format}, nil
	default:
		return nil, fmt.Errorf("TO_TIMESTAMP expects 1 or 2 arguments, got %d", len(args))
	}
}

func resolveToChar(args []ast.Expr) (ast.Expr, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("TO_CHAR expects 2 arguments, got %d", len(args))
	}
	format, err := genericFormat(args[1])
	if err != nil {
		return nil, fmt.Errorf("TO_CHAR: %w", err)
	}
	return &ast.TimeToStr{This: args[0], Format: format}, nil
}

// timeTranslator carries only the time-format table. The resolvers above
// are referenced from the Postgres initializer, so they translate through
// this separate value rather than Postgres itself.
var timeTranslator = dialect.NewDialect("postgres").
	TimeMapping(timeMapping).
	Build()

// genericFormat extracts a string literal format argument and translates
// it into the generic directive vocabulary.
func genericFormat(arg ast.Expr) (string, error) {
	lit, ok := arg.(*ast.Literal)
	if !ok || !lit.IsString {
		return "", fmt.Errorf("format argument must be a string literal")
	}
	return timeTranslator.FormatToGeneric(lit.Value), nil
}

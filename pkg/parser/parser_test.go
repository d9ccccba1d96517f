package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

func parseOne(t *testing.T, sql string) ast.Expr {
	t.Helper()
	stmt, err := ParseOne(sql, nil)
	require.NoError(t, err)
	require.NotNil(t, stmt)
	return stmt
}

func TestParseSelect(t *testing.T) {
	stmt := parseOne(t, "SELECT a, b FROM s.t WHERE a = 1 ORDER BY b DESC NULLS FIRST, a LIMIT 10")

	sel, ok := stmt.(*ast.Select)
	require.True(t, ok)
	require.Len(t, sel.Expressions, 2)

	from, ok := sel.From.(*ast.Column)
	require.True(t, ok)
	assert.Equal(t, "s", from.Table)
	assert.Equal(t, "t", from.Name)

	where, ok := sel.Where.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.EQ, where.Op)

	require.NotNil(t, sel.OrderBy)
	require.Len(t, sel.OrderBy.Expressions, 2)
	assert.True(t, sel.OrderBy.Expressions[0].Desc)
	assert.True(t, sel.OrderBy.Expressions[0].NullsFirst)
	assert.False(t, sel.OrderBy.Expressions[1].Desc)

	limit, ok := sel.Limit.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "10", limit.Value)
}

func TestParseOrderNulls(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t ORDER BY a NULLS FIRST, b DESC NULLS LAST, c")
	sel := stmt.(*ast.Select)
	require.Len(t, sel.OrderBy.Expressions, 3)

	first := sel.OrderBy.Expressions[0]
	assert.True(t, first.NullsFirst)
	assert.False(t, first.NullsLast)

	last := sel.OrderBy.Expressions[1]
	assert.True(t, last.Desc)
	assert.False(t, last.NullsFirst)
	assert.True(t, last.NullsLast)

	bare := sel.OrderBy.Expressions[2]
	assert.False(t, bare.NullsFirst)
	assert.False(t, bare.NullsLast)
}

func TestParseMultipleStatements(t *testing.T) {
	stmts, err := Parse("SELECT 1; SELECT 2;", nil)
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

func TestParseCreateTable(t *testing.T) {
	stmt := parseOne(t, "CREATE TEMPORARY TABLE IF NOT EXISTS s.t (id INT PRIMARY KEY, name VARCHAR(20) NOT NULL, tags TEXT[])")

	create, ok := stmt.(*ast.CreateTable)
	require.True(t, ok)
	assert.True(t, create.Temporary)
	assert.True(t, create.IfNotExists)
	assert.Equal(t, "s.t", create.Name)
	require.Len(t, create.Columns, 3)

	id := create.Columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, ast.TypeInt, id.Type.Type)
	assert.True(t, id.HasConstraint(ast.ConstraintPrimaryKey))

	name := create.Columns[1]
	assert.Equal(t, ast.TypeVarchar, name.Type.Type)
	require.Len(t, name.Type.Params, 1)
	assert.True(t, name.HasConstraint(ast.ConstraintNotNull))

	tags := create.Columns[2]
	require.Equal(t, ast.TypeArray, tags.Type.Type)
	assert.Equal(t, ast.TypeText, tags.Type.Elem.Type)
}

func TestParseGeneratedIdentity(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE t (a INT GENERATED ALWAYS AS IDENTITY, b INT GENERATED BY DEFAULT AS IDENTITY)")

	create := stmt.(*ast.CreateTable)
	a := create.Columns[0].FindConstraint(ast.ConstraintGeneratedAsIdentity)
	require.NotNil(t, a)
	assert.True(t, a.Always)

	b := create.Columns[1].FindConstraint(ast.ConstraintGeneratedAsIdentity)
	require.NotNil(t, b)
	assert.False(t, b.Always)
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 groups as 1 + (2 * 3).
	stmt := parseOne(t, "1 + 2 * 3")
	add, ok := stmt.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Op)
	mul, ok := add.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Op)

	// a = 1 AND b = 2 groups the comparisons under AND.
	stmt = parseOne(t, "a = 1 AND b = 2")
	and, ok := stmt.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)
	assert.Equal(t, token.EQ, and.Left.(*ast.Binary).Op)
	assert.Equal(t, token.EQ, and.Right.(*ast.Binary).Op)
}

func TestParseIsNotNull(t *testing.T) {
	stmt := parseOne(t, "a IS NOT NULL")
	is, ok := stmt.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.IS, is.Op)
	not, ok := is.Right.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, token.NOT, not.Op)
}

func TestParseCastForms(t *testing.T) {
	stmt := parseOne(t, "CAST(x AS BIGINT)")
	cast, ok := stmt.(*ast.Cast)
	require.True(t, ok)
	assert.Equal(t, ast.TypeBigInt, cast.To.Type)

	stmt = parseOne(t, "x::BIGINT")
	cast, ok = stmt.(*ast.Cast)
	require.True(t, ok)
	assert.Equal(t, ast.TypeBigInt, cast.To.Type)

	stmt = parseOne(t, "TRY_CAST(x AS INT)")
	_, ok = stmt.(*ast.TryCast)
	assert.True(t, ok)
}

func TestParseSubstringForms(t *testing.T) {
	stmt := parseOne(t, "SUBSTRING(s FROM 2 FOR 3)")
	sub := stmt.(*ast.Substring)
	require.NotNil(t, sub.Start)
	require.NotNil(t, sub.Length)

	stmt = parseOne(t, "SUBSTR(s, 2)")
	sub = stmt.(*ast.Substring)
	require.NotNil(t, sub.Start)
	assert.Nil(t, sub.Length)
}

func TestParsePosition(t *testing.T) {
	stmt := parseOne(t, "POSITION('x' IN s)")
	pos := stmt.(*ast.StrPosition)
	assert.Equal(t, "x", pos.Substr.(*ast.Literal).Value)
	assert.Equal(t, "s", pos.This.(*ast.Column).Name)
}

func TestParseTrimForms(t *testing.T) {
	stmt := parseOne(t, "TRIM(s)")
	tr := stmt.(*ast.Trim)
	assert.Equal(t, "s", tr.This.(*ast.Column).Name)
	assert.Empty(t, tr.Position)
	assert.Nil(t, tr.Expression)

	stmt = parseOne(t, "TRIM(LEADING 'x' FROM s)")
	tr = stmt.(*ast.Trim)
	assert.Equal(t, "LEADING", tr.Position)
	assert.Equal(t, "x", tr.Expression.(*ast.Literal).Value)
	assert.Equal(t, "s", tr.This.(*ast.Column).Name)

	stmt = parseOne(t, "TRIM(BOTH FROM s)")
	tr = stmt.(*ast.Trim)
	assert.Equal(t, "BOTH", tr.Position)
	assert.Nil(t, tr.Expression)

	stmt = parseOne(t, "TRIM('x' FROM s)")
	tr = stmt.(*ast.Trim)
	assert.Empty(t, tr.Position)
	assert.Equal(t, "x", tr.Expression.(*ast.Literal).Value)

	stmt = parseOne(t, "TRIM(s, 'x')")
	tr = stmt.(*ast.Trim)
	assert.Equal(t, "s", tr.This.(*ast.Column).Name)
	assert.Equal(t, "x", tr.Expression.(*ast.Literal).Value)

	// A column that happens to be named like a side keyword.
	stmt = parseOne(t, "TRIM(leading)")
	tr = stmt.(*ast.Trim)
	assert.Empty(t, tr.Position)
	assert.Equal(t, "leading", tr.This.(*ast.Column).Name)
}

func TestParseGroupConcat(t *testing.T) {
	stmt := parseOne(t, "GROUP_CONCAT(x ORDER BY y SEPARATOR '-')")
	gc := stmt.(*ast.GroupConcat)

	order, ok := gc.This.(*ast.Order)
	require.True(t, ok)
	assert.Equal(t, "x", order.This.(*ast.Column).Name)
	require.Len(t, order.Expressions, 1)

	require.NotNil(t, gc.Separator)
	assert.Equal(t, "-", gc.Separator.(*ast.Literal).Value)
}

func TestParseStringAgg(t *testing.T) {
	stmt := parseOne(t, "STRING_AGG(x, '-' ORDER BY y DESC)")
	gc := stmt.(*ast.GroupConcat)

	order, ok := gc.This.(*ast.Order)
	require.True(t, ok)
	assert.Equal(t, "x", order.This.(*ast.Column).Name)
	assert.True(t, order.Expressions[0].Desc)
	assert.Equal(t, "-", gc.Separator.(*ast.Literal).Value)
}

func TestParseDateArith(t *testing.T) {
	stmt := parseOne(t, "DATE_ADD(x, 1, 'MONTH')")
	add := stmt.(*ast.DateAdd)
	assert.Equal(t, "MONTH", add.Unit)

	stmt = parseOne(t, "DATE_SUB(x, INTERVAL 2 HOUR)")
	sub := stmt.(*ast.DateSub)
	assert.Equal(t, "HOUR", sub.Unit)
	assert.Equal(t, "2", sub.Expression.(*ast.Literal).Value)

	stmt = parseOne(t, "DATEADD(x, 1)")
	add = stmt.(*ast.DateAdd)
	assert.Equal(t, "DAY", add.Unit, "unit defaults to DAY")
}

func TestParseDateDiff(t *testing.T) {
	stmt := parseOne(t, "DATE_DIFF(a, b, 'HOUR')")
	diff := stmt.(*ast.DateDiff)
	assert.Equal(t, "HOUR", diff.Unit)
	assert.Equal(t, "a", diff.This.(*ast.Column).Name)
	assert.Equal(t, "b", diff.Expression.(*ast.Column).Name)

	stmt = parseOne(t, "DATEDIFF(a, b)")
	diff = stmt.(*ast.DateDiff)
	assert.Equal(t, "DAY", diff.Unit)
}

func TestParseArrayForms(t *testing.T) {
	stmt := parseOne(t, "ARRAY[1, 2]")
	arr := stmt.(*ast.Array)
	assert.Len(t, arr.Expressions, 2)

	stmt = parseOne(t, "ARRAY(SELECT c FROM t)")
	arr = stmt.(*ast.Array)
	require.Len(t, arr.Expressions, 1)
	_, ok := arr.Expressions[0].(*ast.Select)
	assert.True(t, ok)
}

func TestParseGenericFunction(t *testing.T) {
	stmt := parseOne(t, "count(DISTINCT x)")
	fn := stmt.(*ast.Func)
	assert.Equal(t, "COUNT", fn.Name, "function names normalize to upper case")
	assert.True(t, fn.Distinct)
	assert.Len(t, fn.Args, 1)
}

func TestParseQualifiedStar(t *testing.T) {
	stmt := parseOne(t, "SELECT t.* FROM t")
	sel := stmt.(*ast.Select)
	col := sel.Expressions[0].(*ast.Column)
	assert.Equal(t, "t", col.Table)
	assert.Equal(t, "*", col.Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"unknown type", "CAST(x AS WIDGET)"},
		{"missing paren", "SELECT (1"},
		{"bad position", "POSITION('x' FROM s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.sql, nil)
			require.Error(t, err)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("CAST(x AS WIDGET)", nil)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Pos.Line)
	assert.Greater(t, pe.Pos.Column, 1)

	require.True(t, pe.Span.IsValid())
	assert.True(t, pe.Span.Contains(pe.Pos.Offset))
	assert.Equal(t, pe.Pos.Offset+len("WIDGET"), pe.Span.End.Offset)
}

func TestParseUnterminatedLiterals(t *testing.T) {
	_, err := Parse("SELECT 'abc", nil)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "unterminated string")
	assert.Equal(t, 7, pe.Pos.Offset, "error points at the opening quote")
	assert.True(t, pe.Span.IsValid())

	_, err = Parse(`SELECT "abc`, nil)
	require.Error(t, err)
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "unterminated quoted identifier")

	_, err = Parse("SELECT 'it''s", nil)
	require.Error(t, err, "a doubled quote does not close the literal")
}

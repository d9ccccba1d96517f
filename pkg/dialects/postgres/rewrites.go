package postgres

import (
	"strings"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/dialect"
	"github.com/leapstack-labs/sqlport/pkg/generator"
)

// dateDiffFactor converts an epoch difference in seconds to the requested
// unit. An empty factor means the epoch value is already in the unit.
var dateDiffFactor = map[string]string{
	"MICROSECOND": " * 1000000",
	"MILLISECOND": " * 1000",
	"SECOND":      "",
	"MINUTE":      " / 60",
	"HOUR":        " / 3600",
	"DAY":         " / 86400",
}

// dateArithSQL renders date addition and subtraction as native interval
// arithmetic: this +/- INTERVAL 'amount' UNIT. PostgreSQL requires the
// interval amount as a string, so the delta must fold to a single literal.
func dateArithSQL(op string) dialect.RenderFunc {
	return func(r dialect.Renderer, e ast.Expr) string {
		var this, delta ast.Expr
		var unit string
		switch n := e.(type) {
		case *ast.DateAdd:
			this, delta, unit = n.This, n.Expression, n.Unit
		case *ast.DateSub:
			this, delta, unit = n.This, n.Expression, n.Unit
		}

		amount := r.Render(delta)
		if lit, ok := ast.Simplify(delta).(*ast.Literal); ok {
			amount = generator.Quote(lit.Value)
		} else {
			r.Unsupported("cannot add non literal")
		}

		out := r.Render(this) + " " + op + " INTERVAL " + amount
		if unit != "" {
			out += " " + strings.ToUpper(unit)
		}
		return out
	}
}

// dateDiffSQL renders a date difference. Sub-day units derive from the
// epoch seconds of the raw timestamp difference; calendar units go through
// AGE() so that month and year boundaries are respected.
func dateDiffSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.DateDiff)
	unit := strings.ToUpper(n.Unit)
	end := "CAST(" + r.Render(n.This) + " AS TIMESTAMP)"
	start := "CAST(" + r.Render(n.Expression) + " AS TIMESTAMP)"

	if factor, ok := dateDiffFactor[unit]; ok {
		return "CAST(EXTRACT(epoch FROM " + end + " - " + start + ")" + factor + " AS BIGINT)"
	}

	age := "AGE(" + end + ", " + start + ")"
	var diff string
	switch unit {
	case "WEEK":
		diff = extract("year", age) + " * 48 + " + extract("month", age) + " * 4 + " + extract("day", age) + " / 7"
	case "MONTH":
		diff = extract("year", age) + " * 12 + " + extract("month", age)
	case "QUARTER":
		diff = extract("year", age) + " * 4 + " + extract("month", age) + " / 3"
	case "YEAR":
		diff = extract("year", age)
	default:
		r.Unsupported("unsupported DATEDIFF unit " + unit)
		diff = extract("day", age)
	}
	return "CAST(" + diff + " AS BIGINT)"
}

func extract(field, from string) string {
	return "EXTRACT(" + field + " FROM " + from + ")"
}

// columnDefSQL normalizes auto-increment and serial declarations before the
// standard column rendering. Both passes are idempotent, so definitions
// already in the target form pass through unchanged.
func columnDefSQL(r dialect.Renderer, e ast.Expr) string {
	col := e.(*ast.ColumnDef)
	col = autoIncrementToSerial(col)
	col = serialToGenerated(col)
	return generator.ColumnDefSQL(r, col)
}

// autoIncrementToSerial drops an AUTO_INCREMENT constraint and promotes the
// integer base type to its serial counterpart. The input is not modified.
func autoIncrementToSerial(col *ast.ColumnDef) *ast.ColumnDef {
	if !col.HasConstraint(ast.ConstraintAutoIncrement) {
		return col
	}
	out := ast.CloneColumnDef(col)
	out.Constraints = out.RemoveConstraint(ast.ConstraintAutoIncrement)
	if out.Type != nil {
		switch out.Type.Type {
		case ast.TypeInt:
			out.Type.Type = ast.TypeSerial
		case ast.TypeSmallInt:
			out.Type.Type = ast.TypeSmallSerial
		case ast.TypeBigInt:
			out.Type.Type = ast.TypeBigSerial
		}
	}
	return out
}

var serialBase = map[ast.TypeKind]ast.TypeKind{
	ast.TypeSerial:      ast.TypeInt,
	ast.TypeSmallSerial: ast.TypeSmallInt,
	ast.TypeBigSerial:   ast.TypeBigInt,
}

// serialToGenerated lowers a serial pseudo-type to the plain integer type
// with GENERATED BY DEFAULT AS IDENTITY and NOT NULL, the form PostgreSQL
// recommends over serial. Constraints the column already carries are kept.
func serialToGenerated(col *ast.ColumnDef) *ast.ColumnDef {
	if col.Type == nil {
		return col
	}
	base, ok := serialBase[col.Type.Type]
	if !ok {
		return col
	}
	out := ast.CloneColumnDef(col)
	out.Type.Type = base
	if !out.HasConstraint(ast.ConstraintNotNull) {
		out.Constraints = append(
			[]*ast.ColumnConstraint{{Constraint: ast.ConstraintNotNull}},
			out.Constraints...)
	}
	if !out.HasConstraint(ast.ConstraintGeneratedAsIdentity) {
		out.Constraints = append(
			[]*ast.ColumnConstraint{{Constraint: ast.ConstraintGeneratedAsIdentity}},
			out.Constraints...)
	}
	return out
}

// dataTypeSQL renders arrays with the native elem[] suffix and defers to
// the shared rule for everything else.
func dataTypeSQL(r dialect.Renderer, e ast.Expr) string {
	dt := e.(*ast.DataType)
	if dt.Type == ast.TypeArray && dt.Elem != nil {
		return r.Render(dt.Elem) + "[]"
	}
	return generator.DataTypeSQL(r, e)
}

// arraySQL disambiguates the two native constructor forms: ARRAY(subquery)
// when the sole element is a SELECT, ARRAY[...] otherwise.
func arraySQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.Array)
	if len(n.Expressions) == 1 {
		if sel, ok := n.Expressions[0].(*ast.Select); ok {
			return "ARRAY(" + r.Render(sel) + ")"
		}
	}
	return "ARRAY[" + generator.Expressions(r, n.Expressions) + "]"
}

// stringAggSQL renders ordered string aggregation as STRING_AGG with the
// ORDER BY inside the call. The separator defaults to a comma.
func stringAggSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.GroupConcat)

	sep := n.Separator
	if sep == nil {
		sep = ast.String(",")
	}

	this := n.This
	order := ""
	if o, ok := this.(*ast.Order); ok && o.This != nil {
		this = o.This
		order = r.Render(&ast.Order{Expressions: o.Expressions})
	}
	return "STRING_AGG(" + r.Render(this) + ", " + r.Render(sep) + order + ")"
}

// substringSQL uses the FROM/FOR form, omitting whichever bound is absent.
func substringSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.Substring)
	out := "SUBSTRING(" + r.Render(n.This)
	if n.Start != nil {
		out += " FROM " + r.Render(n.Start)
	}
	if n.Length != nil {
		out += " FOR " + r.Render(n.Length)
	}
	return out + ")"
}

func strToTimeSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.StrToTime)
	return "TO_TIMESTAMP(" + r.Render(n.This) + ", " + generator.FormatTime(r, n.Format) + ")"
}

func timeToStrSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.TimeToStr)
	return "TO_CHAR(" + r.Render(n.This) + ", " + generator.FormatTime(r, n.Format) + ")"
}

func unixToTimeSQL(r dialect.Renderer, e ast.Expr) string {
	return "TO_TIMESTAMP(" + r.Render(e.(*ast.UnixToTime).This) + ")"
}

func timeStrToTimeSQL(r dialect.Renderer, e ast.Expr) string {
	return "CAST(" + r.Render(e.(*ast.TimeStrToTime).This) + " AS TIMESTAMP)"
}

// tryCastSQL degrades TRY_CAST to a plain cast. PostgreSQL has no
// error-suppressing cast, so the conversion may raise where the source
// dialect returned NULL.
func tryCastSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.TryCast)
	r.Unsupported("TRY_CAST is not supported in postgres, rendering as CAST")
	return "CAST(" + r.Render(n.This) + " AS " + r.Render(n.To) + ")"
}

// jsonExtractSQL renders the JSON access nodes with their native operator
// spellings (->, ->>, #>, #>>).
func jsonExtractSQL(op string) dialect.RenderFunc {
	return func(r dialect.Renderer, e ast.Expr) string {
		var this, path ast.Expr
		switch n := e.(type) {
		case *ast.JSONExtract:
			this, path = n.This, n.Path
		case *ast.JSONExtractScalar:
			this, path = n.This, n.Path
		case *ast.JSONBExtract:
			this, path = n.This, n.Path
		case *ast.JSONBExtractScalar:
			this, path = n.This, n.Path
		}
		return generator.Binary(r, this, op, path)
	}
}

func jsonbContainsSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.JSONBContains)
	return generator.Binary(r, n.This, "?", n.Key)
}

func regexpSQL(op string) dialect.RenderFunc {
	return func(r dialect.Renderer, e ast.Expr) string {
		switch n := e.(type) {
		case *ast.RegexpLike:
			return generator.Binary(r, n.This, op, n.Pattern)
		case *ast.RegexpILike:
			return generator.Binary(r, n.This, op, n.Pattern)
		}
		return ""
	}
}

func strPositionSQL(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.StrPosition)
	return "STRPOS(" + r.Render(n.This) + ", " + r.Render(n.Substr) + ")"
}

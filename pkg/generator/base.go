package generator

import (
	"strings"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/dialect"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// baseRules is the default render rule table. It covers every node kind in
// the closed set; dialects override individual entries.
var baseRules = map[ast.Kind]dialect.RenderFunc{
	ast.KindLiteral:            renderLiteral,
	ast.KindBitString:          renderBitString,
	ast.KindHexString:          renderHexString,
	ast.KindByteString:         renderByteString,
	ast.KindParameter:          renderParameter,
	ast.KindColumn:             renderColumn,
	ast.KindStar:               func(dialect.Renderer, ast.Expr) string { return "*" },
	ast.KindParen:              renderParen,
	ast.KindBinary:             renderBinary,
	ast.KindUnary:              renderUnary,
	ast.KindFunc:               renderFunc,
	ast.KindCast:               renderCast,
	ast.KindTryCast:            renderTryCast,
	ast.KindInterval:           renderInterval,
	ast.KindArray:              renderArray,
	ast.KindOrdered:            renderOrdered,
	ast.KindOrder:              renderOrder,
	ast.KindSelect:             renderSelect,
	ast.KindCreateTable:        renderCreateTable,
	ast.KindCommand:            renderCommand,
	ast.KindDataType:           DataTypeSQL,
	ast.KindColumnDef:          ColumnDefSQL,
	ast.KindColumnConstraint:   renderColumnConstraint,
	ast.KindDateAdd:            renderDateAdd,
	ast.KindDateSub:            renderDateSub,
	ast.KindDateDiff:           renderDateDiff,
	ast.KindStrToTime:          renderStrToTime,
	ast.KindTimeToStr:          renderTimeToStr,
	ast.KindUnixToTime:         renderUnixToTime,
	ast.KindTimeStrToTime:      renderTimeStrToTime,
	ast.KindCurrentDate:        func(dialect.Renderer, ast.Expr) string { return "CURRENT_DATE" },
	ast.KindCurrentTimestamp:   func(dialect.Renderer, ast.Expr) string { return "CURRENT_TIMESTAMP" },
	ast.KindSubstring:          renderSubstring,
	ast.KindGroupConcat:        renderGroupConcat,
	ast.KindStrPosition:        renderStrPosition,
	ast.KindTrim:               renderTrim,
	ast.KindJSONExtract:        funcStyle("JSON_EXTRACT", jsonArgs),
	ast.KindJSONExtractScalar:  funcStyle("JSON_EXTRACT_SCALAR", jsonArgs),
	ast.KindJSONBExtract:       funcStyle("JSONB_EXTRACT", jsonbArgs),
	ast.KindJSONBExtractScalar: funcStyle("JSONB_EXTRACT_SCALAR", jsonbArgs),
	ast.KindJSONBContains:      renderJSONBContains,
	ast.KindRegexpLike:         renderRegexpLike,
	ast.KindRegexpILike:        renderRegexpILike,
}

// ---------- Shared helpers (exported for dialect packages) ----------

// Quote renders a string literal with doubled-quote escaping.
func Quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// Binary renders an infix expression with an explicit operator spelling.
// Dialects use it for operator forms like `x -> 'k'` or `x ~ 'p'`.
func Binary(r dialect.Renderer, left ast.Expr, op string, right ast.Expr) string {
	return r.Render(left) + " " + op + " " + r.Render(right)
}

// Expressions renders a comma-separated expression list.
func Expressions(r dialect.Renderer, exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = r.Render(e)
	}
	return strings.Join(parts, ", ")
}

// FormatTime renders a node's generic format string as a quoted literal in
// the target dialect's native vocabulary.
func FormatTime(r dialect.Renderer, format string) string {
	d := r.Dialect()
	if d != nil {
		format = d.FormatFromGeneric(format)
	}
	return Quote(format)
}

// ---------- Base rules ----------

func renderLiteral(r dialect.Renderer, e ast.Expr) string {
	lit := e.(*ast.Literal)
	if lit.IsString {
		return Quote(lit.Value)
	}
	return lit.Value
}

func renderBitString(_ dialect.Renderer, e ast.Expr) string {
	return "b'" + e.(*ast.BitString).Value + "'"
}

func renderHexString(_ dialect.Renderer, e ast.Expr) string {
	return "x'" + e.(*ast.HexString).Value + "'"
}

func renderByteString(_ dialect.Renderer, e ast.Expr) string {
	return "e'" + e.(*ast.ByteString).Value + "'"
}

func renderParameter(_ dialect.Renderer, e ast.Expr) string {
	return "$" + e.(*ast.Parameter).Index
}

func renderColumn(_ dialect.Renderer, e ast.Expr) string {
	col := e.(*ast.Column)
	if col.Table != "" {
		return col.Table + "." + col.Name
	}
	return col.Name
}

func renderParen(r dialect.Renderer, e ast.Expr) string {
	return "(" + r.Render(e.(*ast.Paren).This) + ")"
}

func renderBinary(r dialect.Renderer, e ast.Expr) string {
	b := e.(*ast.Binary)
	return Binary(r, b.Left, b.Op.String(), b.Right)
}

func renderUnary(r dialect.Renderer, e ast.Expr) string {
	u := e.(*ast.Unary)
	op := u.Op.String()
	if token.IsKeyword(u.Op) {
		return op + " " + r.Render(u.This)
	}
	return op + r.Render(u.This)
}

func renderFunc(r dialect.Renderer, e ast.Expr) string {
	f := e.(*ast.Func)
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(f.Name))
	sb.WriteByte('(')
	if f.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(Expressions(r, f.Args))
	sb.WriteByte(')')
	return sb.String()
}

func renderCast(r dialect.Renderer, e ast.Expr) string {
	c := e.(*ast.Cast)
	return "CAST(" + r.Render(c.This) + " AS " + r.Render(c.To) + ")"
}

func renderTryCast(r dialect.Renderer, e ast.Expr) string {
	c := e.(*ast.TryCast)
	return "TRY_CAST(" + r.Render(c.This) + " AS " + r.Render(c.To) + ")"
}

func renderInterval(r dialect.Renderer, e ast.Expr) string {
	iv := e.(*ast.Interval)
	out := "INTERVAL " + r.Render(iv.This)
	if iv.Unit != "" {
		out += " " + iv.Unit
	}
	return out
}

func renderArray(r dialect.Renderer, e ast.Expr) string {
	return "ARRAY(" + Expressions(r, e.(*ast.Array).Expressions) + ")"
}

func renderOrdered(r dialect.Renderer, e ast.Expr) string {
	o := e.(*ast.Ordered)
	out := r.Render(o.This)
	if o.Desc {
		out += " DESC"
	}
	switch {
	case o.NullsFirst:
		out += " NULLS FIRST"
	case o.NullsLast:
		out += " NULLS LAST"
	}
	return out
}

// renderOrder emits the ORDER BY clause with its own leading space so it
// can be appended directly after another fragment.
func renderOrder(r dialect.Renderer, e ast.Expr) string {
	o := e.(*ast.Order)
	parts := make([]string, len(o.Expressions))
	for i, item := range o.Expressions {
		parts[i] = r.Render(item)
	}
	out := ""
	if o.This != nil {
		out = r.Render(o.This)
	}
	return out + " ORDER BY " + strings.Join(parts, ", ")
}

func renderSelect(r dialect.Renderer, e ast.Expr) string {
	s := e.(*ast.Select)
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(Expressions(r, s.Expressions))
	if s.From != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(r.Render(s.From))
	}
	if s.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(r.Render(s.Where))
	}
	if s.OrderBy != nil {
		sb.WriteString(r.Render(s.OrderBy)) // carries its leading space
	}
	if s.Limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(r.Render(s.Limit))
	}
	return sb.String()
}

func renderCreateTable(r dialect.Renderer, e ast.Expr) string {
	ct := e.(*ast.CreateTable)
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if ct.Temporary {
		sb.WriteString("TEMPORARY ")
	}
	sb.WriteString("TABLE ")
	if ct.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(ct.Name)
	sb.WriteString(" (")
	for i, col := range ct.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.Render(col))
	}
	sb.WriteByte(')')
	return sb.String()
}

func renderCommand(_ dialect.Renderer, e ast.Expr) string {
	return e.(*ast.Command).This
}

// DataTypeSQL renders a data type using the dialect's name table.
// Dialects that only change the array spelling can fall back to it
// for everything else.
func DataTypeSQL(r dialect.Renderer, e ast.Expr) string {
	dt := e.(*ast.DataType)

	if dt.Type == ast.TypeArray {
		// Generic spelling; dialects override with their own suffix form.
		return "ARRAY<" + r.Render(dt.Elem) + ">"
	}

	name := dt.Type.String()
	if d := r.Dialect(); d != nil {
		if mapped, ok := d.TypeName(dt.Type); ok {
			name = mapped
		}
	}
	if len(dt.Params) > 0 {
		return name + "(" + Expressions(r, dt.Params) + ")"
	}
	return name
}

// ColumnDefSQL renders a column definition. Dialects that rewrite the
// definition first (serial normalization and the like) delegate here
// for the final spelling.
func ColumnDefSQL(r dialect.Renderer, e ast.Expr) string {
	col := e.(*ast.ColumnDef)
	var sb strings.Builder
	sb.WriteString(col.Name)
	if col.Type != nil {
		sb.WriteByte(' ')
		sb.WriteString(r.Render(col.Type))
	}
	for _, con := range col.Constraints {
		sb.WriteByte(' ')
		sb.WriteString(r.Render(con))
	}
	return sb.String()
}

func renderColumnConstraint(r dialect.Renderer, e ast.Expr) string {
	con := e.(*ast.ColumnConstraint)
	switch con.Constraint {
	case ast.ConstraintAutoIncrement:
		return "AUTO_INCREMENT"
	case ast.ConstraintGeneratedAsIdentity:
		if con.Always {
			return "GENERATED ALWAYS AS IDENTITY"
		}
		return "GENERATED BY DEFAULT AS IDENTITY"
	case ast.ConstraintNotNull:
		return "NOT NULL"
	case ast.ConstraintPrimaryKey:
		return "PRIMARY KEY"
	case ast.ConstraintUnique:
		return "UNIQUE"
	case ast.ConstraintDefault:
		return "DEFAULT " + r.Render(con.Value)
	default:
		return ""
	}
}

func renderDateAdd(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.DateAdd)
	return "DATE_ADD(" + r.Render(n.This) + ", " + r.Render(n.Expression) + ", " + Quote(n.Unit) + ")"
}

func renderDateSub(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.DateSub)
	return "DATE_SUB(" + r.Render(n.This) + ", " + r.Render(n.Expression) + ", " + Quote(n.Unit) + ")"
}

func renderDateDiff(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.DateDiff)
	return "DATE_DIFF(" + r.Render(n.This) + ", " + r.Render(n.Expression) + ", " + Quote(n.Unit) + ")"
}

func renderStrToTime(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.StrToTime)
	return "STR_TO_TIME(" + r.Render(n.This) + ", " + FormatTime(r, n.Format) + ")"
}

func renderTimeToStr(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.TimeToStr)
	return "TIME_TO_STR(" + r.Render(n.This) + ", " + FormatTime(r, n.Format) + ")"
}

func renderUnixToTime(r dialect.Renderer, e ast.Expr) string {
	return "UNIX_TO_TIME(" + r.Render(e.(*ast.UnixToTime).This) + ")"
}

func renderTimeStrToTime(r dialect.Renderer, e ast.Expr) string {
	return "TIME_STR_TO_TIME(" + r.Render(e.(*ast.TimeStrToTime).This) + ")"
}

func renderSubstring(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.Substring)
	args := []ast.Expr{n.This}
	if n.Start != nil {
		args = append(args, n.Start)
	}
	if n.Length != nil {
		args = append(args, n.Length)
	}
	return "SUBSTRING(" + Expressions(r, args) + ")"
}

func renderGroupConcat(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.GroupConcat)
	out := "GROUP_CONCAT(" + r.Render(n.This)
	if n.Separator != nil {
		out += ", " + r.Render(n.Separator)
	}
	return out + ")"
}

// renderTrim keeps the plain TRIM(x) spelling when neither a side keyword
// nor a character set is present, and the standard FROM form otherwise.
func renderTrim(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.Trim)
	var sb strings.Builder
	sb.WriteString("TRIM(")
	if n.Position != "" {
		sb.WriteString(n.Position)
		sb.WriteByte(' ')
	}
	if n.Expression != nil {
		sb.WriteString(r.Render(n.Expression))
		sb.WriteByte(' ')
	}
	if n.Position != "" || n.Expression != nil {
		sb.WriteString("FROM ")
	}
	sb.WriteString(r.Render(n.This))
	sb.WriteByte(')')
	return sb.String()
}

func renderStrPosition(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.StrPosition)
	return "POSITION(" + r.Render(n.Substr) + " IN " + r.Render(n.This) + ")"
}

func renderJSONBContains(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.JSONBContains)
	return "JSONB_CONTAINS(" + r.Render(n.This) + ", " + r.Render(n.Key) + ")"
}

func renderRegexpLike(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.RegexpLike)
	return "REGEXP_LIKE(" + r.Render(n.This) + ", " + r.Render(n.Pattern) + ")"
}

func renderRegexpILike(r dialect.Renderer, e ast.Expr) string {
	n := e.(*ast.RegexpILike)
	return "REGEXP_ILIKE(" + r.Render(n.This) + ", " + r.Render(n.Pattern) + ")"
}

// funcStyle builds a function-call render rule from a name and an argument
// extractor, for node kinds whose base form is NAME(a, b).
func funcStyle(name string, args func(ast.Expr) []ast.Expr) dialect.RenderFunc {
	return func(r dialect.Renderer, e ast.Expr) string {
		return name + "(" + Expressions(r, args(e)) + ")"
	}
}

func jsonArgs(e ast.Expr) []ast.Expr {
	switch n := e.(type) {
	case *ast.JSONExtract:
		return []ast.Expr{n.This, n.Path}
	case *ast.JSONExtractScalar:
		return []ast.Expr{n.This, n.Path}
	}
	return nil
}

func jsonbArgs(e ast.Expr) []ast.Expr {
	switch n := e.(type) {
	case *ast.JSONBExtract:
		return []ast.Expr{n.This, n.Path}
	case *ast.JSONBExtractScalar:
		return []ast.Expr{n.This, n.Path}
	}
	return nil
}

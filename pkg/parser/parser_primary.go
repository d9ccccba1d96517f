package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// parsePrimary parses literals, references, parenthesized expressions and
// call forms.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.token.Type {
	case token.NUMBER:
		lit := ast.Number(p.token.Literal)
		p.nextToken()
		return lit

	case token.STRING:
		lit := ast.String(p.token.Literal)
		p.nextToken()
		return lit

	case token.BITSTRING:
		e := &ast.BitString{Value: p.token.Literal}
		p.nextToken()
		return e

	case token.HEXSTRING:
		e := &ast.HexString{Value: p.token.Literal}
		p.nextToken()
		return e

	case token.BYTESTRING:
		e := &ast.ByteString{Value: p.token.Literal}
		p.nextToken()
		return e

	case token.PARAMETER:
		e := &ast.Parameter{Index: p.token.Literal}
		p.nextToken()
		return e

	case token.TRUE, token.FALSE, token.NULL:
		e := &ast.Literal{Value: p.token.Type.String()}
		p.nextToken()
		return e

	case token.STAR:
		p.nextToken()
		return &ast.Star{}

	case token.CAST:
		return p.parseCastForm(false)

	case token.INTERVAL:
		return p.parseInterval()

	case token.ARRAY:
		return p.parseArray()

	case token.LPAREN:
		p.nextToken()
		var inner ast.Expr
		if p.check(token.SELECT) {
			inner = p.parseSelect()
		} else {
			inner = p.parseExpression()
		}
		p.expect(token.RPAREN)
		return &ast.Paren{This: inner}

	case token.IDENT:
		return p.parseIdentExpr()

	default:
		p.addError("unexpected token " + p.token.Type.String())
		p.nextToken()
		return nil
	}
}

// parseIdentExpr parses a function call, a qualified column or a bare
// column reference. A handful of zero-argument builtins are recognized
// without parentheses.
func (p *Parser) parseIdentExpr() ast.Expr {
	name := p.token.Literal

	if p.checkPeek(token.LPAREN) {
		p.nextToken() // name
		p.nextToken() // (
		return p.parseCall(name)
	}
	p.nextToken()

	switch strings.ToUpper(name) {
	case "CURRENT_DATE":
		return &ast.CurrentDate{}
	case "CURRENT_TIMESTAMP":
		return &ast.CurrentTimestamp{}
	}

	if p.match(token.DOT) {
		switch {
		case p.check(token.IDENT):
			col := &ast.Column{Table: name, Name: p.token.Literal}
			p.nextToken()
			return col
		case p.check(token.STAR):
			p.nextToken()
			return &ast.Column{Table: name, Name: "*"}
		default:
			p.addError("expected identifier after '.'")
			return nil
		}
	}
	return &ast.Column{Name: name}
}

// parseCall parses a call body after the opening parenthesis. Special
// grammar forms come first, then dialect function resolvers, then the
// generic function node.
func (p *Parser) parseCall(name string) ast.Expr {
	upper := strings.ToUpper(name)

	switch upper {
	case "CAST", "TRY_CAST":
		return p.parseCastBody(upper == "TRY_CAST")
	case "SUBSTRING", "SUBSTR":
		return p.parseSubstring()
	case "POSITION":
		return p.parsePosition()
	case "TRIM":
		return p.parseTrim()
	case "GROUP_CONCAT":
		return p.parseGroupConcat()
	case "STRING_AGG":
		return p.parseStringAgg()
	case "DATE_ADD", "DATEADD":
		return p.parseDateArith(true)
	case "DATE_SUB", "DATESUB":
		return p.parseDateArith(false)
	case "DATE_DIFF", "DATEDIFF":
		return p.parseDateDiff()
	case "CURRENT_DATE":
		p.expect(token.RPAREN)
		return &ast.CurrentDate{}
	case "CURRENT_TIMESTAMP", "NOW":
		p.expect(token.RPAREN)
		return &ast.CurrentTimestamp{}
	}

	distinct := p.match(token.DISTINCT)
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		args = append(args, p.parseFunctionArg())
		for p.match(token.COMMA) {
			args = append(args, p.parseFunctionArg())
		}
	}
	p.expect(token.RPAREN)

	// Generic spellings of the datetime nodes round-trip through here.
	if e := p.builtinCall(upper, args); e != nil {
		return e
	}

	if !distinct && p.dialect != nil {
		if resolve, ok := p.dialect.Resolver(upper); ok {
			e, err := resolve(args)
			if err != nil {
				p.addError(fmt.Sprintf(ErrBadFunctionCall, upper, err))
				return nil
			}
			return e
		}
	}

	return &ast.Func{Name: upper, Distinct: distinct, Args: args}
}

// parseFunctionArg parses one argument, allowing a trailing ORDER BY to
// attach to the argument (aggregate calls like STRING_AGG(x, ',' ORDER BY x)).
func (p *Parser) parseFunctionArg() ast.Expr {
	e := p.parseExpression()
	if p.check(token.ORDER) {
		order := p.parseOrderBy()
		order.This = e
		return order
	}
	return e
}

// builtinCall maps the generic spellings of dedicated nodes.
func (p *Parser) builtinCall(upper string, args []ast.Expr) ast.Expr {
	switch upper {
	case "STR_TO_TIME":
		if len(args) == 2 {
			if format, ok := stringArg(args[1]); ok {
				return &ast.StrToTime{This: args[0], Format: format}
			}
		}
	case "TIME_TO_STR":
		if len(args) == 2 {
			if format, ok := stringArg(args[1]); ok {
				return &ast.TimeToStr{This: args[0], Format: format}
			}
		}
	case "UNIX_TO_TIME":
		if len(args) == 1 {
			return &ast.UnixToTime{This: args[0]}
		}
	case "TIME_STR_TO_TIME":
		if len(args) == 1 {
			return &ast.TimeStrToTime{This: args[0]}
		}
	case "STRPOS":
		if len(args) == 2 {
			return &ast.StrPosition{This: args[0], Substr: args[1]}
		}
	}
	return nil
}

func stringArg(e ast.Expr) (string, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok || !lit.IsString {
		return "", false
	}
	return lit.Value, true
}

// parseCastForm parses the keyword form CAST(expr AS type).
func (p *Parser) parseCastForm(try bool) ast.Expr {
	p.nextToken() // consume CAST
	if !p.expect(token.LPAREN) {
		return nil
	}
	return p.parseCastBody(try)
}

// parseCastBody parses `expr AS type)` after the opening parenthesis.
func (p *Parser) parseCastBody(try bool) ast.Expr {
	this := p.parseExpression()
	if !p.expect(token.AS) {
		return nil
	}
	to := p.parseDataType()
	if to == nil {
		return nil
	}
	p.expect(token.RPAREN)
	if try {
		return &ast.TryCast{This: this, To: to}
	}
	return &ast.Cast{This: this, To: to}
}

// parseSubstring parses both the FROM/FOR form and the comma form; start
// and length are each optional.
func (p *Parser) parseSubstring() ast.Expr {
	sub := &ast.Substring{This: p.parseExpression()}
	switch {
	case p.match(token.FROM):
		sub.Start = p.parseExpression()
		if p.match(token.FOR) {
			sub.Length = p.parseExpression()
		}
	case p.match(token.COMMA):
		sub.Start = p.parseExpression()
		if p.match(token.COMMA) {
			sub.Length = p.parseExpression()
		}
	}
	p.expect(token.RPAREN)
	return sub
}

// parsePosition parses POSITION(needle IN haystack).
func (p *Parser) parsePosition() ast.Expr {
	needle := p.parseExpression()
	if !p.expect(token.IN) {
		return nil
	}
	haystack := p.parseExpression()
	p.expect(token.RPAREN)
	return &ast.StrPosition{This: haystack, Substr: needle}
}

// parseTrim parses TRIM([LEADING|TRAILING|BOTH] [chars] FROM expr) and the
// comma form TRIM(expr[, chars]).
func (p *Parser) parseTrim() ast.Expr {
	tr := &ast.Trim{}

	// A leading side keyword only counts as one when it is not itself the
	// whole expression, e.g. TRIM(both) trims a column named "both".
	if p.check(token.IDENT) {
		switch strings.ToUpper(p.token.Literal) {
		case "LEADING", "TRAILING", "BOTH":
			if !p.checkPeek(token.RPAREN) && !p.checkPeek(token.DOT) &&
				p.infixPrecedence(p.peek.Type) == precNone {
				tr.Position = strings.ToUpper(p.token.Literal)
				p.nextToken()
			}
		}
	}

	if p.match(token.FROM) {
		// TRIM(LEADING FROM x): no character set given.
		tr.This = p.parseExpression()
		p.expect(token.RPAREN)
		return tr
	}

	first := p.parseExpression()
	switch {
	case p.match(token.FROM):
		tr.Expression = first
		tr.This = p.parseExpression()
	case p.match(token.COMMA):
		tr.This = first
		tr.Expression = p.parseExpression()
	default:
		tr.This = first
	}
	p.expect(token.RPAREN)
	return tr
}

// parseGroupConcat parses GROUP_CONCAT(expr [ORDER BY ...] [SEPARATOR sep]).
func (p *Parser) parseGroupConcat() ast.Expr {
	gc := &ast.GroupConcat{This: p.parseExpression()}

	if p.check(token.ORDER) {
		order := p.parseOrderBy()
		order.This = gc.This
		gc.This = order
	}
	if p.check(token.IDENT) && strings.EqualFold(p.token.Literal, "separator") {
		p.nextToken()
		gc.Separator = p.parseExpression()
	} else if p.match(token.COMMA) {
		gc.Separator = p.parseExpression()
	}
	p.expect(token.RPAREN)
	return gc
}

// parseStringAgg parses STRING_AGG(expr, sep [ORDER BY ...]). An ORDER BY
// directly after the first argument attaches there via parseFunctionArg
// semantics, matching the native PostgreSQL shape.
func (p *Parser) parseStringAgg() ast.Expr {
	gc := &ast.GroupConcat{This: p.parseExpression()}
	if p.match(token.COMMA) {
		gc.Separator = p.parseExpression()
	}
	if p.check(token.ORDER) {
		order := p.parseOrderBy()
		order.This = gc.This
		gc.This = order
	}
	p.expect(token.RPAREN)
	return gc
}

// parseDateArith parses DATE_ADD/DATE_SUB in the generic comma form
// (this, delta, 'unit') and the interval form (this, INTERVAL delta UNIT).
func (p *Parser) parseDateArith(add bool) ast.Expr {
	this := p.parseExpression()
	if !p.expect(token.COMMA) {
		return nil
	}

	var delta ast.Expr
	unit := "DAY"
	if p.check(token.INTERVAL) {
		iv, ok := p.parseInterval().(*ast.Interval)
		if !ok {
			return nil
		}
		delta = iv.This
		if iv.Unit != "" {
			unit = iv.Unit
		}
	} else {
		delta = p.parseExpression()
		if p.match(token.COMMA) {
			unit = p.parseUnit()
		}
	}
	p.expect(token.RPAREN)

	if add {
		return &ast.DateAdd{This: this, Expression: delta, Unit: unit}
	}
	return &ast.DateSub{This: this, Expression: delta, Unit: unit}
}

// parseDateDiff parses DATE_DIFF(end, start[, 'unit']), unit defaulting
// to DAY.
func (p *Parser) parseDateDiff() ast.Expr {
	end := p.parseExpression()
	if !p.expect(token.COMMA) {
		return nil
	}
	start := p.parseExpression()

	unit := "DAY"
	if p.match(token.COMMA) {
		unit = p.parseUnit()
	}
	p.expect(token.RPAREN)
	return &ast.DateDiff{This: end, Expression: start, Unit: unit}
}

// parseUnit reads a calendar unit given as identifier or string literal.
func (p *Parser) parseUnit() string {
	if p.check(token.IDENT) || p.check(token.STRING) {
		unit := strings.ToUpper(p.token.Literal)
		p.nextToken()
		return unit
	}
	p.addError("expected unit, got " + p.token.Type.String())
	return ""
}

// parseInterval parses INTERVAL amount [unit]. The amount may be a quoted
// string or a bare number.
func (p *Parser) parseInterval() ast.Expr {
	p.nextToken() // consume INTERVAL

	iv := &ast.Interval{}
	switch p.token.Type {
	case token.STRING:
		iv.This = ast.String(p.token.Literal)
		p.nextToken()
	case token.NUMBER:
		iv.This = ast.Number(p.token.Literal)
		p.nextToken()
	default:
		p.addError("expected interval amount, got " + p.token.Type.String())
		return nil
	}

	if p.check(token.IDENT) {
		iv.Unit = strings.ToUpper(p.token.Literal)
		p.nextToken()
	}
	return iv
}

// parseArray parses ARRAY[...] and ARRAY(SELECT ...).
func (p *Parser) parseArray() ast.Expr {
	p.nextToken() // consume ARRAY

	arr := &ast.Array{}
	switch {
	case p.match(token.LBRACKET):
		if !p.check(token.RBRACKET) {
			arr.Expressions = append(arr.Expressions, p.parseExpression())
			for p.match(token.COMMA) {
				arr.Expressions = append(arr.Expressions, p.parseExpression())
			}
		}
		p.expect(token.RBRACKET)
	case p.match(token.LPAREN):
		if p.check(token.SELECT) {
			arr.Expressions = append(arr.Expressions, p.parseSelect())
		} else {
			arr.Expressions = append(arr.Expressions, p.parseExpression())
			for p.match(token.COMMA) {
				arr.Expressions = append(arr.Expressions, p.parseExpression())
			}
		}
		p.expect(token.RPAREN)
	default:
		p.addError("expected '[' or '(' after ARRAY")
		return nil
	}
	return arr
}

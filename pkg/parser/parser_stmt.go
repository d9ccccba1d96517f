package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// parseStatement dispatches on the leading token.
func (p *Parser) parseStatement() ast.Expr {
	switch p.token.Type {
	case token.SELECT:
		return p.parseSelect()
	case token.CREATE:
		return p.parseCreate()
	case token.BEGIN:
		// BEGIN TRANSACTION and the bare BEGIN remapped by a dialect both
		// pass through as the canonical transaction opener.
		p.nextToken()
		return &ast.Command{This: "BEGIN"}
	case token.COMMAND:
		return p.parseCommand()
	default:
		// Bare expression, useful for snippet transpilation.
		return p.parseExpression()
	}
}

// parseCommand captures an unmodeled statement verbatim. The current token
// carries the phrase that classified the statement; everything up to the
// terminator is kept as written.
func (p *Parser) parseCommand() ast.Expr {
	start := p.token.Pos.Offset
	end := len(p.lexer.input)
	for !p.atStatementEnd() {
		p.nextToken()
	}
	if p.check(token.SEMICOLON) {
		end = p.token.Pos.Offset
	}
	return &ast.Command{This: strings.TrimSpace(p.lexer.input[start:end])}
}

// parseSelect parses a SELECT statement.
func (p *Parser) parseSelect() ast.Expr {
	p.nextToken() // consume SELECT

	sel := &ast.Select{}
	sel.Expressions = append(sel.Expressions, p.parseExpression())
	for p.match(token.COMMA) {
		sel.Expressions = append(sel.Expressions, p.parseExpression())
	}

	if p.match(token.FROM) {
		sel.From = p.parseTableRef()
	}
	if p.match(token.WHERE) {
		sel.Where = p.parseExpression()
	}
	if p.check(token.ORDER) {
		sel.OrderBy = p.parseOrderBy()
	}
	if p.match(token.LIMIT) {
		sel.Limit = p.parseExpression()
	}
	return sel
}

// parseTableRef parses a possibly qualified table name.
func (p *Parser) parseTableRef() ast.Expr {
	if !p.check(token.IDENT) {
		p.addError("expected table name, got " + p.token.Type.String())
		return nil
	}
	name := p.token.Literal
	p.nextToken()
	if p.match(token.DOT) {
		if p.check(token.IDENT) {
			qualified := &ast.Column{Table: name, Name: p.token.Literal}
			p.nextToken()
			return qualified
		}
		p.addError("expected identifier after '.'")
		return nil
	}
	return &ast.Column{Name: name}
}

// parseOrderBy parses ORDER BY ordered-expression list.
func (p *Parser) parseOrderBy() *ast.Order {
	p.nextToken() // consume ORDER
	p.expect(token.BY)

	order := &ast.Order{}
	order.Expressions = append(order.Expressions, p.parseOrdered())
	for p.match(token.COMMA) {
		order.Expressions = append(order.Expressions, p.parseOrdered())
	}
	return order
}

func (p *Parser) parseOrdered() *ast.Ordered {
	o := &ast.Ordered{This: p.parseExpression()}
	switch {
	case p.match(token.DESC):
		o.Desc = true
	case p.match(token.ASC):
	}
	if p.match(token.NULLS) {
		switch {
		case p.match(token.FIRST):
			o.NullsFirst = true
		case p.match(token.LAST):
			o.NullsLast = true
		default:
			p.addError("expected FIRST or LAST after NULLS")
		}
	}
	return o
}

// parseCreate parses CREATE [TEMPORARY] TABLE. Other CREATE forms classify
// as COMMAND in the lexer and never reach this point.
func (p *Parser) parseCreate() ast.Expr {
	p.nextToken() // consume CREATE

	create := &ast.CreateTable{}
	if p.match(token.TEMPORARY) {
		create.Temporary = true
	}
	if !p.expect(token.TABLE) {
		return nil
	}
	if p.check(token.IF) {
		p.nextToken()
		p.expect(token.NOT)
		p.expect(token.EXISTS)
		create.IfNotExists = true
	}

	if !p.check(token.IDENT) {
		p.addError("expected table name, got " + p.token.Type.String())
		return nil
	}
	create.Name = p.token.Literal
	p.nextToken()
	if p.match(token.DOT) {
		if !p.check(token.IDENT) {
			p.addError("expected identifier after '.'")
			return nil
		}
		create.Name += "." + p.token.Literal
		p.nextToken()
	}

	if !p.expect(token.LPAREN) {
		return nil
	}
	for {
		col := p.parseColumnDef()
		if col == nil {
			return nil
		}
		create.Columns = append(create.Columns, col)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return create
}

// parseColumnDef parses one column definition inside CREATE TABLE.
func (p *Parser) parseColumnDef() *ast.ColumnDef {
	if !p.check(token.IDENT) {
		p.addError("expected column name, got " + p.token.Type.String())
		return nil
	}
	col := &ast.ColumnDef{Name: p.token.Literal}
	p.nextToken()

	col.Type = p.parseDataType()
	if col.Type == nil {
		return nil
	}

	for {
		con := p.parseColumnConstraint()
		if con == nil {
			break
		}
		col.Constraints = append(col.Constraints, con)
	}
	return col
}

// parseColumnConstraint parses one column constraint, or returns nil when
// the current token does not start one.
func (p *Parser) parseColumnConstraint() *ast.ColumnConstraint {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		p.expect(token.NULL)
		return &ast.ColumnConstraint{Constraint: ast.ConstraintNotNull}
	case token.PRIMARY:
		p.nextToken()
		p.expect(token.KEY)
		return &ast.ColumnConstraint{Constraint: ast.ConstraintPrimaryKey}
	case token.UNIQUE:
		p.nextToken()
		return &ast.ColumnConstraint{Constraint: ast.ConstraintUnique}
	case token.DEFAULT:
		p.nextToken()
		return &ast.ColumnConstraint{Constraint: ast.ConstraintDefault, Value: p.parseExpression()}
	case token.GENERATED:
		p.nextToken()
		con := &ast.ColumnConstraint{Constraint: ast.ConstraintGeneratedAsIdentity}
		if p.match(token.ALWAYS) {
			con.Always = true
		} else {
			p.expect(token.BY)
			p.expect(token.DEFAULT)
		}
		p.expect(token.AS)
		p.expect(token.IDENTITY)
		return con
	case token.IDENT:
		if strings.EqualFold(p.token.Literal, "auto_increment") {
			p.nextToken()
			return &ast.ColumnConstraint{Constraint: ast.ConstraintAutoIncrement}
		}
	}
	return nil
}

// parseDataType parses a type name with optional parameters and array
// suffixes. Dialect type tokens (SERIAL, JSONB, phrases like CHARACTER
// VARYING) resolve through the dialect's type table; plain identifiers go
// through the generic name table.
func (p *Parser) parseDataType() *ast.DataType {
	var dt *ast.DataType

	switch {
	case p.check(token.ARRAY) && p.checkPeek(token.LT):
		// Generic container spelling ARRAY<elem>.
		p.nextToken()
		p.nextToken()
		elem := p.parseDataType()
		if elem == nil {
			return nil
		}
		p.expect(token.GT)
		dt = &ast.DataType{Type: ast.TypeArray, Elem: elem}
	case p.dialect != nil:
		if kind, ok := p.dialect.TypeKindFor(p.token.Type); ok {
			dt = &ast.DataType{Type: kind}
			p.nextToken()
		}
	}

	if dt == nil {
		if !p.check(token.IDENT) {
			p.addError("expected data type, got " + p.token.Type.String())
			return nil
		}
		kind, ok := ast.LookupType(strings.ToUpper(p.token.Literal))
		if !ok {
			p.addError(fmt.Sprintf(ErrUnknownType, p.token.Literal))
			return nil
		}
		dt = &ast.DataType{Type: kind}
		p.nextToken()

		// DOUBLE PRECISION is two words for one type.
		if dt.Type == ast.TypeDouble && p.check(token.IDENT) && strings.EqualFold(p.token.Literal, "precision") {
			p.nextToken()
		}
	}

	if p.match(token.LPAREN) {
		dt.Params = append(dt.Params, p.parseExpression())
		for p.match(token.COMMA) {
			dt.Params = append(dt.Params, p.parseExpression())
		}
		p.expect(token.RPAREN)
	}

	for p.check(token.LBRACKET) && p.checkPeek(token.RBRACKET) {
		p.nextToken()
		p.nextToken()
		dt = &ast.DataType{Type: ast.TypeArray, Elem: dt}
	}
	return dt
}

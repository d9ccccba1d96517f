package parser

import (
	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels:
//
//	precOr         (OR)
//	precAnd        (AND)
//	precNot        (NOT)
//	precComparison (=, !=, <, >, <=, >=, IS, LIKE family, ?)
//	precAddition   (+, -, ||)
//	precMultiply   (*, /, %)
//	precUnary      (-, +, NOT)
//	precPostfix    (::, ->, ->>, #>, #>>)
const (
	precNone = iota
	precOr
	precAnd
	precNot
	precComparison
	precAddition
	precMultiply
	precUnary
	precPostfix
)

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpressionWithPrecedence(precNone + 1)
}

func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) ast.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence(p.token.Type)
		if prec < minPrecedence {
			break
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}
	return left
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() ast.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		return &ast.Unary{Op: token.NOT, This: p.parseExpressionWithPrecedence(precNot)}
	case token.MINUS:
		p.nextToken()
		return &ast.Unary{Op: token.MINUS, This: p.parseExpressionWithPrecedence(precUnary)}
	case token.PLUS:
		p.nextToken()
		return &ast.Unary{Op: token.PLUS, This: p.parseExpressionWithPrecedence(precUnary)}
	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of a token as an infix operator,
// or precNone when the token is not one.
func (p *Parser) infixPrecedence(t token.TokenType) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return precComparison
	case token.IS:
		return precComparison
	case token.LIKE, token.ILIKE, token.RLIKE, token.IRLIKE:
		return precComparison
	case token.QMARK:
		return precComparison
	case token.PLUS, token.MINUS, token.DPIPE:
		return precAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiply
	case token.DCOLON, token.ARROW, token.DARROW, token.HASHARROW, token.DHASHARROW:
		return precPostfix
	default:
		return precNone
	}
}

// parseInfixExpr parses an infix expression given the left operand.
func (p *Parser) parseInfixExpr(left ast.Expr, prec int) ast.Expr {
	op := p.token.Type
	p.nextToken()

	switch op {
	case token.DCOLON:
		to := p.parseDataType()
		if to == nil {
			return nil
		}
		return &ast.Cast{This: left, To: to}

	case token.ARROW:
		return &ast.JSONExtract{This: left, Path: p.parseExpressionWithPrecedence(prec + 1)}
	case token.DARROW:
		return &ast.JSONExtractScalar{This: left, Path: p.parseExpressionWithPrecedence(prec + 1)}
	case token.HASHARROW:
		return &ast.JSONBExtract{This: left, Path: p.parseExpressionWithPrecedence(prec + 1)}
	case token.DHASHARROW:
		return &ast.JSONBExtractScalar{This: left, Path: p.parseExpressionWithPrecedence(prec + 1)}
	case token.QMARK:
		return &ast.JSONBContains{This: left, Key: p.parseExpressionWithPrecedence(prec + 1)}

	case token.IS:
		not := p.match(token.NOT)
		right := p.parseExpressionWithPrecedence(prec + 1)
		if not {
			right = &ast.Unary{Op: token.NOT, This: right}
		}
		return &ast.Binary{Left: left, Op: token.IS, Right: right}

	case token.RLIKE:
		return &ast.RegexpLike{This: left, Pattern: p.parseExpressionWithPrecedence(prec + 1)}
	case token.IRLIKE:
		return &ast.RegexpILike{This: left, Pattern: p.parseExpressionWithPrecedence(prec + 1)}

	default:
		right := p.parseExpressionWithPrecedence(prec + 1)
		return &ast.Binary{Left: left, Op: op, Right: right}
	}
}

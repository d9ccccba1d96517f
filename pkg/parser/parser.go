// Package parser provides dialect-aware SQL parsing into the generic AST.
//
// # Usage
//
//	d, ok := dialect.Get("postgres")
//	stmts, err := parser.Parse("SELECT a FROM t", d)
//
// The lexer consults the dialect for literal prefixes, quote delimiters,
// operator symbols and keyword phrases; the parser consults it for
// function resolvers that disambiguate calls like TO_TIMESTAMP by arity.
//
// # Grammar Overview
//
//	statement  → select_stmt | create_table | command | expr
//	select     → SELECT select_list [FROM table] [WHERE expr]
//	             [ORDER BY order_list] [LIMIT expr]
//	create     → CREATE [TEMPORARY] TABLE [IF NOT EXISTS] name (column_defs)
//	command    → COMMAND token, remaining text captured verbatim
package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/dialect"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// Parser parses SQL into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	errors  []error
	dialect *dialect.Dialect
}

// NewParser creates a new parser for the given SQL input and dialect.
func NewParser(sql string, d *dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   NewLexer(sql, d),
		dialect: d,
	}
	// Read two tokens to initialize current and peek.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the input as a sequence of semicolon-separated statements.
func Parse(sql string, d *dialect.Dialect) ([]ast.Expr, error) {
	p := NewParser(sql, d)

	var stmts []ast.Expr
	for !p.check(token.EOF) {
		if p.match(token.SEMICOLON) {
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if len(p.errors) > 0 {
			return nil, p.errors[0]
		}
	}
	return stmts, nil
}

// ParseOne parses exactly one statement.
func ParseOne(sql string, d *dialect.Dialect) (ast.Expr, error) {
	stmts, err := Parse(sql, d)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("expected 1 statement, got %d", len(stmts))
	}
	return stmts[0], nil
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// ---------- Token Helpers ----------

// nextToken advances to the next token, collecting any lexical errors the
// scan produced.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
	for _, err := range p.lexer.errs {
		p.errors = append(p.errors, err)
	}
	p.lexer.errs = nil
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type, t))
	return false
}

// addError records a parse error at the current token, spanning its
// literal text.
func (p *Parser) addError(msg string) {
	start := p.token.Pos
	end := start
	width := len(p.token.Literal)
	if width == 0 {
		width = 1
	}
	end.Column += width
	end.Offset += width
	p.errors = append(p.errors, &ParseError{
		Pos:     start,
		Span:    token.Span{Start: start, End: end},
		Message: msg,
	})
}

// atStatementEnd reports whether the current token terminates a statement.
func (p *Parser) atStatementEnd() bool {
	return p.check(token.EOF) || p.check(token.SEMICOLON)
}

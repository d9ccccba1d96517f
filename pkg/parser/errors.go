package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlport/pkg/token"
)

// ParseError represents a parsing error. Pos is the start of the offending
// token; Span covers its full extent.
type ParseError struct {
	Pos     token.Position
	Span    token.Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected token %s, expected %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrUnterminatedIdent  = "unterminated quoted identifier"
	ErrUnknownType        = "unknown data type %q"
	ErrBadFunctionCall    = "invalid call to %s: %v"
)

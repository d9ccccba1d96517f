package token

import "fmt"

// Position is a point in the SQL input. The lexer stamps every token with
// one, and parse errors carry it through to the caller.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid reports whether the position refers to actual input. The zero
// Position is invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String formats the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open input range [Start, End) covered by a token or a
// parse error. Callers use it to point at the offending text.
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid reports whether both endpoints refer to actual input.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

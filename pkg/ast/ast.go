// Package ast defines the engine-neutral SQL syntax tree.
//
// Every node carries a Kind discriminant from a closed set. Dialect render
// rules dispatch on Kind, so adding a node kind is a compile-time-checked
// change: the base render table in pkg/generator must cover it.
//
// Trees are built by pkg/parser and rendered by pkg/generator. Rewrite
// passes that change a node's shape must operate on a copy (see Clone);
// the tree handed to a renderer stays observably unchanged.
package ast

// Kind identifies what a tree node represents.
type Kind int

// Node kinds, grouped by concern.
const (
	KindInvalid Kind = iota

	// Literals and references
	KindLiteral
	KindBitString
	KindHexString
	KindByteString
	KindParameter
	KindColumn
	KindStar

	// Expressions
	KindParen
	KindBinary
	KindUnary
	KindFunc
	KindCast
	KindTryCast
	KindInterval
	KindArray
	KindOrdered
	KindOrder

	// Statements
	KindSelect
	KindCreateTable
	KindCommand

	// Schema
	KindDataType
	KindColumnDef
	KindColumnConstraint

	// Date/time
	KindDateAdd
	KindDateSub
	KindDateDiff
	KindStrToTime
	KindTimeToStr
	KindUnixToTime
	KindTimeStrToTime
	KindCurrentDate
	KindCurrentTimestamp

	// Strings
	KindSubstring
	KindGroupConcat
	KindStrPosition
	KindTrim

	// JSON
	KindJSONExtract
	KindJSONExtractScalar
	KindJSONBExtract
	KindJSONBExtractScalar
	KindJSONBContains

	// Pattern matching
	KindRegexpLike
	KindRegexpILike
)

// Expr is the interface implemented by all tree nodes.
type Expr interface {
	Kind() Kind
	exprNode()
}

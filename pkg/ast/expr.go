package ast

import "github.com/leapstack-labs/sqlport/pkg/token"

// ---------- Literals and references ----------

// Literal represents a literal value.
type Literal struct {
	Value    string
	IsString bool // rendered with surrounding quotes
	IsNumber bool
}

func (*Literal) exprNode() {}

// Kind implements Expr.
func (*Literal) Kind() Kind { return KindLiteral }

// String constructs a string literal.
func String(v string) *Literal { return &Literal{Value: v, IsString: true} }

// Number constructs a numeric literal.
func Number(v string) *Literal { return &Literal{Value: v, IsNumber: true} }

// BitString represents a bit-string literal, e.g. b'0101'.
type BitString struct {
	Value string
}

func (*BitString) exprNode() {}

// Kind implements Expr.
func (*BitString) Kind() Kind { return KindBitString }

// HexString represents a hex-string literal, e.g. x'2F'.
type HexString struct {
	Value string
}

func (*HexString) exprNode() {}

// Kind implements Expr.
func (*HexString) Kind() Kind { return KindHexString }

// ByteString represents an escape-string literal, e.g. e'\n'.
type ByteString struct {
	Value string
}

func (*ByteString) exprNode() {}

// Kind implements Expr.
func (*ByteString) Kind() Kind { return KindByteString }

// Parameter represents a placeholder such as $1.
type Parameter struct {
	Index string // empty for a bare marker
}

func (*Parameter) exprNode() {}

// Kind implements Expr.
func (*Parameter) Kind() Kind { return KindParameter }

// Column represents a column reference (possibly qualified).
type Column struct {
	Table string // optional table/alias qualifier
	Name  string
}

func (*Column) exprNode() {}

// Kind implements Expr.
func (*Column) Kind() Kind { return KindColumn }

// Star represents a * projection.
type Star struct{}

func (*Star) exprNode() {}

// Kind implements Expr.
func (*Star) Kind() Kind { return KindStar }

// ---------- Expressions ----------

// Paren represents a parenthesized expression.
type Paren struct {
	This Expr
}

func (*Paren) exprNode() {}

// Kind implements Expr.
func (*Paren) Kind() Kind { return KindParen }

// Binary represents a binary expression.
type Binary struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*Binary) exprNode() {}

// Kind implements Expr.
func (*Binary) Kind() Kind { return KindBinary }

// Unary represents a unary expression.
type Unary struct {
	Op   token.TokenType
	This Expr
}

func (*Unary) exprNode() {}

// Kind implements Expr.
func (*Unary) Kind() Kind { return KindUnary }

// Func represents a generic function call with no dedicated node kind.
type Func struct {
	Name     string
	Distinct bool
	Args     []Expr
}

func (*Func) exprNode() {}

// Kind implements Expr.
func (*Func) Kind() Kind { return KindFunc }

// Cast represents CAST(x AS type) or the :: shorthand.
type Cast struct {
	This Expr
	To   *DataType
}

func (*Cast) exprNode() {}

// Kind implements Expr.
func (*Cast) Kind() Kind { return KindCast }

// TryCast represents TRY_CAST(x AS type). Dialects without a fallible cast
// lower it to a plain CAST with a diagnostic.
type TryCast struct {
	This Expr
	To   *DataType
}

func (*TryCast) exprNode() {}

// Kind implements Expr.
func (*TryCast) Kind() Kind { return KindTryCast }

// Interval represents an interval literal: INTERVAL '2' DAY.
type Interval struct {
	This Expr   // amount
	Unit string // canonical upper-case unit, e.g. "DAY"
}

func (*Interval) exprNode() {}

// Kind implements Expr.
func (*Interval) Kind() Kind { return KindInterval }

// Array represents an array constructor. The element list may hold a single
// Select node, in which case dialects may render a subquery form.
type Array struct {
	Expressions []Expr
}

func (*Array) exprNode() {}

// Kind implements Expr.
func (*Array) Kind() Kind { return KindArray }

// Ordered wraps an expression with an ordering direction. NullsFirst and
// NullsLast record an explicit NULLS clause; both false means the dialect
// default applies.
type Ordered struct {
	This       Expr
	Desc       bool
	NullsFirst bool
	NullsLast  bool
}

func (*Ordered) exprNode() {}

// Kind implements Expr.
func (*Ordered) Kind() Kind { return KindOrdered }

// Order represents an ORDER BY clause. When it wraps an expression (This
// non-nil), the ordering applies to that expression, e.g. an aggregation
// target inside GROUP_CONCAT.
type Order struct {
	This        Expr
	Expressions []*Ordered
}

func (*Order) exprNode() {}

// Kind implements Expr.
func (*Order) Kind() Kind { return KindOrder }

// ---------- Statements ----------

// Select represents a SELECT statement. Only the clauses the transpiler
// needs are modeled; a Select is also an Expr so it can appear as a
// subquery (e.g. the sole element of an Array).
type Select struct {
	Expressions []Expr
	From        Expr // table reference, may be nil
	Where       Expr
	OrderBy     *Order
	Limit       Expr
}

func (*Select) exprNode() {}

// Kind implements Expr.
func (*Select) Kind() Kind { return KindSelect }

// CreateTable represents a CREATE TABLE statement.
type CreateTable struct {
	Name        string
	Temporary   bool
	IfNotExists bool
	Columns     []*ColumnDef
}

func (*CreateTable) exprNode() {}

// Kind implements Expr.
func (*CreateTable) Kind() Kind { return KindCreateTable }

// Command represents an opaque statement the parser classified but does not
// model. It is rendered back verbatim.
type Command struct {
	This string
}

func (*Command) exprNode() {}

// Kind implements Expr.
func (*Command) Kind() Kind { return KindCommand }

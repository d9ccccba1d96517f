package ast

// Substring represents SUBSTRING(this FROM start FOR length).
// Start and Length may be nil; dialects omit the corresponding clause.
type Substring struct {
	This   Expr
	Start  Expr
	Length Expr
}

func (*Substring) exprNode() {}

// Kind implements Expr.
func (*Substring) Kind() Kind { return KindSubstring }

// GroupConcat represents ordered string aggregation. This may be an Order
// node wrapping the aggregation target; Separator defaults to ',' when nil.
type GroupConcat struct {
	This      Expr
	Separator Expr
}

func (*GroupConcat) exprNode() {}

// Kind implements Expr.
func (*GroupConcat) Kind() Kind { return KindGroupConcat }

// Trim represents TRIM([LEADING|TRAILING|BOTH] [chars FROM] this). Position
// is the upper-cased side keyword, empty when unspecified (both sides);
// Expression is the optional character set to strip.
type Trim struct {
	This       Expr
	Expression Expr
	Position   string
}

func (*Trim) exprNode() {}

// Kind implements Expr.
func (*Trim) Kind() Kind { return KindTrim }

// StrPosition represents the 1-based position of Substr within This.
type StrPosition struct {
	This   Expr
	Substr Expr
}

func (*StrPosition) exprNode() {}

// Kind implements Expr.
func (*StrPosition) Kind() Kind { return KindStrPosition }

// JSONExtract extracts a JSON value by path.
type JSONExtract struct {
	This Expr
	Path Expr
}

func (*JSONExtract) exprNode() {}

// Kind implements Expr.
func (*JSONExtract) Kind() Kind { return KindJSONExtract }

// JSONExtractScalar extracts a JSON value by path as text.
type JSONExtractScalar struct {
	This Expr
	Path Expr
}

func (*JSONExtractScalar) exprNode() {}

// Kind implements Expr.
func (*JSONExtractScalar) Kind() Kind { return KindJSONExtractScalar }

// JSONBExtract extracts a binary-JSON value by path.
type JSONBExtract struct {
	This Expr
	Path Expr
}

func (*JSONBExtract) exprNode() {}

// Kind implements Expr.
func (*JSONBExtract) Kind() Kind { return KindJSONBExtract }

// JSONBExtractScalar extracts a binary-JSON value by path as text.
type JSONBExtractScalar struct {
	This Expr
	Path Expr
}

func (*JSONBExtractScalar) exprNode() {}

// Kind implements Expr.
func (*JSONBExtractScalar) Kind() Kind { return KindJSONBExtractScalar }

// JSONBContains tests whether a key or element exists in a binary-JSON value.
type JSONBContains struct {
	This Expr
	Key  Expr
}

func (*JSONBContains) exprNode() {}

// Kind implements Expr.
func (*JSONBContains) Kind() Kind { return KindJSONBContains }

// RegexpLike represents a case-sensitive regular-expression match.
type RegexpLike struct {
	This    Expr
	Pattern Expr
}

func (*RegexpLike) exprNode() {}

// Kind implements Expr.
func (*RegexpLike) Kind() Kind { return KindRegexpLike }

// RegexpILike represents a case-insensitive regular-expression match.
type RegexpILike struct {
	This    Expr
	Pattern Expr
}

func (*RegexpILike) exprNode() {}

// Kind implements Expr.
func (*RegexpILike) Kind() Kind { return KindRegexpILike }

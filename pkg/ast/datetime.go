package ast

// DateAdd represents date addition: this + expression units.
type DateAdd struct {
	This       Expr
	Expression Expr   // amount; must constant-fold to a literal for most dialects
	Unit       string // canonical upper-case unit
}

func (*DateAdd) exprNode() {}

// Kind implements Expr.
func (*DateAdd) Kind() Kind { return KindDateAdd }

// DateSub represents date subtraction: this - expression units.
type DateSub struct {
	This       Expr
	Expression Expr
	Unit       string
}

func (*DateSub) exprNode() {}

// Kind implements Expr.
func (*DateSub) Kind() Kind { return KindDateSub }

// DateDiff represents the elapsed unit count between two timestamps.
// This is the end expression, Expression the start.
type DateDiff struct {
	This       Expr
	Expression Expr
	Unit       string
}

func (*DateDiff) exprNode() {}

// Kind implements Expr.
func (*DateDiff) Kind() Kind { return KindDateDiff }

// StrToTime parses a string into a timestamp using a format string.
// Format is in the generic strftime-like vocabulary; dialects translate it
// through their time-format mapping when rendering.
type StrToTime struct {
	This   Expr
	Format string
}

func (*StrToTime) exprNode() {}

// Kind implements Expr.
func (*StrToTime) Kind() Kind { return KindStrToTime }

// TimeToStr formats a timestamp as text. Format uses the generic vocabulary.
type TimeToStr struct {
	This   Expr
	Format string
}

func (*TimeToStr) exprNode() {}

// Kind implements Expr.
func (*TimeToStr) Kind() Kind { return KindTimeToStr }

// UnixToTime converts numeric Unix epoch seconds to a timestamp.
type UnixToTime struct {
	This Expr
}

func (*UnixToTime) exprNode() {}

// Kind implements Expr.
func (*UnixToTime) Kind() Kind { return KindUnixToTime }

// TimeStrToTime converts an ISO time string to a timestamp.
type TimeStrToTime struct {
	This Expr
}

func (*TimeStrToTime) exprNode() {}

// Kind implements Expr.
func (*TimeStrToTime) Kind() Kind { return KindTimeStrToTime }

// CurrentDate represents CURRENT_DATE.
type CurrentDate struct{}

func (*CurrentDate) exprNode() {}

// Kind implements Expr.
func (*CurrentDate) Kind() Kind { return KindCurrentDate }

// CurrentTimestamp represents CURRENT_TIMESTAMP.
type CurrentTimestamp struct{}

func (*CurrentTimestamp) exprNode() {}

// Kind implements Expr.
func (*CurrentTimestamp) Kind() Kind { return KindCurrentTimestamp }

package ast

import (
	"strconv"
	"strings"
)

// Simplify constant-folds an expression. It unwraps parentheses, applies
// unary minus to numeric literals, and folds the four basic arithmetic
// operators over numeric literals. Anything else is returned unchanged.
// The input tree is never modified.
func Simplify(e Expr) Expr {
	switch n := e.(type) {
	case *Paren:
		return Simplify(n.This)
	case *Unary:
		inner := Simplify(n.This)
		if lit, ok := inner.(*Literal); ok && lit.IsNumber {
			switch n.Op.String() {
			case "-":
				if strings.HasPrefix(lit.Value, "-") {
					return Number(strings.TrimPrefix(lit.Value, "-"))
				}
				return Number("-" + lit.Value)
			case "+":
				return lit
			}
		}
		return e
	case *Binary:
		left := Simplify(n.Left)
		right := Simplify(n.Right)
		folded := foldArithmetic(left, n.Op.String(), right)
		if folded != nil {
			return folded
		}
		return e
	default:
		return e
	}
}

// foldArithmetic folds op over two numeric literals, or returns nil.
func foldArithmetic(left Expr, op string, right Expr) Expr {
	l, lok := numericValue(left)
	r, rok := numericValue(right)
	if !lok || !rok {
		return nil
	}

	var v float64
	switch op {
	case "+":
		v = l + r
	case "-":
		v = l - r
	case "*":
		v = l * r
	case "/":
		if r == 0 {
			return nil
		}
		v = l / r
	default:
		return nil
	}
	return Number(formatNumber(v))
}

func numericValue(e Expr) (float64, bool) {
	lit, ok := e.(*Literal)
	if !ok || !lit.IsNumber {
		return 0, false
	}
	v, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatNumber renders a folded value, preferring integer form.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

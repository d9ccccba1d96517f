// Package transpile is the top-level facade: parse SQL in one dialect,
// render it in another.
package transpile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlport/pkg/dialect"
	"github.com/leapstack-labs/sqlport/pkg/generator"
	"github.com/leapstack-labs/sqlport/pkg/parser"
)

// Result holds the rendered statements and any diagnostics raised while
// rendering. Diagnostics are non-fatal: the output is always best effort.
type Result struct {
	Statements  []string
	Diagnostics []generator.Diagnostic
}

// SQL joins the statements with a semicolon separator.
func (r Result) SQL() string {
	return strings.Join(r.Statements, ";\n")
}

// Options control transpilation behavior.
type Options struct {
	// Strict turns render diagnostics into errors.
	Strict bool
}

// ErrUnsupported is returned in strict mode when a construct cannot be
// expressed exactly in the target dialect.
var ErrUnsupported = errors.New("unsupported construct")

// Transpile parses sql in the source dialect and renders it in the target
// dialect. Dialect names are resolved through the registry.
func Transpile(sql, from, to string, opts Options) (Result, error) {
	src, ok := dialect.Get(from)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", dialect.ErrUnknownDialect, from)
	}
	dst, ok := dialect.Get(to)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", dialect.ErrUnknownDialect, to)
	}
	return TranspileWith(sql, src, dst, opts)
}

// TranspileWith is Transpile with resolved dialects.
func TranspileWith(sql string, from, to *dialect.Dialect, opts Options) (Result, error) {
	if from == nil || to == nil {
		return Result{}, dialect.ErrDialectRequired
	}

	stmts, err := parser.Parse(sql, from)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, stmt := range stmts {
		g := generator.New(to)
		res.Statements = append(res.Statements, g.Render(stmt))
		res.Diagnostics = append(res.Diagnostics, g.Diagnostics()...)
	}

	if opts.Strict && len(res.Diagnostics) > 0 {
		return res, fmt.Errorf("%w: %s", ErrUnsupported, res.Diagnostics[0].Message)
	}
	return res, nil
}

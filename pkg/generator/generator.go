// Package generator renders a neutral syntax tree into dialect SQL text.
//
// Rendering is table driven: a base rule table covers every node kind, and
// a dialect's override table is merged over it when the generator is
// constructed (overrides win). Rules may recursively request rendering of
// child subtrees and may report unsupported constructs; an unsupported
// construct never aborts the render - the rule emits a best-effort
// approximation and the diagnostic is surfaced to the caller.
package generator

import (
	"fmt"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/dialect"
)

// Diagnostic is a non-fatal warning collected during rendering.
type Diagnostic struct {
	Message string
}

// Generator renders neutral trees for one dialect. A Generator is cheap to
// construct and not safe for concurrent use; build one per render pass.
type Generator struct {
	dialect *dialect.Dialect
	rules   map[ast.Kind]dialect.RenderFunc
	diags   []Diagnostic
}

// New creates a generator for the given dialect. The rule table is the
// base table composed with the dialect's overrides; override entries win.
func New(d *dialect.Dialect) *Generator {
	rules := make(map[ast.Kind]dialect.RenderFunc, len(baseRules))
	for k, f := range baseRules {
		rules[k] = f
	}
	if d != nil {
		for k, f := range d.RenderRules() {
			rules[k] = f
		}
	}
	return &Generator{dialect: d, rules: rules}
}

// Generate renders a tree and returns the SQL text plus any diagnostics.
func Generate(e ast.Expr, d *dialect.Dialect) (string, []Diagnostic) {
	g := New(d)
	sql := g.Render(e)
	return sql, g.Diagnostics()
}

// Render stringifies one node by looking up its render rule.
// It implements dialect.Renderer so dialect rules can recurse.
func (g *Generator) Render(e ast.Expr) string {
	if e == nil {
		return ""
	}
	rule, ok := g.rules[e.Kind()]
	if !ok {
		g.Unsupported(fmt.Sprintf("no render rule for node kind %d", e.Kind()))
		return ""
	}
	return rule(g, e)
}

// Unsupported reports a non-fatal diagnostic; rendering continues.
func (g *Generator) Unsupported(msg string) {
	g.diags = append(g.diags, Diagnostic{Message: msg})
}

// Dialect returns the target dialect.
func (g *Generator) Dialect() *dialect.Dialect { return g.dialect }

// Diagnostics returns the diagnostics collected so far.
func (g *Generator) Diagnostics() []Diagnostic { return g.diags }

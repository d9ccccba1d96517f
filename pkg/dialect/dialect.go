// Package dialect provides SQL dialect configuration: lexical rules,
// function resolvers, render rule overrides, and type/time-format mappings.
//
// This package contains the public contract for dialect definitions used by
// the lexer, parser, and generator. Concrete dialect implementations are
// registered from pkg/dialects/*/ packages.
package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// Renderer is the contract a generator hands to dialect render rules.
// Render stringifies a child subtree; Unsupported reports a non-fatal
// diagnostic and rendering continues best-effort.
type Renderer interface {
	Render(e ast.Expr) string
	Unsupported(msg string)
	Dialect() *Dialect
}

// RenderFunc turns one node into dialect text. Rules may recursively
// request rendering of child subtrees through the Renderer.
type RenderFunc func(r Renderer, e ast.Expr) string

// FunctionResolver maps the arguments of an ambiguous textual function call
// to the correct neutral node at parse time.
type FunctionResolver func(args []ast.Expr) (ast.Expr, error)

// LiteralPrefix declares a dialect-specific literal delimiter pair,
// e.g. b'...' for bit strings. Prefixes are registered per spelling, so
// case-insensitive prefixes appear once per case (b' and B').
type LiteralPrefix struct {
	Prefix string
	End    string
	Token  token.TokenType
}

// NullOrdering is the dialect-wide policy for where NULLs sort by default.
type NullOrdering int

// Null ordering policies.
const (
	NullsAreSmall NullOrdering = iota
	NullsAreLarge
)

// Dialect represents a SQL dialect configuration. Dialects are immutable
// after Build; all lookup tables are composed by the Builder.
type Dialect struct {
	Name string

	// Generation-wide flags
	nullOrdering NullOrdering
	timeFormat   string // canonical time-literal display format

	// Lexical rule set
	keywordPhrases  map[string]token.TokenType // upper-case, space-joined
	maxPhraseWords  int
	literalPrefixes []LiteralPrefix
	quotes          []string // string openers besides the standard quote
	singleTokens    map[rune]token.TokenType
	symbols         map[string]token.TokenType

	// Grammar extension
	functions map[string]FunctionResolver

	// Rendering
	renders    map[ast.Kind]RenderFunc
	typeNames  map[ast.TypeKind]string
	typeTokens map[token.TokenType]ast.TypeKind

	// Time-format mapping: dialect vocabulary <-> generic strftime-like
	timeToGeneric map[string]string
	timeFromGen   map[string]string
	timeKeys      []string // dialect directives, longest first
	genericKeys   []string // generic directives, longest first
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string { return d.Name }

// NullOrdering returns the dialect's default NULL sort policy.
func (d *Dialect) NullOrdering() NullOrdering { return d.nullOrdering }

// TimeFormat returns the canonical time-literal display format.
func (d *Dialect) TimeFormat() string { return d.timeFormat }

// ---------- Lexical rule set ----------

// KeywordPhrase returns the dialect classification for an upper-cased
// keyword phrase ("CREATE EXTENSION", "BEGIN TRANSACTION", "JSONB", ...).
func (d *Dialect) KeywordPhrase(phrase string) (token.TokenType, bool) {
	t, ok := d.keywordPhrases[phrase]
	return t, ok
}

// MaxPhraseWords returns the longest registered phrase length in words.
// The lexer uses it to bound lookahead.
func (d *Dialect) MaxPhraseWords() int { return d.maxPhraseWords }

// LiteralPrefixes returns the dialect's literal delimiter pairs.
func (d *Dialect) LiteralPrefixes() []LiteralPrefix { return d.literalPrefixes }

// Quotes returns string-literal openers beyond the standard single quote.
func (d *Dialect) Quotes() []string { return d.quotes }

// SingleToken returns the classification of a reserved single character.
func (d *Dialect) SingleToken(r rune) (token.TokenType, bool) {
	t, ok := d.singleTokens[r]
	return t, ok
}

// Symbols returns the custom multi-character operator map for the lexer.
func (d *Dialect) Symbols() map[string]token.TokenType { return d.symbols }

// ---------- Grammar extension ----------

// Resolver returns the function resolver for an upper-cased function name.
func (d *Dialect) Resolver(name string) (FunctionResolver, bool) {
	f, ok := d.functions[strings.ToUpper(name)]
	return f, ok
}

// ---------- Rendering ----------

// RenderRules returns the dialect's render rule overrides. The generator
// composes them over its base table at construction; overrides win.
func (d *Dialect) RenderRules() map[ast.Kind]RenderFunc { return d.renders }

// TypeName returns the dialect spelling for a generic type tag, if mapped.
func (d *Dialect) TypeName(t ast.TypeKind) (string, bool) {
	name, ok := d.typeNames[t]
	return name, ok
}

// TypeKindFor returns the generic type tag for a dialect type token.
func (d *Dialect) TypeKindFor(t token.TokenType) (ast.TypeKind, bool) {
	kind, ok := d.typeTokens[t]
	return kind, ok
}

// FormatToGeneric translates a dialect-native time format string into the
// generic strftime-like vocabulary. Unmapped directives pass through
// unchanged.
func (d *Dialect) FormatToGeneric(format string) string {
	return translateFormat(format, d.timeToGeneric, d.timeKeys)
}

// FormatFromGeneric translates a generic format string into the dialect's
// native vocabulary. Unmapped directives pass through unchanged.
func (d *Dialect) FormatFromGeneric(format string) string {
	return translateFormat(format, d.timeFromGen, d.genericKeys)
}

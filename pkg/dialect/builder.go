package dialect

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlport/pkg/ast"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// Builder provides a fluent API for constructing dialects. Tables are
// composed by explicit merging: entries added later override earlier ones.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name:           name,
			keywordPhrases: make(map[string]token.TokenType),
			singleTokens:   make(map[rune]token.TokenType),
			symbols:        make(map[string]token.TokenType),
			functions:      make(map[string]FunctionResolver),
			renders:        make(map[ast.Kind]RenderFunc),
			typeNames:      make(map[ast.TypeKind]string),
			typeTokens:     make(map[token.TokenType]ast.TypeKind),
			timeToGeneric:  make(map[string]string),
			timeFromGen:    make(map[string]string),
		},
	}
}

// NullsAreLarge declares that NULLs sort as the largest value.
func (b *Builder) NullsAreLarge() *Builder {
	b.dialect.nullOrdering = NullsAreLarge
	return b
}

// TimeFormat sets the canonical time-literal display format.
func (b *Builder) TimeFormat(format string) *Builder {
	b.dialect.timeFormat = format
	return b
}

// KeywordPhrases registers keyword phrases (single or multi word, stored
// upper-cased). Later registrations win.
func (b *Builder) KeywordPhrases(phrases map[string]token.TokenType) *Builder {
	for phrase, t := range phrases {
		b.dialect.keywordPhrases[strings.ToUpper(phrase)] = t
	}
	return b
}

// LiteralPrefixes registers literal delimiter pairs.
func (b *Builder) LiteralPrefixes(prefixes ...LiteralPrefix) *Builder {
	b.dialect.literalPrefixes = append(b.dialect.literalPrefixes, prefixes...)
	return b
}

// Quotes registers string-literal openers beyond the standard single quote.
func (b *Builder) Quotes(quotes ...string) *Builder {
	b.dialect.quotes = append(b.dialect.quotes, quotes...)
	return b
}

// SingleTokens registers reserved single characters.
func (b *Builder) SingleTokens(tokens map[rune]token.TokenType) *Builder {
	for r, t := range tokens {
		b.dialect.singleTokens[r] = t
	}
	return b
}

// Symbols registers custom multi-character operator lexemes.
func (b *Builder) Symbols(symbols map[string]token.TokenType) *Builder {
	for s, t := range symbols {
		b.dialect.symbols[s] = t
	}
	return b
}

// Functions registers function resolvers, keyed by upper-cased name.
func (b *Builder) Functions(funcs map[string]FunctionResolver) *Builder {
	for name, f := range funcs {
		b.dialect.functions[strings.ToUpper(name)] = f
	}
	return b
}

// Renders registers render rule overrides. Later registrations win, both
// within the builder and over the generator's base table.
func (b *Builder) Renders(rules map[ast.Kind]RenderFunc) *Builder {
	for k, f := range rules {
		b.dialect.renders[k] = f
	}
	return b
}

// TypeNames registers dialect spellings for generic type tags.
func (b *Builder) TypeNames(names map[ast.TypeKind]string) *Builder {
	for k, n := range names {
		b.dialect.typeNames[k] = n
	}
	return b
}

// TypeTokens maps dialect type tokens to generic type tags for the parser.
func (b *Builder) TypeTokens(tokens map[token.TokenType]ast.TypeKind) *Builder {
	for t, k := range tokens {
		b.dialect.typeTokens[t] = k
	}
	return b
}

// TimeMapping registers the bidirectional time-format association: dialect
// directive -> generic directive. Both lookup directions are derived from
// this single table at Build time.
func (b *Builder) TimeMapping(mapping map[string]string) *Builder {
	for directive, generic := range mapping {
		b.dialect.timeToGeneric[directive] = generic
	}
	return b
}

// Build finalizes the dialect: derives the reverse time mapping and the
// longest-first directive orderings, and computes phrase lookahead bounds.
func (b *Builder) Build() *Dialect {
	d := b.dialect

	// Reverse time mapping. Where two dialect directives map to the same
	// generic one (AM and PM both mean %p), the lexicographically first
	// dialect spelling wins so the derivation is deterministic.
	for _, key := range sortedKeys(d.timeToGeneric) {
		generic := d.timeToGeneric[key]
		if _, exists := d.timeFromGen[generic]; !exists {
			d.timeFromGen[generic] = key
		}
	}
	d.timeKeys = longestFirst(d.timeToGeneric)
	d.genericKeys = longestFirst(d.timeFromGen)

	for phrase := range d.keywordPhrases {
		if words := strings.Count(phrase, " ") + 1; words > d.maxPhraseWords {
			d.maxPhraseWords = words
		}
	}

	return d
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// longestFirst returns map keys ordered by descending length, then
// lexicographically, so format scanning always takes the longest match.
func longestFirst(m map[string]string) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})
	return keys
}

package parser

import (
	"sort"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlport/pkg/dialect"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// Lexer tokenizes SQL input. The dialect supplies literal prefixes,
// quote delimiters, operator symbols and keyword phrases; without one
// the lexer recognizes only the builtin vocabulary.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	dialect *dialect.Dialect
	errs    []*ParseError // lexical errors, drained by the parser
}

// NewLexer creates a new Lexer for the given input and dialect.
// The dialect may be nil.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		col:     0,
		dialect: d,
	}
	l.readChar()
	return l
}

// Tokenize returns all tokens from the input, ending with EOF.
func Tokenize(input string, d *dialect.Dialect) []token.Token {
	l := NewLexer(input, d)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}

// lexState captures the cursor so phrase lookahead can backtrack.
type lexState struct {
	pos     int
	readPos int
	ch      byte
	line    int
	col     int
}

func (l *Lexer) saveState() lexState {
	return lexState{pos: l.pos, readPos: l.readPos, ch: l.ch, line: l.line, col: l.col}
}

func (l *Lexer) restoreState(s lexState) {
	l.pos, l.readPos, l.ch, l.line, l.col = s.pos, s.readPos, s.ch, s.line, s.col
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	// Dialect-specific literal prefixes (b'..', x'..', e'..') come before
	// identifier scanning since the prefixes start with letters.
	if tok, ok := l.matchLiteralPrefix(pos); ok {
		return tok
	}

	// Dialect quote delimiters (longest first, so $$ beats $).
	if tok, ok := l.matchQuote(pos); ok {
		return tok
	}

	// Dialect-specific symbols (longest match wins).
	if tok, ok := l.matchSymbol(pos); ok {
		return tok
	}

	// Dialect single-character tokens, e.g. $ introducing a parameter.
	if tok, ok := l.matchSingleToken(pos); ok {
		return tok
	}

	var tok token.Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		tok.Type = token.EOF
		tok.Literal = ""
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				tok = token.Token{Type: token.DARROW, Literal: "->>", Pos: pos}
			} else {
				tok = token.Token{Type: token.ARROW, Literal: "->", Pos: pos}
			}
		} else {
			tok = l.newToken(token.MINUS, "-")
		}
	case '*':
		tok = l.newToken(token.STAR, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case '%':
		tok = l.newToken(token.PERCENT, "%")
	case '=':
		tok = l.newToken(token.EQ, "=")
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "<>", Pos: pos}
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "!=", Pos: pos}
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = token.Token{Type: token.DPIPE, Literal: "||", Pos: pos}
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '#':
		if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				tok = token.Token{Type: token.DHASHARROW, Literal: "#>>", Pos: pos}
			} else {
				tok = token.Token{Type: token.HASHARROW, Literal: "#>", Pos: pos}
			}
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			tok = token.Token{Type: token.DCOLON, Literal: "::", Pos: pos}
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '?':
		tok = l.newToken(token.QMARK, "?")
	case '.':
		tok = l.newToken(token.DOT, ".")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case ';':
		tok = l.newToken(token.SEMICOLON, ";")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case '\'':
		literal, ok := l.readString()
		if !ok {
			l.unterminated(pos, ErrUnterminatedString)
		}
		return token.Token{Type: token.STRING, Literal: literal, Pos: pos}
	case '"':
		literal, ok := l.readQuotedIdentifier()
		if !ok {
			l.unterminated(pos, ErrUnterminatedIdent)
		}
		return token.Token{Type: token.IDENT, Literal: literal, Pos: pos}
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			tok.Literal = l.readIdentifier()
			// Dialect keyword phrases win over builtin keywords so that
			// remapped words (TEMP, BEGIN) and multi-word phrases
			// (CHARACTER VARYING, COMMENT ON) classify correctly.
			if phraseTok, ok := l.matchKeywordPhrase(tok.Literal, pos); ok {
				return phraseTok
			}
			tok.Type = token.LookupIdent(strings.ToLower(tok.Literal))
			if tok.Type == token.IDENT {
				if dynTok, ok := token.LookupDynamicKeyword(strings.ToUpper(tok.Literal)); ok && l.dialect != nil {
					if _, typed := l.dialect.TypeKindFor(dynTok); typed {
						tok.Type = dynTok
					}
				}
			}
			tok.Pos = pos
			return tok
		case isDigit(l.ch):
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			tok.Pos = pos
			return tok
		default:
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	}

	l.readChar()
	return tok
}

// matchLiteralPrefix checks the dialect's literal prefixes against the
// current position. On a match the delimited content is consumed and
// returned under the prefix's token type.
func (l *Lexer) matchLiteralPrefix(pos token.Position) (token.Token, bool) {
	if l.dialect == nil || l.pos >= len(l.input) {
		return token.Token{}, false
	}

	remaining := l.input[l.pos:]
	for _, lp := range l.dialect.LiteralPrefixes() {
		if !strings.HasPrefix(remaining, lp.Prefix) {
			continue
		}
		for range lp.Prefix {
			l.readChar()
		}
		literal, terminated := l.readUntil(lp.End)
		if !terminated {
			l.unterminated(pos, ErrUnterminatedString)
		}
		return token.Token{Type: lp.Token, Literal: literal, Pos: pos}, true
	}
	return token.Token{}, false
}

// matchQuote checks the dialect's quote delimiters. The single quote is
// handled by the main switch with doubled-quote escaping; this path covers
// multi-character delimiters such as $$.
func (l *Lexer) matchQuote(pos token.Position) (token.Token, bool) {
	if l.dialect == nil || l.pos >= len(l.input) {
		return token.Token{}, false
	}

	remaining := l.input[l.pos:]
	quotes := append([]string(nil), l.dialect.Quotes()...)
	sort.Slice(quotes, func(i, j int) bool { return len(quotes[i]) > len(quotes[j]) })

	for _, q := range quotes {
		if len(q) < 2 || !strings.HasPrefix(remaining, q) {
			continue
		}
		for range q {
			l.readChar()
		}
		literal, terminated := l.readUntil(q)
		if !terminated {
			l.unterminated(pos, ErrUnterminatedString)
		}
		return token.Token{Type: token.STRING, Literal: literal, Pos: pos}, true
	}
	return token.Token{}, false
}

// matchSymbol checks dialect operator symbols, longest match first.
func (l *Lexer) matchSymbol(pos token.Position) (token.Token, bool) {
	if l.dialect == nil || l.pos >= len(l.input) {
		return token.Token{}, false
	}

	symbols := l.dialect.Symbols()
	if len(symbols) == 0 {
		return token.Token{}, false
	}

	remaining := l.input[l.pos:]
	var matches []string
	for sym := range symbols {
		if strings.HasPrefix(remaining, sym) {
			matches = append(matches, sym)
		}
	}
	if len(matches) == 0 {
		return token.Token{}, false
	}

	sort.Slice(matches, func(i, j int) bool {
		return len(matches[i]) > len(matches[j])
	})

	symbol := matches[0]
	for range symbol {
		l.readChar()
	}
	return token.Token{Type: symbols[symbol], Literal: symbol, Pos: pos}, true
}

// matchSingleToken checks dialect single-character tokens. A PARAMETER
// consumes the digits that follow it as the parameter index.
func (l *Lexer) matchSingleToken(pos token.Position) (token.Token, bool) {
	if l.dialect == nil {
		return token.Token{}, false
	}

	tt, ok := l.dialect.SingleToken(rune(l.ch))
	if !ok {
		return token.Token{}, false
	}
	l.readChar()

	literal := ""
	if tt == token.PARAMETER {
		start := l.pos
		for isDigit(l.ch) {
			l.readChar()
		}
		literal = l.input[start:l.pos]
	}
	return token.Token{Type: tt, Literal: literal, Pos: pos}, true
}

// matchKeywordPhrase tries to extend the word just read into the longest
// dialect keyword phrase, looking ahead at most MaxPhraseWords words. On
// failure the cursor is restored to just after the first word.
func (l *Lexer) matchKeywordPhrase(first string, pos token.Position) (token.Token, bool) {
	if l.dialect == nil || l.dialect.MaxPhraseWords() == 0 {
		return token.Token{}, false
	}

	words := []string{strings.ToUpper(first)}
	states := []lexState{l.saveState()}

	for len(words) < l.dialect.MaxPhraseWords() {
		st := l.saveState()
		l.skipWhitespaceAndComments()
		if !isLetter(l.ch) && l.ch != '_' {
			l.restoreState(st)
			break
		}
		words = append(words, strings.ToUpper(l.readIdentifier()))
		states = append(states, l.saveState())
	}

	for n := len(words); n >= 1; n-- {
		phrase := strings.Join(words[:n], " ")
		if tt, ok := l.dialect.KeywordPhrase(phrase); ok {
			l.restoreState(states[n-1])
			return token.Token{Type: tt, Literal: phrase, Pos: pos}, true
		}
	}

	l.restoreState(states[0])
	return token.Token{}, false
}

// newToken creates a new token.
func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

// skipWhitespaceAndComments skips whitespace, line comments and block
// comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '-' && l.peekChar() == '-' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
			continue
		}

		break
	}
}

// unterminated records a lexical error for a literal that ran to end of
// input without its closing delimiter.
func (l *Lexer) unterminated(start token.Position, msg string) {
	l.errs = append(l.errs, &ParseError{
		Pos:     start,
		Span:    token.Span{Start: start, End: l.currentPos()},
		Message: msg,
	})
}

// readString reads a single-quoted string literal, handling doubled single
// quotes as escape: 'it''s' -> it's. The second result is false when input
// ends before the closing quote.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for l.ch != 0 {
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				result.WriteByte('\'')
				l.readChar()
				l.readChar()
			} else {
				l.readChar() // skip closing quote
				return result.String(), true
			}
		} else {
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
	return result.String(), false
}

// readUntil consumes input up to and including the delimiter and returns
// the content before it. The second result is false when input ends before
// the delimiter appears.
func (l *Lexer) readUntil(delim string) (string, bool) {
	start := l.pos
	for l.ch != 0 {
		if strings.HasPrefix(l.input[l.pos:], delim) {
			content := l.input[start:l.pos]
			for range delim {
				l.readChar()
			}
			return content, true
		}
		l.readChar()
	}
	return l.input[start:l.pos], false
}

// readQuotedIdentifier reads a double-quoted identifier, handling doubled
// double quotes as escape: "col""name" -> col"name. The second result is
// false when input ends before the closing quote.
func (l *Lexer) readQuotedIdentifier() (string, bool) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for l.ch != 0 {
		if l.ch == '"' {
			if l.peekChar() == '"' {
				result.WriteByte('"')
				l.readChar()
				l.readChar()
			} else {
				l.readChar()
				return result.String(), true
			}
		} else {
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
	return result.String(), false
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

// isLetter returns true if ch is a letter.
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

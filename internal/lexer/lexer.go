// Package lexer turns Lean 4 source text into a lossless token stream.
//
// The lexer is total: it never fails, always terminates, and covers the
// entire input. Unterminated comments and strings simply end at end of
// stream, and unrecognized characters become Other tokens, so one malformed
// file can never abort a batch run.
package lexer

// Lexer scans a single file's decoded source text. It owns private state
// only (scan position, line/column counters) and is not safe for concurrent
// use; run one Lexer per file.
type Lexer struct {
	src      []rune
	pos      int
	line     int
	col      int
	alphabet *Alphabet
}

// New creates a Lexer over src using the default identifier alphabet.
func New(src string) *Lexer {
	return NewWithAlphabet(src, DefaultAlphabet())
}

// NewWithAlphabet creates a Lexer over src with a custom identifier
// alphabet.
func NewWithAlphabet(src string, alphabet *Alphabet) *Lexer {
	if alphabet == nil {
		alphabet = DefaultAlphabet()
	}
	return &Lexer{
		src:      []rune(src),
		line:     1,
		col:      1,
		alphabet: alphabet,
	}
}

// Tokenize scans src to completion and returns every token, ending with the
// EOF sentinel.
func Tokenize(src string) []Token {
	return New(src).All()
}

// All drains the lexer and returns the remaining tokens, EOF included.
func (l *Lexer) All() []Token {
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens
		}
	}
}

// peek returns the rune at the given offset from the scan position, or 0
// past end of input. Offsets beyond 1 are never needed.
func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos < len(l.src) {
		return l.src[pos]
	}
	return 0
}

// advance consumes one rune, updating line and column counters.
func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// text returns the literal source text from start to the current position.
func (l *Lexer) text(start int) string {
	return string(l.src[start:l.pos])
}

// Next returns the next token. After the input is exhausted it returns the
// EOF sentinel on every call.
func (l *Lexer) Next() Token {
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Line: l.line, Column: l.col}
	}

	line, col := l.line, l.col
	c := l.peek(0)

	// Two-character triggers first: they shadow '-', '/', ':' and '@'.
	switch {
	case c == ' ' || c == '\t':
		return l.readBlank()
	case c == '-' && l.peek(1) == '-':
		return l.readLineComment()
	case c == '/' && l.peek(1) == '-':
		return l.readBlockComment()
	case c == ':' && l.peek(1) == '=':
		l.advance()
		l.advance()
		return Token{Kind: Assign, Text: ":=", Line: line, Column: col}
	case c == '@' && l.peek(1) == '[':
		return l.readAttribute()
	}

	switch c {
	case '\n':
		l.advance()
		return Token{Kind: Newline, Text: "\n", Line: line, Column: col}
	case '(':
		l.advance()
		return Token{Kind: LParen, Text: "(", Line: line, Column: col}
	case ')':
		l.advance()
		return Token{Kind: RParen, Text: ")", Line: line, Column: col}
	case '[':
		l.advance()
		return Token{Kind: LBracket, Text: "[", Line: line, Column: col}
	case ']':
		l.advance()
		return Token{Kind: RBracket, Text: "]", Line: line, Column: col}
	case '{':
		l.advance()
		return Token{Kind: LBrace, Text: "{", Line: line, Column: col}
	case '}':
		l.advance()
		return Token{Kind: RBrace, Text: "}", Line: line, Column: col}
	case ':':
		l.advance()
		return Token{Kind: Colon, Text: ":", Line: line, Column: col}
	case '"', '\'':
		return l.readString()
	}

	if l.alphabet.IsStart(c) {
		return l.readIdentifier()
	}

	l.advance()
	return Token{Kind: Other, Text: string(c), Line: line, Column: col}
}

// readBlank consumes a run of spaces and tabs as a single Other token, so
// the token stream stays lossless and captured signatures keep their
// spacing.
func (l *Lexer) readBlank() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		if c := l.peek(0); c != ' ' && c != '\t' {
			break
		}
		l.advance()
	}
	return Token{Kind: Other, Text: l.text(start), Line: line, Column: col}
}

// readLineComment consumes -- through end of line, marker included. The
// trailing newline is left for the next token.
func (l *Lexer) readLineComment() Token {
	line, col := l.line, l.col
	start := l.pos
	l.advance() // -
	l.advance() // -
	for l.pos < len(l.src) && l.peek(0) != '\n' {
		l.advance()
	}
	return Token{Kind: LineComment, Text: l.text(start), Line: line, Column: col}
}

// readBlockComment consumes a possibly nested /- ... -/ comment. A third '-'
// right after the opener tags the token as a doc comment; nesting and
// termination rules are identical. An unterminated comment ends at end of
// stream.
func (l *Lexer) readBlockComment() Token {
	line, col := l.line, l.col
	start := l.pos
	l.advance() // /
	l.advance() // -

	isDoc := l.peek(0) == '-'
	if isDoc {
		l.advance()
	}

	depth := 1
	for depth > 0 && l.pos < len(l.src) {
		switch {
		case l.peek(0) == '-' && l.peek(1) == '/':
			l.advance()
			l.advance()
			depth--
		case l.peek(0) == '/' && l.peek(1) == '-':
			l.advance()
			l.advance()
			depth++
		default:
			l.advance()
		}
	}

	kind := BlockComment
	if isDoc {
		kind = DocComment
	}
	return Token{Kind: kind, Text: l.text(start), Line: line, Column: col}
}

// readAttribute consumes a whole @[...] span. The span keeps its own bracket
// depth counter so nested brackets inside the body do not close it early. An
// unterminated span ends at end of stream.
func (l *Lexer) readAttribute() Token {
	line, col := l.line, l.col
	start := l.pos
	l.advance() // @
	l.advance() // [

	depth := 1
	for depth > 0 && l.pos < len(l.src) {
		switch l.peek(0) {
		case '[':
			depth++
		case ']':
			depth--
		}
		l.advance()
	}
	return Token{Kind: Attribute, Text: l.text(start), Line: line, Column: col}
}

// readString consumes a quoted literal through the next unescaped matching
// quote. A '\' always consumes the following rune without reinterpreting
// it. An unterminated literal ends at end of stream.
func (l *Lexer) readString() Token {
	line, col := l.line, l.col
	start := l.pos
	quote := l.advance()
	for l.pos < len(l.src) {
		c := l.advance()
		if c == quote {
			break
		}
		if c == '\\' && l.pos < len(l.src) {
			l.advance()
		}
	}
	return Token{Kind: String, Text: l.text(start), Line: line, Column: col}
}

// readIdentifier consumes a maximal identifier run, then re-tags it via the
// keyword table.
func (l *Lexer) readIdentifier() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && l.alphabet.IsPart(l.peek(0)) {
		l.advance()
	}
	text := l.text(start)
	return Token{Kind: LookupKeyword(text), Text: text, Line: line, Column: col}
}

// Package parser extracts declaration records from a Lean 4 token stream.
//
// The parser is a best-effort heuristic, not a validating one: a token
// sequence that looks like the start of a declaration but does not resolve
// into a kind, a name, and a signature yields no record and scanning simply
// resumes. No input can make it fail.
package parser

import (
	"strings"

	"github.com/mvp-joe/proofdex/internal/lexer"
)

// Parser consumes one file's token stream with a two-token window and emits
// Definition records in order of appearance. Like the lexer, a Parser owns
// private state only; run one per file.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
	file string
}

// New creates a Parser over src. The file path is recorded on every emitted
// Definition.
func New(src, file string) *Parser {
	return NewWithAlphabet(src, file, nil)
}

// NewWithAlphabet creates a Parser whose lexer uses a custom identifier
// alphabet.
func NewWithAlphabet(src, file string, alphabet *lexer.Alphabet) *Parser {
	p := &Parser{
		lex:  lexer.NewWithAlphabet(src, alphabet),
		file: file,
	}
	// Fill the two-token window.
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

// isDeclStart reports whether tok can begin a declaration attempt.
func isDeclStart(tok lexer.Token) bool {
	return tok.Kind == lexer.DocComment ||
		tok.Kind == lexer.Attribute ||
		tok.Kind.IsModifier() ||
		tok.Kind.IsDeclKeyword()
}

// Parse scans the whole stream and returns every recognized declaration.
func (p *Parser) Parse() []Definition {
	defs := []Definition{}
	for p.cur.Kind != lexer.EOF {
		if !isDeclStart(p.cur) {
			p.advance()
			continue
		}
		// A failed attempt consumes at least one token, so scanning always
		// makes progress. Tokens consumed before the failure point are not
		// re-examined; adjacent malformed starts may therefore go
		// uncounted.
		if def, ok := p.parseDefinition(); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// skipBlank advances past intra-line whitespace tokens.
func (p *Parser) skipBlank() {
	for p.cur.IsBlank() {
		p.advance()
	}
}

// skipBlankAndNewlines advances past whitespace and newline tokens.
func (p *Parser) skipBlankAndNewlines() {
	for p.cur.IsBlank() || p.cur.Kind == lexer.Newline {
		p.advance()
	}
}

// parseDefinition runs one declaration attempt starting at the current
// token. It reports false, with nothing emitted, when the attempt does not
// resolve into a declaration keyword followed by a name.
func (p *Parser) parseDefinition() (Definition, bool) {
	def := Definition{
		Attributes: []string{},
		Modifiers:  []string{},
		File:       p.file,
	}

	if p.cur.Kind == lexer.DocComment {
		def.DocComment = p.cur.Text
		def.Line = p.cur.Line
		p.advance()
		p.skipBlankAndNewlines()
	}

	for p.cur.Kind == lexer.Attribute {
		def.Attributes = append(def.Attributes, p.cur.Text)
		if def.Line == 0 {
			def.Line = p.cur.Line
		}
		p.advance()
		p.skipBlankAndNewlines()
	}

	// Modifiers are same-line: skip spaces but not newlines between them.
	for p.cur.Kind.IsModifier() {
		def.Modifiers = append(def.Modifiers, p.cur.Text)
		if def.Line == 0 {
			def.Line = p.cur.Line
		}
		p.advance()
		p.skipBlank()
	}

	if !p.cur.Kind.IsDeclKeyword() {
		return Definition{}, false
	}
	kind := p.cur.Kind
	def.Kind = p.cur.Text
	if def.Line == 0 {
		def.Line = p.cur.Line
	}
	p.advance()
	p.skipBlank()

	switch {
	case p.cur.Kind == lexer.Ident:
		def.Name = p.cur.Text
		p.advance()
	case kind == lexer.KwVariable && isOpenBracket(p.cur.Kind) && p.peek.Kind == lexer.Ident:
		// variable binders start with a bracket, not a bare name:
		// variable (x : Nat). The name is the lookahead identifier; the
		// bracket is left in place so the signature capture includes the
		// whole binder group.
		def.Name = p.peek.Text
	default:
		return Definition{}, false
	}

	def.Signature = p.captureSignature(kind)
	return def, true
}

func isOpenBracket(k lexer.Kind) bool {
	return k == lexer.LParen || k == lexer.LBracket || k == lexer.LBrace
}

// captureSignature accumulates literal token text until a terminator at
// bracket depth 0: the assignment marker, where, by, or (for the variable
// form only) a newline. Parameter lists legitimately contain colons and
// where-like identifiers inside nested groups, so a terminator only counts
// when the depth stack is empty. The terminating token is not consumed and
// not included.
func (p *Parser) captureSignature(kind lexer.Kind) string {
	var sig strings.Builder
	var stack []lexer.Kind

	for p.cur.Kind != lexer.EOF {
		if len(stack) == 0 {
			switch p.cur.Kind {
			case lexer.Assign, lexer.KwWhere, lexer.KwBy:
				return strings.TrimSpace(sig.String())
			case lexer.Newline:
				if kind == lexer.KwVariable {
					return strings.TrimSpace(sig.String())
				}
			}
		}

		switch p.cur.Kind {
		case lexer.LParen, lexer.LBracket, lexer.LBrace:
			stack = append(stack, p.cur.Kind)
		case lexer.RParen:
			stack = popIf(stack, lexer.LParen)
		case lexer.RBracket:
			stack = popIf(stack, lexer.LBracket)
		case lexer.RBrace:
			stack = popIf(stack, lexer.LBrace)
		}

		sig.WriteString(p.cur.Text)
		p.advance()
	}
	return strings.TrimSpace(sig.String())
}

// popIf pops the stack when its top matches the given opener. A close token
// with no matching opener leaves the stack alone; depth never goes below its
// floor.
func popIf(stack []lexer.Kind, open lexer.Kind) []lexer.Kind {
	if len(stack) > 0 && stack[len(stack)-1] == open {
		return stack[:len(stack)-1]
	}
	return stack
}

// ParseSource is a convenience that lexes and parses src in one call.
func ParseSource(src, file string) []Definition {
	return New(src, file).Parse()
}

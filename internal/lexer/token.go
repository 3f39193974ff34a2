package lexer

import "strings"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// EOF is the end-of-stream sentinel. A token stream contains exactly one.
	EOF Kind = iota

	// Newline is a single '\n'. Newlines are significant because the
	// variable form may terminate at end of line.
	Newline

	// Other covers runs of intra-line whitespace and any single character
	// the lexer does not otherwise recognize. The lexer never fails on
	// unrecognized input.
	Other

	// Ident is an identifier that did not match the keyword table.
	Ident

	// String is a quoted literal, including its quotes and escapes.
	String

	LineComment  // -- to end of line
	BlockComment // /- ... -/, may nest
	DocComment   // /-- ... -/, nests like a block comment

	// Attribute is a whole @[...] span, nested brackets included.
	Attribute

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Colon
	Assign // :=

	// Declaration keywords, one per declaration form. The keyword table
	// maps alternate spellings (class, inductive) onto the structure form.
	KwDef
	KwLemma
	KwTheorem
	KwStructure
	KwVariable

	// Structural keywords that terminate a signature at bracket depth 0.
	KwWhere
	KwBy

	// Modifier keywords.
	KwPrivate
	KwProtected
	KwNoncomputable
)

var kindNames = map[Kind]string{
	EOF:             "EOF",
	Newline:         "NEWLINE",
	Other:           "OTHER",
	Ident:           "IDENT",
	String:          "STRING",
	LineComment:     "LINE_COMMENT",
	BlockComment:    "BLOCK_COMMENT",
	DocComment:      "DOC_COMMENT",
	Attribute:       "ATTRIBUTE",
	LParen:          "LPAREN",
	RParen:          "RPAREN",
	LBracket:        "LBRACKET",
	RBracket:        "RBRACKET",
	LBrace:          "LBRACE",
	RBrace:          "RBRACE",
	Colon:           "COLON",
	Assign:          "ASSIGN",
	KwDef:           "DEF",
	KwLemma:         "LEMMA",
	KwTheorem:       "THEOREM",
	KwStructure:     "STRUCTURE",
	KwVariable:      "VARIABLE",
	KwWhere:         "WHERE",
	KwBy:            "BY",
	KwPrivate:       "PRIVATE",
	KwProtected:     "PROTECTED",
	KwNoncomputable: "NONCOMPUTABLE",
}

// String returns the token kind name used in debug output and tests.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsDeclKeyword reports whether k introduces a declaration.
func (k Kind) IsDeclKeyword() bool {
	switch k {
	case KwDef, KwLemma, KwTheorem, KwStructure, KwVariable:
		return true
	default:
		return false
	}
}

// IsModifier reports whether k is a declaration modifier keyword.
func (k Kind) IsModifier() bool {
	switch k {
	case KwPrivate, KwProtected, KwNoncomputable:
		return true
	default:
		return false
	}
}

// keywords maps identifier text to keyword kinds. class and inductive share
// the structure form; the literal spelling survives in Token.Text.
var keywords = map[string]Kind{
	"def":           KwDef,
	"lemma":         KwLemma,
	"theorem":       KwTheorem,
	"structure":     KwStructure,
	"class":         KwStructure,
	"inductive":     KwStructure,
	"variable":      KwVariable,
	"where":         KwWhere,
	"by":            KwBy,
	"private":       KwPrivate,
	"protected":     KwProtected,
	"noncomputable": KwNoncomputable,
}

// LookupKeyword returns the keyword kind for text, or Ident if text is not a
// keyword.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// Token is a single lexeme with its 1-based source position. Concatenating
// the Text of every token in a stream reproduces the original input.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

// IsBlank reports whether the token is a run of intra-line whitespace.
func (t Token) IsBlank() bool {
	return t.Kind == Other && t.Text != "" && strings.TrimLeft(t.Text, " \t") == ""
}

package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Lexer:
// - Losslessness: concatenated token text reproduces any input exactly
// - Totality: every input terminates with exactly one EOF sentinel
// - Nested block comments span outermost open to matching close
// - Unterminated comments and strings end at EOF without error
// - Doc comments are distinguished from plain block comments by /--
// - Attribute spans keep their own bracket depth over nested brackets
// - := is atomic and distinct from a lone colon
// - String literals honor backslash escaping
// - Identifier runs cover unicode letters, primes, and subscripts
// - Keyword table re-tags identifiers, including class/inductive aliases
// - Unrecognized characters become Other tokens, never errors
// - Whitespace runs become single Other tokens
// - Line and column positions are 1-based and track newlines

func concat(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexer_Losslessness(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"theorem foo (a : Nat) (b : Nat) : a + b = b + a := by ring",
		"@[simp] lemma bar : 1 = 1 := rfl",
		"/- outer /- inner -/ still outer -/\ndef baz : Nat := 0",
		"-- line comment\nvariable (x : Nat)\n",
		"def f : String := \"he said \\\"hi\\\"\"",
		"def α₁' (h : p ∧ q) : q ∧ p := ⟨h.2, h.1⟩",
		"/- unterminated",
		"\"unterminated string",
		"   \t  mixed \t whitespace\n\n",
		"€ ¶ § unrecognized ©",
	}

	for _, input := range inputs {
		tokens := Tokenize(input)
		assert.Equal(t, input, concat(tokens), "lossless round trip for %q", input)
	}
}

func TestLexer_Totality(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "x", "/- /- /-", "::=::", "theorem"} {
		tokens := Tokenize(input)
		require.NotEmpty(t, tokens)

		eofCount := 0
		for _, tok := range tokens {
			if tok.Kind == EOF {
				eofCount++
			}
		}
		assert.Equal(t, 1, eofCount, "exactly one EOF for %q", input)
		assert.Equal(t, EOF, tokens[len(tokens)-1].Kind, "EOF is last for %q", input)
	}

	// After exhaustion, Next keeps returning the sentinel.
	lex := New("x")
	lex.All()
	assert.Equal(t, EOF, lex.Next().Kind)
	assert.Equal(t, EOF, lex.Next().Kind)
}

func TestLexer_NestedBlockComment(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("/- outer /- inner -/ still outer -/ x")

	require.Equal(t, BlockComment, tokens[0].Kind)
	assert.Equal(t, "/- outer /- inner -/ still outer -/", tokens[0].Text)

	// The trailing identifier is still reached.
	assert.Contains(t, kinds(tokens), Ident)
}

func TestLexer_UnterminatedBlockComment(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("/- outer /- never closed")
	require.Equal(t, BlockComment, tokens[0].Kind)
	assert.Equal(t, "/- outer /- never closed", tokens[0].Text)
	assert.Equal(t, EOF, tokens[1].Kind)
}

func TestLexer_DocComment(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("/-- Adds two numbers. -/\ndef add := 0")
	require.Equal(t, DocComment, tokens[0].Kind)
	assert.Equal(t, "/-- Adds two numbers. -/", tokens[0].Text)

	// A plain block comment is not tagged as doc.
	tokens = Tokenize("/- not doc -/")
	assert.Equal(t, BlockComment, tokens[0].Kind)

	// Doc comments nest exactly like block comments.
	tokens = Tokenize("/-- outer /- inner -/ tail -/")
	require.Equal(t, DocComment, tokens[0].Kind)
	assert.Equal(t, "/-- outer /- inner -/ tail -/", tokens[0].Text)
}

func TestLexer_LineComment(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("-- trailing text\ndef x := 1")
	require.Equal(t, LineComment, tokens[0].Kind)
	assert.Equal(t, "-- trailing text", tokens[0].Text)
	assert.Equal(t, Newline, tokens[1].Kind)
}

func TestLexer_AttributeSpan(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("@[simp] lemma x := rfl")
	require.Equal(t, Attribute, tokens[0].Kind)
	assert.Equal(t, "@[simp]", tokens[0].Text)

	// Nested brackets inside the body do not close the span early.
	tokens = Tokenize("@[simp only [foo, bar]] theorem t := rfl")
	require.Equal(t, Attribute, tokens[0].Kind)
	assert.Equal(t, "@[simp only [foo, bar]]", tokens[0].Text)

	// An unterminated span runs to EOF.
	tokens = Tokenize("@[simp only [foo")
	require.Equal(t, Attribute, tokens[0].Kind)
	assert.Equal(t, "@[simp only [foo", tokens[0].Text)

	// A bare @ not followed by [ is just an Other token.
	tokens = Tokenize("@foo")
	assert.Equal(t, Other, tokens[0].Kind)
	assert.Equal(t, "@", tokens[0].Text)
}

func TestLexer_AssignVersusColon(t *testing.T) {
	t.Parallel()

	tokens := Tokenize(": :=:")
	require.Len(t, tokens, 5)
	assert.Equal(t, []Kind{Colon, Other, Assign, Colon, EOF}, kinds(tokens))
	assert.Equal(t, ":=", tokens[2].Text)
}

func TestLexer_StringEscapes(t *testing.T) {
	t.Parallel()

	tokens := Tokenize(`"he said \"hi\"" x`)
	require.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, `"he said \"hi\""`, tokens[0].Text)

	// Single-quoted literals use the same rules.
	tokens = Tokenize(`'a'`)
	require.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, `'a'`, tokens[0].Text)

	// Unterminated literal ends at EOF.
	tokens = Tokenize(`"runs off the end`)
	require.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, `"runs off the end`, tokens[0].Text)
	assert.Equal(t, EOF, tokens[1].Kind)
}

func TestLexer_UnicodeIdentifiers(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("α₁' βₖ x₀")
	require.Equal(t, Ident, tokens[0].Kind)
	assert.Equal(t, "α₁'", tokens[0].Text)
	require.Equal(t, Ident, tokens[2].Kind)
	assert.Equal(t, "βₖ", tokens[2].Text)
	require.Equal(t, Ident, tokens[4].Kind)
	assert.Equal(t, "x₀", tokens[4].Text)
}

func TestLexer_KeywordTagging(t *testing.T) {
	t.Parallel()

	cases := map[string]Kind{
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
		"definition":    Ident, // prefix of a keyword is not a keyword
		"Theorem":       Ident, // matching is case-sensitive
	}
	for text, want := range cases {
		tokens := Tokenize(text)
		require.NotEmpty(t, tokens)
		assert.Equal(t, want, tokens[0].Kind, "keyword lookup for %q", text)
		assert.Equal(t, text, tokens[0].Text)
	}
}

func TestLexer_WhitespaceRuns(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("a  \t b")
	require.Len(t, tokens, 4)
	assert.Equal(t, Other, tokens[1].Kind)
	assert.Equal(t, "  \t ", tokens[1].Text)
	assert.True(t, tokens[1].IsBlank())

	// A non-whitespace Other token is not blank.
	tokens = Tokenize("€")
	assert.False(t, tokens[0].IsBlank())
}

func TestLexer_Positions(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("def a\n  theorem b")

	require.GreaterOrEqual(t, len(tokens), 7)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column) // def
	assert.Equal(t, 1, tokens[2].Line)
	assert.Equal(t, 5, tokens[2].Column) // a
	assert.Equal(t, Newline, tokens[3].Kind)

	// tokens[4] is the indent on line 2, tokens[5] the theorem keyword.
	assert.Equal(t, 2, tokens[5].Line)
	assert.Equal(t, 3, tokens[5].Column)
}

func TestAlphabet_Extend(t *testing.T) {
	t.Parallel()

	// ℓ is a letter and needs no extension; a custom symbol does.
	base := DefaultAlphabet()
	assert.False(t, base.IsStart('✦'))

	ext := DefaultAlphabet().ExtendStart("✦")
	assert.True(t, ext.IsStart('✦'))

	tokens := NewWithAlphabet("✦x", ext).All()
	require.Equal(t, Ident, tokens[0].Kind)
	assert.Equal(t, "✦x", tokens[0].Text)

	// Continuation-only extension.
	cont := DefaultAlphabet().Extend("!")
	tokens = NewWithAlphabet("norm!", cont).All()
	require.Equal(t, Ident, tokens[0].Kind)
	assert.Equal(t, "norm!", tokens[0].Text)
}

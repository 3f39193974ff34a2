package lexer

import "unicode"

// Alphabet decides which runes may start or continue an identifier. Lean
// identifiers routinely contain mathematical letters, primes, and subscript
// digits, and the full set is larger than any fixed enumeration, so the
// classification is a table that callers can extend rather than a hard-coded
// predicate.
type Alphabet struct {
	start map[rune]bool
	part  map[rune]bool
}

// Extra runes accepted by the default alphabet beyond unicode letters.
const (
	defaultStartRunes = "_αβγδεζηθικλμνξοπρστυφχψω"
	defaultPartRunes  = "_'ₐₑₕᵢⱼₖₗₘₙₒₚᵣₛₜᵤᵥₓ₀₁₂₃₄₅₆₇₈₉"
)

// DefaultAlphabet returns the identifier alphabet used when none is
// configured.
func DefaultAlphabet() *Alphabet {
	a := &Alphabet{
		start: make(map[rune]bool),
		part:  make(map[rune]bool),
	}
	for _, r := range defaultStartRunes {
		a.start[r] = true
		a.part[r] = true
	}
	for _, r := range defaultPartRunes {
		a.part[r] = true
	}
	return a
}

// Extend adds every rune in extra as a valid identifier continuation rune.
// Runes that are also valid start runes should be added via ExtendStart.
func (a *Alphabet) Extend(extra string) *Alphabet {
	for _, r := range extra {
		a.part[r] = true
	}
	return a
}

// ExtendStart adds every rune in extra as a valid identifier start rune
// (and, implicitly, continuation rune).
func (a *Alphabet) ExtendStart(extra string) *Alphabet {
	for _, r := range extra {
		a.start[r] = true
		a.part[r] = true
	}
	return a
}

// IsStart reports whether r may begin an identifier.
func (a *Alphabet) IsStart(r rune) bool {
	return unicode.IsLetter(r) || a.start[r]
}

// IsPart reports whether r may continue an identifier.
func (a *Alphabet) IsPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || a.part[r]
}

package parser

// Definition is one extracted declaration record. It is created once per
// recognized declaration and never mutated after emission; field order
// matches the serialized JSON order downstream tooling expects.
type Definition struct {
	// DocComment is the /-- ... -/ block preceding the declaration, markers
	// included. Empty when the declaration has none.
	DocComment string `json:"doc_comment"`

	// Attributes holds each @[...] span preceding the declaration, in order.
	Attributes []string `json:"attributes"`

	// Modifiers holds the modifier keywords preceding the declaration kind,
	// in order (private, protected, noncomputable).
	Modifiers []string `json:"modifiers"`

	// Kind is the literal declaration keyword (def, lemma, theorem,
	// structure, class, inductive, variable).
	Kind string `json:"kind"`

	// Name is the declared identifier.
	Name string `json:"name"`

	// Signature is the raw text from just after the name up to, but not
	// including, the terminator that ended the capture, trimmed of
	// surrounding whitespace.
	Signature string `json:"signature"`

	// File is the path of the source file the declaration came from.
	File string `json:"file"`

	// Line is the 1-based line of the first token belonging to the
	// declaration (doc comment or attribute when present).
	Line int `json:"line"`
}

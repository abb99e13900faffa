// Package cfg names the context-free-grammar placeholder from spec.md
// §9's Open Question: "whether these are part of the intended core or
// future work is unresolved; this spec treats them as non-goals." No
// grammar algorithm lives here — no epsilon elimination, no normal-form
// conversion, no ambiguity handling, no pushdown execution. Grammar
// exists only so a caller can name the type; building one out of this
// module's algebra is out of scope.
package cfg

// Grammar is an opaque placeholder for a context-free grammar. It
// carries its productions but defines no operations on them.
type Grammar struct {
	// Productions maps a nonterminal name to its right-hand-side
	// alternatives, each given as a sequence of symbols (terminal or
	// nonterminal names, indistinguishable at this placeholder's level
	// of detail).
	Productions map[string][][]string
}

// NewGrammar returns a Grammar with no productions.
func NewGrammar() Grammar {
	return Grammar{Productions: map[string][][]string{}}
}

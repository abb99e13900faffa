// Package pattern implements the regular-pattern algebra named in
// spec.md §4.5: an abstract Target interface any concrete representation
// can implement (DFA, symbol-class DFA, or the tree form itself), a
// generic Fold driver that lowers a pattern tree into any such target,
// and state elimination for lowering a DFA back into tree form.
//
// Grounded on spec.md §9's own redesign note: "sum-typed pattern tree +
// trait/interface gives both static dispatch and easy third-party
// extensions" in place of the original source's associated-type
// protocol. The state-elimination driver in fromdfa.go generalizes the
// same worklist/rebuild shape automaton.Minimize and automaton's product
// construction already use — eliminate one state at a time, folding its
// incident edges into its neighbors, until none remain but the two ends.
package pattern

import (
	"cmp"

	"github.com/dekarrin/finlang/internal/util"
)

type treeKind int

const (
	kindEmpty treeKind = iota
	kindEpsilon
	kindSymbol
	kindUnion
	kindConcat
	kindStar
)

// Tree is the pattern tree ADT from spec.md §3/§4.5: a tagged sum of
// empty, epsilon, symbol(class), alternation(list), concatenation(list),
// and star(child). Its constructors are normalizing: alternations and
// concatenations are flattened one level, alternation duplicates are
// removed, concatenation absorbs ∅, and star is idempotent.
type Tree[S cmp.Ordered] struct {
	kind     treeKind
	class    util.KeySet[S]
	children []Tree[S]
}

// Empty returns the pattern recognizing the empty language ∅.
func Empty[S cmp.Ordered]() Tree[S] {
	return Tree[S]{kind: kindEmpty}
}

// Epsilon returns the pattern recognizing {ε}.
func Epsilon[S cmp.Ordered]() Tree[S] {
	return Tree[S]{kind: kindEpsilon}
}

// Symbol returns the pattern recognizing any single symbol in class —
// spec.md's "symbol(class)" leaf, generalizing a plain single-character
// literal to an arbitrary symbol class (so [a-z]-style ranges are a
// single leaf, not a union of 26 single-symbol leaves).
func Symbol[S cmp.Ordered](class util.KeySet[S]) Tree[S] {
	if class.Empty() {
		return Empty[S]()
	}
	return Tree[S]{kind: kindSymbol, class: class.Copy()}
}

// Union returns the normalized alternation of items: nested alternations
// are flattened, structural duplicates are removed, and a single
// remaining item unwraps to itself.
func Union[S cmp.Ordered](items ...Tree[S]) Tree[S] {
	var flat []Tree[S]
	for _, it := range items {
		if it.kind == kindUnion {
			flat = append(flat, it.children...)
		} else {
			flat = append(flat, it)
		}
	}

	deduped := make([]Tree[S], 0, len(flat))
	for _, it := range flat {
		dup := false
		for _, seen := range deduped {
			if treeEqual(seen, it) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, it)
		}
	}

	if len(deduped) == 0 {
		return Empty[S]()
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	return Tree[S]{kind: kindUnion, children: deduped}
}

// Concat returns the normalized concatenation of items: nested
// concatenations are flattened, ε terms (the concatenation unit) are
// dropped, any ∅ term absorbs the whole result to ∅, and a single
// remaining item unwraps to itself. An empty item list is the identity
// element ε.
func Concat[S cmp.Ordered](items ...Tree[S]) Tree[S] {
	var flat []Tree[S]
	for _, it := range items {
		if it.kind == kindEmpty {
			return Empty[S]()
		}
		if it.kind == kindEpsilon {
			continue
		}
		if it.kind == kindConcat {
			flat = append(flat, it.children...)
		} else {
			flat = append(flat, it)
		}
	}

	if len(flat) == 0 {
		return Epsilon[S]()
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Tree[S]{kind: kindConcat, children: flat}
}

// Star returns the normalized Kleene star of item: star(∅) = ε,
// star(ε) = ε, and star is idempotent (star(star(x)) = star(x)).
func Star[S cmp.Ordered](item Tree[S]) Tree[S] {
	switch item.kind {
	case kindStar:
		return item
	case kindEmpty, kindEpsilon:
		return Epsilon[S]()
	default:
		return Tree[S]{kind: kindStar, children: []Tree[S]{item}}
	}
}

func treeEqual[S cmp.Ordered](a, b Tree[S]) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case kindSymbol:
		return a.class.Equal(b.class)
	case kindUnion, kindConcat:
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !treeEqual(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	case kindStar:
		return treeEqual(a.children[0], b.children[0])
	default:
		return true
	}
}

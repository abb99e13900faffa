// Package dfae implements the DFA-with-equivalence named in spec.md §4.4:
// a dictionary-like structure mapping accepted inputs to labels, built by
// injecting a tag transition at each label-DFA's final states and
// unioning the results over a tagged alphabet.
//
// Grounded on automaton.DFA/Builder/Union for the underlying machinery,
// and on spec.md §9's "Atom{Raw,Tag}" redesign note for the tagged
// alphabet's shape: a small sum type over the raw symbol and the label
// type. Atom is a struct, though, and so cannot itself instantiate
// automaton.DFA[S cmp.Ordered] (automaton orders its symbol type with
// the built-in "<", which a struct never satisfies); the union machine
// is built over a string encoding of Atom (atomKey) instead, with a
// decode table recovering the typed Atom at the handful of call sites
// that need one. automaton.DFA itself is untouched — the encoding lives
// entirely in this package.
package dfae

import (
	"cmp"
	"fmt"

	"github.com/dekarrin/finlang/automaton"
	"github.com/dekarrin/finlang/internal/util"
)

// Atom is the tagged alphabet element DFAE's inner automaton transitions
// on: either a raw input symbol, or a tag carrying a label. Raw atoms
// order before every Tag atom under Compare (spec.md §9's "symbol < tag"
// bias); Tag atoms are then ordered among themselves by label. This
// ordering is Atom's own, for callers comparing Atom values directly —
// it has no bearing on how the inner union automaton orders its
// (string-encoded) alphabet.
type Atom[S cmp.Ordered, L cmp.Ordered] struct {
	isTag bool
	raw   S
	tag   L
}

// Raw wraps a plain input symbol as an Atom.
func Raw[S cmp.Ordered, L cmp.Ordered](sym S) Atom[S, L] {
	return Atom[S, L]{raw: sym}
}

// Tag wraps a label as an Atom.
func Tag[S cmp.Ordered, L cmp.Ordered](label L) Atom[S, L] {
	return Atom[S, L]{isTag: true, tag: label}
}

// IsTag reports whether this atom carries a label rather than a raw
// symbol.
func (a Atom[S, L]) IsTag() bool { return a.isTag }

// Label returns the atom's label and true if it is a Tag atom.
func (a Atom[S, L]) Label() (L, bool) {
	if !a.isTag {
		var zero L
		return zero, false
	}
	return a.tag, true
}

// Symbol returns the atom's raw symbol and true if it is a Raw atom.
func (a Atom[S, L]) Symbol() (S, bool) {
	if a.isTag {
		var zero S
		return zero, false
	}
	return a.raw, true
}

// Compare orders a before b: every Raw atom precedes every Tag atom; Raw
// atoms compare by symbol, Tag atoms by label.
func Compare[S cmp.Ordered, L cmp.Ordered](a, b Atom[S, L]) int {
	if a.isTag != b.isTag {
		if a.isTag {
			return 1
		}
		return -1
	}
	if a.isTag {
		return cmp.Compare(a.tag, b.tag)
	}
	return cmp.Compare(a.raw, b.raw)
}

func (a Atom[S, L]) String() string {
	if a.isTag {
		return fmt.Sprintf("tag(%v)", a.tag)
	}
	return fmt.Sprintf("%v", a.raw)
}

// atomKey encodes an Atom as a string so it can label a transition of
// automaton.DFA[string] — automaton.DFA requires a cmp.Ordered symbol
// type, which a struct can never satisfy. The "R:"/"T:" prefix keeps raw
// and tag atoms from ever colliding regardless of what S or L format as;
// within a kind, a collision would require two distinct S (or L) values
// to format identically under %v, which the symbol and label types this
// package is instantiated with (runes, bytes, small string labels) never
// do.
func atomKey[S cmp.Ordered, L cmp.Ordered](a Atom[S, L]) string {
	if a.isTag {
		return fmt.Sprintf("T:%v", a.tag)
	}
	return fmt.Sprintf("R:%v", a.raw)
}

// DFAE maps accepted inputs of symbol type S to labels of type L.
type DFAE[S cmp.Ordered, L cmp.Ordered] struct {
	union        automaton.DFA[string]
	stateToLabel map[int]L
}

// New builds a DFAE from partitions, a mapping from label to the DFA
// recognizing that label's language. Construction: each label-DFA is
// lifted onto the string-encoded tagged alphabet (every Raw(sym)
// transition preserved as-is), a tag transition state --Tag(label)-->
// state is injected at every one of its final states, and the results
// are unioned. Each final state of the union must carry exactly one
// outgoing tag transition; if a state ends up carrying tag edges for two
// different labels (the partitions overlap on some input), that is the
// construction-time programmer error named in spec.md §3/§7 and New
// panics rather than silently picking one.
func New[S cmp.Ordered, L cmp.Ordered](partitions map[L]automaton.DFA[S]) DFAE[S, L] {
	labels := util.OrderedKeys(partitions)

	decode := map[string]Atom[S, L]{}
	injected := make([]automaton.DFA[string], 0, len(labels))
	for _, label := range labels {
		injected = append(injected, inject(partitions[label], label, decode))
	}

	union := automaton.Union(injected...)

	stateToLabel := map[int]L{}
	for s := 0; s < union.NumStates(); s++ {
		if !union.IsFinal(s) {
			continue
		}
		// a final state's outgoing tag transitions (on whatever atom is a
		// Tag, regardless of destination — the product construction does
		// not guarantee the injected self-loop survives as a literal
		// self-loop once other components are folded in) name the label
		// that state belongs to.
		for _, keys := range union.Targets(s) {
			for _, key := range keys.Elements() {
				atom, ok := decode[key]
				if !ok {
					continue
				}
				label, ok := atom.Label()
				if !ok {
					continue
				}
				if existing, already := stateToLabel[s]; already && existing != label {
					panic(fmt.Sprintf("dfae: state %d carries tag transitions for both label %v and %v; partitions overlap", s, existing, label))
				}
				stateToLabel[s] = label
			}
		}
	}

	return DFAE[S, L]{union: union, stateToLabel: stateToLabel}
}

// inject lifts d onto the string-encoded tagged alphabet and adds a
// self-loop tag transition labeled with label at every one of d's final
// states. Every Atom key this machine introduces is recorded into
// decode, so New can later recover the typed Atom from a scan of the
// union's transitions.
func inject[S cmp.Ordered, L cmp.Ordered](d automaton.DFA[S], label L, decode map[string]Atom[S, L]) automaton.DFA[string] {
	b := automaton.NewBuilder[string]()
	for s := 0; s < d.NumStates(); s++ {
		b.AddState(false)
	}
	b.SetInitial(d.Initial())

	for s := 0; s < d.NumStates(); s++ {
		for _, sym := range util.OrderedOf(d.Alphabet()) {
			if to, ok := d.Step(s, sym); ok {
				atom := Raw[S, L](sym)
				key := atomKey(atom)
				decode[key] = atom
				b.AddTransition(s, key, to)
			}
		}
	}
	tagAtom := Tag[S, L](label)
	tagKey := atomKey(tagAtom)
	decode[tagKey] = tagAtom
	for _, f := range util.OrderedOf(d.Finals()) {
		b.AddTransition(f, tagKey, f)
		b.MarkFinal(f)
	}

	return b.Build()
}

// Lookup runs w against the union automaton (reading only its Raw image,
// i.e. w itself) and, if it ends in a final state, reads off that
// state's label. A false result means w is not in any partition's
// language.
func (d DFAE[S, L]) Lookup(w []S) (L, bool) {
	cur := d.union.Initial()
	for _, sym := range w {
		next, ok := d.union.Step(cur, atomKey(Raw[S, L](sym)))
		if !ok {
			var zero L
			return zero, false
		}
		cur = next
	}
	if !d.union.IsFinal(cur) {
		var zero L
		return zero, false
	}
	label, ok := d.stateToLabel[cur]
	return label, ok
}

// Package automaton implements deterministic finite automata over an
// arbitrary totally-ordered symbol type, together with the closure
// operations (union, intersection, concatenation, Kleene star,
// complementation, difference, reverse), Hopcroft-style minimization, and
// lazy length-lexicographic enumeration of accepted strings.
//
// State identifiers are dense non-negative ints, per spec; state 0 is not
// special-cased (the initial state is tracked explicitly), matching the
// "state 0 is reserved as the initial state unless otherwise specified"
// note loosely but not rigidly, since constructors below always place the
// initial state first anyway.
//
// This package is grounded on the teacher's internal/ictiobus/automaton
// package (DFA[E]/NFA[E], AddState/AddTransition/Validate, the worklist
// subset construction in NFA.ToDFA) generalized from string-keyed state
// identity to dense int identifiers and an arbitrary symbol type.
package automaton

import (
	"cmp"
	"fmt"

	"github.com/dekarrin/finlang/internal/util"
)

// DFA is a deterministic finite automaton over symbol type S. The zero
// value is not a valid DFA; use Empty, Epsilon, Single, Verbatim, a
// Builder, or a closure operation to construct one.
type DFA[S cmp.Ordered] struct {
	states  []map[S]int
	initial int
	finals  util.KeySet[int]
}

// Step returns the state reached from state on input sym, and whether a
// transition exists. A false result is the oblivion case named in
// spec.md §3: absence of a transition, not an error.
func (d DFA[S]) Step(state int, sym S) (int, bool) {
	if state < 0 || state >= len(d.states) {
		return 0, false
	}
	to, ok := d.states[state][sym]
	return to, ok
}

// Run steps through every symbol of seq from state, returning the final
// state reached and whether every step had a defined transition. A false
// result means the input fell into oblivion partway through.
func (d DFA[S]) Run(state int, symbols []S) (int, bool) {
	cur := state
	for _, sym := range symbols {
		next, ok := d.Step(cur, sym)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Accepts reports whether symbols, read from the initial state, ends in an
// accepting state.
func (d DFA[S]) Accepts(symbols []S) bool {
	end, ok := d.Run(d.initial, symbols)
	return ok && d.IsFinal(end)
}

// IsFinal reports whether state is an accepting state. Returns false for
// an out-of-range state rather than panicking, since asking whether a
// state is final is a query a caller might reasonably make about a state
// id obtained from Step/Run's oblivion sentinel handling.
func (d DFA[S]) IsFinal(state int) bool {
	return d.finals.Has(state)
}

// Initial returns the DFA's initial state id.
func (d DFA[S]) Initial() int {
	return d.initial
}

// NumStates returns the number of states in the DFA.
func (d DFA[S]) NumStates() int {
	return len(d.states)
}

// Finals returns a copy of the DFA's set of accepting states.
func (d DFA[S]) Finals() util.KeySet[int] {
	return d.finals.Copy()
}

// Alphabet returns the set of every symbol that labels some transition in
// the DFA.
func (d DFA[S]) Alphabet() util.KeySet[S] {
	syms := util.NewKeySet[S]()
	for _, m := range d.states {
		for sym := range m {
			syms.Add(sym)
		}
	}
	return syms
}

// Targets returns, for the given source state, a map from destination
// state to the set of symbols that lead there — the inverse of the
// transition table at that state, grouped by destination.
func (d DFA[S]) Targets(source int) map[int]util.KeySet[S] {
	out := map[int]util.KeySet[S]{}
	if source < 0 || source >= len(d.states) {
		return out
	}
	for sym, to := range d.states[source] {
		if _, ok := out[to]; !ok {
			out[to] = util.NewKeySet[S]()
		}
		out[to].Add(sym)
	}
	return out
}

// Builder incrementally constructs a DFA. Unlike the finished DFA, a
// Builder is mutable; panics on invariant violations (adding a transition
// from or to a non-existent state, building with no initial state set) are
// the category-1 programmer errors named in spec.md §7, matching the
// teacher's own AddState/AddTransition panic behavior.
type Builder[S cmp.Ordered] struct {
	trans      []map[S]int
	finals     util.KeySet[int]
	initial    int
	hasInitial bool
}

// NewBuilder returns an empty Builder.
func NewBuilder[S cmp.Ordered]() *Builder[S] {
	return &Builder[S]{finals: util.NewKeySet[int]()}
}

// AddState adds a new state and returns its id. If final is true the state
// is marked accepting.
func (b *Builder[S]) AddState(final bool) int {
	id := len(b.trans)
	b.trans = append(b.trans, map[S]int{})
	if final {
		b.finals.Add(id)
	}
	return id
}

// MarkFinal marks an existing state as accepting. Panics if state does not
// exist.
func (b *Builder[S]) MarkFinal(state int) {
	b.mustExist(state)
	b.finals.Add(state)
}

// SetInitial sets the builder's initial state. Panics if state does not
// exist.
func (b *Builder[S]) SetInitial(state int) {
	b.mustExist(state)
	b.initial = state
	b.hasInitial = true
}

// AddTransition adds a transition from state on sym to state to. Panics if
// either state does not exist, matching the teacher's
// "add transition from/to non-existent state" panics.
func (b *Builder[S]) AddTransition(from int, sym S, to int) {
	b.mustExist(from)
	b.mustExist(to)
	b.trans[from][sym] = to
}

func (b *Builder[S]) mustExist(state int) {
	if state < 0 || state >= len(b.trans) {
		panic(fmt.Sprintf("automaton: reference to non-existent state %d", state))
	}
}

// Build freezes the builder into an immutable DFA. Panics if no initial
// state has been set.
func (b *Builder[S]) Build() DFA[S] {
	if !b.hasInitial {
		panic("automaton: building DFA with no initial state set")
	}
	states := make([]map[S]int, len(b.trans))
	for i, m := range b.trans {
		cp := make(map[S]int, len(m))
		for k, v := range m {
			cp[k] = v
		}
		states[i] = cp
	}
	return DFA[S]{states: states, initial: b.initial, finals: b.finals.Copy()}
}

// Empty returns the DFA recognizing the empty language ∅: one non-final
// state with no transitions.
func Empty[S cmp.Ordered]() DFA[S] {
	b := NewBuilder[S]()
	s := b.AddState(false)
	b.SetInitial(s)
	return b.Build()
}

// Epsilon returns the DFA recognizing {ε}: one state that is both initial
// and final.
func Epsilon[S cmp.Ordered]() DFA[S] {
	b := NewBuilder[S]()
	s := b.AddState(true)
	b.SetInitial(s)
	return b.Build()
}

// Single returns the DFA recognizing the one-symbol language {sym}.
func Single[S cmp.Ordered](sym S) DFA[S] {
	b := NewBuilder[S]()
	s0 := b.AddState(false)
	s1 := b.AddState(true)
	b.AddTransition(s0, sym, s1)
	b.SetInitial(s0)
	return b.Build()
}

// Verbatim returns the DFA recognizing exactly the given sequence: a
// linear chain of states, one transition per symbol.
func Verbatim[S cmp.Ordered](symbols []S) DFA[S] {
	b := NewBuilder[S]()
	cur := b.AddState(len(symbols) == 0)
	b.SetInitial(cur)
	for _, sym := range symbols {
		next := b.AddState(false)
		b.AddTransition(cur, sym, next)
		cur = next
	}
	b.MarkFinal(cur)
	return b.Build()
}

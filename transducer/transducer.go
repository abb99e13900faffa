// Package transducer implements the deterministic finite transducer
// (DFT) named in spec.md §4.3: a DFA extended with a per-transition
// output sequence and a per-accepting-state final output, appended on
// acceptance.
//
// Grounded on automaton.DFA/Builder for the underlying state machine
// machinery, generalized the same way automaton itself generalizes the
// teacher's NFA/DFA worklist constructions: same shape, int state ids,
// arbitrary symbol type.
package transducer

import (
	"cmp"
	"slices"

	"github.com/dekarrin/finlang/automaton"
	"github.com/dekarrin/finlang/internal/util"
)

// DFT is a deterministic finite transducer over symbol type S.
type DFT[S cmp.Ordered] struct {
	d           automaton.DFA[S]
	output      []map[S][]S
	finalOutput map[int][]S
}

// Builder incrementally constructs a DFT, pairing automaton.Builder's
// state/transition bookkeeping with per-transition and per-final output
// sequences.
type Builder[S cmp.Ordered] struct {
	ab          *automaton.Builder[S]
	output      []map[S][]S
	finalOutput map[int][]S
}

// NewBuilder returns an empty Builder.
func NewBuilder[S cmp.Ordered]() *Builder[S] {
	return &Builder[S]{ab: automaton.NewBuilder[S](), finalOutput: map[int][]S{}}
}

// AddState adds a new state and returns its id.
func (b *Builder[S]) AddState(final bool) int {
	id := b.ab.AddState(final)
	b.output = append(b.output, map[S][]S{})
	return id
}

// SetInitial sets the builder's initial state.
func (b *Builder[S]) SetInitial(state int) { b.ab.SetInitial(state) }

// AddTransition adds a transition from state on sym to state to, emitting
// out as that transition's output sequence.
func (b *Builder[S]) AddTransition(from int, sym S, to int, out []S) {
	b.ab.AddTransition(from, sym, to)
	b.output[from][sym] = append([]S{}, out...)
}

// SetFinalOutput sets the output sequence appended when a run ends at
// state (only meaningful if state is final).
func (b *Builder[S]) SetFinalOutput(state int, out []S) {
	b.finalOutput[state] = append([]S{}, out...)
}

// Build freezes the builder into an immutable DFT.
func (b *Builder[S]) Build() DFT[S] {
	d := b.ab.Build()

	output := make([]map[S][]S, len(b.output))
	for i, m := range b.output {
		cp := make(map[S][]S, len(m))
		for k, v := range m {
			cp[k] = append([]S{}, v...)
		}
		output[i] = cp
	}

	finalOutput := make(map[int][]S, len(b.finalOutput))
	for k, v := range b.finalOutput {
		finalOutput[k] = append([]S{}, v...)
	}

	return DFT[S]{d: d, output: output, finalOutput: finalOutput}
}

// Translate runs symbols from the initial state, concatenating each
// transition's output, and returns the full output sequence plus true if
// the run ends in a final state (with the final state's own output
// appended); otherwise returns nil, false.
func (t DFT[S]) Translate(symbols []S) ([]S, bool) {
	cur := t.d.Initial()
	var out []S
	for _, sym := range symbols {
		next, ok := t.d.Step(cur, sym)
		if !ok {
			return nil, false
		}
		out = append(out, t.output[cur][sym]...)
		cur = next
	}
	if !t.d.IsFinal(cur) {
		return nil, false
	}
	out = append(out, t.finalOutput[cur]...)
	return out, true
}

// IsEquivalent reports whether a and b translate to equal output streams,
// streaming both runs in lockstep and short-circuiting as soon as either
// the outputs diverge or one run rejects while the other does not. Two
// inputs that reject at the same point (both runs fail to step at the
// same position) are considered equivalent, per spec.md §4.3's
// "diverge identically before rejection" clause.
func (t DFT[S]) IsEquivalent(a, b []S) bool {
	curA, curB := t.d.Initial(), t.d.Initial()

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	var outA, outB []S
	for i := 0; i < n; i++ {
		if (i < len(a)) != (i < len(b)) {
			return false
		}
		symA, symB := a[i], b[i]

		nextA, okA := t.d.Step(curA, symA)
		nextB, okB := t.d.Step(curB, symB)
		if okA != okB {
			return false
		}
		if !okA {
			return true
		}
		outA = append(outA, t.output[curA][symA]...)
		outB = append(outB, t.output[curB][symB]...)
		m := min(len(outA), len(outB))
		if !slices.Equal(outA[:m], outB[:m]) {
			return false
		}
		curA, curB = nextA, nextB
	}

	finA, finB := t.d.IsFinal(curA), t.d.IsFinal(curB)
	if finA != finB {
		return false
	}
	if !finA {
		return true
	}
	return slices.Equal(append(outA, t.finalOutput[curA]...), append(outB, t.finalOutput[curB]...))
}

// Top returns the coarsest DFT over d: every transition and every final
// state emits an empty output, so every accepted string translates to
// the empty sequence and the induced partition has exactly one class.
func Top[S cmp.Ordered](d automaton.DFA[S]) DFT[S] {
	return DFT[S]{
		d:           d,
		output:      make([]map[S][]S, d.NumStates()),
		finalOutput: map[int][]S{},
	}
}

// Bottom returns the finest DFT over d: every transition emits the
// symbol it consumed, so translate(x) == x for every accepted x and the
// induced partition is the discrete one (every accepted string its own
// class).
func Bottom[S cmp.Ordered](d automaton.DFA[S]) DFT[S] {
	output := make([]map[S][]S, d.NumStates())
	for s := 0; s < d.NumStates(); s++ {
		m := map[S][]S{}
		for _, sym := range util.OrderedOf(d.Alphabet()) {
			if _, ok := d.Step(s, sym); ok {
				m[sym] = []S{sym}
			}
		}
		output[s] = m
	}
	return DFT[S]{d: d, output: output, finalOutput: map[int][]S{}}
}

// Package classdfa implements the symbol-class DFA named in spec.md §4.2:
// a DFA whose transitions are keyed by alphabet partitions rather than
// raw symbols. Per spec.md §4.6, its per-state transition table is
// backed directly by alphabet.Table — a single table entry serves every
// raw symbol in a partition, so there is no separate raw-symbol-to-
// representative reducer alongside it; Table's own Get/Set/CanonicalOf
// machinery does that reduction.
//
// Grounded on automaton.DFA for the underlying machinery and
// alphabet.Alphabet/Table for the partitioning and transition storage;
// the re-encoding step in UnionClass/IntersectClass generalizes the same
// worklist/rebuild shape the teacher uses throughout
// internal/ictiobus/automaton for any operation that must produce a
// fresh automaton from an existing one under a changed state or symbol
// space.
package classdfa

import (
	"cmp"

	"github.com/dekarrin/finlang/alphabet"
	"github.com/dekarrin/finlang/automaton"
	"github.com/dekarrin/finlang/internal/util"
)

// DFA is a symbol-class DFA over raw symbol type S: one alphabet.Table
// per state, each mapping a partition (by its canonical representative)
// to the destination state, plus the alphabet partitioning that backs
// every table.
type DFA[S cmp.Ordered] struct {
	states   []*alphabet.Table[S, int]
	initial  int
	finals   util.KeySet[int]
	alphabet *alphabet.Alphabet[S]
}

// alphabetOf computes the coarsest partitioning of d's alphabet under
// which every symbol within a partition reaches the same destination (or
// none) from every state — the equivalence spec.md §4.2 defines a
// symbol-class DFA's transitions over. It starts from the whole alphabet
// as one partition and refines it, at every state, by the groups
// Targets already reports (symbols sharing a destination at that state),
// via alphabet.PartitionReduce.
func alphabetOf[S cmp.Ordered](d automaton.DFA[S]) *alphabet.Alphabet[S] {
	base := []alphabet.Partition[S]{d.Alphabet()}
	for s := 0; s < d.NumStates(); s++ {
		for _, syms := range d.Targets(s) {
			base = alphabet.PartitionReduce(base, syms)
		}
	}
	part := alphabet.New[S]()
	for _, p := range base {
		part.Insert(p)
	}
	return part
}

// FromDFA builds a symbol-class DFA from a plain DFA: it computes d's
// alphabet partitioning (alphabetOf), then for each state builds an
// alphabet.Table recording, for each partition's canonical
// representative, the destination d.Step reaches on that representative.
// Because the partitioning guarantees every symbol within a partition has
// the same destination at every state, querying the original DFA at the
// representative symbol alone is sufficient to populate every state's
// table.
func FromDFA[S cmp.Ordered](d automaton.DFA[S]) DFA[S] {
	return populate(d, alphabetOf(d))
}

// populate builds the per-state Tables of a symbol-class DFA from d,
// against an already-computed partitioning part. Factored out of FromDFA
// so Minimize can supply the pre-merge alphabet directly instead of
// re-deriving it from a minimized automaton whose transitions are only
// keyed on representatives (and so would otherwise look, to alphabetOf,
// like an alphabet of representatives alone).
func populate[S cmp.Ordered](d automaton.DFA[S], part *alphabet.Alphabet[S]) DFA[S] {
	reps := part.Representatives()

	states := make([]*alphabet.Table[S, int], d.NumStates())
	for s := 0; s < d.NumStates(); s++ {
		t := alphabet.NewTable[S, int](part)
		for _, rep := range reps {
			if to, ok := d.Step(s, rep); ok {
				t.Set(rep, to)
			}
		}
		states[s] = t
	}

	return DFA[S]{states: states, initial: d.Initial(), finals: d.Finals(), alphabet: part}
}

// Step reduces sym to its partition and looks up the destination in
// state's table. Absence of a value (sym outside the alphabet, or its
// partition simply has no transition at state) is oblivion, exactly
// like an absent transition on a plain DFA.
func (d DFA[S]) Step(state int, sym S) (int, bool) {
	if state < 0 || state >= len(d.states) {
		return 0, false
	}
	return d.states[state].Get(sym)
}

// Run steps through every symbol of symbols from state.
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

// Accepts reports whether symbols, read from the initial state, ends in
// an accepting state.
func (d DFA[S]) Accepts(symbols []S) bool {
	end, ok := d.Run(d.initial, symbols)
	return ok && d.IsFinal(end)
}

// IsFinal reports whether state is an accepting state.
func (d DFA[S]) IsFinal(state int) bool {
	return d.finals.Has(state)
}

// Initial returns the initial state id.
func (d DFA[S]) Initial() int { return d.initial }

// NumStates returns the number of states.
func (d DFA[S]) NumStates() int { return len(d.states) }

// Alphabet returns every raw symbol known to this DFA's partitioning.
func (d DFA[S]) Alphabet() []S {
	var out []S
	for _, p := range d.alphabet.Partitions() {
		out = append(out, p.Elements()...)
	}
	return out
}

// Partitions returns the alphabet partitioning backing this symbol-class
// DFA.
func (d DFA[S]) Partitions() *alphabet.Alphabet[S] { return d.alphabet }

// toAutomaton rebuilds a plain automaton.DFA[S] keyed on d's own
// partition representatives — the inverse of FromDFA's reduction step,
// used wherever an operation (Minimize, reencode) needs to hand d to the
// automaton package's own machinery.
func (d DFA[S]) toAutomaton() automaton.DFA[S] {
	b := automaton.NewBuilder[S]()
	for s := 0; s < len(d.states); s++ {
		b.AddState(d.IsFinal(s))
	}
	b.SetInitial(d.initial)
	for s, t := range d.states {
		for _, e := range t.Entries() {
			b.AddTransition(s, e.Rep, e.Val)
		}
	}
	return b.Build()
}

// Minimize returns the symbol-class DFA obtained by minimizing d's
// underlying automaton and rebuilding its table against d's own
// partitioning. Minimization only merges states; it never changes which
// symbols are equivalent, so reusing d.alphabet (rather than re-deriving
// one from the minimized automaton, whose transitions are only keyed on
// representatives) is what keeps every original partition's breadth
// intact after merging.
func Minimize[S cmp.Ordered](d DFA[S]) DFA[S] {
	return populate(automaton.Minimize(d.toAutomaton()), d.alphabet)
}

// reencode rebuilds d's transitions onto combined's representatives: for
// each state and each representative of combined, it finds a raw symbol
// in that class that d's own alphabet recognizes (if any) and uses d's
// behavior on that symbol to populate the transition. A representative
// with no member in d's original alphabet leaves that state's transition
// on that class undefined (oblivion), which is correct: d never had an
// opinion about that symbol.
func reencode[S cmp.Ordered](d DFA[S], combined *alphabet.Alphabet[S]) automaton.DFA[S] {
	reps := combined.Representatives()

	b := automaton.NewBuilder[S]()
	for s := 0; s < d.NumStates(); s++ {
		b.AddState(d.IsFinal(s))
	}
	b.SetInitial(d.Initial())

	for s := 0; s < d.NumStates(); s++ {
		for _, rep := range reps {
			chosen, found := representativeKnownTo(d, combined, rep)
			if !found {
				continue
			}
			if to, ok := d.Step(s, chosen); ok {
				b.AddTransition(s, rep, to)
			}
		}
	}

	return b.Build()
}

func representativeKnownTo[S cmp.Ordered](d DFA[S], combined *alphabet.Alphabet[S], rep S) (S, bool) {
	for _, m := range combined.Siblings(rep).Elements() {
		if d.alphabet.Contains(m) {
			return m, true
		}
	}
	var zero S
	return zero, false
}

// UnionClass returns the symbol-class DFA recognizing L(a) ∪ L(b). Per
// spec.md §4.2, combining two symbol-class DFAs first re-partitions the
// union of their alphabets (alphabet.Conjunction) and re-encodes both
// machines onto the combined partitioning before the underlying product
// construction runs — this API has no "raw combine" escape hatch that
// would let a caller skip that step, so the programmer error named in
// spec.md §7 ("combining symbol-class DFAs without reconciling their
// alphabets") cannot arise through this package.
func UnionClass[S cmp.Ordered](a, b DFA[S]) DFA[S] {
	combined := a.alphabet.Conjunction(b.alphabet)
	ra := reencode(a, combined)
	rb := reencode(b, combined)
	return populate(automaton.Union(ra, rb), combined)
}

// IntersectClass returns the symbol-class DFA recognizing L(a) ∩ L(b),
// via the same re-partition-then-reencode procedure as UnionClass.
func IntersectClass[S cmp.Ordered](a, b DFA[S]) DFA[S] {
	combined := a.alphabet.Conjunction(b.alphabet)
	ra := reencode(a, combined)
	rb := reencode(b, combined)
	return populate(automaton.Intersect(ra, rb), combined)
}

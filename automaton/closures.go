package automaton

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/dekarrin/finlang/internal/util"
)

// Union returns the DFA recognizing the union of the given DFAs' languages,
// via an n-ary product construction that enumerates only reachable tuples
// of component states from a worklist seeded at the tuple of initial
// states. A tuple is accepting if any component is in one of its final
// states. Union() with no arguments returns Empty (the identity for
// union). Union of DFAs with disjoint alphabets falls naturally out of the
// same construction: a symbol unknown to a component simply leaves that
// component in oblivion for the rest of the run.
func Union[S cmp.Ordered](dfas ...DFA[S]) DFA[S] {
	if len(dfas) == 0 {
		return Empty[S]()
	}
	if len(dfas) == 1 {
		return dfas[0]
	}
	return product(dfas, func(flags []bool) bool {
		for _, f := range flags {
			if f {
				return true
			}
		}
		return false
	})
}

// Intersect returns the DFA recognizing the intersection of the given
// DFAs' languages, via the same product construction as Union with a
// final test of "every component final". Intersect() with no arguments
// returns Epsilon by convention; the true identity for intersection, Σ*,
// has no constructor here.
func Intersect[S cmp.Ordered](dfas ...DFA[S]) DFA[S] {
	if len(dfas) == 0 {
		return Epsilon[S]()
	}
	if len(dfas) == 1 {
		return dfas[0]
	}
	return product(dfas, func(flags []bool) bool {
		for _, f := range flags {
			if !f {
				return false
			}
		}
		return true
	})
}

// product performs the shared n-ary product construction behind Union and
// Intersect. A component whose transition is undefined on a given symbol
// contributes -1 to the tuple (oblivion) and counts as non-final from then
// on; if every component is in oblivion on a symbol, no product
// transition is created for it at all, so that branch of the product also
// rejects by omission rather than by an explicit oblivion state.
func product[S cmp.Ordered](dfas []DFA[S], isFinal func([]bool) bool) DFA[S] {
	b := NewBuilder[S]()

	alphabet := util.NewKeySet[S]()
	for _, d := range dfas {
		alphabet.AddAll(d.Alphabet())
	}
	syms := util.OrderedOf(alphabet)

	start := make([]int, len(dfas))
	for i, d := range dfas {
		start[i] = d.initial
	}

	idOf := map[string]int{}
	startID := b.AddState(isFinal(tupleFinals(dfas, start)))
	b.SetInitial(startID)
	idOf[tupleKey(start)] = startID

	type queued struct {
		tuple []int
		id    int
	}
	queue := []queued{{start, startID}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, sym := range syms {
			next := make([]int, len(dfas))
			any := false
			for i, d := range dfas {
				if cur.tuple[i] < 0 {
					next[i] = -1
					continue
				}
				to, ok := d.Step(cur.tuple[i], sym)
				if ok {
					next[i] = to
					any = true
				} else {
					next[i] = -1
				}
			}
			if !any {
				continue
			}
			key := tupleKey(next)
			id, ok := idOf[key]
			if !ok {
				id = b.AddState(isFinal(tupleFinals(dfas, next)))
				idOf[key] = id
				queue = append(queue, queued{next, id})
			}
			b.AddTransition(cur.id, sym, id)
		}
	}

	return b.Build()
}

func tupleFinals[S cmp.Ordered](dfas []DFA[S], tuple []int) []bool {
	flags := make([]bool, len(dfas))
	for i, d := range dfas {
		flags[i] = tuple[i] >= 0 && d.IsFinal(tuple[i])
	}
	return flags
}

func tupleKey(tuple []int) string {
	var sb strings.Builder
	for i, v := range tuple {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}

// Concat returns the DFA recognizing the concatenation of the given DFAs'
// languages in order, built by chaining Thompson-style epsilon bridges
// from each component's finals to the next component's start and
// determinizing the result. Concat() with no arguments returns Epsilon
// (the identity element, L(ε)={ε}); Concat(d) returns d unchanged.
func Concat[S cmp.Ordered](dfas ...DFA[S]) DFA[S] {
	if len(dfas) == 0 {
		return Epsilon[S]()
	}
	if len(dfas) == 1 {
		return dfas[0]
	}
	acc := dfaToNFA(dfas[0])
	for i := 1; i < len(dfas); i++ {
		acc = concatTwo(acc, dfaToNFA(dfas[i]))
	}
	return determinize(acc)
}

// Star returns the DFA recognizing the Kleene star of d's language: a new
// final initial state with an epsilon transition into d's old start, and
// an epsilon transition from each of d's old finals back to the new
// state, determinized. Grounded directly on the teacher's
// createKleeneStarFA in lex/regex.go.
func Star[S cmp.Ordered](d DFA[S]) DFA[S] {
	n := dfaToNFA(d)

	newStart := len(n.trans)
	n.trans = append(n.trans, map[S][]int{})
	n.eps = append(n.eps, []int{n.start})

	for _, f := range n.finals.Elements() {
		n.eps[f] = append(n.eps[f], newStart)
	}

	n.start = newStart
	n.finals.Add(newStart)

	return determinize(n)
}

// Reverse returns the DFA recognizing the reversal of d's language: every
// edge of d flipped, with a new initial state bridged by epsilon to each
// of d's old finals, determinized.
func Reverse[S cmp.Ordered](d DFA[S]) DFA[S] {
	n := dfaToNFA(d)

	revTrans := make([]map[S][]int, len(n.trans)+1)
	revEps := make([][]int, len(n.trans)+1)
	for i := range revTrans {
		revTrans[i] = map[S][]int{}
	}

	for from, m := range n.trans {
		for sym, tos := range m {
			for _, to := range tos {
				revTrans[to][sym] = append(revTrans[to][sym], from)
			}
		}
	}
	for from, es := range n.eps {
		for _, to := range es {
			revEps[to] = append(revEps[to], from)
		}
	}

	newStart := len(n.trans)
	for _, f := range d.finals.Elements() {
		revEps[newStart] = append(revEps[newStart], f)
	}

	rn := nfa[S]{
		trans:  revTrans,
		eps:    revEps,
		finals: util.NewKeySet(d.initial),
		start:  newStart,
	}
	return determinize(rn)
}

// Complement returns the DFA recognizing Σ*\L(d), where Σ is d's own
// alphabet: d's transition function is totaled by adding an explicit sink
// state for every missing transition, then every state's finality is
// flipped (the sink, having been implicit oblivion — never final — in d,
// becomes final in the complement).
func Complement[S cmp.Ordered](d DFA[S]) DFA[S] {
	return complementOverAlphabet(d, d.Alphabet())
}

func complementOverAlphabet[S cmp.Ordered](d DFA[S], alphabet util.KeySet[S]) DFA[S] {
	syms := util.OrderedOf(alphabet)

	b := NewBuilder[S]()
	ids := make([]int, d.NumStates())
	for i := 0; i < d.NumStates(); i++ {
		ids[i] = b.AddState(!d.IsFinal(i))
	}
	sink := b.AddState(true)

	for i := 0; i < d.NumStates(); i++ {
		for _, sym := range syms {
			if to, ok := d.Step(i, sym); ok {
				b.AddTransition(ids[i], sym, ids[to])
			} else {
				b.AddTransition(ids[i], sym, sink)
			}
		}
	}
	for _, sym := range syms {
		b.AddTransition(sink, sym, sink)
	}

	b.SetInitial(ids[d.initial])
	return b.Build()
}

// Difference returns the DFA recognizing L(a)\L(b). b is complemented over
// the union of a's and b's alphabets (not just b's own alphabet), so that
// a symbol a.Alphabet() has but b.Alphabet() lacks is correctly treated as
// "always accepted by the complement" rather than silently falling into
// oblivion during the subsequent intersection.
func Difference[S cmp.Ordered](a, b DFA[S]) DFA[S] {
	combined := a.Alphabet()
	combined.AddAll(b.Alphabet())
	bComplement := complementOverAlphabet(b, combined)
	return Intersect(a, bComplement)
}

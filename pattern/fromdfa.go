package pattern

import (
	"cmp"

	"github.com/dekarrin/finlang/automaton"
	"github.com/dekarrin/finlang/internal/util"
)

// edgeKey names a directed edge in the generalized transition graph state
// elimination works over. newStart and newAccept are two fresh nodes
// outside d's own state-id range (d's ids are always >= 0), giving every
// DFA exactly one source and one sink regardless of how many final
// states it has.
type edgeKey struct{ from, to int }

const (
	newStart  = -1
	newAccept = -2
)

// FromDFA turns d back into pattern-tree form via state elimination (the
// GNFA-reduction algorithm): build a generalized graph whose edges carry
// whole sub-patterns instead of single symbols, bridge d's initial state
// and every final state to a dedicated start/accept node with ε edges,
// then repeatedly eliminate one of d's own states at a time — folding its
// self-loop and every incoming/outgoing pair of edges into a single
// direct edge between its neighbors — until only start and accept remain.
// The label left on the one possible start->accept edge (or Empty if none
// survives) is the answer.
func FromDFA[S cmp.Ordered](d automaton.DFA[S]) Tree[S] {
	edges := map[edgeKey]Tree[S]{}

	addEdge := func(from, to int, label Tree[S]) {
		key := edgeKey{from, to}
		if existing, ok := edges[key]; ok {
			edges[key] = Union(existing, label)
		} else {
			edges[key] = label
		}
	}

	addEdge(newStart, d.Initial(), Epsilon[S]())
	for _, f := range util.OrderedOf(d.Finals()) {
		addEdge(f, newAccept, Epsilon[S]())
	}
	for s := 0; s < d.NumStates(); s++ {
		for to, syms := range d.Targets(s) {
			addEdge(s, to, Symbol(syms))
		}
	}

	for q := 0; q < d.NumStates(); q++ {
		selfLabel := Empty[S]()
		if l, ok := edges[edgeKey{q, q}]; ok {
			selfLabel = l
		}
		star := Star(selfLabel)

		incoming := map[int]Tree[S]{}
		outgoing := map[int]Tree[S]{}
		for key, label := range edges {
			if key.to == q && key.from != q {
				incoming[key.from] = label
			}
			if key.from == q && key.to != q {
				outgoing[key.to] = label
			}
		}

		for p, lpq := range incoming {
			for r, lqr := range outgoing {
				addEdge(p, r, Concat(lpq, star, lqr))
			}
		}

		for key := range edges {
			if key.from == q || key.to == q {
				delete(edges, key)
			}
		}
	}

	if label, ok := edges[edgeKey{newStart, newAccept}]; ok {
		return label
	}
	return Empty[S]()
}

// ToDFA lowers tree directly to a DFA via Fold with AutomatonTarget.
func ToDFA[S cmp.Ordered](tree Tree[S]) automaton.DFA[S] {
	return Fold[S, automaton.DFA[S]](tree, AutomatonTarget[S]{})
}

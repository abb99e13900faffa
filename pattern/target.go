package pattern

import (
	"cmp"

	"github.com/dekarrin/finlang/automaton"
	"github.com/dekarrin/finlang/internal/util"
)

// Target is the abstract contract spec.md §4.5 calls "any conforming
// target": a set of combinator operations any representation of a
// regular language can implement. Tree[S] implements it (see
// TreeTarget), and so does automaton.DFA[S] (see AutomatonTarget) — Fold
// lowers a Tree into whichever Target an caller supplies, homomorphically:
// each Tree constructor maps to the Target's corresponding method.
type Target[S cmp.Ordered, T any] interface {
	Empty() T
	Epsilon() T
	Symbol(class util.KeySet[S]) T
	Union(items []T) T
	Concatenate(items []T) T
	Star(item T) T
}

// TreeTarget implements Target[S, Tree[S]], making Tree a target of
// itself — folding a tree through TreeTarget re-normalizes it.
type TreeTarget[S cmp.Ordered] struct{}

func (TreeTarget[S]) Empty() Tree[S]                    { return Empty[S]() }
func (TreeTarget[S]) Epsilon() Tree[S]                  { return Epsilon[S]() }
func (TreeTarget[S]) Symbol(class util.KeySet[S]) Tree[S] { return Symbol(class) }
func (TreeTarget[S]) Union(items []Tree[S]) Tree[S]     { return Union(items...) }
func (TreeTarget[S]) Concatenate(items []Tree[S]) Tree[S] { return Concat(items...) }
func (TreeTarget[S]) Star(item Tree[S]) Tree[S]         { return Star(item) }

// AutomatonTarget implements Target[S, automaton.DFA[S]], lowering a
// pattern straight to a DFA via the automaton package's own algebra
// (Union, Concat, Star already implement subset construction and
// determinization; Symbol builds the two-state DFA accepting exactly one
// member of class).
type AutomatonTarget[S cmp.Ordered] struct{}

func (AutomatonTarget[S]) Empty() automaton.DFA[S]   { return automaton.Empty[S]() }
func (AutomatonTarget[S]) Epsilon() automaton.DFA[S] { return automaton.Epsilon[S]() }

func (AutomatonTarget[S]) Symbol(class util.KeySet[S]) automaton.DFA[S] {
	b := automaton.NewBuilder[S]()
	s0 := b.AddState(false)
	s1 := b.AddState(true)
	b.SetInitial(s0)
	for _, sym := range util.OrderedOf(class) {
		b.AddTransition(s0, sym, s1)
	}
	return b.Build()
}

func (AutomatonTarget[S]) Union(items []automaton.DFA[S]) automaton.DFA[S] {
	return automaton.Union(items...)
}

func (AutomatonTarget[S]) Concatenate(items []automaton.DFA[S]) automaton.DFA[S] {
	return automaton.Concat(items...)
}

func (AutomatonTarget[S]) Star(item automaton.DFA[S]) automaton.DFA[S] {
	return automaton.Star(item)
}

// Optional returns target's union of epsilon and item — "zero or one".
func Optional[S cmp.Ordered, T any](target Target[S, T], item T) T {
	return target.Union([]T{target.Epsilon(), item})
}

// Plus returns target's concatenation of item and star(item) — "one or
// more", spec.md's repeating(from 1).
func Plus[S cmp.Ordered, T any](target Target[S, T], item T) T {
	return target.Concatenate([]T{item, target.Star(item)})
}

// Repeating returns item concatenated with itself n times exactly.
// Repeating(target, item, 0) is epsilon (the empty concatenation).
func Repeating[S cmp.Ordered, T any](target Target[S, T], item T, n int) T {
	items := make([]T, n)
	for i := range items {
		items[i] = item
	}
	return target.Concatenate(items)
}

// RepeatingRange returns item repeated between min and max times
// inclusive (min <= max). It is built as Repeating(min) followed by
// (max-min) nested optional extra copies, so e.g. range [2,4] lowers to
// item·item·(item·(item)?)?.
func RepeatingRange[S cmp.Ordered, T any](target Target[S, T], item T, min, max int) T {
	base := Repeating(target, item, min)
	if max == min {
		return base
	}
	extra := target.Epsilon()
	for i := 0; i < max-min; i++ {
		extra = Optional(target, target.Concatenate([]T{item, extra}))
	}
	return target.Concatenate([]T{base, extra})
}

// RepeatingFrom returns item repeated min or more times: Repeating(min)
// followed by star(item). Spec.md's repeating(from n).
func RepeatingFrom[S cmp.Ordered, T any](target Target[S, T], item T, min int) T {
	return target.Concatenate([]T{Repeating(target, item, min), target.Star(item)})
}

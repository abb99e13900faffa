// Package fpl implements the finite partitioned language named in
// spec.md §4.7: an explicit finite set of sequences, each assigned to a
// partition, with its own small algebra (union, concatenate, reverse,
// derive) independent of the automaton/pattern machinery — plus the
// ability to degrade to a automaton.DFA on demand for membership queries
// phrased in automaton terms.
//
// Grounded on the teacher's map-backed set idiom (internal/util's
// StringSet/SVSet: a Go map is the concrete container, with set-algebra
// methods layered directly over it) generalized from string keys to an
// arbitrary sequence type via a canonical string encoding of each
// sequence (keyOf), the same role automaton.Fingerprint plays for DFA
// equality.
package fpl

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/dekarrin/finlang/automaton"
	"github.com/dekarrin/finlang/seq"
)

// FPL is a finite partitioned language: a finite set of sequences of
// symbol type S, each assigned to a partition labeled with type P. The
// invariant named in spec.md §3 — the union of partitions equals the
// element set, and partitions are pairwise disjoint — holds by
// construction: every element key maps to exactly one partition label.
type FPL[S cmp.Ordered, P cmp.Ordered] struct {
	elements    map[string]seq.Seq[S]
	partitionOf map[string]P
}

// keyOf encodes s as a canonical string: a netstring-style length-
// prefixed join of each element's %v form, so no separator character
// appearing inside an element's own formatting can cause two distinct
// sequences to collide on the same key.
func keyOf[S any](s seq.Seq[S]) string {
	var sb strings.Builder
	for _, e := range s.Elements() {
		str := fmt.Sprintf("%v", e)
		fmt.Fprintf(&sb, "%d:%s", len(str), str)
	}
	return sb.String()
}

// Empty returns the language recognizing no sequences at all, ∅.
func Empty[S cmp.Ordered, P cmp.Ordered]() FPL[S, P] {
	return FPL[S, P]{elements: map[string]seq.Seq[S]{}, partitionOf: map[string]P{}}
}

// Epsilon returns the language {ε}, with its one element assigned to
// label.
func Epsilon[S cmp.Ordered, P cmp.Ordered](label P) FPL[S, P] {
	e := seq.Empty[S]()
	k := keyOf(e)
	return FPL[S, P]{
		elements:    map[string]seq.Seq[S]{k: e},
		partitionOf: map[string]P{k: label},
	}
}

// New builds a FPL from partitions, a mapping from partition label to the
// sequences belonging to it. Panics if the same sequence appears under
// two different labels, per spec.md §3's pairwise-disjoint invariant —
// this is the category-1 programmer error named there, assignment of one
// element to two partitions.
func New[S cmp.Ordered, P cmp.Ordered](partitions map[P][]seq.Seq[S]) FPL[S, P] {
	elements := map[string]seq.Seq[S]{}
	partitionOf := map[string]P{}

	for label, members := range partitions {
		for _, m := range members {
			k := keyOf(m)
			if existing, ok := partitionOf[k]; ok && existing != label {
				panic(fmt.Sprintf("fpl: sequence assigned to both partition %v and %v", existing, label))
			}
			elements[k] = m
			partitionOf[k] = label
		}
	}

	return FPL[S, P]{elements: elements, partitionOf: partitionOf}
}

// Len returns the number of distinct sequences in the language.
func (f FPL[S, P]) Len() int {
	return len(f.elements)
}

// IsEmpty reports whether f recognizes no sequences.
func (f FPL[S, P]) IsEmpty() bool {
	return len(f.elements) == 0
}

// IsEpsilonOnly reports whether f recognizes exactly the one-element
// language {ε}, the other receiver Star and Plus accept besides Empty.
func (f FPL[S, P]) IsEpsilonOnly() bool {
	if len(f.elements) != 1 {
		return false
	}
	for _, e := range f.elements {
		return e.Len() == 0
	}
	return false
}

// Contains reports whether s is one of f's explicit elements.
func (f FPL[S, P]) Contains(s seq.Seq[S]) bool {
	_, ok := f.elements[keyOf(s)]
	return ok
}

// PartitionOf returns the partition label s was assigned, and whether s
// is actually an element of f.
func (f FPL[S, P]) PartitionOf(s seq.Seq[S]) (P, bool) {
	label, ok := f.partitionOf[keyOf(s)]
	return label, ok
}

// Elements returns every sequence in the language, in no particular
// order.
func (f FPL[S, P]) Elements() []seq.Seq[S] {
	out := make([]seq.Seq[S], 0, len(f.elements))
	for _, e := range f.elements {
		out = append(out, e)
	}
	return out
}

// ToDFA degrades f to an automaton.DFA[S] on demand: the union of a
// Verbatim machine per element, or Empty if f has none. Membership
// against the resulting DFA agrees with Contains for every element of f,
// and rejects everything else (a finite language's DFA form has no
// infinite tail to account for).
func (f FPL[S, P]) ToDFA() automaton.DFA[S] {
	if len(f.elements) == 0 {
		return automaton.Empty[S]()
	}
	machines := make([]automaton.DFA[S], 0, len(f.elements))
	for _, e := range f.elements {
		machines = append(machines, automaton.Verbatim(e.Elements()))
	}
	return automaton.Union(machines...)
}

// Union returns the set union of a and b. If a sequence appears in both
// under different partition labels, that is the same category-1
// partitioning-conflict error New panics on.
func Union[S cmp.Ordered, P cmp.Ordered](a, b FPL[S, P]) FPL[S, P] {
	elements := make(map[string]seq.Seq[S], len(a.elements)+len(b.elements))
	partitionOf := make(map[string]P, len(a.partitionOf)+len(b.partitionOf))

	for k, e := range a.elements {
		elements[k] = e
		partitionOf[k] = a.partitionOf[k]
	}
	for k, e := range b.elements {
		if existing, ok := partitionOf[k]; ok {
			if existing != b.partitionOf[k] {
				panic(fmt.Sprintf("fpl: sequence assigned to both partition %v and %v", existing, b.partitionOf[k]))
			}
			continue
		}
		elements[k] = e
		partitionOf[k] = b.partitionOf[k]
	}

	return FPL[S, P]{elements: elements, partitionOf: partitionOf}
}

// Concatenate returns the pairwise concatenation a_i++b_j for every
// element a_i of a and b_j of b, deduplicated by value (the same result
// sequence reachable via two different pairs is one element). Each
// result sequence is assigned the partition label of its left-hand
// (a_i) contributor — concatenation threads partition identity through
// the left operand, an explicit choice recorded in DESIGN.md since
// spec.md leaves how partitioning composes under concatenation open.
// When two pairs with different left-hand labels produce the same
// sequence, which of those labels the result keeps is not defined.
func Concatenate[S cmp.Ordered, P cmp.Ordered](a, b FPL[S, P]) FPL[S, P] {
	elements := map[string]seq.Seq[S]{}
	partitionOf := map[string]P{}

	for ak, ae := range a.elements {
		for _, be := range b.elements {
			result := ae.Concat(be)
			k := keyOf(result)
			elements[k] = result
			partitionOf[k] = a.partitionOf[ak]
		}
	}

	return FPL[S, P]{elements: elements, partitionOf: partitionOf}
}

// Reverse returns the language of every element of f reversed, each
// keeping its original partition label.
func Reverse[S cmp.Ordered, P cmp.Ordered](f FPL[S, P]) FPL[S, P] {
	elements := make(map[string]seq.Seq[S], len(f.elements))
	partitionOf := make(map[string]P, len(f.elements))

	for k, e := range f.elements {
		r := e.Reverse()
		rk := keyOf(r)
		elements[rk] = r
		partitionOf[rk] = f.partitionOf[k]
	}

	return FPL[S, P]{elements: elements, partitionOf: partitionOf}
}

// Derive returns L/prefix = { x : prefix++x is in f }: every element of
// f with prefix as a literal prefix, with prefix dropped and the
// remainder's key reassigned; elements lacking the prefix are absent
// from the result. Each surviving remainder keeps its original
// element's partition label.
func Derive[S cmp.Ordered, P cmp.Ordered](f FPL[S, P], prefix seq.Seq[S]) FPL[S, P] {
	elements := map[string]seq.Seq[S]{}
	partitionOf := map[string]P{}

	prefixElems := prefix.Elements()
	for k, e := range f.elements {
		full := e.Elements()
		if len(full) < len(prefixElems) {
			continue
		}
		if !seq.Equal(seq.Of(full[:len(prefixElems)]...), prefix) {
			continue
		}
		remainder := seq.Of(full[len(prefixElems):]...)
		rk := keyOf(remainder)
		elements[rk] = remainder
		partitionOf[rk] = f.partitionOf[k]
	}

	return FPL[S, P]{elements: elements, partitionOf: partitionOf}
}

// Star returns f repeated zero or more times. Defined only when f is
// Empty (Star(∅) = {ε}, assigned to epsilonLabel since ∅ has no element
// to inherit a label from) or f is already {ε} (Star({ε}) = {ε},
// unchanged) — starring any other finite language is the programmer
// error spec.md §4.7 names explicitly, since the result would generally
// be infinite and this package only ever holds an explicit finite set.
func Star[S cmp.Ordered, P cmp.Ordered](f FPL[S, P], epsilonLabel P) FPL[S, P] {
	switch {
	case f.IsEmpty():
		return Epsilon[S, P](epsilonLabel)
	case f.IsEpsilonOnly():
		return f
	default:
		panic("fpl: Star of a non-trivial finite language is undefined (the result is generally infinite)")
	}
}

// Plus returns f repeated one or more times. Defined only under the same
// restriction as Star: Plus(∅) = ∅, Plus({ε}) = {ε}; any other finite
// language panics.
func Plus[S cmp.Ordered, P cmp.Ordered](f FPL[S, P]) FPL[S, P] {
	switch {
	case f.IsEmpty():
		return f
	case f.IsEpsilonOnly():
		return f
	default:
		panic("fpl: Plus of a non-trivial finite language is undefined (the result is generally infinite)")
	}
}

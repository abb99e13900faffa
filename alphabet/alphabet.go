// Package alphabet implements the refinable set-of-sets abstraction used to
// let an automaton treat a range or class of symbols as a single transition
// atom while preserving the ability to refine the partitioning whenever
// machines with different alphabets are combined.
//
// The partition-refinement shape here is grounded on the teacher's own
// fixed-point set-merging loops (internal/ictiobus/automaton's
// NewLALR1ViablePrefixDFA merges NFA states by repeatedly splitting and
// re-grouping sets until no more merges apply) generalized from "merge
// states with equal cores" to "split partitions by intersection with a new
// set."
package alphabet

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/dekarrin/finlang/internal/util"
)

// Partition is a non-empty subset of a symbol alphabet.
type Partition[S comparable] = util.KeySet[S]

// Alphabet is a set of pairwise-disjoint non-empty partitions of a symbol
// type S. The zero value is the empty alphabet (no partitions).
//
// Partitions are keyed internally by their canonical representative (the
// least element under S's natural order), which both gives Table a natural
// map key and matches the spec's definition of a symbol-class DFA's
// canonical representative directly.
type Alphabet[S cmp.Ordered] struct {
	parts map[S]Partition[S]
}

// New returns an empty alphabet.
func New[S cmp.Ordered]() *Alphabet[S] {
	return &Alphabet[S]{parts: map[S]Partition[S]{}}
}

// canonical returns the least element of part under S's natural order.
// Panics if part is empty; every partition this package ever stores is
// non-empty by construction, so an empty partition reaching here is a
// programmer error (the invariant from spec.md §3 that partitions are
// non-empty has been violated upstream).
func canonical[S cmp.Ordered](part Partition[S]) S {
	first := true
	var least S
	for _, e := range part.Elements() {
		if first || e < least {
			least = e
			first = false
		}
	}
	if first {
		panic("alphabet: empty partition has no canonical representative")
	}
	return least
}

// Contains returns whether sym belongs to some partition of the alphabet.
func (a *Alphabet[S]) Contains(sym S) bool {
	for _, p := range a.parts {
		if p.Has(sym) {
			return true
		}
	}
	return false
}

// Siblings returns the partition containing sym, or an empty set if sym is
// not a member of the alphabet. This is the expected-negative-result case
// named in spec.md §7: absence of membership is signaled by an empty
// return value, not an error.
func (a *Alphabet[S]) Siblings(sym S) Partition[S] {
	for _, p := range a.parts {
		if p.Has(sym) {
			return p.Copy()
		}
	}
	return util.NewKeySet[S]()
}

// IsEquivalent returns whether s and t belong to the same partition.
func (a *Alphabet[S]) IsEquivalent(s, t S) bool {
	return a.Siblings(s).Equal(a.Siblings(t))
}

// Partitions returns the alphabet's partitions in canonical-representative
// order, for deterministic iteration (debug output, table construction).
func (a *Alphabet[S]) Partitions() []Partition[S] {
	keys := util.OrderedKeys(a.parts)
	out := make([]Partition[S], len(keys))
	for i, k := range keys {
		out[i] = a.parts[k]
	}
	return out
}

// Representatives returns the canonical representative of every partition
// in the alphabet, in ascending order. Since partitions are stored keyed
// by their own canonical representative, this is simply the alphabet's
// sorted key list — exposed here because classdfa needs the list of
// canonical symbols to iterate when re-encoding a plain DFA's transition
// table onto partition classes.
func (a *Alphabet[S]) Representatives() []S {
	return util.OrderedKeys(a.parts)
}

// CanonicalOf returns the canonical representative of the partition
// containing sym, and whether sym is in the alphabet at all.
func (a *Alphabet[S]) CanonicalOf(sym S) (S, bool) {
	sibs := a.Siblings(sym)
	if sibs.Empty() {
		var zero S
		return zero, false
	}
	return canonical(sibs), true
}

// refine is the core partition-refinement primitive named in spec.md §4.1
// ("alphabetPartitions") and §4.6 ("insert refines all existing partitions
// that overlap"): given a base set of partitions and a new set w, produce
// {b∩w, b\w : b∈parts} ∪ {w \ ⋃parts}, dropping any empty results.
func refine[S cmp.Ordered](parts map[S]Partition[S], w Partition[S]) map[S]Partition[S] {
	next := map[S]Partition[S]{}
	covered := util.NewKeySet[S]()

	for _, b := range parts {
		inter := b.Intersection(w)
		diff := b.Difference(w)

		if !inter.Empty() {
			next[canonical(inter)] = inter
			covered.AddAll(inter)
		}
		if !diff.Empty() {
			next[canonical(diff)] = diff
		}
	}

	leftover := w.Difference(covered)
	if !leftover.Empty() {
		next[canonical(leftover)] = leftover
	}

	return next
}

// Insert refines the alphabet by the given subset: every existing
// partition whose intersection with subset is non-empty is split into its
// intersection and its difference with subset (both retained if
// non-empty), and whatever part of subset was not covered by any existing
// partition is added as a new partition. Passing an empty subset has no
// effect.
func (a *Alphabet[S]) Insert(subset Partition[S]) {
	if subset.Empty() {
		return
	}
	if a.parts == nil {
		a.parts = map[S]Partition[S]{}
	}
	a.parts = refine(a.parts, subset)
}

// Remove subtracts subset from every overlapping partition, dropping any
// partition that becomes empty as a result.
func (a *Alphabet[S]) Remove(subset Partition[S]) {
	if subset.Empty() || a.parts == nil {
		return
	}
	next := map[S]Partition[S]{}
	for _, b := range a.parts {
		diff := b.Difference(subset)
		if !diff.Empty() {
			next[canonical(diff)] = diff
		}
	}
	a.parts = next
}

// Conjunction inserts every partition of other into a copy of a, returning
// the combined alphabet. This is the "alphabetCombine" operation named in
// spec.md §4.2/§4.6, used to reconcile two symbol-class DFAs' alphabets
// before they are combined.
func (a *Alphabet[S]) Conjunction(other *Alphabet[S]) *Alphabet[S] {
	combined := Copy(a)
	for _, p := range other.Partitions() {
		combined.Insert(p)
	}
	return combined
}

// Combine is the free-function form of Conjunction, convenient for
// reconciling more than two alphabets in a fold.
func Combine[S cmp.Ordered](alphabets ...*Alphabet[S]) *Alphabet[S] {
	result := New[S]()
	for _, a := range alphabets {
		for _, p := range a.Partitions() {
			result.Insert(p)
		}
	}
	return result
}

// Copy returns a deep-enough copy of a (partitions are copied; elements
// within them are not, since S is a value type by constraint).
func Copy[S cmp.Ordered](a *Alphabet[S]) *Alphabet[S] {
	out := New[S]()
	for k, p := range a.parts {
		out.parts[k] = p.Copy()
	}
	return out
}

// PartitionReduce implements the "partitionReduce" fold named in spec.md
// §4.1: given a base list of pairwise-disjoint partitions and a new set w,
// produce {b∩w, b\w : b∈base} ∪ {w \ ⋃base}, dropping empties. It is the
// free-function form of the refine step behind Insert, exposed so callers
// that are folding many local partitions (automaton.AlphabetPartitions)
// can do so without constructing an intermediate Alphabet at each step.
func PartitionReduce[S cmp.Ordered](base []Partition[S], w Partition[S]) []Partition[S] {
	parts := map[S]Partition[S]{}
	for _, b := range base {
		if b.Empty() {
			continue
		}
		parts[canonical(b)] = b
	}
	next := refine(parts, w)
	out := make([]Partition[S], 0, len(next))
	for _, k := range util.OrderedKeys(next) {
		out = append(out, next[k])
	}
	return out
}

func (a *Alphabet[S]) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	parts := a.Partitions()
	for i, p := range parts {
		fmt.Fprintf(&sb, "%s", p.String())
		if i+1 < len(parts) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

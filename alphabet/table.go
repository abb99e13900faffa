package alphabet

import "cmp"

// Table maps each partition of an Alphabet to a value, keyed internally by
// the partition's canonical representative. This backs the transition
// table of a symbol-class DFA (classdfa.DFA), where a single table entry
// serves every raw symbol in a partition.
type Table[S cmp.Ordered, V any] struct {
	alphabet *Alphabet[S]
	values   map[S]V
}

// NewTable returns an empty table over the given alphabet.
func NewTable[S cmp.Ordered, V any](a *Alphabet[S]) *Table[S, V] {
	return &Table[S, V]{alphabet: a, values: map[S]V{}}
}

// Set assigns v to the partition containing sym. Panics if sym is not a
// member of the table's alphabet, since setting a value for a symbol
// outside the known alphabet is a construction-time programmer error
// (spec.md §7 category 1), not an expected negative result.
func (t *Table[S, V]) Set(sym S, v V) {
	rep, ok := t.alphabet.CanonicalOf(sym)
	if !ok {
		panic("alphabet: Table.Set on symbol outside the table's alphabet")
	}
	t.values[rep] = v
}

// Get returns the value associated with sym's partition, and whether one
// has been set. A false result covers both "sym not in the alphabet" and
// "sym's partition has no assigned value" — both are the expected
// negative-result case, not a failure.
func (t *Table[S, V]) Get(sym S) (V, bool) {
	rep, ok := t.alphabet.CanonicalOf(sym)
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := t.values[rep]
	return v, ok
}

// Entries returns the table's (canonical representative, value) pairs in
// canonical order, for deterministic iteration.
func (t *Table[S, V]) Entries() []struct {
	Rep S
	Val V
} {
	out := make([]struct {
		Rep S
		Val V
	}, 0, len(t.values))
	for _, p := range t.alphabet.Partitions() {
		rep := canonical(p)
		if v, ok := t.values[rep]; ok {
			out = append(out, struct {
				Rep S
				Val V
			}{Rep: rep, Val: v})
		}
	}
	return out
}

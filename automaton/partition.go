package automaton

import (
	"cmp"
	"fmt"

	"github.com/dekarrin/finlang/alphabet"
	"github.com/dekarrin/finlang/internal/util"
)

// AlphabetPartitions returns the coarsest refinement of d's alphabet such
// that, for every state of d, every symbol in a given partition has the
// same destination from that state (including "no transition", i.e.
// oblivion, which counts as a destination of its own). It is built by
// folding each state's local partition into a running alphabet via
// alphabet.PartitionReduce, the "partitionReduce" fold named in spec.md
// §4.1.
func (d DFA[S]) AlphabetPartitions() *alphabet.Alphabet[S] {
	full := util.OrderedOf(d.Alphabet())
	var parts []alphabet.Partition[S]

	for s := 0; s < len(d.states); s++ {
		for _, g := range localPartition(d, s, full) {
			parts = alphabet.PartitionReduce(parts, g)
		}
	}

	result := alphabet.New[S]()
	for _, p := range parts {
		result.Insert(p)
	}
	return result
}

// localPartition groups the given symbols by their destination from
// state s, with all symbols lacking a transition from s grouped together
// under the oblivion bucket.
func localPartition[S cmp.Ordered](d DFA[S], s int, syms []S) []alphabet.Partition[S] {
	groups := map[string]alphabet.Partition[S]{}
	for _, sym := range syms {
		var key string
		if to, ok := d.Step(s, sym); ok {
			key = fmt.Sprintf("->%d", to)
		} else {
			key = "oblivion"
		}
		if _, ok := groups[key]; !ok {
			groups[key] = util.NewKeySet[S]()
		}
		groups[key].Add(sym)
	}
	out := make([]alphabet.Partition[S], 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}

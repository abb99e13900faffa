package automaton

import (
	"github.com/dekarrin/finlang/internal/util"
	"github.com/dekarrin/rezi"
)

// snapshot is the binary-encodable shape of a DFA, used only by
// Fingerprint. Field order matches the encoding order exactly, since rezi
// (like the teacher's own use of it for game state) encodes struct fields
// positionally.
type snapshot[S any] struct {
	Initial     int
	Finals      []int
	Transitions [][]transitionEntry[S]
}

type transitionEntry[S any] struct {
	Sym S
	To  int
}

// Fingerprint returns a canonical binary encoding of d, suitable for
// asserting that two DFAs built by different code paths (e.g. before and
// after a BFS renumbering) are identical state-for-state, not just
// language-equivalent. Grounded on the teacher's use of rezi.EncBinary to
// snapshot game state for persistence; here it backs test assertions
// instead, since this package has no persisted state of its own.
func (d DFA[S]) Fingerprint() []byte {
	snap := snapshot[S]{
		Initial: d.initial,
		Finals:  util.OrderedOf(d.finals),
	}
	for _, m := range d.states {
		syms := util.OrderedKeys(m)
		entries := make([]transitionEntry[S], len(syms))
		for i, sym := range syms {
			entries[i] = transitionEntry[S]{Sym: sym, To: m[sym]}
		}
		snap.Transitions = append(snap.Transitions, entries)
	}
	return rezi.EncBinary(snap)
}

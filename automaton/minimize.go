package automaton

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/finlang/internal/util"
)

// Minimize returns the minimal DFA equivalent to d: unreachable states
// dropped, then indistinguishable states merged by partition refinement
// to a fixed point (the same final partition Hopcroft's algorithm
// computes; this implementation favors a straightforward fixed-point loop
// over the O(n log n) refinement-queue bound), and finally the quotient's
// states renumbered 0..n-1 in BFS order from the initial state.
func Minimize[S cmp.Ordered](d DFA[S]) DFA[S] {
	reachable := reachableStates(d)
	alphabet := util.OrderedOf(d.Alphabet())

	blockOf := map[int]int{}
	for _, s := range util.OrderedOf(reachable) {
		if d.IsFinal(s) {
			blockOf[s] = 1
		} else {
			blockOf[s] = 0
		}
	}
	prevCount := countDistinct(blockOf)

	for {
		sigToBlock := map[string]int{}
		newBlockOf := map[int]int{}
		next := 0

		for _, s := range util.OrderedOf(reachable) {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%d|", blockOf[s])
			for _, sym := range alphabet {
				to, ok := d.Step(s, sym)
				if ok && reachable.Has(to) {
					fmt.Fprintf(&sb, "%d,", blockOf[to])
				} else {
					sb.WriteString("-,")
				}
			}
			key := sb.String()
			blk, ok := sigToBlock[key]
			if !ok {
				blk = next
				sigToBlock[key] = blk
				next++
			}
			newBlockOf[s] = blk
		}

		if next == prevCount {
			blockOf = newBlockOf
			break
		}
		blockOf = newBlockOf
		prevCount = next
	}

	blocksToStates := map[int][]int{}
	for s, blk := range blockOf {
		blocksToStates[blk] = append(blocksToStates[blk], s)
	}
	blockRep := map[int]int{}
	for blk, states := range blocksToStates {
		sort.Ints(states)
		blockRep[blk] = states[0]
	}

	initialBlock := blockOf[d.initial]

	order := []int{}
	seen := map[int]bool{initialBlock: true}
	queue := []int{initialBlock}
	blockTrans := map[int]map[S]int{}

	for len(queue) > 0 {
		blk := queue[0]
		queue = queue[1:]
		order = append(order, blk)

		rep := blockRep[blk]
		tm := map[S]int{}
		for _, sym := range alphabet {
			to, ok := d.Step(rep, sym)
			if !ok || !reachable.Has(to) {
				continue
			}
			toBlk := blockOf[to]
			tm[sym] = toBlk
			if !seen[toBlk] {
				seen[toBlk] = true
				queue = append(queue, toBlk)
			}
		}
		blockTrans[blk] = tm
	}

	newID := map[int]int{}
	for i, blk := range order {
		newID[blk] = i
	}

	b := NewBuilder[S]()
	for _, blk := range order {
		b.AddState(d.IsFinal(blockRep[blk]))
	}
	b.SetInitial(newID[initialBlock])
	for _, blk := range order {
		for sym, toBlk := range blockTrans[blk] {
			b.AddTransition(newID[blk], sym, newID[toBlk])
		}
	}
	return b.Build()
}

func countDistinct(m map[int]int) int {
	seen := map[int]bool{}
	for _, v := range m {
		seen[v] = true
	}
	return len(seen)
}

func reachableStates[S cmp.Ordered](d DFA[S]) util.KeySet[int] {
	seen := util.NewKeySet(d.initial)
	queue := []int{d.initial}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, to := range d.states[s] {
			if !seen.Has(to) {
				seen.Add(to)
				queue = append(queue, to)
			}
		}
	}
	return seen
}

// IsFinite reports whether d's language is finite: it is finite exactly
// when no state that both is reachable from the initial state and can
// itself reach some final state lies on a cycle. This is the precise form of the "no
// reachable final state lies on a cycle" criterion — a cycle through any
// such "live" state, final or not, still produces infinitely many
// accepted strings by pumping around it.
func IsFinite[S cmp.Ordered](d DFA[S]) bool {
	reachable := reachableStates(d)
	coReachable := coReachableStates(d)

	live := util.NewKeySet[int]()
	for _, s := range reachable.Elements() {
		if coReachable.Has(s) {
			live.Add(s)
		}
	}

	visiting := util.NewKeySet[int]()
	done := util.NewKeySet[int]()

	var hasCycle func(s int) bool
	hasCycle = func(s int) bool {
		visiting.Add(s)
		for _, to := range d.states[s] {
			if !live.Has(to) {
				continue
			}
			if visiting.Has(to) {
				return true
			}
			if done.Has(to) {
				continue
			}
			if hasCycle(to) {
				return true
			}
		}
		visiting.Remove(s)
		done.Add(s)
		return false
	}

	for _, s := range util.OrderedOf(live) {
		if done.Has(s) {
			continue
		}
		if hasCycle(s) {
			return false
		}
	}
	return true
}

func coReachableStates[S cmp.Ordered](d DFA[S]) util.KeySet[int] {
	rev := make(map[int][]int, len(d.states))
	for from, m := range d.states {
		for _, to := range m {
			rev[to] = append(rev[to], from)
		}
	}

	seen := util.NewKeySet[int]()
	queue := []int{}
	for _, f := range d.finals.Elements() {
		seen.Add(f)
		queue = append(queue, f)
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, from := range rev[s] {
			if !seen.Has(from) {
				seen.Add(from)
				queue = append(queue, from)
			}
		}
	}
	return seen
}

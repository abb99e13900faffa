package automaton

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/dekarrin/finlang/internal/util"
)

// nfa is an internal scaffolding type used only while building DFAs via
// Thompson's construction (Concat, Star, Reverse). It is never exposed;
// every public constructor returns a determinized DFA. Grounded on the
// teacher's internal/ictiobus/automaton.NFAState/EpsilonClosure/MOVE and
// lex/regex.go's Thompson combinators.
type nfa[S cmp.Ordered] struct {
	trans  []map[S][]int
	eps    [][]int
	finals util.KeySet[int]
	start  int
}

func dfaToNFA[S cmp.Ordered](d DFA[S]) nfa[S] {
	trans := make([]map[S][]int, len(d.states))
	eps := make([][]int, len(d.states))
	for i, m := range d.states {
		tm := make(map[S][]int, len(m))
		for sym, to := range m {
			tm[sym] = []int{to}
		}
		trans[i] = tm
		eps[i] = nil
	}
	return nfa[S]{trans: trans, eps: eps, finals: d.finals.Copy(), start: d.initial}
}

// epsilonClosure computes the set of states reachable from s via zero or
// more epsilon transitions, using a worklist exactly like the teacher's
// EpsilonClosure.
func epsilonClosure[S cmp.Ordered](n nfa[S], s int) util.KeySet[int] {
	closure := util.NewKeySet(s)
	var stack util.Stack[int]
	stack.Push(s)
	for stack.Len() > 0 {
		cur := stack.Pop()
		for _, next := range n.eps[cur] {
			if !closure.Has(next) {
				closure.Add(next)
				stack.Push(next)
			}
		}
	}
	return closure
}

func epsilonClosureSet[S cmp.Ordered](n nfa[S], set util.KeySet[int]) util.KeySet[int] {
	result := util.NewKeySet[int]()
	for _, s := range set.Elements() {
		result.AddAll(epsilonClosure(n, s))
	}
	return result
}

// move returns the set of states reachable from any state in set via a
// single transition on sym (MOVE, in the teacher's terms).
func move[S cmp.Ordered](n nfa[S], set util.KeySet[int], sym S) util.KeySet[int] {
	result := util.NewKeySet[int]()
	for _, s := range set.Elements() {
		for _, to := range n.trans[s][sym] {
			result.Add(to)
		}
	}
	return result
}

func anyFinal[S cmp.Ordered](n nfa[S], set util.KeySet[int]) bool {
	for _, s := range set.Elements() {
		if n.finals.Has(s) {
			return true
		}
	}
	return false
}

func encodeStateSet(set util.KeySet[int]) string {
	ordered := util.OrderedOf(set)
	var sb strings.Builder
	for i, s := range ordered {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", s)
	}
	return sb.String()
}

// determinize performs subset construction over n, exactly the worklist
// algorithm in the teacher's NFA.ToDFA: start from the epsilon-closure of
// the start state, and for each discovered subset and each alphabet
// symbol, move then close to find the next subset.
func determinize[S cmp.Ordered](n nfa[S]) DFA[S] {
	b := NewBuilder[S]()

	syms := util.NewKeySet[S]()
	for _, m := range n.trans {
		for sym := range m {
			syms.Add(sym)
		}
	}
	orderedSyms := util.OrderedOf(syms)

	start := epsilonClosure(n, n.start)
	idOf := map[string]int{}
	startID := b.AddState(anyFinal(n, start))
	b.SetInitial(startID)
	idOf[encodeStateSet(start)] = startID

	queue := []util.KeySet[int]{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curID := idOf[encodeStateSet(cur)]

		for _, sym := range orderedSyms {
			mv := move(n, cur, sym)
			if mv.Empty() {
				continue
			}
			closure := epsilonClosureSet(n, mv)
			key := encodeStateSet(closure)
			id, ok := idOf[key]
			if !ok {
				id = b.AddState(anyFinal(n, closure))
				idOf[key] = id
				queue = append(queue, closure)
			}
			b.AddTransition(curID, sym, id)
		}
	}

	return b.Build()
}

// concatTwo builds the NFA for L(a)·L(b): a's states followed by b's
// states (offset), with an epsilon bridge from each of a's finals to b's
// start. The result's only accepting states are (offset) b's finals.
func concatTwo[S cmp.Ordered](a, b nfa[S]) nfa[S] {
	offset := len(a.trans)
	n := len(a.trans) + len(b.trans)

	trans := make([]map[S][]int, n)
	eps := make([][]int, n)

	for i, m := range a.trans {
		trans[i] = copyTransMap(m)
		eps[i] = append([]int{}, a.eps[i]...)
	}
	for i, m := range b.trans {
		trans[offset+i] = shiftTransMap(m, offset)
		eps[offset+i] = shiftInts(b.eps[i], offset)
	}

	for _, f := range a.finals.Elements() {
		eps[f] = append(eps[f], offset+b.start)
	}

	finals := util.NewKeySet[int]()
	for _, f := range b.finals.Elements() {
		finals.Add(offset + f)
	}

	return nfa[S]{trans: trans, eps: eps, finals: finals, start: a.start}
}

func copyTransMap[S cmp.Ordered](m map[S][]int) map[S][]int {
	out := make(map[S][]int, len(m))
	for sym, tos := range m {
		out[sym] = append([]int{}, tos...)
	}
	return out
}

func shiftTransMap[S cmp.Ordered](m map[S][]int, offset int) map[S][]int {
	out := make(map[S][]int, len(m))
	for sym, tos := range m {
		out[sym] = shiftInts(tos, offset)
	}
	return out
}

func shiftInts(s []int, offset int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = v + offset
	}
	return out
}

package automaton

import (
	"cmp"
	"container/heap"
	"slices"

	"github.com/dekarrin/finlang/internal/util"
	"github.com/dekarrin/finlang/seq"
)

// Iterator lazily enumerates a DFA's accepted strings in length-
// lexicographic order (shorter strings first, ties broken by the symbol
// type's natural order). It never terminates on its own for an infinite
// language; callers bound iteration themselves (e.g. by count or by
// IsFinite beforehand). An Iterator is not safe for concurrent use.
type Iterator[S cmp.Ordered] struct {
	d    DFA[S]
	syms []S
	pq   *pathQueue[S]
}

// NewIterator returns an Iterator over d's accepted strings.
func NewIterator[S cmp.Ordered](d DFA[S]) *Iterator[S] {
	it := &Iterator[S]{
		d:    d,
		syms: util.OrderedOf(d.Alphabet()),
		pq:   &pathQueue[S]{},
	}
	heap.Init(it.pq)
	heap.Push(it.pq, pathItem[S]{path: nil, state: d.initial})
	return it
}

// Next returns the next accepted string and true, or the zero Seq and
// false once the queue is exhausted (which for a finite language happens
// after the last string; for an infinite language, never).
func (it *Iterator[S]) Next() (seq.Seq[S], bool) {
	for it.pq.Len() > 0 {
		item := heap.Pop(it.pq).(pathItem[S])

		for _, sym := range it.syms {
			to, ok := it.d.Step(item.state, sym)
			if !ok {
				continue
			}
			next := make([]S, len(item.path)+1)
			copy(next, item.path)
			next[len(item.path)] = sym
			heap.Push(it.pq, pathItem[S]{path: next, state: to})
		}

		if it.d.IsFinal(item.state) {
			return seq.Of(item.path...), true
		}
	}
	return seq.Seq[S]{}, false
}

type pathItem[S cmp.Ordered] struct {
	path  []S
	state int
}

// pathQueue is a container/heap min-heap over pathItem, ordered first by
// path length and then lexicographically by path content.
type pathQueue[S cmp.Ordered] []pathItem[S]

func (q pathQueue[S]) Len() int { return len(q) }

func (q pathQueue[S]) Less(i, j int) bool {
	if len(q[i].path) != len(q[j].path) {
		return len(q[i].path) < len(q[j].path)
	}
	return slices.Compare(q[i].path, q[j].path) < 0
}

func (q pathQueue[S]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pathQueue[S]) Push(x any) {
	*q = append(*q, x.(pathItem[S]))
}

func (q *pathQueue[S]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

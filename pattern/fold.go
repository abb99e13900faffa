package pattern

import "cmp"

// Fold lowers tree into target, homomorphically: each Tree constructor
// maps to target's corresponding operation, recursively on children
// first. This is the single driver every lowering in the package goes
// through — ToDFA is just Fold with AutomatonTarget.
func Fold[S cmp.Ordered, T any](tree Tree[S], target Target[S, T]) T {
	switch tree.kind {
	case kindEmpty:
		return target.Empty()
	case kindEpsilon:
		return target.Epsilon()
	case kindSymbol:
		return target.Symbol(tree.class)
	case kindUnion:
		items := make([]T, len(tree.children))
		for i, c := range tree.children {
			items[i] = Fold(c, target)
		}
		return target.Union(items)
	case kindConcat:
		items := make([]T, len(tree.children))
		for i, c := range tree.children {
			items[i] = Fold(c, target)
		}
		return target.Concatenate(items)
	case kindStar:
		return target.Star(Fold(tree.children[0], target))
	default:
		panic("pattern: Fold over Tree with unrecognized kind")
	}
}

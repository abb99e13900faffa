package pattern

import (
	"testing"

	"github.com/dekarrin/finlang/automaton"
	"github.com/dekarrin/finlang/internal/util"
	"github.com/stretchr/testify/assert"
)

func classOf(runes ...rune) util.KeySet[rune] {
	return util.NewKeySet(runes...)
}

func equivalent(a, b automaton.DFA[rune]) bool {
	ma := automaton.Minimize(a)
	mb := automaton.Minimize(b)
	return string(ma.Fingerprint()) == string(mb.Fingerprint())
}

// (a|b)*a(a|b): the spec's minimal-four-states scenario, built here via
// the tree form instead of automaton combinators directly.
func altAB() Tree[rune] {
	ab := Symbol(classOf('a', 'b'))
	return Concat(Star(ab), Symbol(classOf('a')), ab)
}

func Test_ToDFA_MatchesDirectConstruction(t *testing.T) {
	assert := assert.New(t)

	tree := altAB()
	got := ToDFA(tree)

	a := automaton.Single('a')
	b := automaton.Single('b')
	ab := automaton.Union(a, b)
	want := automaton.Concat(automaton.Star(ab), a, ab)

	assert.True(equivalent(got, want))
}

func Test_FromDFA_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	original := ToDFA(altAB())
	tree := FromDFA(original)
	rebuilt := ToDFA(tree)

	assert.True(equivalent(original, rebuilt))
}

func Test_FromDFA_Empty(t *testing.T) {
	assert := assert.New(t)

	tree := FromDFA(automaton.Empty[rune]())
	assert.True(equivalent(ToDFA(tree), automaton.Empty[rune]()))
}

func Test_FromDFA_Epsilon(t *testing.T) {
	assert := assert.New(t)

	tree := FromDFA(automaton.Epsilon[rune]())
	assert.True(equivalent(ToDFA(tree), automaton.Epsilon[rune]()))
}

func Test_Union_CommutativeAssociativeIdentity(t *testing.T) {
	assert := assert.New(t)

	a := Symbol(classOf('a'))
	b := Symbol(classOf('b'))
	c := Symbol(classOf('c'))

	assert.True(equivalent(ToDFA(Union(a, b)), ToDFA(Union(b, a))))
	assert.True(treeEqual(Union(Union(a, b), c), Union(a, Union(b, c))))
	assert.True(equivalent(ToDFA(Union(a, Empty[rune]())), ToDFA(a)))
}

func Test_Concat_AssociativeIdentityAbsorption(t *testing.T) {
	assert := assert.New(t)

	a := Symbol(classOf('a'))
	b := Symbol(classOf('b'))
	c := Symbol(classOf('c'))

	assert.True(treeEqual(Concat(Concat(a, b), c), Concat(a, Concat(b, c))))
	assert.True(treeEqual(Concat(a, Epsilon[rune]()), a))
	assert.True(treeEqual(Concat(Epsilon[rune](), a), a))
	assert.True(treeEqual(Concat(a, Empty[rune](), b), Empty[rune]()))
}

func Test_Union_DedupesStructuralDuplicates(t *testing.T) {
	assert := assert.New(t)

	a := Symbol(classOf('a'))
	u := Union(a, a, a)
	assert.True(treeEqual(u, a))
}

func Test_Star_Law_EpsilonUnionSelfConcatStar(t *testing.T) {
	assert := assert.New(t)

	a := Symbol(classOf('a'))
	starA := Star(a)
	lawForm := Union(Epsilon[rune](), Concat(a, starA))

	assert.True(equivalent(ToDFA(starA), ToDFA(lawForm)))
}

func Test_Star_Idempotent(t *testing.T) {
	assert := assert.New(t)

	a := Symbol(classOf('a'))
	assert.True(treeEqual(Star(Star(a)), Star(a)))
}

func Test_Plus_Optional_Repeating(t *testing.T) {
	assert := assert.New(t)

	a := Symbol(classOf('a'))
	target := AutomatonTarget[rune]{}
	aDFA := Fold(a, target)

	plus := Plus[rune, automaton.DFA[rune]](target, aDFA)
	assert.True(equivalent(plus, automaton.Concat(aDFA, automaton.Star(aDFA))))

	opt := Optional[rune, automaton.DFA[rune]](target, aDFA)
	assert.True(opt.Accepts(nil))
	assert.True(opt.Accepts([]rune("a")))
	assert.False(opt.Accepts([]rune("aa")))

	threeA := Repeating[rune, automaton.DFA[rune]](target, aDFA, 3)
	assert.True(threeA.Accepts([]rune("aaa")))
	assert.False(threeA.Accepts([]rune("aa")))
	assert.False(threeA.Accepts([]rune("aaaa")))

	rangeA := RepeatingRange[rune, automaton.DFA[rune]](target, aDFA, 2, 4)
	for n, ok := range map[int]bool{1: false, 2: true, 3: true, 4: true, 5: false} {
		input := make([]rune, n)
		for i := range input {
			input[i] = 'a'
		}
		assert.Equal(ok, rangeA.Accepts(input), "n=%d", n)
	}

	fromTwo := RepeatingFrom[rune, automaton.DFA[rune]](target, aDFA, 2)
	assert.False(fromTwo.Accepts([]rune("a")))
	assert.True(fromTwo.Accepts([]rune("aa")))
	assert.True(fromTwo.Accepts([]rune("aaaaaa")))
}

func Test_TreeTarget_Fold_IsIdentityUpToNormalization(t *testing.T) {
	assert := assert.New(t)

	tree := altAB()
	refolded := Fold[rune, Tree[rune]](tree, TreeTarget[rune]{})
	assert.True(treeEqual(tree, refolded))
}

package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func altAB() DFA[rune] {
	return Union(Single('a'), Single('b'))
}

func Test_DFA_BasicConstructors(t *testing.T) {
	assert := assert.New(t)

	empty := Empty[rune]()
	assert.False(empty.Accepts(nil))
	assert.False(empty.Accepts([]rune("a")))

	eps := Epsilon[rune]()
	assert.True(eps.Accepts(nil))
	assert.False(eps.Accepts([]rune("a")))

	single := Single('a')
	assert.True(single.Accepts([]rune("a")))
	assert.False(single.Accepts([]rune("b")))
	assert.False(single.Accepts([]rune("aa")))

	verbatim := Verbatim([]rune("cat"))
	assert.True(verbatim.Accepts([]rune("cat")))
	assert.False(verbatim.Accepts([]rune("ca")))
	assert.False(verbatim.Accepts([]rune("cats")))
}

// Test_DFA_MinimalFourStates builds (a|b)*a(a|b) and checks that
// minimizing it produces the textbook 4-state minimal DFA (one state per
// distinct suffix-class: nothing useful seen yet, last char was 'a' and
// no more, saw the required 'a' then one more char consumed, etc.), and
// that acceptance matches the regular expression's language directly.
func Test_DFA_MinimalFourStates(t *testing.T) {
	assert := assert.New(t)

	ab := altAB()
	pattern := Concat(Star(ab), Single('a'), ab)
	min := Minimize(pattern)

	assert.Equal(4, min.NumStates())

	accept := []string{"aa", "ab", "bab", "aaa", "abab", "baab"}
	reject := []string{"", "a", "b", "ba", "bb", "aabb"}

	for _, s := range accept {
		assert.True(min.Accepts([]rune(s)), "expected %q to be accepted", s)
	}
	for _, s := range reject {
		assert.False(min.Accepts([]rune(s)), "expected %q to be rejected", s)
	}
}

func Test_DFA_Enumerate_AStarB(t *testing.T) {
	assert := assert.New(t)

	d := Concat(Star(Single('a')), Single('b'))
	it := NewIterator(d)

	want := []string{"b", "ab", "aab", "aaab"}
	for _, w := range want {
		got, ok := it.Next()
		assert.True(ok)
		assert.Equal(w, string(got.Elements()))
	}
}

func Test_DFA_Intersect_StartsAndEndsWithA(t *testing.T) {
	assert := assert.New(t)

	ab := altAB()
	endsInA := Concat(Star(ab), Single('a'))
	startsWithA := Concat(Single('a'), Star(ab))

	both := Intersect(endsInA, startsWithA)

	assert.True(both.Accepts([]rune("a")))
	assert.True(both.Accepts([]rune("aa")))
	assert.True(both.Accepts([]rune("aba")))
	assert.False(both.Accepts([]rune("ab")))
	assert.False(both.Accepts([]rune("ba")))
	assert.False(both.Accepts([]rune("")))
}

func Test_DFA_Union_Disjoint_Alphabets(t *testing.T) {
	assert := assert.New(t)

	onA := Single('a')
	onX := Single('x')
	u := Union(onA, onX)

	assert.True(u.Accepts([]rune("a")))
	assert.True(u.Accepts([]rune("x")))
	assert.False(u.Accepts([]rune("ax")))
}

func Test_DFA_Difference(t *testing.T) {
	assert := assert.New(t)

	ab := altAB()
	anyString := Star(ab)
	onlyA := Single('a')

	diff := Difference(anyString, onlyA)

	assert.True(diff.Accepts([]rune("")))
	assert.True(diff.Accepts([]rune("b")))
	assert.True(diff.Accepts([]rune("aa")))
	assert.False(diff.Accepts([]rune("a")))
}

func Test_DFA_Complement(t *testing.T) {
	assert := assert.New(t)

	d := Single('a')
	c := Complement(d)

	assert.False(c.Accepts([]rune("a")))
	assert.True(c.Accepts([]rune("")))
	assert.True(c.Accepts([]rune("aa")))
}

func Test_DFA_Reverse_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	d := Concat(Single('a'), Single('b'), Single('c'))
	roundTripped := Reverse(Reverse(d))

	assert.Equal(Minimize(d).Fingerprint(), Minimize(roundTripped).Fingerprint())
}

func Test_DFA_Minimize_Idempotent(t *testing.T) {
	assert := assert.New(t)

	ab := altAB()
	d := Concat(Star(ab), Single('a'), ab)

	once := Minimize(d)
	twice := Minimize(once)

	assert.Equal(once.Fingerprint(), twice.Fingerprint())
}

// deadOn returns the DFA recognizing ∅ whose alphabet nonetheless includes
// sym (a single non-final state with a self-loop on sym). Unioning it with
// another DFA pads that DFA's alphabet without changing its language.
func deadOn(sym rune) DFA[rune] {
	b := NewBuilder[rune]()
	s := b.AddState(false)
	b.AddTransition(s, sym, s)
	b.SetInitial(s)
	return b.Build()
}

func Test_DFA_DeMorgan(t *testing.T) {
	assert := assert.New(t)

	// both padded to the same {a, b} alphabet, so Complement's per-
	// automaton alphabet matches Union's combined alphabet.
	a := Union(Single('a'), deadOn('b'))
	b := Union(Single('b'), deadOn('a'))

	lhs := Minimize(Complement(Union(a, b)))
	rhs := Minimize(Intersect(Complement(a), Complement(b)))

	assert.Equal(lhs.Fingerprint(), rhs.Fingerprint())
}

func Test_DFA_IsFinite(t *testing.T) {
	assert := assert.New(t)

	finite := Concat(Single('a'), Single('b'))
	assert.True(IsFinite(finite))

	infinite := Star(Single('a'))
	assert.False(IsFinite(infinite))
}

func Test_DFA_AlphabetPartitions(t *testing.T) {
	assert := assert.New(t)

	// once minimized, a and b behave identically everywhere in this DFA
	// (both lead from the initial state to the one accept state), so they
	// should land in the same partition. The unminimized product sends them
	// to two distinct final states.
	d := Minimize(Union(Single('a'), Single('b')))
	parts := d.AlphabetPartitions()

	assert.True(parts.IsEquivalent('a', 'b'))
}

package dfae

import (
	"testing"

	"github.com/dekarrin/finlang/automaton"
	"github.com/stretchr/testify/assert"
)

func oneOf(runes string) automaton.DFA[rune] {
	dfas := make([]automaton.DFA[rune], 0, len(runes))
	for _, r := range runes {
		dfas = append(dfas, automaton.Single(r))
	}
	return automaton.Union(dfas...)
}

func plus(d automaton.DFA[rune]) automaton.DFA[rune] {
	return automaton.Concat(d, automaton.Star(d))
}

func Test_DFAE_Lookup(t *testing.T) {
	assert := assert.New(t)

	digits := plus(oneOf("0123456789"))
	letters := plus(oneOf("abcdefghijklmnopqrstuvwxyz"))

	d := New[rune, string](map[string]automaton.DFA[rune]{
		"digit": digits,
		"word":  letters,
	})

	label, ok := d.Lookup([]rune("42"))
	assert.True(ok)
	assert.Equal("digit", label)

	label, ok = d.Lookup([]rune("hello"))
	assert.True(ok)
	assert.Equal("word", label)

	_, ok = d.Lookup([]rune("a1"))
	assert.False(ok)

	_, ok = d.Lookup([]rune(""))
	assert.False(ok)
}

func Test_DFAE_PanicsOnOverlappingPartitions(t *testing.T) {
	assert := assert.New(t)

	a := automaton.Single('x')
	b := automaton.Single('x')

	assert.Panics(func() {
		New[rune, string](map[string]automaton.DFA[rune]{
			"first":  a,
			"second": b,
		})
	})
}

func Test_Atom_Compare_RawBeforeTag(t *testing.T) {
	assert := assert.New(t)

	raw := Raw[rune, string]('z')
	tag := Tag[rune, string]("aaa")

	assert.True(Compare(raw, tag) < 0)
	assert.True(Compare(tag, raw) > 0)
}

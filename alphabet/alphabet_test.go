package alphabet

import (
	"testing"

	"github.com/dekarrin/finlang/internal/util"
	"github.com/stretchr/testify/assert"
)

func Test_Alphabet_Insert_Refinement(t *testing.T) {
	testCases := []struct {
		name   string
		seed   []Partition[rune]
		insert Partition[rune]
		expect []Partition[rune]
	}{
		{
			name:   "insert into empty alphabet",
			seed:   nil,
			insert: util.NewKeySet('a', 'b', 'c'),
			expect: []Partition[rune]{util.NewKeySet('a', 'b', 'c')},
		},
		{
			name:   "insert disjoint from existing partition",
			seed:   []Partition[rune]{util.NewKeySet('a', 'b')},
			insert: util.NewKeySet('c', 'd'),
			expect: []Partition[rune]{util.NewKeySet('a', 'b'), util.NewKeySet('c', 'd')},
		},
		{
			name:   "insert splits an overlapping partition",
			seed:   []Partition[rune]{util.NewKeySet('a', 'b', 'c', 'd')},
			insert: util.NewKeySet('b', 'c'),
			expect: []Partition[rune]{util.NewKeySet('a', 'd'), util.NewKeySet('b', 'c')},
		},
		{
			name:   "insert overlaps two partitions and has leftover",
			seed:   []Partition[rune]{util.NewKeySet('a', 'b'), util.NewKeySet('c', 'd')},
			insert: util.NewKeySet('b', 'c', 'e'),
			expect: []Partition[rune]{
				util.NewKeySet('a'),
				util.NewKeySet('b'),
				util.NewKeySet('c'),
				util.NewKeySet('d'),
				util.NewKeySet('e'),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			a := New[rune]()
			for _, p := range tc.seed {
				a.Insert(p)
			}

			a.Insert(tc.insert)

			actual := a.Partitions()
			assert.Equal(len(tc.expect), len(actual))

			for _, want := range tc.expect {
				found := false
				for _, got := range actual {
					if want.Equal(got) {
						found = true
						break
					}
				}
				assert.True(found, "expected partition %s present in %v", want, actual)
			}
		})
	}
}

func Test_Alphabet_Siblings_And_IsEquivalent(t *testing.T) {
	assert := assert.New(t)

	a := New[byte]()
	a.Insert(util.NewKeySet[byte]('a', 'b', 'c'))
	a.Insert(util.NewKeySet[byte]('x', 'y'))

	assert.True(a.IsEquivalent('a', 'c'))
	assert.False(a.IsEquivalent('a', 'x'))
	assert.True(a.Siblings('z').Empty(), "symbol outside alphabet has empty partition")
}

func Test_Alphabet_Remove(t *testing.T) {
	assert := assert.New(t)

	a := New[rune]()
	a.Insert(util.NewKeySet('a', 'b', 'c'))
	a.Remove(util.NewKeySet('b'))

	parts := a.Partitions()
	assert.Len(parts, 1)
	assert.True(parts[0].Equal(util.NewKeySet('a', 'c')))
}

func Test_Alphabet_Conjunction(t *testing.T) {
	assert := assert.New(t)

	a := New[rune]()
	a.Insert(util.NewKeySet('a', 'b', 'c'))

	b := New[rune]()
	b.Insert(util.NewKeySet('b', 'c', 'd'))

	combined := a.Conjunction(b)

	assert.True(combined.IsEquivalent('b', 'c'))
	assert.False(combined.IsEquivalent('a', 'b'))
	assert.False(combined.IsEquivalent('c', 'd'))
}

func Test_Table_SetGet(t *testing.T) {
	assert := assert.New(t)

	a := New[rune]()
	a.Insert(util.NewKeySet('a', 'b'))
	a.Insert(util.NewKeySet('c'))

	tbl := NewTable[rune, int](a)
	tbl.Set('a', 1)
	tbl.Set('c', 2)

	v, ok := tbl.Get('b')
	assert.True(ok)
	assert.Equal(1, v)

	v, ok = tbl.Get('c')
	assert.True(ok)
	assert.Equal(2, v)

	_, ok = tbl.Get('z')
	assert.False(ok)
}

func Test_Table_Set_PanicsOutsideAlphabet(t *testing.T) {
	assert := assert.New(t)

	a := New[rune]()
	a.Insert(util.NewKeySet('a'))
	tbl := NewTable[rune, int](a)

	assert.Panics(func() {
		tbl.Set('z', 1)
	})
}

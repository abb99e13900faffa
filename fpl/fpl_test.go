package fpl

import (
	"testing"

	"github.com/dekarrin/finlang/seq"
	"github.com/stretchr/testify/assert"
)

func Test_New_And_Contains(t *testing.T) {
	assert := assert.New(t)

	f := New[rune, string](map[string][]seq.Seq[rune]{
		"greeting": {seq.Of('h', 'i')},
		"farewell": {seq.Of('b', 'y', 'e')},
	})

	assert.Equal(2, f.Len())
	assert.True(f.Contains(seq.Of('h', 'i')))
	assert.False(f.Contains(seq.Of('n', 'o')))

	label, ok := f.PartitionOf(seq.Of('b', 'y', 'e'))
	assert.True(ok)
	assert.Equal("farewell", label)
}

func Test_New_PanicsOnPartitionConflict(t *testing.T) {
	assert := assert.New(t)

	assert.Panics(func() {
		New[rune, string](map[string][]seq.Seq[rune]{
			"a": {seq.Of('x')},
			"b": {seq.Of('x')},
		})
	})
}

func Test_Union(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{"a": {seq.Of('x')}})
	b := New[rune, string](map[string][]seq.Seq[rune]{"b": {seq.Of('y')}})

	u := Union(a, b)
	assert.Equal(2, u.Len())
	assert.True(u.Contains(seq.Of('x')))
	assert.True(u.Contains(seq.Of('y')))
}

func Test_Union_PanicsOnConflict(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{"a": {seq.Of('x')}})
	b := New[rune, string](map[string][]seq.Seq[rune]{"b": {seq.Of('x')}})

	assert.Panics(func() { Union(a, b) })
}

func Test_Concatenate(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{"a": {seq.Of('x'), seq.Of('y')}})
	b := New[rune, string](map[string][]seq.Seq[rune]{"b": {seq.Of('1'), seq.Of('2')}})

	c := Concatenate(a, b)
	assert.Equal(4, c.Len())
	assert.True(c.Contains(seq.Of('x', '1')))
	assert.True(c.Contains(seq.Of('y', '2')))

	label, ok := c.PartitionOf(seq.Of('x', '1'))
	assert.True(ok)
	assert.Equal("a", label)
}

func Test_Reverse(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{"a": {seq.Of('x', 'y', 'z')}})
	r := Reverse(a)

	assert.True(r.Contains(seq.Of('z', 'y', 'x')))
	assert.False(r.Contains(seq.Of('x', 'y', 'z')))
}

func Test_Derive(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{
		"a": {seq.Of('a', 'b', 'c'), seq.Of('a', 'x'), seq.Of('z')},
	})

	d := Derive(a, seq.Of('a'))
	assert.Equal(2, d.Len())
	assert.True(d.Contains(seq.Of('b', 'c')))
	assert.True(d.Contains(seq.Of('x')))
	assert.False(d.Contains(seq.Of('z')))
}

func Test_Star_EmptyAndEpsilonOnly(t *testing.T) {
	assert := assert.New(t)

	star := Star(Empty[rune, string](), "eps")
	assert.True(star.IsEpsilonOnly())

	label, ok := star.PartitionOf(seq.Empty[rune]())
	assert.True(ok)
	assert.Equal("eps", label)

	already := Epsilon[rune, string]("eps")
	assert.True(Star(already, "eps").IsEpsilonOnly())
}

func Test_Star_PanicsOnNonTrivialLanguage(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{"a": {seq.Of('x')}})
	assert.Panics(func() { Star(a, "eps") })
}

func Test_Plus_EmptyAndEpsilonOnly(t *testing.T) {
	assert := assert.New(t)

	assert.True(Plus(Empty[rune, string]()).IsEmpty())
	assert.True(Plus(Epsilon[rune, string]("eps")).IsEpsilonOnly())
}

func Test_Plus_PanicsOnNonTrivialLanguage(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{"a": {seq.Of('x')}})
	assert.Panics(func() { Plus(a) })
}

func Test_ToDFA(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string](map[string][]seq.Seq[rune]{
		"a": {seq.Of('h', 'i'), seq.Of('b', 'y', 'e')},
	})

	d := a.ToDFA()
	assert.True(d.Accepts([]rune("hi")))
	assert.True(d.Accepts([]rune("bye")))
	assert.False(d.Accepts([]rune("nope")))
}

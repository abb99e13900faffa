package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Seq_Concat(t *testing.T) {
	testCases := []struct {
		name   string
		a      Seq[rune]
		b      Seq[rune]
		expect Seq[rune]
	}{
		{
			name:   "both empty",
			a:      Empty[rune](),
			b:      Empty[rune](),
			expect: Empty[rune](),
		},
		{
			name:   "left empty",
			a:      Empty[rune](),
			b:      Of('a', 'b'),
			expect: Of('a', 'b'),
		},
		{
			name:   "right empty",
			a:      Of('a', 'b'),
			b:      Empty[rune](),
			expect: Of('a', 'b'),
		},
		{
			name:   "both non-empty",
			a:      Of('a', 'b'),
			b:      Of('c', 'd'),
			expect: Of('a', 'b', 'c', 'd'),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := tc.a.Concat(tc.b)

			assert.True(Equal(tc.expect, actual))
		})
	}
}

func Test_Seq_Reverse(t *testing.T) {
	assert := assert.New(t)

	s := Of(1, 2, 3)
	assert.True(Equal(Of(3, 2, 1), s.Reverse()))
}

func Test_Seq_Append(t *testing.T) {
	assert := assert.New(t)

	s := Of("a", "b")
	s2 := s.Append("c")

	assert.True(Equal(Of("a", "b"), s), "Append must not mutate receiver")
	assert.True(Equal(Of("a", "b", "c"), s2))
}

func Test_Seq_Equal(t *testing.T) {
	assert := assert.New(t)

	assert.True(Equal(Empty[int](), Empty[int]()))
	assert.False(Equal(Of(1), Of(2)))
	assert.False(Equal(Of(1, 2), Of(1)))
}

package abnf

import (
	"testing"

	"github.com/dekarrin/finlang/internal/util"
	"github.com/dekarrin/finlang/pattern"
	"github.com/stretchr/testify/assert"
)

func Test_RuleSet_NamesPreservesOrder(t *testing.T) {
	assert := assert.New(t)

	rs := NewRuleSet([]Rule{
		{Name: "digit", Pattern: pattern.Symbol(util.NewKeySet('0', '1'))},
		{Name: "letter", Pattern: pattern.Symbol(util.NewKeySet('a', 'b'))},
	})

	assert.Equal([]string{"digit", "letter"}, rs.Names())

	r, ok := rs.Rule("digit")
	assert.True(ok)
	assert.Equal("digit", r.Name)

	_, ok = rs.Rule("missing")
	assert.False(ok)
}

func Test_Lower_FoldsEveryRule(t *testing.T) {
	assert := assert.New(t)

	rs := NewRuleSet([]Rule{
		{Name: "digit", Pattern: pattern.Symbol(util.NewKeySet('0', '1'))},
		{Name: "letter", Pattern: pattern.Symbol(util.NewKeySet('a', 'b'))},
	})

	lowered := pattern.Fold(rs.rules["digit"].Pattern, pattern.AutomatonTarget[rune]{})
	assert.True(lowered.Accepts([]rune("0")))
	assert.False(lowered.Accepts([]rune("a")))

	dfas := Lower[pattern.Tree[rune]](rs, pattern.TreeTarget[rune]{})
	assert.Len(dfas, 2)
	_, ok := dfas["letter"]
	assert.True(ok)
}

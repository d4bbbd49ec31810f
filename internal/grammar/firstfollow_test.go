package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_FIRST(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	first := g.FIRST()

	assert.ElementsMatch([]string{"(", "id"}, first["E"].Elements())
	assert.ElementsMatch([]string{"(", "id"}, first["T"].Elements())
	assert.ElementsMatch([]string{"(", "id"}, first["F"].Elements())
	assert.False(first["E"].Has(Epsilon))
}

func Test_Grammar_FIRST_WithEpsilonProduction(t *testing.T) {
	assert := assert.New(t)
	// S -> A b
	// A -> a | @
	var g Grammar
	g.AddTerm("a")
	g.AddTerm("b")
	g.AddRule("S", NewProduction("S", []Symbol{"A", "b"}))
	g.AddRule("A", NewProduction("A", []Symbol{"a"}))
	g.AddRule("A", NewProduction("A", []Symbol{Epsilon}))

	first := g.FIRST()
	assert.ElementsMatch([]string{"a", Epsilon}, first["A"].Elements())
	assert.ElementsMatch([]string{"a", "b"}, first["S"].Elements())
}

func Test_FirstSets_FirstOfSequence(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	first := g.FIRST()

	seq := first.FirstOfSequence([]Symbol{"T", "+", "T"})
	assert.ElementsMatch([]string{"(", "id"}, seq.Elements())

	empty := first.FirstOfSequence(nil)
	assert.True(empty.Has(Epsilon))
}

func Test_Grammar_FOLLOW(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	first := g.FIRST()
	follow := g.FOLLOW(first)

	assert.ElementsMatch([]string{EndOfInput, ")", "+"}, follow["E"].Elements())
	assert.ElementsMatch([]string{EndOfInput, ")", "+", "*"}, follow["T"].Elements())
	assert.ElementsMatch([]string{EndOfInput, ")", "+", "*"}, follow["F"].Elements())
}

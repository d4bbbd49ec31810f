package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodies(rule Rule) [][]Symbol {
	out := make([][]Symbol, len(rule.Productions))
	for i, p := range rule.Productions {
		out[i] = p.Body
	}
	return out
}

func Test_RemoveLeftRecursion_DirectAndIndirect(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := exprGrammar()
	out := g.RemoveLeftRecursion()

	require.False(out.IsNonTerminal("impossible"))

	assert.Equal([][]Symbol{{"T", "E'"}}, bodies(out.Rule("E")))
	assert.Equal([][]Symbol{{"+", "T", "E'"}, {Epsilon}}, bodies(out.Rule("E'")))
	assert.Equal([][]Symbol{{"F", "T'"}}, bodies(out.Rule("T")))
	assert.Equal([][]Symbol{{"*", "F", "T'"}, {Epsilon}}, bodies(out.Rule("T'")))
	assert.Equal([][]Symbol{{"(", "E", ")"}, {"id"}}, bodies(out.Rule("F")))

	// the receiver itself is untouched
	assert.Equal([][]Symbol{{"E", "+", "T"}, {"T"}}, bodies(g.Rule("E")))
}

func Test_RemoveLeftRecursion_NoRecursion_Unchanged(t *testing.T) {
	assert := assert.New(t)
	var g Grammar
	g.AddTerm("a")
	g.AddRule("S", NewProduction("S", []Symbol{"a"}))

	out := g.RemoveLeftRecursion()
	assert.Equal([][]Symbol{{"a"}}, bodies(out.Rule("S")))
}

func Test_RemoveLeftRecursion_DegenerateAllRecursive(t *testing.T) {
	assert := assert.New(t)
	// A -> A a, with no non-recursive alternative: every production moves
	// to the freshly minted nonterminal, leaving A with an empty row.
	var g Grammar
	g.AddTerm("a")
	g.AddRule("A", NewProduction("A", []Symbol{"A", "a"}))

	out := g.RemoveLeftRecursion()
	assert.Empty(out.Rule("A").Productions)
	assert.True(out.IsNonTerminal("A'"))
	assert.Equal([][]Symbol{{"a", "A'"}, {Epsilon}}, bodies(out.Rule("A'")))
}

package bnf

import (
	"testing"

	"github.com/hghwng/cfgtool/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_SimpleGrammar(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := "S := a S b\nS := @\n"
	g, err := Parse(src)
	require.NoError(err)

	assert.Equal(grammar.Symbol("S"), g.StartSymbol())
	assert.True(g.IsTerminal("a"))
	assert.True(g.IsTerminal("b"))
	assert.False(g.IsTerminal("S"))

	rule := g.Rule("S")
	require.Len(rule.Productions, 2)
	assert.Equal([]grammar.Symbol{"a", "S", "b"}, rule.Productions[0].Body)
	assert.True(rule.Productions[1].IsEpsilon())
}

func Test_Parse_MultipleAlternativesOnOneLine(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := "S := a | b | c\n"
	g, err := Parse(src)
	require.NoError(err)

	rule := g.Rule("S")
	require.Len(rule.Productions, 3)
	assert.Equal([]grammar.Symbol{"a"}, rule.Productions[0].Body)
	assert.Equal([]grammar.Symbol{"b"}, rule.Productions[1].Body)
	assert.Equal([]grammar.Symbol{"c"}, rule.Productions[2].Body)
}

func Test_Parse_QuotedQuoteTerminal(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := "Q := '\\''\n"
	g, err := Parse(src)
	require.NoError(err)

	rule := g.Rule("Q")
	require.Len(rule.Productions, 1)
	assert.Equal([]grammar.Symbol{"'"}, rule.Productions[0].Body)
	assert.True(g.IsTerminal("'"))
}

func Test_Parse_StartIsFirstNonterminalNamed(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := "A := x\nS := A\n"
	g, err := Parse(src)
	require.NoError(err)
	assert.Equal(grammar.Symbol("A"), g.StartSymbol())
}

func Test_Parse_EmptyRightHandSideIsError(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("S := | a\n")
	assert.Error(err)
}

func Test_Parse_MissingAssignIsError(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse("S a\n")
	assert.Error(err)
}

func Test_Parse_MultipleProductionGroups(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := "S := A b\nA := x\nA := @\n"
	g, err := Parse(src)
	require.NoError(err)

	assert.True(g.IsNonTerminal("A"))
	assert.True(g.IsTerminal("x"))
	assert.True(g.IsTerminal("b"))
	require.Len(g.Rule("A").Productions, 2)
}

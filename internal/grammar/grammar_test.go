package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exprGrammar builds the classic expression grammar:
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
func exprGrammar() Grammar {
	var g Grammar
	g.AddTerm("+")
	g.AddTerm("*")
	g.AddTerm("(")
	g.AddTerm(")")
	g.AddTerm("id")
	g.AddRule("E", NewProduction("E", []Symbol{"E", "+", "T"}))
	g.AddRule("E", NewProduction("E", []Symbol{"T"}))
	g.AddRule("T", NewProduction("T", []Symbol{"T", "*", "F"}))
	g.AddRule("T", NewProduction("T", []Symbol{"F"}))
	g.AddRule("F", NewProduction("F", []Symbol{"(", "E", ")"}))
	g.AddRule("F", NewProduction("F", []Symbol{"id"}))
	return g
}

func Test_Grammar_AddRule_SetsStartFromFirstInsertion(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	assert.Equal(Symbol("E"), g.StartSymbol())
}

func Test_Grammar_NonTerminals_PreservesInsertionOrder(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	assert.Equal([]Symbol{"E", "T", "F"}, g.NonTerminals())
}

func Test_Grammar_Terminals_Sorted(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	assert.Equal([]Symbol{"(", ")", "*", "+", "id"}, g.Terminals())
}

func Test_Grammar_IsTerminal_IsNonTerminal(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	assert.True(g.IsTerminal("id"))
	assert.False(g.IsTerminal("E"))
	assert.True(g.IsNonTerminal("E"))
	assert.False(g.IsNonTerminal("id"))
	assert.False(g.IsNonTerminal("nonexistent"))
}

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func() Grammar
		expectErr bool
	}{
		{
			name:      "empty grammar has no start symbol",
			build:     func() Grammar { return Grammar{} },
			expectErr: true,
		},
		{
			name:      "well formed grammar",
			build:     exprGrammar,
			expectErr: false,
		},
		{
			name: "undeclared symbol in body",
			build: func() Grammar {
				var g Grammar
				g.AddRule("S", NewProduction("S", []Symbol{"ghost"}))
				return g
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			err := tc.build().Validate()
			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Grammar_Copy_IsIndependent(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	cp := g.Copy()

	cp.AddRule("E", NewProduction("E", []Symbol{"id", "id"}))
	cp.AddTerm("newterm")

	assert.Len(g.Rule("E").Productions, 2)
	assert.Len(cp.Rule("E").Productions, 3)
	assert.False(g.IsTerminal("newterm"))
	assert.True(cp.IsTerminal("newterm"))
}

func Test_Grammar_GenerateUniqueNonterminal(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	fresh := g.GenerateUniqueNonterminal("E")
	assert.Equal(Symbol("E'"), fresh)
	assert.False(g.IsNonTerminal(fresh))

	g.AddRule(fresh, NewProduction(fresh, []Symbol{Epsilon}))
	nextFresh := g.GenerateUniqueNonterminal("E")
	assert.Equal(Symbol("E''"), nextFresh)
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := exprGrammar()
	aug := g.Augmented()

	assert.Equal(AugmentedStart, aug.StartSymbol())
	rule := aug.Rule(AugmentedStart)
	require.Len(rule.Productions, 1)
	assert.Equal([]Symbol{"E"}, rule.Productions[0].Body)

	// the original grammar is untouched
	assert.Equal(Symbol("E"), g.StartSymbol())
	assert.False(g.IsNonTerminal(AugmentedStart))
}

func Test_Rule_String(t *testing.T) {
	assert := assert.New(t)
	g := exprGrammar()
	assert.Equal("E -> E + T | T", g.Rule("E").String())
}

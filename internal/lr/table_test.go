package lr

import (
	"testing"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/hghwng/cfgtool/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exprGrammar is the classic expression grammar, famously SLR(1) but not
// LR(0): the state reached on T from the start state holds both
// E -> T . and T -> T . * F, and the state holding E -> E + T . holds
// T -> T . * F too, so with reductions under every terminal LR(0)
// registers both a shift and a reduce on '*' in each of them.
func exprGrammar() grammar.Grammar {
	var g grammar.Grammar
	g.AddTerm("+")
	g.AddTerm("*")
	g.AddTerm("(")
	g.AddTerm(")")
	g.AddTerm("id")
	g.AddRule("E", grammar.NewProduction("E", []grammar.Symbol{"E", "+", "T"}))
	g.AddRule("E", grammar.NewProduction("E", []grammar.Symbol{"T"}))
	g.AddRule("T", grammar.NewProduction("T", []grammar.Symbol{"T", "*", "F"}))
	g.AddRule("T", grammar.NewProduction("T", []grammar.Symbol{"F"}))
	g.AddRule("F", grammar.NewProduction("F", []grammar.Symbol{"(", "E", ")"}))
	g.AddRule("F", grammar.NewProduction("F", []grammar.Symbol{"id"}))
	return g
}

func Test_Build_AllVariants_NoError(t *testing.T) {
	for _, v := range []automaton.Variant{automaton.LR0, automaton.SLR1, automaton.LR1, automaton.LALR1} {
		t.Run(v.String(), func(t *testing.T) {
			assert := assert.New(t)
			_, err := Build(exprGrammar(), v)
			assert.NoError(err)
		})
	}
}

func Test_Build_SLR1LR1LALR1_AreConflictFree(t *testing.T) {
	for _, v := range []automaton.Variant{automaton.SLR1, automaton.LR1, automaton.LALR1} {
		t.Run(v.String(), func(t *testing.T) {
			assert := assert.New(t)
			table, err := Build(exprGrammar(), v)
			assert.NoError(err)
			assert.Empty(table.Conflicts())
		})
	}
}

func Test_Build_LR0_HasConflictsOnThisGrammar(t *testing.T) {
	assert := assert.New(t)
	table, err := Build(exprGrammar(), automaton.LR0)
	assert.NoError(err)
	assert.NotEmpty(table.Conflicts())
}

func Test_Build_InvalidGrammar(t *testing.T) {
	assert := assert.New(t)
	var g grammar.Grammar
	g.AddRule("S", grammar.NewProduction("S", []grammar.Symbol{"ghost"}))
	_, err := Build(g, automaton.LR1)
	assert.Error(err)
}

func Test_Table_Action_StartStateShiftsOnId(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	table, err := Build(exprGrammar(), automaton.LR1)
	require.NoError(err)

	a, ok := table.Action(0, "id")
	require.True(ok)
	assert.Equal(Shift, a.Type)
}

func Test_ForPersist_FromPersisted_RoundTrips(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	table, err := Build(exprGrammar(), automaton.LALR1)
	require.NoError(err)

	p := table.ForPersist()
	assert.Equal(automaton.LALR1, p.Variant)
	assert.Equal(len(table.Rows), len(p.Rows))

	rebuilt := FromPersisted(table.Grammar, p)
	assert.Equal(table.Variant, rebuilt.Variant)
	assert.Equal(table.Rows, rebuilt.Rows)

	a, ok := rebuilt.Action(0, "id")
	require.True(ok)
	assert.Equal(Shift, a.Type)
}

func Test_Table_Conflicts_SortedByStateThenSymbol(t *testing.T) {
	assert := assert.New(t)
	table, err := Build(exprGrammar(), automaton.LR0)
	assert.NoError(err)

	conflicts := table.Conflicts()
	for i := 1; i < len(conflicts); i++ {
		prev, cur := conflicts[i-1], conflicts[i]
		assert.True(prev.State < cur.State || (prev.State == cur.State && prev.Symbol <= cur.Symbol))
	}
}

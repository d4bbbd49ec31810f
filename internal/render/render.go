// Package render holds every pretty-printer and the DOT graph emitter:
// read-only consumers of the core grammar/automaton/lr types. None of
// these types know how to format themselves beyond a minimal debug
// String(); this package owns the human-facing views.
package render

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/hghwng/cfgtool/internal/grammar"
	"github.com/hghwng/cfgtool/internal/lr"
	"github.com/hghwng/cfgtool/internal/util"
)

const tableWidth = 100

// col sorts symbol lists for display using locale-aware collation rather
// than raw byte order, so tables read naturally for non-ASCII grammar
// symbols too.
var col = collate.New(language.English)

func sortSymbols(syms []string) {
	col.SortStrings(syms)
}

func table(data [][]string) string {
	return rosed.
		Edit("").
		InsertTableOpts(0, data, tableWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Grammar renders every rule of g, one line per nonterminal, in
// insertion order.
func Grammar(g grammar.Grammar) string {
	var sb strings.Builder
	for _, nt := range g.NonTerminals() {
		sb.WriteString(g.Rule(nt).String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// FirstSets renders FIRST(X) for every nonterminal of g, sorted.
func FirstSets(g grammar.Grammar, first grammar.FirstSets) string {
	return setTable(g.NonTerminals(), first)
}

// FollowSets renders FOLLOW(X) for every nonterminal of g, sorted.
func FollowSets(g grammar.Grammar, follow grammar.FollowSets) string {
	return setTable(g.NonTerminals(), follow)
}

func setTable(nts []grammar.Symbol, sets map[grammar.Symbol]util.StringSet) string {
	data := [][]string{{"Symbol", "Set"}}
	for _, nt := range nts {
		elems := sets[nt].Elements()
		sortSymbols(elems)
		data = append(data, []string{nt, strings.Join(elems, " ")})
	}
	return table(data)
}

// LL1Table renders the predictive parse table as a nonterminal x
// terminal grid.
func LL1Table(t grammar.LL1Table) string {
	nts := t.NonTerminals()
	terms := t.Terminals()

	header := append([]string{""}, terms...)
	data := [][]string{header}
	for _, nt := range nts {
		row := []string{nt}
		for _, term := range terms {
			cell := ""
			if p, ok := t.Get(nt, term); ok {
				cell = p.String()
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return table(data)
}

// LL1Conflicts renders every LL(1) table conflict, one per line.
func LL1Conflicts(conflicts []grammar.LL1Conflict) string {
	if len(conflicts) == 0 {
		return "(none)\n"
	}
	var sb strings.Builder
	for _, c := range conflicts {
		fmt.Fprintf(&sb, "%s, %s:\n", c.NonTerminal, c.Terminal)
		for _, p := range c.Productions {
			fmt.Fprintf(&sb, "  %s\n", p)
		}
	}
	return sb.String()
}

// States renders every state of an automaton collection: its kernel and
// non-kernel items, one state per block.
func States(c automaton.Collection) string {
	var sb strings.Builder
	for _, st := range c.States {
		fmt.Fprintf(&sb, "state %d:\n", st.Index)
		for _, it := range st.Kernel {
			fmt.Fprintf(&sb, "  %s\n", it)
		}
		for _, it := range st.NonKernel {
			fmt.Fprintf(&sb, "  %s\n", it)
		}
	}
	return sb.String()
}

// Transitions renders every edge of an automaton collection as a table.
func Transitions(c automaton.Collection) string {
	data := [][]string{{"From", "Symbol", "To"}}
	for _, e := range c.Edges {
		data = append(data, []string{fmt.Sprintf("%d", e.From), e.Symbol, fmt.Sprintf("%d", e.To)})
	}
	return table(data)
}

// ActionTable renders an LR action/goto table as a state x symbol grid,
// terminals first (with end-of-input), then nonterminals.
func ActionTable(g grammar.Grammar, t lr.Table) string {
	terms := append([]grammar.Symbol{grammar.EndOfInput}, g.Terminals()...)
	nts := g.NonTerminals()

	header := []string{"State"}
	header = append(header, terms...)
	header = append(header, "|")
	header = append(header, nts...)
	data := [][]string{header}

	for i, row := range t.Rows {
		cells := []string{fmt.Sprintf("%d", i)}
		for _, term := range terms {
			cells = append(cells, cellFor(row[term]))
		}
		cells = append(cells, "|")
		for _, nt := range nts {
			cells = append(cells, cellFor(row[nt]))
		}
		data = append(data, cells)
	}
	return table(data)
}

func cellFor(actions []lr.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, "/")
}

// Conflicts renders every LR table conflict, one per line.
func Conflicts(conflicts []lr.Conflict) string {
	if len(conflicts) == 0 {
		return "(none)\n"
	}
	var sb strings.Builder
	for _, c := range conflicts {
		fmt.Fprintf(&sb, "%s\n", c)
	}
	return sb.String()
}

package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// LL1Entry is one (terminal, production) pairing contributed to a row of
// the LL(1) table. Rows keep every entry, including duplicates under the
// same terminal, so that Conflicts can surface multiply-defined cells;
// Get resolves a row to its first entry per terminal, matching the
// predictive driver's "take first match" rule.
type LL1Entry struct {
	Terminal   Symbol
	Production Production
}

// LL1Table is the predictive parse table: one row of LL1Entry values per
// nonterminal, in production-then-terminal insertion order.
type LL1Table struct {
	g    Grammar
	rows map[Symbol][]LL1Entry
}

// NonTerminals returns the nonterminals with a row in the table, in the
// grammar's nonterminal order.
func (t LL1Table) NonTerminals() []Symbol {
	return t.g.NonTerminals()
}

// Terminals returns every terminal (the end-of-input sentinel included)
// that keys at least one entry of the table, sorted.
func (t LL1Table) Terminals() []Symbol {
	seen := map[Symbol]bool{}
	for _, row := range t.rows {
		for _, e := range row {
			seen[e.Terminal] = true
		}
	}
	out := make([]Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Get returns the first production registered for (nonTerminal,
// terminal), matching the driver's "take first match" semantics for a
// well-formed LL(1) grammar.
func (t LL1Table) Get(nonTerminal, terminal Symbol) (Production, bool) {
	for _, e := range t.rows[nonTerminal] {
		if e.Terminal == terminal {
			return e.Production, true
		}
	}
	return Production{}, false
}

// LL1Conflict records every production competing for one (nonterminal,
// terminal) cell when more than one is registered there.
type LL1Conflict struct {
	NonTerminal Symbol
	Terminal    Symbol
	Productions []Production
}

// Conflicts enumerates every multiply-defined cell in the table, in the
// grammar's nonterminal order and then by terminal name for
// deterministic output.
func (t LL1Table) Conflicts() []LL1Conflict {
	var out []LL1Conflict
	for _, nt := range t.NonTerminals() {
		byTerm := map[Symbol][]Production{}
		var order []Symbol
		for _, e := range t.rows[nt] {
			if _, ok := byTerm[e.Terminal]; !ok {
				order = append(order, e.Terminal)
			}
			byTerm[e.Terminal] = append(byTerm[e.Terminal], e.Production)
		}
		sort.Strings(order)
		for _, term := range order {
			if len(byTerm[term]) > 1 {
				out = append(out, LL1Conflict{NonTerminal: nt, Terminal: term, Productions: byTerm[term]})
			}
		}
	}
	return out
}

func (t LL1Table) String() string {
	var sb strings.Builder
	sb.WriteString("Table:")
	for _, nt := range t.NonTerminals() {
		sb.WriteString("\n  " + nt + ":")
		row := append([]LL1Entry(nil), t.rows[nt]...)
		sort.SliceStable(row, func(i, j int) bool { return row[i].Terminal < row[j].Terminal })
		for _, e := range row {
			sb.WriteString(fmt.Sprintf("\n    %s: %s", e.Terminal, e.Production))
		}
	}
	return sb.String()
}

// LLParseTable builds the LL(1) predictive table. For each production
// A -> alpha, F = FIRST(alpha): every non-epsilon terminal in F
// contributes (t, A->alpha); if epsilon is in F, every non-epsilon
// terminal in FOLLOW(A) also contributes (t, A->alpha) — both
// contributions are added unconditionally, mirroring the reference
// implementation's behavior bit-for-bit rather than gating the FOLLOW
// contribution on alpha actually deriving epsilon by some other path.
func (g Grammar) LLParseTable() (LL1Table, error) {
	if err := g.Validate(); err != nil {
		return LL1Table{}, err
	}
	first := g.FIRST()
	follow := g.FOLLOW(first)

	rows := make(map[Symbol][]LL1Entry, len(g.order))
	for _, nt := range g.order {
		var row []LL1Entry
		for _, p := range g.rules[nt].Productions {
			fSet := first.FirstOfSequence(p.Body)
			for t := range fSet {
				if t == Epsilon {
					for ft := range follow[nt] {
						if ft != Epsilon {
							row = append(row, LL1Entry{Terminal: ft, Production: p})
						}
					}
					continue
				}
				row = append(row, LL1Entry{Terminal: t, Production: p})
			}
		}
		rows[nt] = row
	}
	return LL1Table{g: g, rows: rows}, nil
}

// IsLL1 reports whether the grammar's LL(1) table is conflict-free.
func (g Grammar) IsLL1() bool {
	table, err := g.LLParseTable()
	if err != nil {
		return false
	}
	return len(table.Conflicts()) == 0
}

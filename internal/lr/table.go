package lr

import (
	"sort"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/hghwng/cfgtool/internal/cfgerrors"
	"github.com/hghwng/cfgtool/internal/grammar"
)

// Table is a built action/goto table: one row per automaton state, each
// row mapping a symbol to every action registered there (more than one
// entry at a cell is a conflict, not an error — Build never aborts on a
// conflict, it is left for Conflicts to report and the caller to decide).
type Table struct {
	Variant    automaton.Variant
	Grammar    grammar.Grammar // augmented
	Collection automaton.Collection
	Rows       []map[grammar.Symbol][]Action
}

// Build constructs the action/goto table for g under variant v. g need
// not be pre-augmented; Build augments it internally. For LALR1, the
// canonical LR(1) collection is built first and then merged via
// automaton.MergeLALR1, per the optional core-merge design.
func Build(g grammar.Grammar, v automaton.Variant) (Table, error) {
	if err := g.Validate(); err != nil {
		return Table{}, err
	}

	aug := g.Augmented()
	first := aug.FIRST()
	var follow grammar.FollowSets
	if v == automaton.SLR1 {
		follow = aug.FOLLOW(first)
	}

	buildVariant := v
	if v == automaton.LALR1 {
		buildVariant = automaton.LR1
	}
	coll := automaton.Build(aug, first, buildVariant)
	if v == automaton.LALR1 {
		merged, _ := automaton.MergeLALR1(coll)
		coll = automaton.Recompute(aug, first, merged)
	}

	rows := make([]map[grammar.Symbol][]Action, len(coll.States))
	for i := range rows {
		rows[i] = map[grammar.Symbol][]Action{}
	}

	for _, e := range coll.Edges {
		if aug.IsTerminal(e.Symbol) {
			addAction(rows, e.From, e.Symbol, Action{Type: Shift, State: e.To})
		} else {
			addAction(rows, e.From, e.Symbol, Action{Type: Goto, State: e.To})
		}
	}

	for _, st := range coll.States {
		for _, it := range st.ReduceBucket {
			if it.Production.NonTerminal == grammar.AugmentedStart {
				addAction(rows, st.Index, grammar.EndOfInput, Action{Type: Accept})
				continue
			}
			for _, t := range reduceTerminals(v, aug, follow, it) {
				addAction(rows, st.Index, t, Action{Type: Reduce, Production: it.Production})
			}
		}
	}

	return Table{Variant: v, Grammar: aug, Collection: coll, Rows: rows}, nil
}

func addAction(rows []map[grammar.Symbol][]Action, state int, sym grammar.Symbol, a Action) {
	for _, existing := range rows[state][sym] {
		if existing.Equal(a) {
			return
		}
	}
	rows[state][sym] = append(rows[state][sym], a)
}

// reduceTerminals returns the terminals a reduction by it.Production is
// registered under, per variant: LR0 reduces under every terminal (plus
// end-of-input), SLR1 under FOLLOW(head), LR1/LALR1 under the item's own
// lookahead set.
func reduceTerminals(v automaton.Variant, g grammar.Grammar, follow grammar.FollowSets, it grammar.LR1Item) []grammar.Symbol {
	switch v {
	case automaton.LR0:
		terms := append([]grammar.Symbol{grammar.EndOfInput}, g.Terminals()...)
		return terms
	case automaton.SLR1:
		set, ok := follow[it.Production.NonTerminal]
		if !ok {
			return nil
		}
		return set.Elements()
	default: // LR1, LALR1
		return it.Lookahead
	}
}

// Conflicts enumerates every (state, symbol) cell with more than one
// registered action, sorted by state then symbol.
func (t Table) Conflicts() []Conflict {
	var out []Conflict
	for stateIdx, row := range t.Rows {
		var syms []grammar.Symbol
		for sym := range row {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			if len(row[sym]) > 1 {
				out = append(out, Conflict{State: stateIdx, Symbol: sym, Actions: row[sym]})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// Action looks up the single resolved action for (state, sym), preferring
// the first one registered (shift/reduce and reduce/reduce ties are
// broken by discovery order, matching the conflict-tolerant Build above).
func (t Table) Action(state int, sym grammar.Symbol) (Action, bool) {
	row, ok := t.Rows[state][sym]
	if !ok || len(row) == 0 {
		return Action{}, false
	}
	return row[0], true
}

// PersistedRows is the subset of a built Table needed to drive a parse
// or re-render its action table without rebuilding the automaton: the
// per-state action rows are all exported-field data and round-trip
// cleanly through a reflection-based binary codec, unlike Table itself
// (whose embedded Grammar and Collection carry unexported state).
type PersistedRows struct {
	Variant automaton.Variant
	Rows    []map[grammar.Symbol][]Action
}

// ForPersist extracts the persistable subset of t.
func (t Table) ForPersist() PersistedRows {
	return PersistedRows{Variant: t.Variant, Rows: t.Rows}
}

// FromPersisted rebuilds a Table from previously persisted rows and the
// augmented grammar they were computed against. The rebuilt Table has no
// Collection; callers that need state/transition rendering must rebuild
// via Build instead.
func FromPersisted(aug grammar.Grammar, p PersistedRows) Table {
	return Table{Variant: p.Variant, Grammar: aug, Rows: p.Rows}
}

// mustGoto is a small helper used by the driver: a Goto action must exist
// after every reduction, or the automaton/grammar pairing is internally
// inconsistent.
func mustGoto(t Table, state int, sym grammar.Symbol) Action {
	a, ok := t.Action(state, sym)
	if !ok || a.Type != Goto {
		cfgerrors.Internalf("missing goto entry for state %d on %s", state, sym)
	}
	return a
}

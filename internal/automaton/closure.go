package automaton

import "github.com/hghwng/cfgtool/internal/grammar"

// itemKey returns the identity key used for dedup of an item under the
// given variant: LR0/SLR1 ignore lookahead entirely, LR1/LALR1 include
// it.
func itemKey(v Variant, it grammar.LR1Item) string {
	if v.usesLookahead() {
		return it.Key()
	}
	return it.CoreKey()
}

// closure computes the smallest superset of seed closed under: if the
// set contains an item with a nonterminal B immediately after the dot,
// then for every production B -> gamma, the item seeded by buildItem is
// in the closure.
//
// Items are deduplicated by itemKey: the LR0 core alone for LR0/SLR1,
// and the core together with its whole lookahead set for LR1/LALR1, so
// under the lookahead-bearing variants one core predicted with two
// different lookahead sets yields two separate items in the result. The
// worklist pass is followed by a fixed-point re-scan that re-predicts
// from every item until no new item appears.
func closure(g grammar.Grammar, first grammar.FirstSets, v Variant, seed []grammar.LR1Item) []grammar.LR1Item {
	order := []string{}
	cores := map[string]grammar.LR0Item{}
	lookaheads := map[string]map[grammar.Symbol]bool{}

	addItem := func(it grammar.LR1Item) bool {
		k := itemKey(v, it)
		if _, ok := cores[k]; !ok {
			cores[k] = it.LR0Item
			lookaheads[k] = map[grammar.Symbol]bool{}
			order = append(order, k)
		}
		grew := false
		for _, la := range it.Lookahead {
			if !lookaheads[k][la] {
				lookaheads[k][la] = true
				grew = true
			}
		}
		return grew
	}

	for _, it := range seed {
		addItem(it)
	}

	for i := 0; i < len(order); i++ {
		k := order[i]
		it := currentItem(cores[k], lookaheads[k])
		sym, ok := it.NextSymbol()
		if !ok || !g.IsNonTerminal(sym) {
			continue
		}
		rule := g.Rule(sym)
		for _, prod := range rule.Productions {
			newItem := buildItem(first, v, it, prod)
			if addItem(newItem) {
				// Make sure the new item is queued for expansion.
				nk := itemKey(v, newItem)
				found := false
				for _, existing := range order {
					if existing == nk {
						found = true
						break
					}
				}
				if !found {
					order = append(order, nk)
				}
			}
		}
	}

	// A lookahead set may have grown after a core was first expanded;
	// do a fixed-point re-scan so every predicted item reflects the
	// union of all lookaheads it was ever assigned.
	changed := true
	for changed {
		changed = false
		for _, k := range order {
			it := currentItem(cores[k], lookaheads[k])
			sym, ok := it.NextSymbol()
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}
			rule := g.Rule(sym)
			for _, prod := range rule.Productions {
				newItem := buildItem(first, v, it, prod)
				if addItem(newItem) {
					changed = true
				}
			}
		}
	}

	out := make([]grammar.LR1Item, 0, len(order))
	for _, k := range order {
		out = append(out, currentItem(cores[k], lookaheads[k]))
	}
	return out
}

func currentItem(core grammar.LR0Item, la map[grammar.Symbol]bool) grammar.LR1Item {
	var lookahead []grammar.Symbol
	for t := range la {
		lookahead = append(lookahead, t)
	}
	return grammar.NewLR1Item(core, lookahead)
}

// partition splits a closed item set: items past the dot form the
// reduce bucket; the rest are grouped by the symbol immediately
// following the dot, in first-seen order.
func partition(items []grammar.LR1Item) (reduceBucket []grammar.LR1Item, groups map[grammar.Symbol][]grammar.LR1Item, order []grammar.Symbol) {
	groups = map[grammar.Symbol][]grammar.LR1Item{}
	for _, it := range items {
		sym, ok := it.NextSymbol()
		if !ok {
			reduceBucket = append(reduceBucket, it)
			continue
		}
		if _, seen := groups[sym]; !seen {
			order = append(order, sym)
		}
		groups[sym] = append(groups[sym], it)
	}
	return reduceBucket, groups, order
}

// gotoKernel advances every item in group past its shared next symbol;
// this is the kernel of the destination state.
func gotoKernel(group []grammar.LR1Item) []grammar.LR1Item {
	out := make([]grammar.LR1Item, len(group))
	for i, it := range group {
		out[i] = it.Advance()
	}
	return out
}

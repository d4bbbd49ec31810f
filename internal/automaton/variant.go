// Package automaton builds the canonical LR item-set collection — the
// closure and goto operations and the worklist-driven canonical
// collection construction — parameterized by a closed LR variant
// strategy, plus the optional LALR(1) core-merge pass.
package automaton

import "github.com/hghwng/cfgtool/internal/grammar"

// Variant is the closed, tagged strategy the state-machine builder is
// parameterized by. There is deliberately no registered-at-runtime
// strategy interface: closure-seeding and reduce-population compare or
// switch on these four constant values.
type Variant int

const (
	LR0 Variant = iota
	SLR1
	LR1
	LALR1
)

func (v Variant) String() string {
	switch v {
	case LR0:
		return "LR(0)"
	case SLR1:
		return "SLR(1)"
	case LR1:
		return "LR(1)"
	case LALR1:
		return "LALR(1)"
	default:
		return "unknown"
	}
}

// usesLookahead reports whether items of this variant carry a meaningful
// lookahead set during closure/goto. LALR1 is built by post-hoc merging
// of the LR1 canonical collection, so its canonical-construction phase
// uses the same lookahead-bearing closure rule as LR1.
func (v Variant) usesLookahead() bool {
	return v == LR1 || v == LALR1
}

// buildItem seeds a new item predicted from parent during closure, for
// production B -> gamma where parent's item is A -> alpha . B beta (with
// lookahead set parent.Lookahead, for variants that carry one).
func buildItem(first grammar.FirstSets, v Variant, parent grammar.LR1Item, prod grammar.Production) grammar.LR1Item {
	core := grammar.LR0Item{Production: prod, Dot: 0}
	if !v.usesLookahead() {
		return grammar.LR1Item{LR0Item: core}
	}

	rest := parent.SymbolsAfterDot()[1:]
	restFirst := first.FirstOfSequence(rest)

	var lookahead []grammar.Symbol
	hasEps := restFirst.Has(grammar.Epsilon)
	for t := range restFirst {
		if t != grammar.Epsilon {
			lookahead = append(lookahead, t)
		}
	}
	if hasEps {
		lookahead = append(lookahead, parent.Lookahead...)
	}
	return grammar.NewLR1Item(core, lookahead)
}

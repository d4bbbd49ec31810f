package automaton

import (
	"github.com/hghwng/cfgtool/internal/cfgerrors"
	"github.com/hghwng/cfgtool/internal/grammar"
)

// coreSetKey is the identity of a state's kernel ignoring lookahead
// entirely — the basis for LALR(1) merging: two LR(1) states merge iff
// their kernels have the same LR(0) cores.
func coreSetKey(kernel []grammar.LR1Item) string {
	return kernelKey(LR0, kernel)
}

// MergeLALR1 takes a canonical LR(1) collection and repeatedly merges
// pairs of states whose kernels share an LR(0) core, unioning their
// lookaheads and rewriting every edge that targeted either state to
// target the merged state, until no two states share a core. It returns
// the merged collection (tagged Variant LALR1) and whether any states
// were actually merged. It does not detect conflicts that merging may
// introduce.
func MergeLALR1(lr1 Collection) (merged Collection, statesMerged bool) {
	if lr1.Variant != LR1 {
		cfgerrors.Internal("MergeLALR1 requires a canonical LR(1) collection")
	}

	groups := map[string][]int{}
	var order []string
	for _, st := range lr1.States {
		k := coreSetKey(st.Kernel)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], st.Index)
	}

	oldToNew := make([]int, len(lr1.States))
	newStates := make([]State, 0, len(order))
	for newIdx, k := range order {
		members := groups[k]
		if len(members) > 1 {
			statesMerged = true
		}

		kernelByCore := map[string]grammar.LR1Item{}
		var kernelOrder []string
		for _, m := range members {
			for _, it := range lr1.States[m].Kernel {
				ck := it.CoreKey()
				if existing, ok := kernelByCore[ck]; ok {
					merged := mergeLookaheadItem(existing, it)
					kernelByCore[ck] = merged
				} else {
					kernelByCore[ck] = it
					kernelOrder = append(kernelOrder, ck)
				}
			}
		}
		var kernel []grammar.LR1Item
		for _, ck := range kernelOrder {
			kernel = append(kernel, kernelByCore[ck])
		}

		for _, m := range members {
			oldToNew[m] = newIdx
		}
		newStates = append(newStates, State{Index: newIdx, Kernel: kernel})
	}

	// Recompute closures/reduce buckets for the merged kernels. We don't
	// have the grammar/first sets here by design (MergeLALR1 only
	// rewrites the collection's shape); callers that need closures
	// recomputed call automaton.Recompute.
	var newEdges []Edge
	seen := map[[2]interface{}]bool{}
	for _, e := range lr1.Edges {
		from := oldToNew[e.From]
		to := oldToNew[e.To]
		key := [2]interface{}{from, e.Symbol}
		if seen[key] {
			continue
		}
		seen[key] = true
		newEdges = append(newEdges, Edge{From: from, Symbol: e.Symbol, To: to})
	}

	return Collection{Variant: LALR1, States: newStates, Edges: newEdges}, statesMerged
}

func mergeLookaheadItem(a, b grammar.LR1Item) grammar.LR1Item {
	merged := append(append([]grammar.Symbol(nil), a.Lookahead...), b.Lookahead...)
	return grammar.NewLR1Item(a.LR0Item, merged)
}

// Recompute rebuilds Closure/NonKernel/ReduceBucket for every state of a
// collection whose Kernel fields are already final (used after
// MergeLALR1, whose merge pass only has the kernels/edges to work with).
func Recompute(g grammar.Grammar, first grammar.FirstSets, c Collection) Collection {
	out := Collection{Variant: c.Variant, Edges: c.Edges}
	for _, st := range c.States {
		closed := closure(g, first, c.Variant, st.Kernel)
		reduceBucket, _, _ := partition(closed)

		kernelSet := map[string]bool{}
		for _, it := range st.Kernel {
			kernelSet[itemKey(c.Variant, it)] = true
		}
		var nonKernel []grammar.LR1Item
		for _, it := range closed {
			if !kernelSet[itemKey(c.Variant, it)] {
				nonKernel = append(nonKernel, it)
			}
		}
		st.Closure = closed
		st.NonKernel = nonKernel
		st.ReduceBucket = reduceBucket
		out.States = append(out.States, st)
	}
	return out
}

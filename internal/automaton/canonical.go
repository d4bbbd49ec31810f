package automaton

import (
	"sort"
	"strings"

	"github.com/hghwng/cfgtool/internal/grammar"
)

// State is one entry of the canonical collection: an immutable kernel
// (the seed set that defines the state's identity) and the closure
// computed from it, grouped by transition symbol.
type State struct {
	Index        int
	Kernel       []grammar.LR1Item
	Closure      []grammar.LR1Item
	NonKernel    []grammar.LR1Item // Closure minus Kernel, for display
	ReduceBucket []grammar.LR1Item
}

// Edge is one outgoing transition of the canonical collection.
type Edge struct {
	From   int
	Symbol grammar.Symbol
	To     int
}

// Collection is the canonical item-set automaton: a set of states and
// the edges between them, plus the variant it was built under.
type Collection struct {
	Variant Variant
	States  []State
	Edges   []Edge
}

// kernelKey is the canonical identity of a kernel: the sorted item keys
// joined together. Two kernels are the same state iff their kernelKeys
// match.
func kernelKey(v Variant, kernel []grammar.LR1Item) string {
	keys := make([]string, len(kernel))
	for i, it := range kernel {
		keys[i] = itemKey(v, it)
	}
	sort.Strings(keys)
	return strings.Join(keys, "||")
}

// Build constructs the canonical collection for the augmented grammar g
// under variant v (which must be LR0, SLR1, or LR1 — LALR1 collections
// are produced by MergeLALR1 applied to an LR1 collection, not built
// directly here). g must already be augmented (see grammar.Augmented).
func Build(g grammar.Grammar, first grammar.FirstSets, v Variant) Collection {
	startProd := g.Rule(g.StartSymbol()).Productions[0]
	seedCore := grammar.LR0Item{Production: startProd, Dot: 0}
	var seedLookahead []grammar.Symbol
	if v.usesLookahead() {
		seedLookahead = []grammar.Symbol{grammar.EndOfInput}
	}
	seedKernel := []grammar.LR1Item{grammar.NewLR1Item(seedCore, seedLookahead)}

	var kernels [][]grammar.LR1Item
	keyToIndex := map[string]int{}

	findOrAdd := func(kernel []grammar.LR1Item) int {
		k := kernelKey(v, kernel)
		if idx, ok := keyToIndex[k]; ok {
			return idx
		}
		idx := len(kernels)
		keyToIndex[k] = idx
		kernels = append(kernels, kernel)
		return idx
	}
	findOrAdd(seedKernel)

	var states []State
	var edges []Edge

	for idx := 0; idx < len(kernels); idx++ {
		kernel := kernels[idx]
		closed := closure(g, first, v, kernel)
		reduceBucket, groups, order := partition(closed)

		kernelSet := map[string]bool{}
		for _, it := range kernel {
			kernelSet[itemKey(v, it)] = true
		}
		var nonKernel []grammar.LR1Item
		for _, it := range closed {
			if !kernelSet[itemKey(v, it)] {
				nonKernel = append(nonKernel, it)
			}
		}

		for _, sym := range order {
			destKernel := gotoKernel(groups[sym])
			destIdx := findOrAdd(destKernel)
			edges = append(edges, Edge{From: idx, Symbol: sym, To: destIdx})
		}

		states = append(states, State{
			Index:        idx,
			Kernel:       kernel,
			Closure:      closed,
			NonKernel:    nonKernel,
			ReduceBucket: reduceBucket,
		})
	}

	return Collection{Variant: v, States: states, Edges: edges}
}

// EdgesFrom returns the outgoing edges of state idx, in the order they
// were discovered.
func (c Collection) EdgesFrom(idx int) []Edge {
	var out []Edge
	for _, e := range c.Edges {
		if e.From == idx {
			out = append(out, e)
		}
	}
	return out
}

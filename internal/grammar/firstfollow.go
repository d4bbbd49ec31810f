package grammar

import "github.com/hghwng/cfgtool/internal/util"

// FirstSets maps every terminal, nonterminal, and epsilon to its FIRST
// set. FIRST of a terminal is the singleton of itself; FIRST(Epsilon) is
// {Epsilon}.
type FirstSets map[Symbol]util.StringSet

// FollowSets maps every nonterminal to its FOLLOW set.
type FollowSets map[Symbol]util.StringSet

// FIRST computes FIRST for every terminal and nonterminal by fixed-point
// iteration: walk each production body left to right, unioning in
// FIRST(Xi)\{@} and stopping at the first symbol whose FIRST set lacks
// epsilon; if the walk exhausts the body, epsilon is added to FIRST(N).
func (g Grammar) FIRST() FirstSets {
	first := make(FirstSets)
	first[Epsilon] = util.StringSetOf([]string{Epsilon})
	for _, t := range g.Terminals() {
		first[t] = util.StringSetOf([]string{t})
	}
	for _, nt := range g.order {
		first[nt] = util.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.order {
			for _, p := range g.rules[nt].Productions {
				if p.IsEpsilon() {
					if !first[nt].Has(Epsilon) {
						first[nt].Add(Epsilon)
						changed = true
					}
					continue
				}
				stoppedEarly := false
				for _, sym := range p.Body {
					symFirst := first[sym]
					before := first[nt].Len()
					for t := range symFirst {
						if t != Epsilon {
							first[nt].Add(t)
						}
					}
					if first[nt].Len() != before {
						changed = true
					}
					if !symFirst.Has(Epsilon) {
						stoppedEarly = true
						break
					}
				}
				if !stoppedEarly {
					if !first[nt].Has(Epsilon) {
						first[nt].Add(Epsilon)
						changed = true
					}
				}
			}
		}
	}
	return first
}

// FirstOfSequence is the derived FIRST(alpha) operation for an arbitrary
// sequence of symbols; it returns {@} for an empty sequence.
func (first FirstSets) FirstOfSequence(seq []Symbol) util.StringSet {
	result := util.StringSetOf([]string{Epsilon})
	for _, sym := range seq {
		for t := range first[sym] {
			result.Add(t)
		}
		if !first[sym].Has(Epsilon) {
			result.Remove(Epsilon)
			return result
		}
	}
	return result
}

// FOLLOW computes FOLLOW for every nonterminal given a precomputed FIRST.
// Seed: FOLLOW(start) = {$}. Rule: for A -> alpha B beta, union
// FIRST(beta)\{@} into FOLLOW(B); if @ in FIRST(beta) (including empty
// beta), also union FOLLOW(A) into FOLLOW(B).
func (g Grammar) FOLLOW(first FirstSets) FollowSets {
	follow := make(FollowSets)
	for _, nt := range g.order {
		follow[nt] = util.NewStringSet()
	}
	follow[g.start] = util.StringSetOf([]string{EndOfInput})

	changed := true
	for changed {
		changed = false
		for _, nt := range g.order {
			for _, p := range g.rules[nt].Productions {
				for i, sym := range p.Body {
					if !g.IsNonTerminal(sym) {
						continue
					}
					rest := p.Body[i+1:]
					restFirst := first.FirstOfSequence(rest)
					before := follow[sym].Len()
					for t := range restFirst {
						if t != Epsilon {
							follow[sym].Add(t)
						}
					}
					if restFirst.Has(Epsilon) {
						for t := range follow[nt] {
							follow[sym].Add(t)
						}
					}
					if follow[sym].Len() != before {
						changed = true
					}
				}
			}
		}
	}
	return follow
}

package grammar

// RemoveLeftRecursion returns a new grammar, equivalent in language to
// the receiver, with no direct or indirect left recursion, built via
// Paull's algorithm over the receiver's nonterminal insertion order. The
// receiver is left untouched; the terminal set is not recomputed, since
// every symbol this transform introduces is either Epsilon or a freshly
// minted nonterminal.
func (g Grammar) RemoveLeftRecursion() Grammar {
	out := g.Copy()
	nterms := append([]Symbol(nil), out.order...)

	for i, elim := range nterms {
		prods := out.rules[elim].Productions
		prods = eliminateIndirect(&out, elim, nterms[:i], prods)
		prods = eliminateDirect(&out, elim, prods)
		out.rules[elim].Productions = prods
	}
	return out
}

// eliminateIndirect substitutes away any Ai-production that begins with
// some earlier nonterminal Aj, replacing it with one production per
// current Aj-production. The earlier nonterminals are taken in order and
// each is applied to the productions as the previous substitutions left
// them, so a substituted production that begins with a later Aj is
// substituted again. Productions not headed by an earlier nonterminal
// are preserved verbatim.
func eliminateIndirect(g *Grammar, elim Symbol, earlier []Symbol, prods []Production) []Production {
	for _, chk := range earlier {
		chkProds := g.rules[chk].Productions
		replaced := make([]bool, len(prods))
		var out []Production
		for idx, p := range prods {
			if len(p.Body) == 0 || p.Body[0] != chk {
				continue
			}
			for _, chkProd := range chkProds {
				newBody := append(append([]Symbol(nil), chkProd.Body...), p.Body[1:]...)
				out = append(out, NewProduction(elim, newBody))
			}
			replaced[idx] = true
		}
		for idx, p := range prods {
			if !replaced[idx] {
				out = append(out, p)
			}
		}
		prods = out
	}
	return prods
}

// eliminateDirect partitions elim's current productions into
// left-recursive (elim -> elim alpha) and the rest (elim -> beta). If
// there is no direct recursion, the productions are returned unchanged.
// Otherwise a fresh nonterminal elim' is minted; each elim -> elim alpha
// becomes elim' -> alpha elim', plus elim' -> @; each remaining
// elim -> beta becomes elim -> beta elim'.
//
// Degenerate case: if elim has no non-recursive alternative at all (every
// production is left-recursive, e.g. a lone A -> A a), the transform
// below still mints elim' and still moves every production over to it,
// so elim itself ends up with zero productions and all its mass becomes
// unreachable. Per the recorded Open Question decision in DESIGN.md,
// this implementation does not special-case that input: an empty row is
// the visible symptom of a pathological grammar and is left for the
// caller's own Validate/FIRST-soundness checks to surface.
func eliminateDirect(g *Grammar, elim Symbol, prods []Production) []Production {
	var recursive, rest []Production
	for _, p := range prods {
		if len(p.Body) > 0 && p.Body[0] == elim {
			recursive = append(recursive, p)
		} else {
			rest = append(rest, p)
		}
	}
	if len(recursive) == 0 {
		return rest
	}

	newNT := g.GenerateUniqueNonterminal(elim)

	var newNTProds []Production
	for _, p := range recursive {
		body := append(append([]Symbol(nil), p.Body[1:]...), newNT)
		newNTProds = append(newNTProds, NewProduction(newNT, body))
	}
	newNTProds = append(newNTProds, NewProduction(newNT, []Symbol{Epsilon}))
	g.rules[newNT] = &Rule{NonTerminal: newNT, Productions: newNTProds}
	g.order = append(g.order, newNT)

	out := make([]Production, 0, len(rest))
	for _, p := range rest {
		body := append(append([]Symbol(nil), p.Body...), newNT)
		out = append(out, NewProduction(elim, body))
	}
	return out
}

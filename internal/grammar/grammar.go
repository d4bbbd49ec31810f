// Package grammar implements the core analysis engine over context-free
// grammars: the symbol/production/rule data model, the FIRST/FOLLOW
// fixed-point computations, the LL(1) table builder, Paull's
// left-recursion elimination, and the LR(0)/LR(1) item model that the
// sibling automaton and lr packages build on.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hghwng/cfgtool/internal/util"
)

// Rule is the set of productions sharing one nonterminal head. Order of
// Productions is insertion order and is stable and observable in table
// output.
type Rule struct {
	NonTerminal Symbol
	Productions []Production
}

// String renders the rule as "HEAD -> alt1 | alt2 | ...".
func (r Rule) String() string {
	alts := make([]string, len(r.Productions))
	for i, p := range r.Productions {
		alts[i] = strings.Join(p.Body, " ")
	}
	return r.NonTerminal + " -> " + strings.Join(alts, " | ")
}

// Grammar is five fields: a start symbol, a set of terminals, an
// insertion-ordered map from nonterminal to its Rule, plus the
// operations to mint fresh nonterminal names and deep-duplicate. The
// zero value is a usable, empty Grammar.
type Grammar struct {
	start Symbol
	terms util.StringSet
	rules map[Symbol]*Rule
	order []Symbol
}

func (g *Grammar) init() {
	if g.terms == nil {
		g.terms = util.NewStringSet()
	}
	if g.rules == nil {
		g.rules = make(map[Symbol]*Rule)
	}
}

// AddTerm registers id as a terminal symbol.
func (g *Grammar) AddTerm(id Symbol) {
	g.init()
	g.terms.Add(id)
}

// AddRule adds a single production to the rule for nonTerminal, creating
// the rule (and, if no start symbol has been set yet, setting start to
// nonTerminal) if this is the first production seen for that head.
func (g *Grammar) AddRule(nonTerminal Symbol, p Production) {
	g.init()
	p.NonTerminal = nonTerminal
	if g.start == "" {
		g.start = nonTerminal
	}
	r, ok := g.rules[nonTerminal]
	if !ok {
		r = &Rule{NonTerminal: nonTerminal}
		g.rules[nonTerminal] = r
		g.order = append(g.order, nonTerminal)
	}
	r.Productions = append(r.Productions, p)
}

// SetRule replaces the entire production list for nonTerminal, preserving
// its position in insertion order if it already existed.
func (g *Grammar) SetRule(nonTerminal Symbol, prods []Production) {
	g.init()
	for i := range prods {
		prods[i].NonTerminal = nonTerminal
	}
	if _, ok := g.rules[nonTerminal]; !ok {
		g.order = append(g.order, nonTerminal)
	}
	g.rules[nonTerminal] = &Rule{NonTerminal: nonTerminal, Productions: prods}
}

// StartSymbol returns the grammar's start symbol.
func (g Grammar) StartSymbol() Symbol {
	return g.start
}

// SetStart overrides the start symbol directly; used by Augmented.
func (g *Grammar) SetStart(s Symbol) {
	g.start = s
}

// Rule returns the rule for the given nonterminal, or the zero Rule if
// none exists.
func (g Grammar) Rule(nonTerminal Symbol) Rule {
	if g.rules == nil {
		return Rule{}
	}
	if r, ok := g.rules[nonTerminal]; ok {
		return *r
	}
	return Rule{}
}

// NonTerminals returns the nonterminal names in insertion order.
func (g Grammar) NonTerminals() []Symbol {
	out := make([]Symbol, len(g.order))
	copy(out, g.order)
	return out
}

// Terminals returns the terminal names, sorted for stable output.
func (g Grammar) Terminals() []Symbol {
	if g.terms == nil {
		return nil
	}
	out := g.terms.Elements()
	sort.Strings(out)
	return out
}

// IsTerminal reports whether sym is a registered terminal.
func (g Grammar) IsTerminal(sym Symbol) bool {
	return g.terms != nil && g.terms.Has(sym)
}

// IsNonTerminal reports whether sym has a rule of its own.
func (g Grammar) IsNonTerminal(sym Symbol) bool {
	_, ok := g.rules[sym]
	return ok
}

// Productions returns every production in the grammar, in (nonterminal
// insertion order, production insertion order) iteration order.
func (g Grammar) Productions() []Production {
	var out []Production
	for _, nt := range g.order {
		out = append(out, g.rules[nt].Productions...)
	}
	return out
}

// Copy returns an independent deep duplicate of the grammar: mutating the
// copy never affects the receiver.
func (g Grammar) Copy() Grammar {
	cp := Grammar{start: g.start}
	cp.init()
	for t := range g.terms {
		cp.terms.Add(t)
	}
	for _, nt := range g.order {
		r := g.rules[nt]
		prodsCopy := make([]Production, len(r.Productions))
		for i, p := range r.Productions {
			bodyCopy := make([]Symbol, len(p.Body))
			copy(bodyCopy, p.Body)
			prodsCopy[i] = Production{NonTerminal: p.NonTerminal, Body: bodyCopy}
		}
		cp.rules[nt] = &Rule{NonTerminal: nt, Productions: prodsCopy}
		cp.order = append(cp.order, nt)
	}
	return cp
}

// GenerateUniqueNonterminal mints a fresh nonterminal name derived from
// base by repeatedly suffixing a prime (') until the name is not already
// in use as a nonterminal.
func (g Grammar) GenerateUniqueNonterminal(base Symbol) Symbol {
	candidate := base + "'"
	for g.IsNonTerminal(candidate) {
		candidate += "'"
	}
	return candidate
}

// Validate checks the structural invariants of the data model: every
// symbol appearing in any production body is a terminal, a nonterminal,
// or epsilon; the start symbol is a nonterminal.
func (g Grammar) Validate() error {
	if g.start == "" {
		return fmt.Errorf("grammar has no start symbol")
	}
	if !g.IsNonTerminal(g.start) {
		return fmt.Errorf("start symbol %q is not a nonterminal", g.start)
	}
	seen := util.NewStringSet()
	var undeclared []string
	for _, nt := range g.order {
		for _, p := range g.rules[nt].Productions {
			for _, sym := range p.Body {
				if sym == Epsilon {
					continue
				}
				if g.IsTerminal(sym) || g.IsNonTerminal(sym) {
					continue
				}
				if !seen.Has(string(sym)) {
					seen.Add(string(sym))
					undeclared = append(undeclared, fmt.Sprintf("%q", sym))
				}
			}
		}
	}
	if len(undeclared) > 0 {
		return fmt.Errorf("grammar references undeclared symbol(s) %s", util.MakeTextList(undeclared))
	}
	return nil
}

// Augmented returns a new grammar with a fresh start symbol !S (or a
// primed variant if !S somehow collides) and a single production
// !S -> S where S is the receiver's start symbol.
func (g Grammar) Augmented() Grammar {
	cp := g.Copy()
	newStart := AugmentedStart
	for cp.IsNonTerminal(newStart) {
		newStart += "'"
	}
	cp.order = append([]Symbol{newStart}, cp.order...)
	cp.rules[newStart] = &Rule{
		NonTerminal: newStart,
		Productions: []Production{NewProduction(newStart, []Symbol{g.start})},
	}
	cp.start = newStart
	return cp
}

package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// LR0Item is a production plus a dot position in [0, |body|]. A
// production whose normalized body is [Epsilon] behaves as though its
// body were empty: the dot starts and ends at position 0 and
// SymbolsAfterDot always returns nil for it.
type LR0Item struct {
	Production Production
	Dot        int
}

// SymbolsAfterDot returns the tail of the body starting at the dot.
func (it LR0Item) SymbolsAfterDot() []Symbol {
	if it.Production.IsEpsilon() {
		return nil
	}
	if it.Dot >= len(it.Production.Body) {
		return nil
	}
	return it.Production.Body[it.Dot:]
}

// NextSymbol returns the symbol immediately after the dot and true, or
// ("", false) if the item is reducing.
func (it LR0Item) NextSymbol() (Symbol, bool) {
	after := it.SymbolsAfterDot()
	if len(after) == 0 {
		return "", false
	}
	return after[0], true
}

// IsReducing reports whether the dot is past the last non-epsilon
// symbol of the body.
func (it LR0Item) IsReducing() bool {
	_, ok := it.NextSymbol()
	return !ok
}

// Advance returns the item with the dot moved one position to the
// right.
func (it LR0Item) Advance() LR0Item {
	return LR0Item{Production: it.Production, Dot: it.Dot + 1}
}

// Equal reports whether two LR0Items have the same production and dot
// position.
func (it LR0Item) Equal(o LR0Item) bool {
	return it.Dot == o.Dot && it.Production.Equal(o.Production)
}

// Key is a canonical string identity for the item, suitable for use as a
// set/map key.
func (it LR0Item) Key() string {
	return fmt.Sprintf("%s|%d", it.Production.key(), it.Dot)
}

func (it LR0Item) String() string {
	syms := append([]Symbol(nil), it.Production.Body...)
	pos := it.Dot
	if it.Production.IsEpsilon() {
		syms = nil
		pos = 0
	}
	dotted := make([]string, 0, len(syms)+1)
	dotted = append(dotted, syms[:pos]...)
	dotted = append(dotted, ".")
	dotted = append(dotted, syms[pos:]...)
	return fmt.Sprintf("%s -> %s", it.Production.NonTerminal, strings.Join(dotted, " "))
}

// LR1Item is an LR0Item plus an immutable lookahead set of terminals.
// Equality and hashing include the lookahead.
type LR1Item struct {
	LR0Item
	Lookahead []Symbol // sorted, deduplicated
}

// NewLR1Item builds an LR1Item with a normalized (sorted, deduplicated)
// lookahead set.
func NewLR1Item(core LR0Item, lookahead []Symbol) LR1Item {
	return LR1Item{LR0Item: core, Lookahead: normalizeLookahead(lookahead)}
}

func normalizeLookahead(in []Symbol) []Symbol {
	seen := map[Symbol]bool{}
	var out []Symbol
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Advance returns the item with the dot moved one position right,
// keeping the same lookahead.
func (it LR1Item) Advance() LR1Item {
	return LR1Item{LR0Item: it.LR0Item.Advance(), Lookahead: it.Lookahead}
}

// Equal reports whether two LR1Items have equal cores and equal
// (normalized) lookahead sets.
func (it LR1Item) Equal(o LR1Item) bool {
	if !it.LR0Item.Equal(o.LR0Item) {
		return false
	}
	if len(it.Lookahead) != len(o.Lookahead) {
		return false
	}
	for i := range it.Lookahead {
		if it.Lookahead[i] != o.Lookahead[i] {
			return false
		}
	}
	return true
}

// Key is a canonical string identity for the item including its
// lookahead, suitable for use as a set/map key.
func (it LR1Item) Key() string {
	return it.LR0Item.Key() + "|" + strings.Join(it.Lookahead, ",")
}

// CoreKey is the identity of the item ignoring lookahead: two LR1Items
// sharing a CoreKey belong to the same LR(0) core, the basis for LALR(1)
// state merging.
func (it LR1Item) CoreKey() string {
	return it.LR0Item.Key()
}

func (it LR1Item) String() string {
	return fmt.Sprintf("%s, %s", it.LR0Item.String(), strings.Join(it.Lookahead, "/"))
}

package grammar

import "strings"

// Production is a nonterminal head plus an ordered sequence of body
// symbols. Use NewProduction to get the normalization rule applied; the
// zero value is only useful as a comparison target.
type Production struct {
	NonTerminal Symbol
	Body        []Symbol
}

// NewProduction builds a Production from a head and a raw body, applying
// the epsilon-normalization rule: a body containing any epsilon symbols
// is rewritten to either [Epsilon] (if every symbol is epsilon) or the
// sequence with all epsilon symbols removed.
func NewProduction(head Symbol, body []Symbol) Production {
	return Production{NonTerminal: head, Body: removeEpsilons(body)}
}

func removeEpsilons(body []Symbol) []Symbol {
	allEps := true
	for _, s := range body {
		if s != Epsilon {
			allEps = false
			break
		}
	}
	if allEps {
		return []Symbol{Epsilon}
	}

	out := make([]Symbol, 0, len(body))
	for _, s := range body {
		if s != Epsilon {
			out = append(out, s)
		}
	}
	return out
}

// IsEpsilon reports whether the production body is the normalized empty
// body [Epsilon].
func (p Production) IsEpsilon() bool {
	return len(p.Body) == 1 && p.Body[0] == Epsilon
}

// Equal reports whether two productions have the same head and, after
// normalization, the same body.
func (p Production) Equal(o Production) bool {
	return p.key() == o.key()
}

func (p Production) key() string {
	var sb strings.Builder
	sb.WriteString(p.NonTerminal)
	sb.WriteString(" -> ")
	sb.WriteString(strings.Join(p.Body, " "))
	return sb.String()
}

// String renders the production in dot-free "HEAD -> sym1 sym2" form.
func (p Production) String() string {
	return p.key()
}

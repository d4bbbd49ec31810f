package grammar

import (
	"fmt"

	"github.com/hghwng/cfgtool/internal/cfgerrors"
)

// LL1TraceKind distinguishes the steps a driver callback is notified of.
type LL1TraceKind int

const (
	LL1TraceInit LL1TraceKind = iota
	LL1TraceMatch
	LL1TraceOutput
)

// LL1TraceEvent is one step of a predictive parse, handed to the
// driver's trace callback. Stack/Cursor reflect state *after* the step
// (Init reflects the initial state before any input is consumed).
type LL1TraceEvent struct {
	Kind       LL1TraceKind
	Stack      []Symbol
	Cursor     int
	Terminal   Symbol     // set for Match
	Production Production // set for Output
}

// ParseLL1 drives the table-based predictive parser described in the
// component design: a stack seeded with the start symbol, popping a
// terminal on match or a nonterminal's chosen production's body (reversed)
// on output, until the stack empties. Input left unconsumed when the
// stack empties is not an error: the parse ends there and nil is
// returned. trace, if non-nil, is invoked for the initial state and
// every subsequent step.
func ParseLL1(table LL1Table, start Symbol, input []Symbol, trace func(LL1TraceEvent)) error {
	stack := []Symbol{start}
	cursor := 0

	emit := func(ev LL1TraceEvent) {
		if trace != nil {
			trace(ev)
		}
	}
	emit(LL1TraceEvent{Kind: LL1TraceInit, Stack: append([]Symbol(nil), stack...), Cursor: cursor})

	isTerminal := func(sym Symbol) bool {
		_, isNonTerm := table.rows[sym]
		return !isNonTerm
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		a := EndOfInput
		if cursor < len(input) {
			a = input[cursor]
		}

		if isTerminal(top) {
			if top != a {
				return cfgerrors.Parsef(cursor, top, "expected terminal %q, got %q", top, a)
			}
			stack = stack[:len(stack)-1]
			cursor++
			emit(LL1TraceEvent{Kind: LL1TraceMatch, Stack: append([]Symbol(nil), stack...), Cursor: cursor, Terminal: a})
			continue
		}

		prod, ok := table.Get(top, a)
		if !ok {
			return cfgerrors.Parsef(cursor, top, "no production for (%s, %s)", top, a)
		}
		stack = stack[:len(stack)-1]
		if !prod.IsEpsilon() {
			for i := len(prod.Body) - 1; i >= 0; i-- {
				stack = append(stack, prod.Body[i])
			}
		}
		emit(LL1TraceEvent{Kind: LL1TraceOutput, Stack: append([]Symbol(nil), stack...), Cursor: cursor, Production: prod})
	}
	return nil
}

func (e LL1TraceEvent) String() string {
	switch e.Kind {
	case LL1TraceMatch:
		return fmt.Sprintf("match  %s", e.Terminal)
	case LL1TraceOutput:
		return fmt.Sprintf("output %s", e.Production)
	default:
		return "init"
	}
}

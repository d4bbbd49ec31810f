package lr

import (
	"fmt"
	"strings"

	"github.com/hghwng/cfgtool/internal/cfgerrors"
	"github.com/hghwng/cfgtool/internal/grammar"
)

// TraceKind distinguishes the three events an LR driver run emits.
type TraceKind int

const (
	TraceShift TraceKind = iota
	TraceReduce
	TraceAccept
)

// TraceEvent is one step of an LR parse, handed to the caller's trace
// callback so a driver run can be rendered or logged without the driver
// itself knowing how.
type TraceEvent struct {
	Kind       TraceKind
	States     []int
	Cursor     int
	Terminal   grammar.Symbol
	Production grammar.Production
}

func (e TraceEvent) String() string {
	switch e.Kind {
	case TraceShift:
		return fmt.Sprintf("shift %s, states=%v", e.Terminal, e.States)
	case TraceReduce:
		return fmt.Sprintf("reduce %s, states=%v", e.Production, e.States)
	case TraceAccept:
		return "accept"
	default:
		return "?"
	}
}

// Parse drives table against input using the classic two-stack (state
// stack + symbol stack) shift-reduce algorithm: on Shift, push the
// terminal and the destination state and advance the cursor; on Reduce,
// pop |body| symbols/states, push the production's head, and consult the
// Goto entry for the state now exposed; on Accept, stop. trace, if
// non-nil, is invoked after every step.
func Parse(table Table, input []grammar.Symbol, trace func(TraceEvent)) error {
	stateStack := []int{0}
	var symbolStack []grammar.Symbol
	cursor := 0

	lookahead := func() grammar.Symbol {
		if cursor < len(input) {
			return input[cursor]
		}
		return grammar.EndOfInput
	}

	for {
		top := stateStack[len(stateStack)-1]
		term := lookahead()
		action, ok := table.Action(top, term)
		if !ok {
			return cfgerrors.Parsef(cursor, stateLabel(stateStack), "no action for %q in state %d", term, top)
		}

		switch action.Type {
		case Shift:
			symbolStack = append(symbolStack, term)
			stateStack = append(stateStack, action.State)
			cursor++
			if trace != nil {
				trace(TraceEvent{Kind: TraceShift, States: append([]int(nil), stateStack...), Cursor: cursor, Terminal: term})
			}

		case Reduce:
			n := len(action.Production.Body)
			if action.Production.IsEpsilon() {
				n = 0
			}
			stateStack = stateStack[:len(stateStack)-n]
			symbolStack = symbolStack[:len(symbolStack)-n]

			exposed := stateStack[len(stateStack)-1]
			gotoAction := mustGoto(table, exposed, action.Production.NonTerminal)
			symbolStack = append(symbolStack, action.Production.NonTerminal)
			stateStack = append(stateStack, gotoAction.State)

			if trace != nil {
				trace(TraceEvent{Kind: TraceReduce, States: append([]int(nil), stateStack...), Cursor: cursor, Production: action.Production})
			}

		case Accept:
			if trace != nil {
				trace(TraceEvent{Kind: TraceAccept, States: append([]int(nil), stateStack...), Cursor: cursor})
			}
			return nil

		default:
			cfgerrors.Internalf("unexpected action type %v encountered by driver", action.Type)
		}
	}
}

func stateLabel(stack []int) string {
	parts := make([]string, len(stack))
	for i, s := range stack {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, " ")
}

// Package lr builds the variant-parameterized LR action/goto table from
// a canonical item-set collection and drives the resulting table against
// a token stream.
package lr

import (
	"fmt"

	"github.com/hghwng/cfgtool/internal/grammar"
)

// ActionType distinguishes the four action-table entry kinds.
type ActionType int

const (
	Shift ActionType = iota
	Reduce
	Goto
	Accept
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Goto:
		return "goto"
	case Accept:
		return "accept"
	default:
		return "?"
	}
}

// Action is one action-table entry: Shift(State), Goto(State),
// Reduce(Production), or Accept.
type Action struct {
	Type       ActionType
	State      int
	Production grammar.Production
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("s%d", a.State)
	case Goto:
		return fmt.Sprintf("%d", a.State)
	case Reduce:
		return fmt.Sprintf("r(%s)", a.Production)
	case Accept:
		return "acc"
	default:
		return "?"
	}
}

func (a Action) Equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case Shift, Goto:
		return a.State == o.State
	case Reduce:
		return a.Production.Equal(o.Production)
	default:
		return true
	}
}

// Conflict records every action competing for one (state, symbol) cell
// once more than one action is registered there.
type Conflict struct {
	State   int
	Symbol  grammar.Symbol
	Actions []Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("state %d, %s: %v", c.State, c.Symbol, c.Actions)
}

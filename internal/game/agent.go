package game

import "github.com/lox/holdem-sim/internal/deck"

// DecisionRequest is the read-only view handed to a decision source.
// It carries the acting seat's own hole cards only; other seats'
// cards are never exposed.
type DecisionRequest struct {
	Name      string
	Street    Street
	Hole      []deck.Card
	Board     []deck.Card
	Stacks    map[string]int
	Pot       int
	Order     []string // live seats in rotation order
	ToCall    int
	Opened    bool
	LastRaise int
	MinBet    int
}

// Agent is any decision source for a seat: a human at the terminal, a
// rule bot, or a proxy to an external service. The call is synchronous
// and may block for arbitrarily long; implementations must return
// *some* proposal even on internal failure. The returned action is
// free-form text and is always passed through Normalize before it is
// trusted.
type Agent interface {
	Decide(req DecisionRequest) (action string, amount int)
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(req DecisionRequest) (string, int)

func (f AgentFunc) Decide(req DecisionRequest) (string, int) {
	return f(req)
}

package agent

import (
	"github.com/lox/holdem-sim/internal/game"
)

// CallAgent checks when it can and calls when it must, with one
// exception: it lets go of the hand when the river bet is most of its
// stack. Useful as a calibration opponent.
type CallAgent struct{}

func NewCallAgent() *CallAgent {
	return &CallAgent{}
}

func (c *CallAgent) Decide(req game.DecisionRequest) (string, int) {
	if req.ToCall == 0 {
		return "check", 0
	}
	if req.Street == game.River {
		if stack := req.Stacks[req.Name]; req.ToCall*2 > stack {
			return "fold", 0
		}
	}
	return "call", 0
}

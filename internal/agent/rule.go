package agent

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
	"github.com/lox/holdem-sim/internal/game"
)

// strength is a coarse hand-strength bucket driving the rule tables
type strength int

const (
	veryWeak strength = iota
	weak
	medium
	strong
	veryStrong
)

func (s strength) String() string {
	return [...]string{"very weak", "weak", "medium", "strong", "very strong"}[s]
}

// RuleAgent plays a straightforward strength-based strategy: bucket
// the hand, bet the strong buckets, call with the medium ones when the
// price is right, and let the rest go. A pinch of randomness keeps it
// from being perfectly exploitable by the other rule bots.
type RuleAgent struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRuleAgent creates a rule-based decision source
func NewRuleAgent(rng *rand.Rand, logger *log.Logger) *RuleAgent {
	return &RuleAgent{rng: rng, logger: logger.WithPrefix("rulebot")}
}

func (r *RuleAgent) Decide(req game.DecisionRequest) (string, int) {
	s := r.bucket(req)
	stack := req.Stacks[req.Name]

	r.logger.Debug("rule decision",
		"seat", req.Name,
		"street", req.Street,
		"hole", deck.FormatCards(req.Hole),
		"strength", s,
		"toCall", req.ToCall,
		"pot", req.Pot)

	if req.ToCall == 0 && !req.Opened {
		switch {
		case s >= strong:
			return "bet", r.betSize(req, stack)
		case s == medium && r.rng.Intn(3) == 0:
			return "bet", req.MinBet
		default:
			return "check", 0
		}
	}

	switch {
	case s == veryStrong:
		if r.rng.Intn(4) == 0 {
			return "all-in", 0
		}
		return "raise", req.ToCall + r.raiseSize(req)
	case s == strong:
		return "call", 0
	case s == medium && r.priceIsRight(req, stack):
		return "call", 0
	default:
		return "fold", 0
	}
}

// betSize targets roughly half pot, bounded by the table minimum and
// the stack.
func (r *RuleAgent) betSize(req game.DecisionRequest, stack int) int {
	size := req.Pot / 2
	if size < req.MinBet {
		size = req.MinBet
	}
	if size > stack {
		size = stack
	}
	return size
}

func (r *RuleAgent) raiseSize(req game.DecisionRequest) int {
	size := req.Pot / 2
	if size < req.LastRaise {
		size = req.LastRaise
	}
	return size
}

// priceIsRight accepts a call when it is small relative to the pot or
// to the remaining stack.
func (r *RuleAgent) priceIsRight(req game.DecisionRequest, stack int) bool {
	if req.ToCall*4 <= req.Pot {
		return true
	}
	return req.ToCall*10 <= stack
}

func (r *RuleAgent) bucket(req game.DecisionRequest) strength {
	if len(req.Hole) != 2 {
		return veryWeak
	}
	if len(req.Board) >= 3 {
		return r.postflopBucket(req)
	}
	return preflopBucket(req.Hole[0], req.Hole[1])
}

func preflopBucket(c1, c2 deck.Card) strength {
	high, low := c1.Rank(), c2.Rank()
	if low > high {
		high, low = low, high
	}
	suited := c1.Suit() == c2.Suit()

	if high == low {
		switch {
		case high >= deck.Jack:
			return veryStrong
		case high >= deck.Nine:
			return strong
		case high >= deck.Six:
			return medium
		default:
			return weak
		}
	}

	if high == deck.Ace && low >= deck.Queen {
		if suited {
			return veryStrong
		}
		return strong
	}
	if high >= deck.King && low >= deck.Jack {
		return strong
	}
	if low >= deck.Ten {
		return medium
	}
	if suited && high-low == 1 && high >= deck.Seven {
		return medium
	}
	if high == deck.Ace || high == deck.King {
		return weak
	}
	return veryWeak
}

// postflopBucket rates the made hand, discounting buckets the board
// makes for everyone.
func (r *RuleAgent) postflopBucket(req game.DecisionRequest) strength {
	mine := evaluator.Evaluate(append(append([]deck.Card{}, req.Hole...), req.Board...))
	if len(req.Board) < 5 {
		switch {
		case mine.Category >= evaluator.Straight:
			return veryStrong
		case mine.Category >= evaluator.TwoPair:
			return strong
		case mine.Category == evaluator.Pair:
			return medium
		default:
			return weak
		}
	}

	board := evaluator.Evaluate(req.Board)
	if mine.Cmp(board) == 0 {
		// Playing the board: nothing of ours adds value
		return weak
	}
	switch {
	case mine.Category >= evaluator.Straight:
		return veryStrong
	case mine.Category >= evaluator.TwoPair:
		return strong
	case mine.Category == evaluator.Pair:
		return medium
	default:
		return weak
	}
}

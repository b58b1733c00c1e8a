package agent

import (
	"math/rand"

	"github.com/lox/holdem-sim/internal/game"
)

// RandAgent proposes uniformly random actions with random sizing. The
// normalizer downstream maps whatever it proposes onto something
// legal, which makes it a cheap fuzzer for the betting engine as well
// as a baseline opponent.
type RandAgent struct {
	rng *rand.Rand
}

func NewRandAgent(rng *rand.Rand) *RandAgent {
	return &RandAgent{rng: rng}
}

var randVocabulary = []string{"check", "check", "call", "call", "bet", "raise", "fold", "all-in"}

func (r *RandAgent) Decide(req game.DecisionRequest) (string, int) {
	action := randVocabulary[r.rng.Intn(len(randVocabulary))]

	amount := 0
	switch action {
	case "bet":
		amount = req.MinBet + r.rng.Intn(req.MinBet*4+1)
	case "raise":
		amount = req.ToCall + req.LastRaise + r.rng.Intn(req.LastRaise*2+1)
	}
	return action, amount
}

package agent

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

func newTestRuleAgent() *RuleAgent {
	return NewRuleAgent(rand.New(rand.NewSource(7)), log.New(io.Discard))
}

func holeCards(r1 deck.Rank, s1 deck.Suit, r2 deck.Rank, s2 deck.Suit) []deck.Card {
	return []deck.Card{deck.NewCard(r1, s1), deck.NewCard(r2, s2)}
}

func TestRuleAgentBetsPremiumPairUnopened(t *testing.T) {
	t.Parallel()

	a := newTestRuleAgent()
	action, amount := a.Decide(game.DecisionRequest{
		Name:   "A",
		Street: game.Preflop,
		Hole:   holeCards(deck.Ace, deck.Spades, deck.Ace, deck.Clubs),
		Stacks: map[string]int{"A": 100},
		Pot:    10,
		MinBet: 5,
	})

	assert.Equal(t, "bet", action)
	assert.GreaterOrEqual(t, amount, 5)
	assert.LessOrEqual(t, amount, 100)
}

func TestRuleAgentFoldsJunkToABet(t *testing.T) {
	t.Parallel()

	a := newTestRuleAgent()
	action, _ := a.Decide(game.DecisionRequest{
		Name:      "A",
		Street:    game.Preflop,
		Hole:      holeCards(deck.Seven, deck.Spades, deck.Two, deck.Clubs),
		Stacks:    map[string]int{"A": 100},
		Pot:       60,
		ToCall:    50,
		Opened:    true,
		LastRaise: 50,
		MinBet:    5,
	})

	assert.Equal(t, "fold", action)
}

func TestRuleAgentCallsWithStrongHand(t *testing.T) {
	t.Parallel()

	a := newTestRuleAgent()
	action, _ := a.Decide(game.DecisionRequest{
		Name:      "A",
		Street:    game.Preflop,
		Hole:      holeCards(deck.Ace, deck.Spades, deck.King, deck.Clubs),
		Stacks:    map[string]int{"A": 100},
		Pot:       60,
		ToCall:    50,
		Opened:    true,
		LastRaise: 50,
		MinBet:    5,
	})

	assert.Equal(t, "call", action)
}

func TestRuleAgentRaisesMadeStraight(t *testing.T) {
	t.Parallel()

	a := newTestRuleAgent()
	action, _ := a.Decide(game.DecisionRequest{
		Name:   "A",
		Street: game.Flop,
		Hole:   holeCards(deck.Nine, deck.Spades, deck.Eight, deck.Clubs),
		Board: []deck.Card{
			deck.NewCard(deck.Seven, deck.Diamonds),
			deck.NewCard(deck.Six, deck.Hearts),
			deck.NewCard(deck.Five, deck.Spades),
		},
		Stacks:    map[string]int{"A": 100},
		Pot:       40,
		ToCall:    20,
		Opened:    true,
		LastRaise: 20,
		MinBet:    5,
	})

	assert.Contains(t, []string{"raise", "all-in"}, action)
}

func TestRuleAgentWontPayOffPlayingTheBoard(t *testing.T) {
	t.Parallel()

	// The board is a royal flush; the hole cards add nothing, so a big
	// river bet gets no action.
	a := newTestRuleAgent()
	action, _ := a.Decide(game.DecisionRequest{
		Name:   "A",
		Street: game.River,
		Hole:   holeCards(deck.Two, deck.Clubs, deck.Three, deck.Clubs),
		Board: []deck.Card{
			deck.NewCard(deck.Ace, deck.Diamonds),
			deck.NewCard(deck.King, deck.Diamonds),
			deck.NewCard(deck.Queen, deck.Diamonds),
			deck.NewCard(deck.Jack, deck.Diamonds),
			deck.NewCard(deck.Ten, deck.Diamonds),
		},
		Stacks:    map[string]int{"A": 100},
		Pot:       60,
		ToCall:    50,
		Opened:    true,
		LastRaise: 50,
		MinBet:    5,
	})

	assert.Equal(t, "fold", action)
}

func TestRuleAgentTakesAPriceWithMediumHand(t *testing.T) {
	t.Parallel()

	// A pair facing a tiny bet into a big pot is an easy call.
	a := newTestRuleAgent()
	action, _ := a.Decide(game.DecisionRequest{
		Name:   "A",
		Street: game.Flop,
		Hole:   holeCards(deck.Seven, deck.Spades, deck.Seven, deck.Clubs),
		Board: []deck.Card{
			deck.NewCard(deck.King, deck.Diamonds),
			deck.NewCard(deck.Nine, deck.Hearts),
			deck.NewCard(deck.Four, deck.Spades),
		},
		Stacks:    map[string]int{"A": 100},
		Pot:       40,
		ToCall:    5,
		Opened:    true,
		LastRaise: 5,
		MinBet:    5,
	})

	assert.Equal(t, "call", action)
}

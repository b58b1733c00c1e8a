package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

func TestConsoleRendersHandFlow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := NewConsole(&buf, "You")

	c.HandStarted(game.HandStart{
		Stacks: map[string]int{"You": 100, "North": 100},
		Order:  []string{"You", "North"},
		Antes:  map[string]int{"You": 1, "North": 1},
		Holes: map[string][]deck.Card{
			"You":   {deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.King, deck.Spades)},
			"North": {deck.NewCard(deck.Two, deck.Clubs), deck.NewCard(deck.Three, deck.Clubs)},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "New hand")
	assert.Contains(t, out, "You: 100 chips")
	assert.Contains(t, out, "A♠")
	assert.NotContains(t, out, "2♣", "other seats' hole cards must stay hidden")

	buf.Reset()
	c.BoardDealt(game.Flop, []deck.Card{
		deck.NewCard(deck.Ten, deck.Hearts),
		deck.NewCard(deck.Nine, deck.Diamonds),
		deck.NewCard(deck.Two, deck.Spades),
	})
	assert.Contains(t, buf.String(), "Flop")
	assert.Contains(t, buf.String(), "10♥")

	buf.Reset()
	c.ActionApplied(game.ActionRecord{Seat: "North", Action: game.Bet, Amount: 10, Reason: "bad-bet->check"})
	assert.Contains(t, buf.String(), "North bet 10")
	assert.Contains(t, buf.String(), "bad-bet->check")

	buf.Reset()
	c.StreetEnded(game.StreetRecord{Street: game.Flop, PotEnd: 22})
	assert.Contains(t, buf.String(), "Pot: 22")

	buf.Reset()
	c.ShowdownReached(game.ShowdownRecord{
		Winners:    []string{"You"},
		Pot:        22,
		Categories: map[string]string{"You": "One Pair", "North": "High Card"},
		Holes: map[string][]deck.Card{
			"You":   {deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.King, deck.Spades)},
			"North": {deck.NewCard(deck.Two, deck.Clubs), deck.NewCard(deck.Three, deck.Clubs)},
		},
	})
	assert.Contains(t, buf.String(), "You wins 22")
	assert.Contains(t, buf.String(), "One Pair")
	assert.Contains(t, buf.String(), "2♣", "all cards are shown at showdown")

	buf.Reset()
	c.HandFinished(map[string]int{"You": 111, "North": 89})
	assert.Contains(t, buf.String(), "You 111")
}

func TestParseInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		action string
		amount int
	}{
		{"bet 20", "bet", 20},
		{"b 20", "bet", 20},
		{"FOLD", "fold", 0},
		{"f", "fold", 0},
		{"k", "check", 0},
		{"c", "call", 0},
		{"r 60", "raise", 60},
		{"a", "all-in", 0},
		{"", "check", 0},
		{"bet twenty", "bet", 0},
		{"  call  ", "call", 0},
	}

	for _, tt := range tests {
		action, amount := ParseInput(tt.input)
		assert.Equal(t, tt.action, action, "input %q", tt.input)
		assert.Equal(t, tt.amount, amount, "input %q", tt.input)
	}
}

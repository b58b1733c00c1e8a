package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Draw(52) {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestWithLowestRankShrinksDeck(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)), WithLowestRank(Ten))
	// 10, J, Q, K, A in four suits
	require.Equal(t, 20, d.Remaining())
	for _, c := range d.Draw(20) {
		assert.GreaterOrEqual(t, c.Rank(), Ten)
	}
}

func TestDrawReshufflesDiscardWhenExhausted(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(7)), WithLowestRank(Ace))
	require.Equal(t, 4, d.Remaining())

	first := d.Draw(4)
	d.Discard(first...)
	require.Equal(t, 0, d.Remaining())
	require.Equal(t, 4, d.Discarded())

	again := d.Draw(4)
	assert.Len(t, again, 4)
	assert.Equal(t, 0, d.Discarded())
	assert.ElementsMatch(t, first, again)
}

func TestDrawPanicsWhenNothingLeft(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(7)), WithLowestRank(Ace))
	d.Draw(4)
	assert.Panics(t, func() { d.Draw(1) })
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	cards := []Card{
		NewCard(Ace, Spades),
		NewCard(King, Hearts),
		NewCard(Queen, Diamonds),
	}
	d := NewStackedDeck(cards...)
	assert.Equal(t, cards[:2], d.Draw(2))
	assert.Equal(t, cards[2:], d.Draw(1))
	assert.Equal(t, 0, d.Remaining())
}

func TestDeterministicShuffle(t *testing.T) {
	a := NewDeck(rand.New(rand.NewSource(42)))
	b := NewDeck(rand.New(rand.NewSource(42)))
	assert.Equal(t, a.Draw(52), b.Draw(52))
}

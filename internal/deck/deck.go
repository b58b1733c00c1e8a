package deck

import (
	"math/rand"
)

// Deck holds the undealt cards and a discard pile. Every card is in
// exactly one of the draw pile, the discard pile, or a holding (hole
// cards, board) at all times.
type Deck struct {
	cards   []Card
	discard []Card
	rng     *rand.Rand
}

// Option configures a Deck during creation.
type Option func(*Deck)

// WithLowestRank restricts the deck to ranks >= floor. Useful for
// exercising the reshuffle path with an artificially small deck.
func WithLowestRank(floor Rank) Option {
	return func(d *Deck) {
		kept := d.cards[:0]
		for _, c := range d.cards {
			if c.Rank() >= floor {
				kept = append(kept, c)
			}
		}
		d.cards = kept
	}
}

// NewDeck creates a shuffled deck. The RNG is required so that
// shuffling is explicit and tests can be deterministic.
func NewDeck(rng *rand.Rand, opts ...Option) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}

	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Hearts; suit++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}

	for _, opt := range opts {
		opt(d)
	}

	d.shuffle()
	return d
}

// NewStackedDeck creates an unshuffled deck that deals the given cards
// in order. Used for deterministic replays and scripted hands.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns n cards from the top of the draw pile.
// When the draw pile runs out the discard pile is reshuffled in; if
// both are empty the deck has been misused and Draw panics.
func (d *Deck) Draw(n int) []Card {
	out := make([]Card, 0, n)
	for len(out) < n {
		if len(d.cards) == 0 {
			if len(d.discard) == 0 {
				panic("deck exhausted with empty discard pile")
			}
			d.cards, d.discard = d.discard, nil
			d.shuffle()
		}
		last := len(d.cards) - 1
		out = append(out, d.cards[last])
		d.cards = d.cards[:last]
	}
	return out
}

// Discard returns folded cards to the discard pile.
func (d *Deck) Discard(cards ...Card) {
	d.discard = append(d.discard, cards...)
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Discarded returns the size of the discard pile
func (d *Deck) Discarded() int {
	return len(d.discard)
}

package deck

import (
	"fmt"
	"sort"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Diamonds or Hearts)
func (s Suit) IsRed() bool {
	return s == Diamonds || s == Hearts
}

// Rank represents a card rank. Aces are always high (14) for hand
// composition; the wheel straight is handled by the evaluator.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable playing card packed as (rank<<2)|suit.
// Ordering by the packed value orders by rank first; suit never
// contributes to hand strength.
type Card uint8

// NewCard creates a card from a rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card(int(rank)<<2 | int(suit))
}

// Rank returns the card's rank
func (c Card) Rank() Rank {
	return Rank(c >> 2)
}

// Suit returns the card's suit
func (c Card) Suit() Suit {
	return Suit(c & 3)
}

// String returns the card as e.g. "A♠"
func (c Card) String() string {
	return c.Rank().String() + c.Suit().String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit().IsRed()
}

// FormatCards renders cards highest-first, e.g. "A♠ 10♦ 7♣"
func FormatCards(cards []Card) string {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

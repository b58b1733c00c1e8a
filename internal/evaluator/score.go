package evaluator

import (
	"github.com/lox/holdem-sim/internal/deck"
)

// Category is the hand category, weakest first. The ordering follows
// the table convention this engine has always used: Flush ranks above
// Full House.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	FullHouse
	Flush
	FourOfAKind
	StraightFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is the evaluated strength of a hand: a category plus the best
// five cards, most significant rank first. Within a category the
// defining group leads and kickers follow in descending rank. Suits
// never contribute to strength. Immutable once produced.
type Score struct {
	Category Category
	Cards    []deck.Card
}

// IsWheel reports whether the selected five cards are the A-2-3-4-5
// pattern, where the ace plays low.
func (s Score) IsWheel() bool {
	return len(s.Cards) == 5 &&
		s.Cards[0].Rank() == deck.Five &&
		s.Cards[4].Rank() == deck.Ace
}

// Cmp totally orders scores: category first, then the five selected
// cards positionally by rank. A wheel straight flush compares below
// every other straight flush regardless of positional ranks.
// Returns -1, 0 or 1.
func (s Score) Cmp(other Score) int {
	if s.Category != other.Category {
		if s.Category < other.Category {
			return -1
		}
		return 1
	}

	if s.Category == StraightFlush && s.IsWheel() != other.IsWheel() {
		if s.IsWheel() {
			return -1
		}
		return 1
	}

	for i := 0; i < 5; i++ {
		r1, r2 := deck.Rank(0), deck.Rank(0)
		if i < len(s.Cards) {
			r1 = s.Cards[i].Rank()
		}
		if i < len(other.Cards) {
			r2 = other.Cards[i].Rank()
		}
		if r1 != r2 {
			if r1 < r2 {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String returns e.g. "Two Pair (K♠ K♦ 9♣ 9♥ A♠)"
func (s Score) String() string {
	parts := make([]string, len(s.Cards))
	for i, c := range s.Cards {
		parts[i] = c.String()
	}
	out := s.Category.String() + " ("
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out + ")"
}

// Package evaluator ranks 5-7 card poker hands by category and exact
// tie-break, reporting the selected best-5 combination.
package evaluator

import (
	"sort"

	"github.com/lox/holdem-sim/internal/deck"
)

// Evaluate returns the Score for the best 5-card combination within
// cards. It is pure and deterministic for a given card multiset and
// never fails for five or more valid cards.
func Evaluate(cards []deck.Card) Score {
	h := newHand(cards)

	checks := []struct {
		category Category
		fn       func() []deck.Card
	}{
		{StraightFlush, h.straightFlush},
		{FourOfAKind, h.quads},
		{Flush, h.flush},
		{FullHouse, h.fullHouse},
		{Straight, h.straight},
		{ThreeOfAKind, h.trips},
		{TwoPair, h.twoPair},
		{Pair, h.pair},
		{HighCard, h.highCard},
	}
	for _, c := range checks {
		if best := c.fn(); best != nil {
			return Score{Category: c.category, Cards: best}
		}
	}

	// highCard matches any non-empty input
	panic("evaluator: no category matched")
}

// hand holds the cards sorted by descending rank plus derived groupings
type hand struct {
	sorted []deck.Card
}

func newHand(cards []deck.Card) *hand {
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank() > sorted[j].Rank()
	})
	return &hand{sorted: sorted}
}

// groupsOf returns the rank groups holding exactly n cards, highest
// rank first.
func (h *hand) groupsOf(n int) [][]deck.Card {
	byRank := make(map[deck.Rank][]deck.Card)
	for _, c := range h.sorted {
		byRank[c.Rank()] = append(byRank[c.Rank()], c)
	}

	var groups [][]deck.Card
	for _, g := range byRank {
		if len(g) == n {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0].Rank() > groups[j][0].Rank()
	})
	return groups
}

// bySuit buckets the cards per suit, each bucket descending by rank
func (h *hand) bySuit() map[deck.Suit][]deck.Card {
	suits := make(map[deck.Suit][]deck.Card)
	for _, c := range h.sorted {
		suits[c.Suit()] = append(suits[c.Suit()], c)
	}
	return suits
}

// findStraight scans rank-deduplicated cards (already descending) for
// five consecutive ranks. The wheel A-2-3-4-5 is returned as 5-4-3-2-A
// with the ace appended low.
func findStraight(sorted []deck.Card) []deck.Card {
	if len(sorted) < 5 {
		return nil
	}

	uniq := make([]deck.Card, 0, len(sorted))
	seen := make(map[deck.Rank]bool)
	for _, c := range sorted {
		if !seen[c.Rank()] {
			uniq = append(uniq, c)
			seen[c.Rank()] = true
		}
	}

	run := []deck.Card{uniq[0]}
	for i := 1; i < len(uniq); i++ {
		if uniq[i].Rank() == uniq[i-1].Rank()-1 {
			run = append(run, uniq[i])
			if len(run) == 5 {
				return run
			}
		} else {
			run = []deck.Card{uniq[i]}
		}
	}

	// Wheel: ace plays low below the five
	if seen[deck.Ace] && seen[deck.Five] && seen[deck.Four] && seen[deck.Three] && seen[deck.Two] {
		wheel := make([]deck.Card, 0, 5)
		for _, want := range []deck.Rank{deck.Five, deck.Four, deck.Three, deck.Two, deck.Ace} {
			for _, c := range uniq {
				if c.Rank() == want {
					wheel = append(wheel, c)
					break
				}
			}
		}
		return wheel
	}
	return nil
}

// merge fills the remaining best-5 slots with the highest unused cards
func (h *hand) merge(scoreCards []deck.Card) []deck.Card {
	used := make(map[deck.Card]int)
	for _, c := range scoreCards {
		used[c]++
	}

	out := make([]deck.Card, 0, 5)
	out = append(out, scoreCards...)
	for _, c := range h.sorted {
		if len(out) == 5 {
			break
		}
		if used[c] > 0 {
			used[c]--
			continue
		}
		out = append(out, c)
	}
	return out
}

func (h *hand) straightFlush() []deck.Card {
	// At most one suit can hold five cards of a 7-card hand, so bucket
	// order does not matter.
	for _, bucket := range h.bySuit() {
		if len(bucket) >= 5 {
			if st := findStraight(bucket); st != nil {
				return st
			}
		}
	}
	return nil
}

func (h *hand) quads() []deck.Card {
	q := h.groupsOf(4)
	if q == nil {
		return nil
	}
	return h.merge(q[0])
}

func (h *hand) flush() []deck.Card {
	for _, bucket := range h.bySuit() {
		if len(bucket) >= 5 {
			return bucket[:5]
		}
	}
	return nil
}

func (h *hand) fullHouse() []deck.Card {
	trips := h.groupsOf(3)
	pairs := h.groupsOf(2)
	switch {
	case len(trips) >= 2:
		// Two triples: the higher plays in full, the second donates its
		// top two cards.
		return h.merge(append(append([]deck.Card{}, trips[0]...), trips[1][:2]...))
	case len(trips) >= 1 && len(pairs) >= 1:
		return h.merge(append(append([]deck.Card{}, trips[0]...), pairs[0]...))
	default:
		return nil
	}
}

func (h *hand) straight() []deck.Card {
	return findStraight(h.sorted)
}

func (h *hand) trips() []deck.Card {
	t := h.groupsOf(3)
	if t == nil {
		return nil
	}
	return h.merge(t[0])
}

func (h *hand) twoPair() []deck.Card {
	p := h.groupsOf(2)
	if len(p) < 2 {
		return nil
	}
	return h.merge(append(append([]deck.Card{}, p[0]...), p[1]...))
}

func (h *hand) pair() []deck.Card {
	p := h.groupsOf(2)
	if p == nil {
		return nil
	}
	return h.merge(p[0])
}

func (h *hand) highCard() []deck.Card {
	if len(h.sorted) == 0 {
		return nil
	}
	if len(h.sorted) <= 5 {
		return h.sorted
	}
	return h.sorted[:5]
}

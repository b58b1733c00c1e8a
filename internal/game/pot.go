package game

import "sort"

// Pot is one tier of the pot: an amount and the seats eligible to win
// it. With no all-ins there is a single tier covering every chip.
type Pot struct {
	Amount   int
	Eligible []string // seat names, in seat order
}

// BuildPots derives the pot tiers from cumulative per-hand
// contributions. Tier boundaries are the distinct contribution levels
// of the non-folded seats; folded seats' chips count as dead money in
// the tiers they reach. Contribution above the highest level any other
// seat matched forms a top tier with a single eligible seat, which
// returns uncalled chips to their owner during distribution.
//
// Invariant: the tier amounts sum to the total of all contributions;
// every committed chip lands in exactly one tier.
func BuildPots(players []*Player) []Pot {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if !p.Folded && p.TotalContributed > 0 && !seen[p.TotalContributed] {
			levels = append(levels, p.TotalContributed)
			seen[p.TotalContributed] = true
		}
	}
	sort.Ints(levels)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			span := min(p.TotalContributed, level) - min(p.TotalContributed, prev)
			pot.Amount += span
			if !p.Folded && p.TotalContributed >= level {
				pot.Eligible = append(pot.Eligible, p.Name)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	// Defensive: a folded seat can never outspend every live seat, but
	// if it did those chips must not vanish.
	leftover := 0
	for _, p := range players {
		if p.TotalContributed > prev {
			leftover += p.TotalContributed - prev
		}
	}
	if leftover > 0 && len(pots) > 0 {
		pots[len(pots)-1].Amount += leftover
	}

	return pots
}

// Total sums all tier amounts
func Total(pots []Pot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package game

import "strings"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"Preflop", "Flop", "Turn", "River", "Showdown"}[s]
}

// Action is a normalized player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "all-in"}[a]
}

// ParseAction maps a free-form action word onto the legal vocabulary.
// Returns false for anything outside it; spelling variants of all-in
// are accepted.
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	case "call":
		return Call, true
	case "bet":
		return Bet, true
	case "raise":
		return Raise, true
	case "all-in", "allin", "all in":
		return AllIn, true
	default:
		return Fold, false
	}
}

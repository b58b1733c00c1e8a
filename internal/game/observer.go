package game

import "github.com/lox/holdem-sim/internal/deck"

// HandStart is the snapshot delivered when a hand begins. Stacks are
// the pre-ante values.
type HandStart struct {
	Stacks map[string]int
	Order  []string
	Antes  map[string]int
	Holes  map[string][]deck.Card
}

// ActionRecord describes one applied action.
type ActionRecord struct {
	Street            Street
	Seat              string
	Action            Action
	Reason            string // normalizer degradation reason, if any
	ToCallBefore      int
	StackBefore       int
	Amount            int
	StackAfter        int
	PotAfter          int
	ContributionAfter int
	LastRaise         int
	Opened            bool
}

// StreetRecord summarizes a finished street.
type StreetRecord struct {
	Street        Street
	PotEnd        int
	Contributions map[string]int
}

// ShowdownRecord describes showdown resolution.
type ShowdownRecord struct {
	Winners    []string
	Pot        int
	Categories map[string]string
	Holes      map[string][]deck.Card
	Board      []deck.Card
}

// Observer receives hand events. It is purely additive and write-only:
// the engine never reads anything back from it mid-hand.
type Observer interface {
	HandStarted(start HandStart)
	BoardDealt(street Street, board []deck.Card)
	ActionApplied(rec ActionRecord)
	StreetEnded(rec StreetRecord)
	ShowdownReached(rec ShowdownRecord)
	HandFinished(stacks map[string]int)
}

// NopObserver discards all events
type NopObserver struct{}

func (NopObserver) HandStarted(HandStart)          {}
func (NopObserver) BoardDealt(Street, []deck.Card) {}
func (NopObserver) ActionApplied(ActionRecord)     {}
func (NopObserver) StreetEnded(StreetRecord)       {}
func (NopObserver) ShowdownReached(ShowdownRecord) {}
func (NopObserver) HandFinished(map[string]int)    {}

// MultiObserver fans events out to several observers in order
type MultiObserver []Observer

func (m MultiObserver) HandStarted(s HandStart) {
	for _, o := range m {
		o.HandStarted(s)
	}
}

func (m MultiObserver) BoardDealt(street Street, board []deck.Card) {
	for _, o := range m {
		o.BoardDealt(street, board)
	}
}

func (m MultiObserver) ActionApplied(rec ActionRecord) {
	for _, o := range m {
		o.ActionApplied(rec)
	}
}

func (m MultiObserver) StreetEnded(rec StreetRecord) {
	for _, o := range m {
		o.StreetEnded(rec)
	}
}

func (m MultiObserver) ShowdownReached(rec ShowdownRecord) {
	for _, o := range m {
		o.ShowdownReached(rec)
	}
}

func (m MultiObserver) HandFinished(stacks map[string]int) {
	for _, o := range m {
		o.HandFinished(stacks)
	}
}

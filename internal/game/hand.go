package game

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/evaluator"
)

// Config holds the table constants for a hand, immutable for its
// duration.
type Config struct {
	MinBet     int
	Ante       int
	SmallBlind int
	BigBlind   int
	LowestRank deck.Rank
}

// DefaultConfig mirrors the classic table: ante-only play, minimum
// bet 5, full deck.
func DefaultConfig() Config {
	return Config{
		MinBet:     5,
		Ante:       1,
		LowestRank: deck.Two,
	}
}

// Hand sequences one complete hand: antes and blinds, hole cards, a
// betting round per street, showdown and pot distribution. It owns all
// mutable chip state for the hand's duration.
type Hand struct {
	cfg     Config
	players []*Player
	agents  map[string]Agent
	deck    *deck.Deck
	board   []deck.Card
	holes   map[string][]deck.Card
	pot     int
	obs     Observer
	logger  *log.Logger

	startTotal int
}

// HandOption configures a Hand during creation
type HandOption func(*Hand)

// WithObserver attaches an event observer (hand log sink, renderer).
func WithObserver(obs Observer) HandOption {
	return func(h *Hand) { h.obs = obs }
}

// WithDeck overrides the shuffled deck, for deterministic tests.
func WithDeck(d *deck.Deck) HandOption {
	return func(h *Hand) { h.deck = d }
}

// NewHand creates a hand over the seats with chips. Seats with an
// empty stack are excluded from play but remain visible in snapshots.
// The RNG is required so shuffling is explicit and reproducible.
func NewHand(rng *rand.Rand, players []*Player, agents map[string]Agent, cfg Config, opts ...HandOption) (*Hand, error) {
	if rng == nil {
		panic("rng is required for hand creation")
	}

	active := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.Stack > 0 {
			p.resetForHand()
			active = append(active, p)
		}
	}
	if len(active) < 2 {
		return nil, ErrNotEnoughSeats
	}

	h := &Hand{
		cfg:     cfg,
		players: active,
		agents:  agents,
		holes:   make(map[string][]deck.Card),
		obs:     NopObserver{},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.deck == nil {
		lowest := cfg.LowestRank
		if lowest < deck.Two {
			lowest = deck.Two
		}
		h.deck = deck.NewDeck(rng, deck.WithLowestRank(lowest))
	}
	return h, nil
}

// WithLogger sets the hand's logger
func WithLogger(logger *log.Logger) HandOption {
	return func(h *Hand) { h.logger = logger.WithPrefix("hand") }
}

// Play runs the hand to completion and settles the pot. It returns an
// error only for invariant violations; malformed decisions never
// surface here.
func (h *Hand) Play() error {
	h.startTotal = h.chipTotal()

	stacks := h.stacksSnapshot()
	antes := h.collectAntes()
	h.postBlinds()
	h.dealHoleCards()

	h.obs.HandStarted(HandStart{
		Stacks: stacks,
		Order:  h.seatOrder(),
		Antes:  antes,
		Holes:  h.holesSnapshot(),
	})

	streets := []struct {
		street Street
		deal   int
	}{
		{Preflop, 0},
		{Flop, 3},
		{Turn, 1},
		{River, 1},
	}

	for _, s := range streets {
		if s.deal > 0 {
			h.board = append(h.board, h.deck.Draw(s.deal)...)
			h.obs.BoardDealt(s.street, h.boardSnapshot())
		}

		winner := h.runStreet(s.street)
		if err := h.checkConservation(false); err != nil {
			return err
		}
		if winner != nil {
			return h.settleUncontested(winner)
		}
	}

	return h.settleShowdown()
}

// runStreet runs one betting round and folds its street contributions
// into the running totals.
func (h *Hand) runStreet(street Street) *Player {
	lastRaise := h.cfg.MinBet
	if street == Preflop && h.cfg.BigBlind > lastRaise {
		lastRaise = h.cfg.BigBlind
	}

	br := NewBettingRound(street, h.players, h.pot, h.cfg.MinBet, lastRaise, func(p *Player, ctx Context) (string, int) {
		return h.decideFor(p, street, ctx)
	}, h.obs, h.logger)

	pot, winner := br.Run()
	h.pot = pot

	h.obs.StreetEnded(StreetRecord{
		Street:        street,
		PotEnd:        h.pot,
		Contributions: h.contributionSnapshot(),
	})
	for _, p := range h.players {
		p.Contributed = 0
	}
	return winner
}

// decideFor routes the decision to the seat's agent. A seat without an
// agent checks or folds, the same safe fallback an unreachable
// external source degrades to.
func (h *Hand) decideFor(p *Player, street Street, ctx Context) (string, int) {
	agent, ok := h.agents[p.Name]
	if !ok {
		h.logger.Warn("no decision source for seat", "seat", p.Name)
		return "check", 0
	}

	return agent.Decide(DecisionRequest{
		Name:      p.Name,
		Street:    street,
		Hole:      h.holes[p.Name],
		Board:     h.boardSnapshot(),
		Stacks:    h.stacksSnapshot(),
		Pot:       h.pot,
		Order:     h.seatOrder(),
		ToCall:    ctx.ToCall,
		Opened:    ctx.Opened,
		LastRaise: ctx.LastRaise,
		MinBet:    ctx.MinBet,
	})
}

// collectAntes moves each seat's ante straight into the pot. Short
// stacks ante what they have and are all-in.
func (h *Hand) collectAntes() map[string]int {
	antes := make(map[string]int)
	if h.cfg.Ante <= 0 {
		return antes
	}
	for _, p := range h.players {
		a := h.cfg.Ante
		if a > p.Stack {
			a = p.Stack
		}
		p.commit(a)
		p.Contributed = 0 // antes are dead money, not street contributions
		h.pot += a
		antes[p.Name] = a
	}
	return antes
}

// postBlinds posts the small and big blind as preflop contributions.
// Blinds do not mark the street opened; the big blind instead seeds
// the minimum raise size.
func (h *Hand) postBlinds() {
	if h.cfg.BigBlind <= 0 || len(h.players) < 2 {
		return
	}
	post := func(p *Player, blind int) {
		if blind > p.Stack {
			blind = p.Stack
		}
		p.commit(blind)
		h.pot += blind
	}
	post(h.players[0], h.cfg.SmallBlind)
	post(h.players[1], h.cfg.BigBlind)
}

func (h *Hand) dealHoleCards() {
	for _, p := range h.players {
		h.holes[p.Name] = h.deck.Draw(2)
	}
}

// settleUncontested awards the whole pot to the last seat standing
func (h *Hand) settleUncontested(winner *Player) error {
	winner.Stack += h.pot
	h.logger.Info("hand decided without showdown", "winner", winner.Name, "pot", h.pot)
	h.pot = 0
	return h.finish()
}

// settleShowdown evaluates every remaining seat and distributes each
// pot tier to its best hands, remainder to the first winner in seat
// order.
func (h *Hand) settleShowdown() error {
	scores := make(map[string]evaluator.Score)
	categories := make(map[string]string)
	for _, p := range h.players {
		if p.Folded {
			continue
		}
		score := evaluator.Evaluate(append(h.holes[p.Name], h.board...))
		scores[p.Name] = score
		categories[p.Name] = score.Category.String()
	}

	pots := BuildPots(h.players)
	if got := Total(pots); got != h.pot {
		return fmt.Errorf("%w: pot tiers sum to %d, pot is %d", ErrChipMismatch, got, h.pot)
	}

	var overallWinners []string
	for i, pot := range pots {
		winners := h.potWinners(pot, scores)
		if len(winners) == 0 {
			return fmt.Errorf("%w: pot tier %d has no eligible winner", ErrChipMismatch, i)
		}
		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for j, w := range winners {
			amount := share
			if j == 0 {
				amount += remainder
			}
			w.Stack += amount
		}
		if i == 0 {
			for _, w := range winners {
				overallWinners = append(overallWinners, w.Name)
			}
		}
	}
	h.pot = 0

	h.obs.ShowdownReached(ShowdownRecord{
		Winners:    overallWinners,
		Pot:        Total(pots),
		Categories: categories,
		Holes:      h.holesSnapshot(),
		Board:      h.boardSnapshot(),
	})

	return h.finish()
}

// potWinners returns the eligible seats holding the best score, in
// seat order.
func (h *Hand) potWinners(pot Pot, scores map[string]evaluator.Score) []*Player {
	eligible := make(map[string]bool, len(pot.Eligible))
	for _, name := range pot.Eligible {
		eligible[name] = true
	}

	var winners []*Player
	var best evaluator.Score
	for _, p := range h.players {
		if p.Folded || !eligible[p.Name] {
			continue
		}
		score := scores[p.Name]
		if len(winners) == 0 {
			winners = []*Player{p}
			best = score
			continue
		}
		switch score.Cmp(best) {
		case 1:
			winners = []*Player{p}
			best = score
		case 0:
			winners = append(winners, p)
		}
	}
	return winners
}

func (h *Hand) finish() error {
	if err := h.checkConservation(true); err != nil {
		return err
	}
	h.obs.HandFinished(h.stacksSnapshot())
	return nil
}

// checkConservation asserts that no chips were created or destroyed.
// settled is true once the pot has been paid out.
func (h *Hand) checkConservation(settled bool) error {
	total := h.chipTotal() + h.pot
	if settled {
		total = h.chipTotal()
	}
	if total != h.startTotal {
		return fmt.Errorf("%w: have %d, started with %d", ErrChipMismatch, total, h.startTotal)
	}
	return nil
}

func (h *Hand) chipTotal() int {
	total := 0
	for _, p := range h.players {
		total += p.Stack
	}
	return total
}

func (h *Hand) stacksSnapshot() map[string]int {
	stacks := make(map[string]int, len(h.players))
	for _, p := range h.players {
		stacks[p.Name] = p.Stack
	}
	return stacks
}

func (h *Hand) contributionSnapshot() map[string]int {
	contribs := make(map[string]int, len(h.players))
	for _, p := range h.players {
		if !p.Folded {
			contribs[p.Name] = p.Contributed
		}
	}
	return contribs
}

func (h *Hand) holesSnapshot() map[string][]deck.Card {
	holes := make(map[string][]deck.Card, len(h.holes))
	for name, cards := range h.holes {
		holes[name] = append([]deck.Card(nil), cards...)
	}
	return holes
}

func (h *Hand) boardSnapshot() []deck.Card {
	return append([]deck.Card(nil), h.board...)
}

func (h *Hand) seatOrder() []string {
	order := make([]string, 0, len(h.players))
	for _, p := range h.players {
		if !p.Folded {
			order = append(order, p.Name)
		}
	}
	return order
}

// Board exposes the community cards dealt so far
func (h *Hand) Board() []deck.Card {
	return h.boardSnapshot()
}

// Pot exposes the current pot size
func (h *Hand) Pot() int {
	return h.pot
}

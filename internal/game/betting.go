package game

import (
	"github.com/charmbracelet/log"
)

// maxIterations is a defensive ceiling on betting-loop turns. Hitting
// it means a state-machine bug, never normal termination.
const maxIterations = 600

// BettingRound drives one street among the non-folded seats to
// completion: seat rotation, legality checks, contribution tracking
// and termination detection. Per-street contributions live on the
// players and are reset by the orchestrator at street end.
type BettingRound struct {
	street    Street
	players   []*Player // seat order; folded seats stay in place and are skipped
	pot       int
	minBet    int
	lastRaise int
	opened    bool
	pending   map[string]bool
	decide    func(p *Player, ctx Context) (string, int)
	obs       Observer
	logger    *log.Logger
}

// NewBettingRound prepares a street. lastRaise seeds the minimum raise
// size: the table minimum bet, or the big blind when blinds were just
// posted.
func NewBettingRound(street Street, players []*Player, pot, minBet, lastRaise int,
	decide func(p *Player, ctx Context) (string, int), obs Observer, logger *log.Logger) *BettingRound {

	pending := make(map[string]bool)
	for _, p := range players {
		if p.CanAct() {
			pending[p.Name] = true
		}
	}

	return &BettingRound{
		street:    street,
		players:   players,
		pot:       pot,
		minBet:    minBet,
		lastRaise: lastRaise,
		pending:   pending,
		decide:    decide,
		obs:       obs,
		logger:    logger,
	}
}

// Run plays the street to completion and returns the updated pot and,
// when all seats but one fold, the uncontested winner.
func (br *BettingRound) Run() (int, *Player) {
	loops := 0
	actor := 0

	for br.liveCount() > 1 {
		loops++
		if loops > maxIterations {
			br.logger.Error("betting round exceeded iteration ceiling, forcing street end",
				"street", br.street, "pending", len(br.pending))
			break
		}
		if len(br.pending) == 0 {
			break
		}
		if actor >= len(br.players) {
			actor = 0
		}

		p := br.players[actor]
		if !br.pending[p.Name] {
			actor++
			continue
		}

		toCall := br.highestContribution() - p.Contributed

		// Fast path: everyone else is already all-in and there is
		// nothing left to match, so no further action can change the
		// pot.
		if br.seatsWithChips() < 2 && toCall == 0 && !br.opened {
			return br.pot, nil
		}

		ctx := Context{
			ToCall:    toCall,
			Opened:    br.opened,
			LastRaise: br.lastRaise,
			MinBet:    br.minBet,
			Stack:     p.Stack,
		}

		proposed, amount := br.decide(p, ctx)
		action, amt, reason := Normalize(proposed, amount, ctx)
		if reason != "" {
			br.logger.Debug("proposal normalized",
				"seat", p.Name, "proposed", proposed, "action", action, "reason", reason)
		}

		stackBefore := p.Stack
		pay := 0

		switch action {
		case Check:
			delete(br.pending, p.Name)

		case Bet:
			pay = amt
			p.commit(pay)
			br.pot += pay
			br.opened = true
			br.lastRaise = amt
			br.reopenFor(p)

		case Call:
			pay = toCall
			if pay > p.Stack {
				pay = p.Stack // short call, an implicit all-in
			}
			p.commit(pay)
			br.pot += pay
			delete(br.pending, p.Name)

		case Raise:
			// amt is the total put in this turn: toCall + raise size
			pay = amt
			p.commit(pay)
			br.pot += pay
			br.lastRaise = amt - toCall
			br.opened = true
			br.reopenFor(p)

		case AllIn:
			pay = p.Stack
			raiseSize := pay - toCall
			if raiseSize < 0 {
				raiseSize = 0
			}
			p.commit(pay)
			br.pot += pay
			switch {
			case toCall == 0 && !br.opened:
				br.opened = true
				if pay > br.lastRaise {
					br.lastRaise = pay
				}
				br.reopenFor(p)
			case raiseSize >= br.lastRaise && toCall > 0:
				// Meets the minimum legal raise, so action reopens
				br.lastRaise = raiseSize
				br.opened = true
				br.reopenFor(p)
			default:
				// Short all-in: cannot force seats that already
				// matched to act again.
				delete(br.pending, p.Name)
			}

		case Fold:
			p.Folded = true
			delete(br.pending, p.Name)
		}

		br.obs.ActionApplied(ActionRecord{
			Street:            br.street,
			Seat:              p.Name,
			Action:            action,
			Reason:            reason,
			ToCallBefore:      toCall,
			StackBefore:       stackBefore,
			Amount:            pay,
			StackAfter:        p.Stack,
			PotAfter:          br.pot,
			ContributionAfter: p.Contributed,
			LastRaise:         br.lastRaise,
			Opened:            br.opened,
		})

		if action == Fold {
			if winner := br.soleSurvivor(); winner != nil {
				return br.pot, winner
			}
		}

		actor++
	}

	return br.pot, nil
}

// reopenFor resets pending to every seat that can still act, except
// the aggressor.
func (br *BettingRound) reopenFor(aggressor *Player) {
	br.pending = make(map[string]bool)
	for _, p := range br.players {
		if p != aggressor && p.CanAct() {
			br.pending[p.Name] = true
		}
	}
}

func (br *BettingRound) highestContribution() int {
	max := 0
	for _, p := range br.players {
		if !p.Folded && p.Contributed > max {
			max = p.Contributed
		}
	}
	return max
}

func (br *BettingRound) liveCount() int {
	n := 0
	for _, p := range br.players {
		if !p.Folded {
			n++
		}
	}
	return n
}

func (br *BettingRound) seatsWithChips() int {
	n := 0
	for _, p := range br.players {
		if !p.Folded && p.Stack > 0 {
			n++
		}
	}
	return n
}

func (br *BettingRound) soleSurvivor() *Player {
	var survivor *Player
	for _, p := range br.players {
		if !p.Folded {
			if survivor != nil {
				return nil
			}
			survivor = p
		}
	}
	return survivor
}

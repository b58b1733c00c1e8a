package game

// Context is the betting situation a proposal is judged against.
type Context struct {
	ToCall    int  // chips owed to match the highest contribution this street
	Opened    bool // whether a bet or raise has been placed this street
	LastRaise int  // size of the last legal raise, the minimum for the next
	MinBet    int  // table minimum opening bet
	Stack     int  // the acting seat's remaining chips
}

// Normalize maps an untrusted (action, amount) proposal onto a
// guaranteed-legal action for the context. It never fails: illegal or
// unparseable input degrades to a safe fallback, with the degradation
// reason returned for the hand log (empty when the proposal was taken
// as given). Pure; chip counts are never touched here.
func Normalize(proposed string, amount int, ctx Context) (Action, int, string) {
	a, ok := ParseAction(proposed)
	if !ok {
		if ctx.ToCall == 0 && !ctx.Opened {
			return Check, 0, "illegal->check"
		}
		if ctx.Stack >= ctx.ToCall && ctx.ToCall > 0 {
			return Call, 0, "illegal->call"
		}
		return Fold, 0, "illegal->fold"
	}

	if a == AllIn {
		return AllIn, ctx.Stack, ""
	}

	if ctx.ToCall == 0 && !ctx.Opened {
		switch a {
		case Check:
			return Check, 0, ""
		case Bet:
			amt := amount
			if amt < ctx.MinBet {
				amt = ctx.MinBet
			}
			if amt > ctx.Stack {
				amt = ctx.Stack
			}
			if amt < ctx.MinBet || amt > ctx.Stack {
				return Check, 0, "bad-bet->check"
			}
			return Bet, amt, ""
		default:
			// call/raise/fold make no sense with nothing to match
			return Check, 0, "unopened->check"
		}
	}

	reason := ""
	switch a {
	case Check:
		if ctx.Stack >= ctx.ToCall && ctx.ToCall > 0 {
			return Call, 0, "check->call"
		}
		return Fold, 0, "check->fold"
	case Bet:
		a = Raise
		reason = "bet->raise"
	}

	switch a {
	case Call:
		// The engine computes the exact call amount
		return Call, 0, reason
	case Fold:
		return Fold, 0, reason
	case Raise:
		maxRaise := ctx.Stack - ctx.ToCall
		if maxRaise < 0 {
			maxRaise = 0
		}
		raiseAmt := amount - ctx.ToCall
		if raiseAmt < ctx.LastRaise || raiseAmt > maxRaise {
			if ctx.Stack >= ctx.ToCall && ctx.ToCall > 0 {
				return Call, 0, "illegal-raise->call"
			}
			return Fold, 0, "illegal-raise->fold"
		}
		return Raise, amount, reason
	}

	if ctx.Stack >= ctx.ToCall && ctx.ToCall > 0 {
		return Call, 0, "fallback->call"
	}
	return Check, 0, "fallback->check"
}

package game

// Player is a seat in the hand. Stack only decreases by committing
// chips to the pot and only increases through pot distribution.
type Player struct {
	Name  string
	Stack int

	// Per-hand state, reset between hands
	Contributed      int // chips committed this street
	TotalContributed int // chips committed this hand, antes included
	Folded           bool
	AllIn            bool
}

// CanAct returns true if the seat still owes decisions: not folded,
// not all-in, chips behind.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && p.Stack > 0
}

// commit moves n chips from the stack into the current street's
// contribution. Committing the last chip marks the seat all-in.
func (p *Player) commit(n int) {
	if n < 0 || n > p.Stack {
		panic("commit exceeds stack")
	}
	p.Stack -= n
	p.Contributed += n
	p.TotalContributed += n
	if p.Stack == 0 {
		p.AllIn = true
	}
}

// resetForHand clears per-hand state at hand start
func (p *Player) resetForHand() {
	p.Contributed = 0
	p.TotalContributed = 0
	p.Folded = false
	p.AllIn = false
}

package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDecider replays a fixed proposal sequence per seat and
// counts how often each seat was asked to act. Seats that run out of
// script check.
type scriptedDecider struct {
	scripts map[string][]proposal
	asked   map[string]int
}

type proposal struct {
	action string
	amount int
}

func newScriptedDecider(scripts map[string][]proposal) *scriptedDecider {
	return &scriptedDecider{scripts: scripts, asked: make(map[string]int)}
}

func (s *scriptedDecider) decide(p *Player, _ Context) (string, int) {
	s.asked[p.Name]++
	queue := s.scripts[p.Name]
	if len(queue) == 0 {
		return "check", 0
	}
	next := queue[0]
	s.scripts[p.Name] = queue[1:]
	return next.action, next.amount
}

// recordingObserver captures applied actions for assertions
type recordingObserver struct {
	NopObserver
	actions []ActionRecord
}

func (r *recordingObserver) ActionApplied(rec ActionRecord) {
	r.actions = append(r.actions, rec)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestBettingRoundBetAndCall(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Name: "X", Stack: 100},
		{Name: "Y", Stack: 100},
	}
	dec := newScriptedDecider(map[string][]proposal{
		"X": {{"bet", 50}},
		"Y": {{"call", 0}},
	})

	br := NewBettingRound(Flop, players, 0, 5, 5, dec.decide, NopObserver{}, testLogger())
	pot, winner := br.Run()

	require.Nil(t, winner)
	assert.Equal(t, 100, pot)
	assert.Equal(t, 1, dec.asked["X"])
	assert.Equal(t, 1, dec.asked["Y"])
	assert.Equal(t, 50, players[0].Stack)
	assert.Equal(t, 50, players[1].Stack)
}

func TestShortAllInDoesNotReopen(t *testing.T) {
	t.Parallel()

	// X bets 50; Y's all-in for 60 is a raise of only 10, below the
	// last raise of 50, so X and Z must not be asked to act again.
	players := []*Player{
		{Name: "X", Stack: 100},
		{Name: "Y", Stack: 60},
		{Name: "Z", Stack: 100},
	}
	dec := newScriptedDecider(map[string][]proposal{
		"X": {{"bet", 50}},
		"Y": {{"all-in", 0}},
		"Z": {{"call", 0}},
	})

	br := NewBettingRound(Flop, players, 0, 5, 5, dec.decide, NopObserver{}, testLogger())
	pot, winner := br.Run()

	require.Nil(t, winner)
	assert.Equal(t, 160, pot)
	assert.Equal(t, 1, dec.asked["X"], "short all-in must not reopen action for the bettor")
	assert.Equal(t, 1, dec.asked["Y"])
	assert.Equal(t, 1, dec.asked["Z"])
	assert.Equal(t, 50, br.lastRaise, "a short all-in must not move the raise floor")
	assert.True(t, players[1].AllIn)
}

func TestFullAllInReopensAction(t *testing.T) {
	t.Parallel()

	// Y's all-in for 150 over X's 50 is a raise of 100, a full legal
	// raise, so X owes another decision.
	players := []*Player{
		{Name: "X", Stack: 100},
		{Name: "Y", Stack: 150},
		{Name: "Z", Stack: 100},
	}
	dec := newScriptedDecider(map[string][]proposal{
		"X": {{"bet", 50}, {"call", 0}},
		"Y": {{"all-in", 0}},
		"Z": {{"fold", 0}},
	})

	br := NewBettingRound(Flop, players, 0, 5, 5, dec.decide, NopObserver{}, testLogger())
	pot, winner := br.Run()

	require.Nil(t, winner)
	assert.Equal(t, 2, dec.asked["X"], "a full-size all-in reopens the betting")
	assert.Equal(t, 250, pot) // X 100 (short call all-in), Y 150
	assert.True(t, players[0].AllIn)
	assert.True(t, players[2].Folded)
}

func TestUndersizedRaiseDegradesToCall(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Name: "X", Stack: 200},
		{Name: "Y", Stack: 200},
	}
	dec := newScriptedDecider(map[string][]proposal{
		"X": {{"bet", 50}},
		"Y": {{"raise", 60}}, // raise size 10 < last raise 50
	})
	obs := &recordingObserver{}

	br := NewBettingRound(Turn, players, 0, 5, 5, dec.decide, obs, testLogger())
	pot, winner := br.Run()

	require.Nil(t, winner)
	assert.Equal(t, 100, pot)

	require.Len(t, obs.actions, 2)
	assert.Equal(t, Call, obs.actions[1].Action)
	assert.Equal(t, "illegal-raise->call", obs.actions[1].Reason)
	assert.Equal(t, 50, obs.actions[1].Amount)
}

func TestEveryoneElseAllInFastPath(t *testing.T) {
	t.Parallel()

	// Two seats went all-in on an earlier street; the one seat with
	// chips owes nothing, so the street completes without asking it.
	players := []*Player{
		{Name: "A", Stack: 0, AllIn: true},
		{Name: "B", Stack: 0, AllIn: true},
		{Name: "C", Stack: 80},
	}
	dec := newScriptedDecider(map[string][]proposal{})

	br := NewBettingRound(River, players, 300, 5, 5, dec.decide, NopObserver{}, testLogger())
	pot, winner := br.Run()

	require.Nil(t, winner)
	assert.Equal(t, 300, pot)
	assert.Zero(t, dec.asked["C"], "no seat should act when no action can change the pot")
}

func TestFoldOutProducesEarlyWinner(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Name: "X", Stack: 100},
		{Name: "Y", Stack: 100},
		{Name: "Z", Stack: 100},
	}
	dec := newScriptedDecider(map[string][]proposal{
		"X": {{"bet", 25}},
		"Y": {{"fold", 0}},
		"Z": {{"fold", 0}},
	})

	br := NewBettingRound(Preflop, players, 3, 5, 5, dec.decide, NopObserver{}, testLogger())
	pot, winner := br.Run()

	require.NotNil(t, winner)
	assert.Equal(t, "X", winner.Name)
	assert.Equal(t, 28, pot)
	assert.True(t, players[1].Folded)
	assert.True(t, players[2].Folded)
}

func TestCheckAroundEndsStreet(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Name: "X", Stack: 100},
		{Name: "Y", Stack: 100},
		{Name: "Z", Stack: 100},
	}
	dec := newScriptedDecider(map[string][]proposal{})

	br := NewBettingRound(Flop, players, 30, 5, 5, dec.decide, NopObserver{}, testLogger())
	pot, winner := br.Run()

	require.Nil(t, winner)
	assert.Equal(t, 30, pot)
	for _, name := range []string{"X", "Y", "Z"} {
		assert.Equal(t, 1, dec.asked[name])
	}
}

// Package handlog persists one JSON line per completed hand, capturing
// enough of the action stream to replay or audit the hand later.
package handlog

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

type actionEntry struct {
	Street       string    `json:"street"`
	Name         string    `json:"name"`
	Action       string    `json:"action"`
	Reason       string    `json:"reason,omitempty"`
	ToCallBefore int       `json:"to_call_before"`
	Amount       int       `json:"amount"`
	StackBefore  int       `json:"stack_before"`
	StackAfter   int       `json:"stack_after"`
	PotAfter     int       `json:"pot_after"`
	ContribAfter int       `json:"contrib_after"`
	LastRaise    int       `json:"last_raise"`
	Opened       bool      `json:"opened"`
	At           time.Time `json:"at"`
}

type streetEntry struct {
	Street   string         `json:"street"`
	PotEnd   int            `json:"pot_end"`
	Contribs map[string]int `json:"contribs"`
	At       time.Time      `json:"at"`
}

type showdownEntry struct {
	Winners []string          `json:"winners"`
	Pot     int               `json:"pot"`
	Scores  map[string]string `json:"scores"`
	Holes   map[string]string `json:"holes_at_showdown"`
	Board   string            `json:"board"`
}

type record struct {
	HandID       string            `json:"hand_id"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	StacksStart  map[string]int    `json:"stacks_start"`
	StacksEnd    map[string]int    `json:"stacks_end"`
	Antes        map[string]int    `json:"antes"`
	HolesAtStart map[string]string `json:"holes_at_start"`
	Board        map[string]string `json:"board"`
	Streets      []streetEntry     `json:"streets"`
	Actions      []actionEntry     `json:"actions"`
	Showdown     *showdownEntry    `json:"showdown,omitempty"`
}

// Recorder accumulates one hand's events and appends the finished
// record to its writer as a single JSON line. One Recorder serves one
// hand at a time; concurrent hands each need their own, which may
// share an O_APPEND file since every record lands in a single Write.
type Recorder struct {
	mu     sync.Mutex
	w      io.Writer
	logger *log.Logger
	data   *record
}

// NewRecorder creates a recorder writing to w
func NewRecorder(w io.Writer, logger *log.Logger) *Recorder {
	return &Recorder{w: w, logger: logger.WithPrefix("handlog")}
}

// OpenFile opens (or creates) a JSONL file for appending and returns a
// recorder over it plus a close function.
func OpenFile(path string, logger *log.Logger) (*Recorder, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewRecorder(f, logger), f.Close, nil
}

func (r *Recorder) HandStarted(start game.HandStart) {
	r.mu.Lock()
	defer r.mu.Unlock()

	holes := make(map[string]string, len(start.Holes))
	for name, cards := range start.Holes {
		holes[name] = deck.FormatCards(cards)
	}

	r.data = &record{
		HandID:       uuid.NewString(),
		StartedAt:    time.Now().UTC(),
		StacksStart:  start.Stacks,
		Antes:        start.Antes,
		HolesAtStart: holes,
		Board:        map[string]string{},
	}
}

func (r *Recorder) BoardDealt(street game.Street, board []deck.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return
	}
	r.data.Board[street.String()] = deck.FormatCards(board)
}

func (r *Recorder) ActionApplied(rec game.ActionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return
	}
	r.data.Actions = append(r.data.Actions, actionEntry{
		Street:       rec.Street.String(),
		Name:         rec.Seat,
		Action:       rec.Action.String(),
		Reason:       rec.Reason,
		ToCallBefore: rec.ToCallBefore,
		Amount:       rec.Amount,
		StackBefore:  rec.StackBefore,
		StackAfter:   rec.StackAfter,
		PotAfter:     rec.PotAfter,
		ContribAfter: rec.ContributionAfter,
		LastRaise:    rec.LastRaise,
		Opened:       rec.Opened,
		At:           time.Now().UTC(),
	})
}

func (r *Recorder) StreetEnded(rec game.StreetRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return
	}
	r.data.Streets = append(r.data.Streets, streetEntry{
		Street:   rec.Street.String(),
		PotEnd:   rec.PotEnd,
		Contribs: rec.Contributions,
		At:       time.Now().UTC(),
	})
}

func (r *Recorder) ShowdownReached(rec game.ShowdownRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return
	}
	holes := make(map[string]string, len(rec.Holes))
	for name, cards := range rec.Holes {
		holes[name] = deck.FormatCards(cards)
	}
	r.data.Showdown = &showdownEntry{
		Winners: rec.Winners,
		Pot:     rec.Pot,
		Scores:  rec.Categories,
		Holes:   holes,
		Board:   deck.FormatCards(rec.Board),
	}
}

func (r *Recorder) HandFinished(stacks map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return
	}
	r.data.StacksEnd = stacks
	r.data.FinishedAt = time.Now().UTC()

	line, err := json.Marshal(r.data)
	if err != nil {
		r.logger.Error("failed to encode hand record", "error", err)
		r.data = nil
		return
	}
	if _, err := r.w.Write(append(line, '\n')); err != nil {
		r.logger.Error("failed to write hand record", "error", err)
	}
	r.data = nil
}

// Package display renders hand progress to a terminal and collects
// decisions from a human seat.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

// Console renders hand events as styled text. It shows only the human
// seat's hole cards during play; everyone's cards appear at showdown.
type Console struct {
	w         io.Writer
	humanSeat string
}

// NewConsole creates a console renderer. humanSeat may be empty for a
// spectator view with no hole cards shown until showdown.
func NewConsole(w io.Writer, humanSeat string) *Console {
	return &Console{w: w, humanSeat: humanSeat}
}

func (c *Console) HandStarted(start game.HandStart) {
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, headerStyle.Render("New hand"))

	names := make([]string, 0, len(start.Stacks))
	for name := range start.Stacks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line := fmt.Sprintf("  %s: %d chips", name, start.Stacks[name])
		if ante, ok := start.Antes[name]; ok && ante > 0 {
			line += dimStyle.Render(fmt.Sprintf(" (ante %d)", ante))
		}
		fmt.Fprintln(c.w, line)
	}

	if hole, ok := start.Holes[c.humanSeat]; ok {
		fmt.Fprintf(c.w, "  Your cards: %s\n", styledCards(hole))
	}
}

func (c *Console) BoardDealt(street game.Street, board []deck.Card) {
	fmt.Fprintf(c.w, "\n%s  %s\n", headerStyle.Render(street.String()), styledCards(board))
}

func (c *Console) ActionApplied(rec game.ActionRecord) {
	line := fmt.Sprintf("  %s %s", rec.Seat, rec.Action)
	if rec.Amount > 0 {
		line += fmt.Sprintf(" %d", rec.Amount)
	}
	fmt.Fprint(c.w, actionStyle.Render(line))
	if rec.Reason != "" {
		fmt.Fprint(c.w, dimStyle.Render("  ["+rec.Reason+"]"))
	}
	fmt.Fprintln(c.w)
}

func (c *Console) StreetEnded(rec game.StreetRecord) {
	fmt.Fprintf(c.w, "  %s\n", potStyle.Render(fmt.Sprintf("Pot: %d", rec.PotEnd)))
}

func (c *Console) ShowdownReached(rec game.ShowdownRecord) {
	fmt.Fprintf(c.w, "\n%s\n", headerStyle.Render("Showdown"))

	names := make([]string, 0, len(rec.Holes))
	for name := range rec.Holes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		category, ok := rec.Categories[name]
		if !ok {
			continue // folded before showdown
		}
		fmt.Fprintf(c.w, "  %s: %s  (%s)\n", name, styledCards(rec.Holes[name]), category)
	}

	fmt.Fprintln(c.w, winnerStyle.Render(
		fmt.Sprintf("  %s wins %d", strings.Join(rec.Winners, " and "), rec.Pot)))
}

func (c *Console) HandFinished(stacks map[string]int) {
	names := make([]string, 0, len(stacks))
	for name := range stacks {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %d", name, stacks[name])
	}
	fmt.Fprintf(c.w, "%s\n", dimStyle.Render("  Stacks: "+strings.Join(parts, ", ")))
}

// styledCards renders cards with red suits in red
func styledCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			parts[i] = redCardStyle.Render(card.String())
		} else {
			parts[i] = blackCardStyle.Render(card.String())
		}
	}
	return strings.Join(parts, " ")
}

package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-sim/internal/game"
)

// HumanAgent collects decisions from a person at the terminal. Input
// is free-form ("bet 20", "c", "fold"); anything the engine finds
// illegal is normalized downstream, the same as any other decision
// source.
type HumanAgent struct {
	out    io.Writer
	logger *log.Logger
}

// NewHumanAgent creates a terminal decision source writing prompts to
// out.
func NewHumanAgent(out io.Writer, logger *log.Logger) *HumanAgent {
	return &HumanAgent{out: out, logger: logger.WithPrefix("human")}
}

func (h *HumanAgent) Decide(req game.DecisionRequest) (string, int) {
	fmt.Fprint(h.out, renderSituation(req))

	p := tea.NewProgram(newPromptModel(promptText(req)), tea.WithOutput(h.out))
	res, err := p.Run()
	if err != nil {
		h.logger.Error("prompt failed, checking instead", "error", err)
		return "check", 0
	}

	m, ok := res.(promptModel)
	if !ok || m.aborted {
		return "fold", 0
	}
	return ParseInput(m.value)
}

// renderSituation summarizes what the human needs to decide on
func renderSituation(req game.DecisionRequest) string {
	var b strings.Builder
	b.WriteString("\n")
	if len(req.Board) > 0 {
		fmt.Fprintf(&b, "  Board: %s\n", styledCards(req.Board))
	}
	fmt.Fprintf(&b, "  Your cards: %s\n", styledCards(req.Hole))
	fmt.Fprintf(&b, "  Pot: %d   Stack: %d", req.Pot, req.Stacks[req.Name])
	if req.ToCall > 0 {
		fmt.Fprintf(&b, "   To call: %d", req.ToCall)
	}
	b.WriteString("\n")
	return b.String()
}

func promptText(req game.DecisionRequest) string {
	if req.ToCall > 0 {
		return fmt.Sprintf("fold/call/raise/all-in (min raise %d)", req.LastRaise)
	}
	return fmt.Sprintf("check/bet/all-in (min bet %d)", req.MinBet)
}

// ParseInput turns terminal input into an action proposal. Single
// letter shortcuts are accepted: f, k, c, b, r, a.
func ParseInput(input string) (string, int) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return "check", 0
	}

	action := fields[0]
	switch action {
	case "f":
		action = "fold"
	case "k":
		action = "check"
	case "c":
		action = "call"
	case "b":
		action = "bet"
	case "r":
		action = "raise"
	case "a":
		action = "all-in"
	}

	amount := 0
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			amount = n
		}
	}
	return action, amount
}

// promptModel is a one-shot text input prompt
type promptModel struct {
	input   textinput.Model
	hint    string
	value   string
	aborted bool
}

func newPromptModel(hint string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "check"
	ti.CharLimit = 32
	ti.Width = 24
	ti.Focus()
	return promptModel{input: ti, hint: hint}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	return fmt.Sprintf("  %s\n  %s\n", promptStyle.Render(m.hint), m.input.View())
}

package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-sim/internal/config"
	"github.com/lox/holdem-sim/internal/display"
	"github.com/lox/holdem-sim/internal/game"
	"github.com/lox/holdem-sim/internal/handlog"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd runs an interactive session until one seat holds all the
// chips or the hand limit is reached.
type PlayCmd struct {
	Config string `short:"c" default:"holdem-sim.hcl" help:"Path to HCL config file"`
	Hands  int    `default:"0" help:"Stop after this many hands (0 = play until one seat has everything)"`
	Seed   int64  `default:"0" help:"RNG seed (0 for time-based)"`
}

func (p *PlayCmd) Run() error {
	cfg, err := config.Load(p.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("session starting", "seed", seed, "seats", len(cfg.Seats))

	players := make([]*game.Player, 0, len(cfg.Seats))
	agents := make(map[string]game.Agent, len(cfg.Seats))
	humanSeat := ""
	for _, seat := range cfg.Seats {
		a, closer, err := buildAgent(seat, rng, logger)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}
		if seat.Agent == config.AgentHuman {
			humanSeat = seat.Name
		}
		players = append(players, &game.Player{Name: seat.Name, Stack: cfg.SeatChips(seat)})
		agents[seat.Name] = a
	}

	recorder, closeRecorder, err := handlog.OpenFile(cfg.Game.HandLog, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeRecorder() }()

	obs := game.MultiObserver{
		display.NewConsole(os.Stdout, humanSeat),
		recorder,
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))

	for handNum := 1; p.Hands == 0 || handNum <= p.Hands; handNum++ {
		h, err := game.NewHand(rng, players, agents, cfg.ToGameConfig(),
			game.WithObserver(obs), game.WithLogger(logger))
		if errors.Is(err, game.ErrNotEnoughSeats) {
			fmt.Println("\nGame over: only one seat has chips left.")
			return nil
		}
		if err != nil {
			return err
		}

		logger.Info("hand starting", "hand", handNum)
		if err := h.Play(); err != nil {
			return fmt.Errorf("hand %d: %w", handNum, err)
		}

		// The button moves one seat per hand
		players = append(players[1:], players[0])
	}

	fmt.Println("\nSession complete.")
	return nil
}

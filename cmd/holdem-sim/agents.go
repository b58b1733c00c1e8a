package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-sim/internal/agent"
	"github.com/lox/holdem-sim/internal/config"
	"github.com/lox/holdem-sim/internal/display"
	"github.com/lox/holdem-sim/internal/game"
)

const defaultRemoteTimeout = 30 * time.Second

// buildAgent constructs the decision source for a seat. The returned
// closer is non-nil for agents holding a connection.
func buildAgent(seat config.SeatConfig, rng *rand.Rand, logger *log.Logger) (game.Agent, func() error, error) {
	switch seat.Agent {
	case config.AgentHuman:
		return display.NewHumanAgent(os.Stdout, logger), nil, nil

	case config.AgentRule:
		return agent.NewRuleAgent(rng, logger), nil, nil

	case config.AgentCall:
		return agent.NewCallAgent(), nil, nil

	case config.AgentRandom:
		return agent.NewRandAgent(rng), nil, nil

	case config.AgentRemote:
		timeout := defaultRemoteTimeout
		if seat.Timeout > 0 {
			timeout = time.Duration(seat.Timeout) * time.Second
		}
		remote, err := agent.NewRemoteAgent(seat.URL, timeout, quartz.NewReal(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("seat %q: %w", seat.Name, err)
		}
		return remote, remote.Close, nil

	default:
		return nil, nil, fmt.Errorf("seat %q: unknown agent kind %q", seat.Name, seat.Agent)
	}
}

// newFileLogger opens the session log file. Game output goes to the
// terminal; diagnostics go here so they don't fight over the screen.
func newFileLogger(cfg *config.Config) (*log.Logger, func(), error) {
	f, err := os.OpenFile(cfg.Game.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if lvl, err := log.ParseLevel(cfg.Game.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, func() { _ = f.Close() }, nil
}

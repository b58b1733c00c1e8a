package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-sim/internal/agent"
	"github.com/lox/holdem-sim/internal/config"
	"github.com/lox/holdem-sim/internal/game"
	"github.com/lox/holdem-sim/internal/handlog"
)

// SimulateCmd plays bot-vs-bot hands across workers and reports
// per-seat results. Human and remote seats are swapped for rule bots
// so the run never blocks on anything outside the process.
type SimulateCmd struct {
	Config  string `short:"c" default:"holdem-sim.hcl" help:"Path to HCL config file"`
	Hands   int    `default:"1000" help:"Total number of hands to simulate"`
	Workers int    `default:"4" help:"Number of concurrent workers"`
	Seed    int64  `default:"0" help:"RNG seed (0 for time-based)"`
	HandLog string `help:"Append every simulated hand to this JSONL file"`
}

type seatStats struct {
	hands    int
	handsWon int
	netChips int
}

func (s *SimulateCmd) Run() error {
	cfg, err := config.Load(s.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.Workers < 1 {
		s.Workers = 1
	}

	logger, closeLog, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("simulation starting",
		"hands", s.Hands, "workers", s.Workers, "seed", seed)

	var logFile *os.File
	if s.HandLog != "" {
		logFile, err = os.OpenFile(s.HandLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open hand log: %w", err)
		}
		defer logFile.Close()
	}

	var (
		mu    sync.Mutex
		stats = make(map[string]*seatStats)
	)
	record := func(start, end map[string]int) {
		mu.Lock()
		defer mu.Unlock()
		for name, before := range start {
			st, ok := stats[name]
			if !ok {
				st = &seatStats{}
				stats[name] = st
			}
			st.hands++
			delta := end[name] - before
			st.netChips += delta
			if delta > 0 {
				st.handsWon++
			}
		}
	}

	g, ctx := errgroup.WithContext(context.Background())
	perWorker := s.Hands / s.Workers
	remainder := s.Hands % s.Workers

	started := time.Now()
	for w := 0; w < s.Workers; w++ {
		hands := perWorker
		if w < remainder {
			hands++
		}
		rng := rand.New(rand.NewSource(seed + int64(w)))
		workerLogger := logger.WithPrefix(fmt.Sprintf("worker-%d", w))

		g.Go(func() error {
			return s.runWorker(ctx, cfg, rng, hands, workerLogger, logFile, record)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(stats, time.Since(started))
	return nil
}

func (s *SimulateCmd) runWorker(ctx context.Context, cfg *config.Config, rng *rand.Rand,
	hands int, logger *log.Logger, logFile *os.File, record func(start, end map[string]int)) error {

	agents := make(map[string]game.Agent, len(cfg.Seats))
	for _, seat := range cfg.Seats {
		agents[seat.Name] = s.botFor(seat, rng, logger)
	}

	var obs game.Observer = game.NopObserver{}
	if logFile != nil {
		// One recorder per worker; records land as single appends
		obs = handlog.NewRecorder(logFile, logger)
	}

	for i := 0; i < hands; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Fresh stacks every hand so seats are compared on equal terms
		players := make([]*game.Player, 0, len(cfg.Seats))
		start := make(map[string]int, len(cfg.Seats))
		for _, seat := range cfg.Seats {
			chips := cfg.SeatChips(seat)
			players = append(players, &game.Player{Name: seat.Name, Stack: chips})
			start[seat.Name] = chips
		}
		// Rotate the button across hands
		offset := i % len(players)
		players = append(players[offset:], players[:offset]...)

		h, err := game.NewHand(rng, players, agents, cfg.ToGameConfig(),
			game.WithObserver(obs), game.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := h.Play(); err != nil {
			return fmt.Errorf("hand %d: %w", i, err)
		}

		end := make(map[string]int, len(players))
		for _, p := range players {
			end[p.Name] = p.Stack
		}
		record(start, end)
	}
	return nil
}

// botFor substitutes in-process bots for seats that would block
func (s *SimulateCmd) botFor(seat config.SeatConfig, rng *rand.Rand, logger *log.Logger) game.Agent {
	switch seat.Agent {
	case config.AgentCall:
		return agent.NewCallAgent()
	case config.AgentRandom:
		return agent.NewRandAgent(rng)
	case config.AgentHuman, config.AgentRemote:
		logger.Info("substituting rule bot for simulation", "seat", seat.Name, "agent", seat.Agent)
		return agent.NewRuleAgent(rng, logger)
	default:
		return agent.NewRuleAgent(rng, logger)
	}
}

func printSummary(stats map[string]*seatStats, elapsed time.Duration) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats[names[i]].netChips > stats[names[j]].netChips
	})

	fmt.Println(titleStyle.Render(" Simulation results "))
	for _, name := range names {
		st := stats[name]
		avg := 0.0
		if st.hands > 0 {
			avg = float64(st.netChips) / float64(st.hands)
		}
		fmt.Printf("  %-12s hands=%-6d won=%-6d net=%-+8d avg/hand=%+.2f\n",
			name, st.hands, st.handsWon, st.netChips, avg)
	}
	fmt.Printf("  completed in %s\n", elapsed.Round(time.Millisecond))
}

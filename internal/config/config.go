// Package config loads table and seat configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/game"
)

// Config is the complete simulator configuration
type Config struct {
	Game  GameSettings `hcl:"game,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// GameSettings contains the table-level constants
type GameSettings struct {
	MinBet     int    `hcl:"min_bet,optional"`
	Ante       int    `hcl:"ante,optional"`
	SmallBlind int    `hcl:"small_blind,optional"`
	BigBlind   int    `hcl:"big_blind,optional"`
	Chips      int    `hcl:"chips,optional"`
	LowestRank int    `hcl:"lowest_rank,optional"`
	HandLog    string `hcl:"hand_log,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	LogFile    string `hcl:"log_file,optional"`
}

// SeatConfig defines one seat at the table
type SeatConfig struct {
	Name    string `hcl:"name,label"`
	Agent   string `hcl:"agent"`
	Chips   int    `hcl:"chips,optional"`
	URL     string `hcl:"url,optional"`
	Timeout int    `hcl:"timeout_seconds,optional"`
}

// Agent kinds accepted in seat blocks.
const (
	AgentHuman  = "human"
	AgentRule   = "rule"
	AgentCall   = "call"
	AgentRandom = "random"
	AgentRemote = "remote"
)

// DefaultConfig returns the classic table: one human seat against
// three rule bots, ante-only play.
func DefaultConfig() *Config {
	return &Config{
		Game: GameSettings{
			MinBet:   5,
			Ante:     1,
			Chips:    100,
			HandLog:  "hand_logs.jsonl",
			LogLevel: "info",
			LogFile:  "holdem-sim.log",
		},
		Seats: []SeatConfig{
			{Name: "You", Agent: AgentHuman},
			{Name: "North", Agent: AgentRule},
			{Name: "East", Agent: AgentRule},
			{Name: "West", Agent: AgentRule},
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults rather than an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	return decode(file)
}

// Parse decodes configuration from raw HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var cfg Config
	diags := gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Game.MinBet == 0 {
		cfg.Game.MinBet = def.Game.MinBet
	}
	if cfg.Game.Chips == 0 {
		cfg.Game.Chips = def.Game.Chips
	}
	if cfg.Game.HandLog == "" {
		cfg.Game.HandLog = def.Game.HandLog
	}
	if cfg.Game.LogLevel == "" {
		cfg.Game.LogLevel = def.Game.LogLevel
	}
	if cfg.Game.LogFile == "" {
		cfg.Game.LogFile = def.Game.LogFile
	}
}

// ToGameConfig maps the settings onto the engine's hand configuration
func (c *Config) ToGameConfig() game.Config {
	return game.Config{
		MinBet:     c.Game.MinBet,
		Ante:       c.Game.Ante,
		SmallBlind: c.Game.SmallBlind,
		BigBlind:   c.Game.BigBlind,
		LowestRank: deck.Rank(c.Game.LowestRank),
	}
}

// Validate rejects configurations the engine cannot seat
func (c *Config) Validate() error {
	if len(c.Seats) < 2 {
		return fmt.Errorf("at least two seats required, got %d", len(c.Seats))
	}
	if c.Game.MinBet <= 0 {
		return fmt.Errorf("min_bet must be positive, got %d", c.Game.MinBet)
	}
	if c.Game.Ante < 0 {
		return fmt.Errorf("ante must not be negative, got %d", c.Game.Ante)
	}

	seen := make(map[string]bool)
	for _, s := range c.Seats {
		if seen[s.Name] {
			return fmt.Errorf("duplicate seat name %q", s.Name)
		}
		seen[s.Name] = true

		switch s.Agent {
		case AgentHuman, AgentRule, AgentCall, AgentRandom:
		case AgentRemote:
			if s.URL == "" {
				return fmt.Errorf("seat %q: remote agent requires a url", s.Name)
			}
		default:
			return fmt.Errorf("seat %q: unknown agent kind %q", s.Name, s.Agent)
		}

		if s.Chips < 0 {
			return fmt.Errorf("seat %q: chips must not be negative", s.Name)
		}
	}
	return nil
}

// SeatChips returns the seat's starting stack, falling back to the
// table default.
func (c *Config) SeatChips(s SeatConfig) int {
	if s.Chips > 0 {
		return s.Chips
	}
	return c.Game.Chips
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	t.Parallel()

	src := `
game {
  min_bet     = 10
  ante        = 2
  small_blind = 5
  big_blind   = 10
  chips       = 500
  hand_log    = "hands.jsonl"
}

seat "You" {
  agent = "human"
}

seat "HAL" {
  agent           = "remote"
  url             = "ws://localhost:9000/decide"
  timeout_seconds = 30
  chips           = 250
}

seat "Callie" {
  agent = "call"
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Game.MinBet)
	assert.Equal(t, 2, cfg.Game.Ante)
	assert.Equal(t, "hands.jsonl", cfg.Game.HandLog)

	require.Len(t, cfg.Seats, 3)
	assert.Equal(t, "HAL", cfg.Seats[1].Name)
	assert.Equal(t, AgentRemote, cfg.Seats[1].Agent)
	assert.Equal(t, 30, cfg.Seats[1].Timeout)
	assert.Equal(t, 250, cfg.SeatChips(cfg.Seats[1]))
	assert.Equal(t, 500, cfg.SeatChips(cfg.Seats[0]), "seats without chips take the table default")

	gc := cfg.ToGameConfig()
	assert.Equal(t, 10, gc.MinBet)
	assert.Equal(t, 5, gc.SmallBlind)
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	src := `
game {}

seat "A" { agent = "rule" }
seat "B" { agent = "rule" }
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.Game.MinBet)
	assert.Equal(t, 100, cfg.Game.Chips)
	assert.Equal(t, "hand_logs.jsonl", cfg.Game.HandLog)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("does-not-exist.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1, cfg.Game.Ante)
	require.Len(t, cfg.Seats, 4)
	assert.Equal(t, AgentHuman, cfg.Seats[0].Agent)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"one seat",
			`game {}
seat "A" { agent = "rule" }`,
			"at least two seats",
		},
		{
			"unknown agent",
			`game {}
seat "A" { agent = "psychic" }
seat "B" { agent = "rule" }`,
			"unknown agent kind",
		},
		{
			"remote without url",
			`game {}
seat "A" { agent = "remote" }
seat "B" { agent = "rule" }`,
			"requires a url",
		},
		{
			"duplicate seat names",
			`game {}
seat "A" { agent = "rule" }
seat "A" { agent = "call" }`,
			"duplicate seat name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`game { min_bet = `), "broken.hcl")
	require.Error(t, err)
}

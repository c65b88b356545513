// Package config loads a single game's configuration from HCL, narrowed
// from the multi-table server configuration this package is grounded on
// down to the one game an Orchestrator drives.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ophis/holdem-engine/internal/bot"
	"github.com/ophis/holdem-engine/internal/table"
)

// GameConfig is the complete configuration for one game.
type GameConfig struct {
	Game  GameSettings `hcl:"game,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// GameSettings holds table-level parameters.
type GameSettings struct {
	Variant    string `hcl:"variant,optional"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
}

// SeatConfig describes one seat at the table. Human seats omit Difficulty;
// bot seats set IsBot and a difficulty tier.
type SeatConfig struct {
	Name       string `hcl:"name,label"`
	Chips      int    `hcl:"chips"`
	IsBot      bool   `hcl:"is_bot,optional"`
	Difficulty string `hcl:"difficulty,optional"`
}

// DefaultGameConfig returns a six-handed no-limit game with five reference
// bots and one open human seat.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Game: GameSettings{
			Variant:    string(table.NoLimit),
			SmallBlind: 10,
			BigBlind:   20,
		},
		Seats: []SeatConfig{
			{Name: "hero", Chips: 1000},
			{Name: "bot1", Chips: 1000, IsBot: true, Difficulty: "easy"},
			{Name: "bot2", Chips: 1000, IsBot: true, Difficulty: "medium"},
			{Name: "bot3", Chips: 1000, IsBot: true, Difficulty: "medium"},
			{Name: "bot4", Chips: 1000, IsBot: true, Difficulty: "hard"},
			{Name: "bot5", Chips: 1000, IsBot: true, Difficulty: "hard"},
		},
	}
}

// Load reads a game configuration from an HCL file. A missing file yields
// DefaultGameConfig rather than an error, matching a dev-tool's expectation
// that running without a config file still produces a playable game.
func Load(filename string) (*GameConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultGameConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	var cfg GameConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	if cfg.Game.Variant == "" {
		cfg.Game.Variant = string(table.NoLimit)
	}
	for i := range cfg.Seats {
		if cfg.Seats[i].IsBot && cfg.Seats[i].Difficulty == "" {
			cfg.Seats[i].Difficulty = "medium"
		}
	}

	return &cfg, nil
}

// Validate reports a configuration error, if any.
func (c *GameConfig) Validate() error {
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("config: small blind must be positive")
	}
	if c.Game.BigBlind < 2*c.Game.SmallBlind {
		return fmt.Errorf("config: big blind must be at least twice the small blind")
	}
	if len(c.Seats) < 2 || len(c.Seats) > 9 {
		return fmt.Errorf("config: seats must be between 2 and 9, got %d", len(c.Seats))
	}

	validDifficulties := map[string]bool{"easy": true, "medium": true, "hard": true}
	for _, s := range c.Seats {
		if s.Chips <= 0 {
			return fmt.Errorf("config: seat %s: chips must be positive", s.Name)
		}
		if s.IsBot && !validDifficulties[s.Difficulty] {
			return fmt.Errorf("config: seat %s: invalid difficulty %q", s.Name, s.Difficulty)
		}
	}
	return nil
}

// Variant returns the configured betting variant, defaulting to NoLimit
// when unset.
func (c *GameConfig) Variant() table.Variant {
	if c.Game.Variant == "" {
		return table.NoLimit
	}
	return table.Variant(c.Game.Variant)
}

// BotDifficulty returns the bot.Difficulty for a seat config, defaulting to
// bot.Medium if unset or unrecognized.
func (s SeatConfig) BotDifficulty() bot.Difficulty {
	switch s.Difficulty {
	case "easy":
		return bot.Easy
	case "hard":
		return bot.Hard
	default:
		return bot.Medium
	}
}

// BuildSeats turns the configured seats into a fresh GameState's Seats
// slice, in seat order.
func (c *GameConfig) BuildSeats() []*table.PlayerSeat {
	seats := make([]*table.PlayerSeat, len(c.Seats))
	for i, s := range c.Seats {
		seats[i] = &table.PlayerSeat{
			PlayerID:    s.Name,
			DisplayName: s.Name,
			Chips:       s.Chips,
			IsBot:       s.IsBot,
			Seat:        i,
			Difficulty:  s.Difficulty,
		}
	}
	return seats
}

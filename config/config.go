// Package config loads run settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/runeblade/engine/mapgen"
	"github.com/nathoo/runeblade/engine/shop"
	"github.com/nathoo/runeblade/types"
)

// Config is everything tunable about a run.
type Config struct {
	Battle types.GameConfig `yaml:"battle"`
	Map    types.MapConfig  `yaml:"map"`
	Shop   shop.Config      `yaml:"shop"`
	Run    RunConfig        `yaml:"run"`
	Log    LogConfig        `yaml:"log"`
}

// RunConfig holds settings that span battles.
type RunConfig struct {
	StartingGold    int `yaml:"starting_gold"`
	RestHealPercent int `yaml:"rest_heal_percent"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ParseLevel returns the configured level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	return log.ParseLevel(l.Level)
}

// Default returns the normal-difficulty configuration.
func Default() Config {
	return Config{
		Battle: Preset("normal"),
		Map:    mapgen.DefaultConfig(),
		Shop:   shop.DefaultConfig(),
		Run: RunConfig{
			StartingGold:    0,
			RestHealPercent: 30,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Preset returns the battle settings for a difficulty. Unknown names get
// normal.
func Preset(difficulty string) types.GameConfig {
	cfg := types.GameConfig{
		Difficulty:        "normal",
		DamageMultiplier:  1,
		HealingMultiplier: 1,
		StartingHandSize:  5,
		CardsPerTurn:      1,
	}
	switch difficulty {
	case "easy":
		cfg.Difficulty = "easy"
		cfg.DamageMultiplier = 1.25
		cfg.HealingMultiplier = 1.5
	case "hard":
		cfg.Difficulty = "hard"
		cfg.DamageMultiplier = 0.8
		cfg.HealingMultiplier = 0.75
	}
	return cfg
}

// ApplyDefaults restores settings a file emptied out. Tables written as
// empty maps get the default tables back, and a partial rarity table for an
// act keeps the default weight of every rarity it leaves out.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Battle.Difficulty == "" {
		c.Battle.Difficulty = d.Battle.Difficulty
	}
	if len(c.Map.EncounterWeights) == 0 {
		c.Map.EncounterWeights = d.Map.EncounterWeights
	}
	if len(c.Shop.RarityWeights) == 0 {
		c.Shop.RarityWeights = d.Shop.RarityWeights
	}
	for act, weights := range c.Shop.RarityWeights {
		if weights == nil {
			weights = map[types.Rarity]int{}
			c.Shop.RarityWeights[act] = weights
		}
		for rarity, w := range d.Shop.RarityWeights[act] {
			if _, ok := weights[rarity]; !ok {
				weights[rarity] = w
			}
		}
	}
	if len(c.Shop.Prices) == 0 {
		c.Shop.Prices = d.Shop.Prices
	}
	if len(c.Shop.DiscountChances) == 0 {
		c.Shop.DiscountChances = d.Shop.DiscountChances
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Load reads a YAML file. Fields the file leaves out keep their defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML configuration over the defaults. Maps merge per key.
func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	c.ApplyDefaults()
	return c, nil
}

// Validate reports every setting a run cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Battle.DamageMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("battle.damage_multiplier must be positive, got %v", c.Battle.DamageMultiplier))
	}
	if c.Battle.HealingMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("battle.healing_multiplier must be positive, got %v", c.Battle.HealingMultiplier))
	}
	if c.Battle.StartingHandSize <= 0 {
		errs = append(errs, fmt.Errorf("battle.starting_hand_size must be positive, got %d", c.Battle.StartingHandSize))
	}
	if c.Map.Rows != 0 && c.Map.Rows < 3 {
		errs = append(errs, fmt.Errorf("map.rows must be at least 3, got %d", c.Map.Rows))
	}
	if c.Map.NodesPerRow.Max < c.Map.NodesPerRow.Min {
		errs = append(errs, fmt.Errorf("map.nodes_per_row: max %d below min %d", c.Map.NodesPerRow.Max, c.Map.NodesPerRow.Min))
	}
	if c.Shop.ItemsPerShop <= 0 {
		errs = append(errs, fmt.Errorf("shop.items_per_shop must be positive, got %d", c.Shop.ItemsPerShop))
	}
	if c.Shop.MinDeckSize > c.Shop.MaxDeckSize {
		errs = append(errs, fmt.Errorf("shop.min_deck_size %d exceeds max_deck_size %d", c.Shop.MinDeckSize, c.Shop.MaxDeckSize))
	}
	if c.Shop.Discount.Max < c.Shop.Discount.Min {
		errs = append(errs, fmt.Errorf("shop.discount: max %d below min %d", c.Shop.Discount.Max, c.Shop.Discount.Min))
	}
	if c.Shop.Discount.Min < 0 || c.Shop.Discount.Max >= 100 {
		errs = append(errs, fmt.Errorf("shop.discount: %d-%d is outside 0-99 percent", c.Shop.Discount.Min, c.Shop.Discount.Max))
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/runeblade/types"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "normal", cfg.Battle.Difficulty)
	assert.Equal(t, 5, cfg.Battle.StartingHandSize)
	assert.Equal(t, 30, cfg.Run.RestHealPercent)
	assert.Equal(t, 5, cfg.Shop.ItemsPerShop)
	assert.True(t, cfg.Map.GuaranteedShop)
}

func TestPreset(t *testing.T) {
	assert.Equal(t, 1.25, Preset("easy").DamageMultiplier)
	assert.Equal(t, 0.75, Preset("hard").HealingMultiplier)
	assert.Equal(t, "normal", Preset("nightmare").Difficulty)
	assert.Equal(t, 1.0, Preset("nightmare").DamageMultiplier)
}

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	cfg, err := Parse([]byte(`
battle:
  difficulty: hard
  damage_multiplier: 0.5
shop:
  items_per_shop: 3
  prices:
    common: 40
map:
  rows: 12
log:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "hard", cfg.Battle.Difficulty)
	assert.Equal(t, 0.5, cfg.Battle.DamageMultiplier)
	assert.Equal(t, 1.0, cfg.Battle.HealingMultiplier)
	assert.Equal(t, 5, cfg.Battle.StartingHandSize)
	assert.Equal(t, 3, cfg.Shop.ItemsPerShop)
	assert.Equal(t, 40, cfg.Shop.Prices[types.RarityCommon])
	assert.Equal(t, 75, cfg.Shop.Prices[types.RarityUncommon])
	assert.Equal(t, 400, cfg.Shop.Prices[types.RarityLegendary])
	assert.Equal(t, 0.3, cfg.Shop.DiscountChances[types.RarityCommon])
	assert.Equal(t, 50, cfg.Shop.RefreshCost)
	assert.Equal(t, 12, cfg.Map.Rows)
	assert.NotEmpty(t, cfg.Map.EncounterWeights)
	assert.Equal(t, "debug", cfg.Log.Level)

	level, err := cfg.Log.ParseLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestParseWithoutMapBlockKeepsMapDefaults(t *testing.T) {
	cfg, err := Parse([]byte("battle:\n  starting_hand_size: 6\n"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Battle.StartingHandSize)
	assert.Equal(t, Default().Map, cfg.Map)
	assert.True(t, cfg.Map.GuaranteedShop)
	assert.Equal(t, 2, cfg.Map.EliteMinRow)
	assert.Equal(t, 2, cfg.Map.RestMinRow)
	assert.Equal(t, Default().Shop, cfg.Shop)
	require.NoError(t, cfg.Validate())
}

func TestParseMergesPartialTables(t *testing.T) {
	cfg, err := Parse([]byte(`
map:
  guaranteed_shop: false
  encounter_weights:
    elite: 0
shop:
  rarity_weights:
    1:
      legendary: 2
  discount_chances:
    rare: 0.5
`))
	require.NoError(t, err)

	assert.False(t, cfg.Map.GuaranteedShop)
	assert.Equal(t, 2, cfg.Map.EliteMinRow)
	assert.Equal(t, 0, cfg.Map.EncounterWeights[types.EncounterElite])
	assert.Equal(t, 50, cfg.Map.EncounterWeights[types.EncounterEnemy])

	assert.Equal(t, 2, cfg.Shop.RarityWeights[1][types.RarityLegendary])
	assert.Equal(t, 50, cfg.Shop.RarityWeights[1][types.RarityCommon])
	assert.Equal(t, Default().Shop.RarityWeights[3], cfg.Shop.RarityWeights[3])
	assert.Equal(t, 0.5, cfg.Shop.DiscountChances[types.RarityRare])
	assert.Equal(t, 0.3, cfg.Shop.DiscountChances[types.RarityCommon])
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("battle: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runeblade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  starting_gold: 99\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Run.StartingGold)
	assert.Equal(t, 30, cfg.Run.RestHealPercent)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Battle.DamageMultiplier = 0
	cfg.Battle.HealingMultiplier = -1
	cfg.Battle.StartingHandSize = 0
	cfg.Map.Rows = 2
	cfg.Shop.MinDeckSize = 30
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"damage_multiplier", "healing_multiplier", "starting_hand_size", "map.rows", "min_deck_size", "log.level"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateDiscountRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		ok       bool
	}{
		{"default", 10, 30, true},
		{"zero to 99", 0, 99, true},
		{"full price off", 10, 100, false},
		{"negative", -5, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Shop.Discount = types.Range{Min: tt.min, Max: tt.max}
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, "shop.discount")
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RUNEBLADE_DIFFICULTY", "easy")
	t.Setenv("RUNEBLADE_HAND_SIZE", "7")
	t.Setenv("RUNEBLADE_STARTING_GOLD", "not-a-number")
	t.Setenv("RUNEBLADE_LOG_LEVEL", "warn")

	cfg := FromEnv(Default())
	assert.Equal(t, "easy", cfg.Battle.Difficulty)
	assert.Equal(t, 1.25, cfg.Battle.DamageMultiplier)
	assert.Equal(t, 1.5, cfg.Battle.HealingMultiplier)
	assert.Equal(t, 7, cfg.Battle.StartingHandSize)
	assert.Equal(t, 0, cfg.Run.StartingGold)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestFromEnvWithoutOverrides(t *testing.T) {
	for _, k := range []string{"RUNEBLADE_DIFFICULTY", "RUNEBLADE_HAND_SIZE", "RUNEBLADE_STARTING_GOLD", "RUNEBLADE_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	assert.Equal(t, Default(), FromEnv(Default()))
}

package config

import (
	"os"
	"strconv"
)

// FromEnv applies RUNEBLADE_* environment overrides to base. A difficulty
// preset replaces the battle multipliers before the other overrides apply.
func FromEnv(base Config) Config {
	cfg := base

	if mode := os.Getenv("RUNEBLADE_DIFFICULTY"); mode != "" {
		preset := Preset(mode)
		cfg.Battle.Difficulty = preset.Difficulty
		cfg.Battle.DamageMultiplier = preset.DamageMultiplier
		cfg.Battle.HealingMultiplier = preset.HealingMultiplier
	}
	if val := getEnvInt("RUNEBLADE_HAND_SIZE"); val > 0 {
		cfg.Battle.StartingHandSize = val
	}
	if val := getEnvInt("RUNEBLADE_STARTING_GOLD"); val > 0 {
		cfg.Run.StartingGold = val
	}
	if level := os.Getenv("RUNEBLADE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

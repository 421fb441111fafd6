package config

import "fmt"

// ParsePreset converts a flag value to a DifficultyPreset.
// An empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *WastelandConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.StartingFood = cfg.Player.StartingFood * 3 / 2
		cfg.Food.Generated += 2
		cfg.Enemy.Damage = max(cfg.Enemy.Damage-1, 1)
	case DifficultyHard:
		cfg.Player.StartingFood = max(cfg.Player.StartingFood*7/10, 1)
		cfg.Food.Generated = max(cfg.Food.Generated-2, 1)
		cfg.Enemy.Damage++
	}
}

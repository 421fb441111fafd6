package config

import (
	_ "embed"
)

//go:embed defaults/wasteland.yaml
var defaultWastelandYAML []byte

// DefaultConfig returns the hardcoded default configuration.
// It matches defaults/wasteland.yaml.
func DefaultConfig() WastelandConfig {
	return WastelandConfig{
		Board: BoardConfig{
			MinWidth:  8,
			MaxWidth:  12,
			MinHeight: 8,
			MaxHeight: 12,
		},
		Player: PlayerConfig{
			StartingFood: 100,
		},
		Enemy: EnemyConfig{
			HealthMin: 2,
			HealthMax: 3,
			Damage:    3,
		},
		Wall: WallConfig{
			HealthMin: 4,
			HealthMax: 6,
		},
		Food: FoodConfig{
			Generated:       5,
			RefreshInterval: 15,
			Prefabs:         []FoodPrefab{{Amount: 5}, {Amount: 10}},
		},
		Items: []ItemConfig{
			{Strength: 1},
			{Defense: 1},
			{Stamina: 1},
		},
		Tiles: TilesConfig{
			Ground:   4,
			Wall:     2,
			Obstacle: 3,
		},
		Rules: RulesConfig{
			DamageMode: "food_loss",
			MoveFrames: 4,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultWastelandYAML
}

// Package config provides YAML-based configuration loading and difficulty
// presets for Wasteland Survivor.
package config

// WastelandConfig contains all configuration for the game.
type WastelandConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Player PlayerConfig `yaml:"player"`
	Enemy  EnemyConfig  `yaml:"enemy"`
	Wall   WallConfig   `yaml:"wall"`
	Food   FoodConfig   `yaml:"food"`
	Items  []ItemConfig `yaml:"items"`
	Tiles  TilesConfig  `yaml:"tiles"`
	Rules  RulesConfig  `yaml:"rules"`
}

// BoardConfig bounds the size of generated boards. The upper bounds grow
// with the level, up to ten cells.
type BoardConfig struct {
	MinWidth  int `yaml:"min_width"`
	MaxWidth  int `yaml:"max_width"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
}

// PlayerConfig defines the starting resources.
type PlayerConfig struct {
	StartingFood int `yaml:"starting_food"`
}

// EnemyConfig defines enemy stats. Health is rolled in
// [health_min, health_max) plus [0, level).
type EnemyConfig struct {
	HealthMin int `yaml:"health_min"`
	HealthMax int `yaml:"health_max"`
	Damage    int `yaml:"damage"`
}

// WallConfig defines destructible wall stats. Health is rolled in
// [health_min, health_max).
type WallConfig struct {
	HealthMin int `yaml:"health_min"`
	HealthMax int `yaml:"health_max"`
}

// FoodConfig defines food scattering.
type FoodConfig struct {
	Generated       int          `yaml:"generated"`        // Placements per board and per refresh
	RefreshInterval int          `yaml:"refresh_interval"` // Turns between refreshes, 0 disables
	Prefabs         []FoodPrefab `yaml:"prefabs"`
}

// FoodPrefab is one kind of food.
type FoodPrefab struct {
	Amount int `yaml:"amount"`
}

// ItemConfig is one kind of stat item.
type ItemConfig struct {
	Strength int `yaml:"strength"`
	Defense  int `yaml:"defense"`
	Stamina  int `yaml:"stamina"`
}

// TilesConfig sets how many cosmetic variants each tile kind has.
type TilesConfig struct {
	Ground   int `yaml:"ground"`
	Wall     int `yaml:"wall"`
	Obstacle int `yaml:"obstacle"`
}

// RulesConfig holds rule switches.
type RulesConfig struct {
	DamageMode string `yaml:"damage_mode"` // "food_loss" or "legacy"
	MoveFrames int    `yaml:"move_frames"` // Animation ticks per move, 0 is instant
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

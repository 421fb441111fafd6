package core

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when the board size bounds cannot
// produce a board.
var ErrInvalidDimensions = errors.New("invalid board dimensions")

// DamageMode selects how enemy hits turn into food loss.
type DamageMode uint8

const (
	// DamageFoodLoss: a positive hit after mitigation is food lost.
	DamageFoodLoss DamageMode = iota
	// DamageLegacy: signed hits; only a negative result costs food.
	DamageLegacy
)

// String returns the mode name used in configuration files.
func (m DamageMode) String() string {
	if m == DamageLegacy {
		return "legacy"
	}
	return "food_loss"
}

// ParseDamageMode converts a configuration value to a DamageMode.
func ParseDamageMode(s string) (DamageMode, bool) {
	switch s {
	case "", "food_loss":
		return DamageFoodLoss, true
	case "legacy":
		return DamageLegacy, true
	default:
		return DamageFoodLoss, false
	}
}

// FoodPrefab is one kind of food the generator can scatter.
type FoodPrefab struct {
	Amount int
}

// ItemPrefab is one kind of stat item the generator can place.
type ItemPrefab struct {
	Strength int
	Defense  int
	Stamina  int
}

// Params configures generation and the rules of a World.
type Params struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int

	StartingFood        int
	FoodGenerated       int // food placements per board and per refresh
	FoodRefreshInterval int // turns between food refreshes, 0 disables

	EnemyHealthMin int // enemy health roll is [min, max) plus [0, level)
	EnemyHealthMax int
	EnemyDamage    int
	WallHealthMin  int // wall health roll is [min, max)
	WallHealthMax  int

	Foods []FoodPrefab
	Items []ItemPrefab

	// Cosmetic variant counts per tile kind.
	GroundTiles   int
	WallTiles     int
	ObstacleTiles int

	DamageMode DamageMode
}

// DefaultParams returns the stock game rules.
func DefaultParams() Params {
	return Params{
		MinWidth:            8,
		MaxWidth:            12,
		MinHeight:           8,
		MaxHeight:           12,
		StartingFood:        100,
		FoodGenerated:       5,
		FoodRefreshInterval: 15,
		EnemyHealthMin:      2,
		EnemyHealthMax:      3,
		EnemyDamage:         3,
		WallHealthMin:       4,
		WallHealthMax:       6,
		Foods:               []FoodPrefab{{Amount: 5}, {Amount: 10}},
		Items: []ItemPrefab{
			{Strength: 1},
			{Defense: 1},
			{Stamina: 1},
		},
		GroundTiles:   4,
		WallTiles:     2,
		ObstacleTiles: 3,
		DamageMode:    DamageFoodLoss,
	}
}

// Validate checks that the parameters can generate boards.
func (p Params) Validate() error {
	if p.MinWidth >= p.MaxWidth || p.MinHeight >= p.MaxHeight {
		return fmt.Errorf("%w: min must be below max (width %d..%d, height %d..%d)",
			ErrInvalidDimensions, p.MinWidth, p.MaxWidth, p.MinHeight, p.MaxHeight)
	}
	if p.MinWidth < 4 || p.MinHeight < 4 {
		return fmt.Errorf("%w: boards need at least 4x4 cells, got min %dx%d",
			ErrInvalidDimensions, p.MinWidth, p.MinHeight)
	}
	return nil
}

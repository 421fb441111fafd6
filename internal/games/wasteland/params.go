package wasteland

import (
	"github.com/capnchainsaw/WastelandSurvivor/internal/config"
	wcore "github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"
)

// ParamsFromConfig converts the YAML configuration to simulation rules.
// The config is expected to have passed Validate.
func ParamsFromConfig(cfg config.WastelandConfig) wcore.Params {
	mode, _ := wcore.ParseDamageMode(cfg.Rules.DamageMode)

	foods := make([]wcore.FoodPrefab, len(cfg.Food.Prefabs))
	for i, f := range cfg.Food.Prefabs {
		foods[i] = wcore.FoodPrefab{Amount: f.Amount}
	}
	items := make([]wcore.ItemPrefab, len(cfg.Items))
	for i, it := range cfg.Items {
		items[i] = wcore.ItemPrefab{Strength: it.Strength, Defense: it.Defense, Stamina: it.Stamina}
	}

	return wcore.Params{
		MinWidth:            cfg.Board.MinWidth,
		MaxWidth:            cfg.Board.MaxWidth,
		MinHeight:           cfg.Board.MinHeight,
		MaxHeight:           cfg.Board.MaxHeight,
		StartingFood:        cfg.Player.StartingFood,
		FoodGenerated:       cfg.Food.Generated,
		FoodRefreshInterval: cfg.Food.RefreshInterval,
		EnemyHealthMin:      cfg.Enemy.HealthMin,
		EnemyHealthMax:      cfg.Enemy.HealthMax,
		EnemyDamage:         cfg.Enemy.Damage,
		WallHealthMin:       cfg.Wall.HealthMin,
		WallHealthMax:       cfg.Wall.HealthMax,
		Foods:               foods,
		Items:               items,
		GroundTiles:         cfg.Tiles.Ground,
		WallTiles:           cfg.Tiles.Wall,
		ObstacleTiles:       cfg.Tiles.Obstacle,
		DamageMode:          mode,
	}
}

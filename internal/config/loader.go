package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads the game configuration.
// Search order: customPath -> ~/.wasteland/configs/wasteland.yaml -> ./configs/wasteland.yaml -> embedded default
func Load(customPath string) (WastelandConfig, error) {
	var cfg WastelandConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("wasteland.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/wasteland.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg = WastelandConfig{}
	if err := yaml.Unmarshal(defaultWastelandYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg WastelandConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wasteland", "configs", filename)
}

// Validate reports the first setting that cannot produce a playable game.
func (c WastelandConfig) Validate() error {
	b := c.Board
	switch {
	case b.MinWidth >= b.MaxWidth || b.MinHeight >= b.MaxHeight:
		return invalid("board: min must be below max (width %d..%d, height %d..%d)",
			b.MinWidth, b.MaxWidth, b.MinHeight, b.MaxHeight)
	case b.MinWidth < 4 || b.MinHeight < 4:
		return invalid("board: minimum size is 4x4, got %dx%d", b.MinWidth, b.MinHeight)
	case c.Player.StartingFood <= 0:
		return invalid("player: starting_food must be positive, got %d", c.Player.StartingFood)
	case c.Enemy.HealthMin < 1 || c.Wall.HealthMin < 1:
		return invalid("enemy and wall health_min must be at least 1")
	case c.Enemy.Damage < 0:
		return invalid("enemy: damage must not be negative, got %d", c.Enemy.Damage)
	case c.Food.Generated < 0 || c.Food.RefreshInterval < 0:
		return invalid("food: generated and refresh_interval must not be negative")
	case len(c.Food.Prefabs) == 0:
		return invalid("food: at least one prefab is required")
	case len(c.Items) == 0:
		return invalid("items: at least one item is required")
	case c.Tiles.Ground < 1 || c.Tiles.Wall < 1 || c.Tiles.Obstacle < 1:
		return invalid("tiles: every tile kind needs at least one variant")
	case c.Rules.MoveFrames < 0:
		return invalid("rules: move_frames must not be negative, got %d", c.Rules.MoveFrames)
	}
	switch c.Rules.DamageMode {
	case "", "food_loss", "legacy":
	default:
		return invalid("rules: unknown damage_mode %q", c.Rules.DamageMode)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

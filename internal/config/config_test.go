package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg WastelandConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults = %+v\nexpected %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	cfg := DefaultConfig()
	cfg.Player.StartingFood = 42
	cfg.Rules.DamageMode = "legacy"
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Player.StartingFood != 42 || got.Rules.DamageMode != "legacy" {
		t.Errorf("Load() = %+v, custom values lost", got)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("board: [not, a, map"), 0o644)
	if _, err := Load(broken); err == nil {
		t.Error("Load() of broken YAML should fail")
	}

	invalidPath := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalidPath, []byte("board:\n  min_width: 10\n  max_width: 10\n"), 0o644)
	if _, err := Load(invalidPath); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WastelandConfig)
	}{
		{"width range empty", func(c *WastelandConfig) { c.Board.MaxWidth = c.Board.MinWidth }},
		{"height range inverted", func(c *WastelandConfig) { c.Board.MinHeight = 20 }},
		{"board too small", func(c *WastelandConfig) { c.Board.MinWidth = 3 }},
		{"no food", func(c *WastelandConfig) { c.Player.StartingFood = 0 }},
		{"zero enemy health", func(c *WastelandConfig) { c.Enemy.HealthMin = 0 }},
		{"negative damage", func(c *WastelandConfig) { c.Enemy.Damage = -1 }},
		{"negative refresh", func(c *WastelandConfig) { c.Food.RefreshInterval = -1 }},
		{"no food prefabs", func(c *WastelandConfig) { c.Food.Prefabs = nil }},
		{"no items", func(c *WastelandConfig) { c.Items = nil }},
		{"no obstacle tiles", func(c *WastelandConfig) { c.Tiles.Obstacle = 0 }},
		{"negative move frames", func(c *WastelandConfig) { c.Rules.MoveFrames = -2 }},
		{"unknown damage mode", func(c *WastelandConfig) { c.Rules.DamageMode = "double" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		flag      string
		preset    DifficultyPreset
		food      int
		generated int
		damage    int
	}{
		{"", DifficultyNormal, 100, 5, 3},
		{"normal", DifficultyNormal, 100, 5, 3},
		{"easy", DifficultyEasy, 150, 7, 2},
		{"hard", DifficultyHard, 70, 3, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset)+"/"+tt.flag, func(t *testing.T) {
			preset, err := ParsePreset(tt.flag)
			if err != nil {
				t.Fatalf("ParsePreset(%q) error = %v", tt.flag, err)
			}
			if preset != tt.preset {
				t.Fatalf("ParsePreset(%q) = %s, expected %s", tt.flag, preset, tt.preset)
			}

			cfg := DefaultConfig()
			ApplyPreset(&cfg, preset)
			if cfg.Player.StartingFood != tt.food || cfg.Food.Generated != tt.generated || cfg.Enemy.Damage != tt.damage {
				t.Errorf("%s: food=%d generated=%d damage=%d", preset, cfg.Player.StartingFood, cfg.Food.Generated, cfg.Enemy.Damage)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s preset produced invalid config: %v", preset, err)
			}
		})
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

// Package config provides YAML-based match configuration loading and
// difficulty management for the tank game.
package config

import (
	"fmt"
	"time"
)

// TanksConfig contains all configuration for a tank match.
type TanksConfig struct {
	World      TanksWorld       `yaml:"world"`
	Tank       TanksTank        `yaml:"tank"`
	Projectile TanksProjectile  `yaml:"projectile"`
	Enemy      TanksEnemy       `yaml:"enemy"`
	Timing     TanksTiming      `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TanksWorld defines the battlefield.
type TanksWorld struct {
	Width              int     `yaml:"width"`  // world units, 50 per cell
	Height             int     `yaml:"height"` // world units, 50 per cell
	WallDivisor        int     `yaml:"wall_divisor"`
	DestructibleChance float64 `yaml:"destructible_chance"`
}

// TanksTank defines player tank handling.
type TanksTank struct {
	Step int `yaml:"step"`
}

// TanksProjectile defines shot parameters.
type TanksProjectile struct {
	Speed         int `yaml:"speed"`
	DespawnMargin int `yaml:"despawn_margin"`
}

// TanksEnemy defines the enemy controller.
type TanksEnemy struct {
	Speed        int           `yaml:"speed"`
	TurnChance   int           `yaml:"turn_chance"` // per 1000 moves
	FireInterval time.Duration `yaml:"fire_interval"`
}

// TanksTiming defines process cadences.
type TanksTiming struct {
	Tick      time.Duration `yaml:"tick"`
	EnemyMove time.Duration `yaml:"enemy_move"`
	Cooldown  time.Duration `yaml:"cooldown"`
}

// Validate reports the first setting that cannot produce a playable match.
func (c TanksConfig) Validate() error {
	switch {
	case c.World.Width < 100 || c.World.Height < 100:
		return fmt.Errorf("world must be at least 100x100, got %dx%d", c.World.Width, c.World.Height)
	case c.World.WallDivisor <= 0:
		return fmt.Errorf("world.wall_divisor must be positive")
	case c.World.DestructibleChance < 0 || c.World.DestructibleChance > 1:
		return fmt.Errorf("world.destructible_chance must be within [0, 1]")
	case c.Tank.Step <= 0:
		return fmt.Errorf("tank.step must be positive")
	case c.Projectile.Speed <= 0:
		return fmt.Errorf("projectile.speed must be positive")
	case c.Enemy.TurnChance < 0 || c.Enemy.TurnChance > 1000:
		return fmt.Errorf("enemy.turn_chance must be within [0, 1000]")
	case c.Enemy.FireInterval <= 0 || c.Timing.Tick <= 0 || c.Timing.EnemyMove <= 0 || c.Timing.Cooldown <= 0:
		return fmt.Errorf("intervals must be positive")
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a match.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // walls destroyed or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FireRateMultiplier float64 `yaml:"fire_rate_multiplier"` // Extra enemy fire rate at max difficulty
	TurnChanceBonus    int     `yaml:"turn_chance_bonus"`    // Extra turn chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyFixed, DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

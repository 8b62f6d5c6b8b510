package config

import (
	"math"
	"time"
)

// minFireInterval keeps the enemy from firing every frame at high levels.
const minFireInterval = 500 * time.Millisecond

// DifficultyManager calculates dynamic enemy parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on walls
// destroyed or match time.
func (d *DifficultyManager) Level(score int, elapsed time.Duration) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = elapsed.Seconds() / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FireInterval returns the enemy fire interval for the current level.
// The fire rate grows from base to base * (1 + fire_rate_multiplier).
func (d *DifficultyManager) FireInterval(base time.Duration, score int, elapsed time.Duration) time.Duration {
	level := d.Level(score, elapsed)
	rate := 1.0 + level*d.cfg.Scaling.FireRateMultiplier
	if rate <= 0 {
		return base
	}
	return max(time.Duration(float64(base)/rate), min(base, minFireInterval))
}

// TurnChance returns the enemy turn chance (per 1000) for the current level.
func (d *DifficultyManager) TurnChance(base int, score int, elapsed time.Duration) int {
	level := d.Level(score, elapsed)
	return min(base+int(level*float64(d.cfg.Scaling.TurnChanceBonus)), 1000)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

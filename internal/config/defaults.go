package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the default match configuration.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		World: TanksWorld{
			Width:              800,
			Height:             450,
			WallDivisor:        13,
			DestructibleChance: 0.5,
		},
		Tank: TanksTank{
			Step: 5,
		},
		Projectile: TanksProjectile{
			Speed:         10,
			DespawnMargin: 100,
		},
		Enemy: TanksEnemy{
			Speed:        1,
			TurnChance:   5,
			FireInterval: 5 * time.Second,
		},
		Timing: TanksTiming{
			Tick:      30 * time.Millisecond,
			EnemyMove: 30 * time.Millisecond,
			Cooldown:  5 * time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 180, // three minutes
			},
			Scaling: ScalingConfig{
				FireRateMultiplier: 1.5,
				TurnChanceBonus:    10,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tanks":
		return defaultTanksYAML
	default:
		return nil
	}
}

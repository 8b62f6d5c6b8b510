package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

// RulesFromConfig maps the file configuration onto engine rules.
func RulesFromConfig(cfg config.TanksConfig) sim.Rules {
	return sim.Rules{
		Width:              cfg.World.Width,
		Height:             cfg.World.Height,
		TankStep:           cfg.Tank.Step,
		ProjectileSpeed:    cfg.Projectile.Speed,
		DespawnMargin:      cfg.Projectile.DespawnMargin,
		EnemySpeed:         cfg.Enemy.Speed,
		TurnChance:         cfg.Enemy.TurnChance,
		WallDivisor:        cfg.World.WallDivisor,
		DestructibleChance: cfg.World.DestructibleChance,
		MainInterval:       cfg.Timing.Tick,
		EnemyMoveInterval:  cfg.Timing.EnemyMove,
		EnemyFireInterval:  cfg.Enemy.FireInterval,
		CooldownInterval:   cfg.Timing.Cooldown,
	}
}

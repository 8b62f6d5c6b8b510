package sim

import (
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// TankView is the drawable state of a tank.
type TankView struct {
	X, Y  int
	Angle int
	Kind  Kind
}

// ProjectileView is the drawable state of a projectile.
type ProjectileView struct {
	X, Y  int
	Angle int
	Owner Kind
}

// Snapshot captures everything a front end needs to draw the match, and is
// also what determinism tests compare.
type Snapshot struct {
	Width       int
	Height      int
	Tiles       [][]Terrain // shared, never modified after generation
	Walls       []Wall
	Player      TankView
	Enemy       TankView
	Projectiles []ProjectileView

	Paused   bool
	Ended    bool
	Outcome  core.Outcome
	Elapsed  time.Duration
	CanShoot bool
	Reload   time.Duration // time until the gun is loaded again
	Score    int
}

// Snapshot returns a copy of the current match state.
func (e *Engine) Snapshot() Snapshot {
	walls := make([]Wall, len(e.m.Walls))
	for i, w := range e.m.Walls {
		walls[i] = *w
	}

	shots := make([]ProjectileView, len(e.projectiles))
	for i, p := range e.projectiles {
		shots[i] = ProjectileView{X: p.X, Y: p.Y, Angle: p.Angle, Owner: p.Owner}
	}

	return Snapshot{
		Width:       e.m.Width,
		Height:      e.m.Height,
		Tiles:       e.m.Tiles,
		Walls:       walls,
		Player:      tankView(e.player),
		Enemy:       tankView(e.enemy),
		Projectiles: shots,
		Paused:      e.ctx.Paused,
		Ended:       e.ctx.Ended,
		Outcome:     e.ctx.Outcome,
		Elapsed:     e.ctx.Elapsed,
		CanShoot:    e.canShoot,
		Reload:      e.cooldown.Remaining(),
		Score:       e.score,
	}
}

func tankView(t *Tank) TankView {
	return TankView{X: t.X, Y: t.Y, Angle: t.Angle, Kind: t.Kind()}
}

package sim

import (
	"math"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

const (
	ProjectileSize         = 20
	DefaultProjectileSpeed = 10
)

// WallOutcome is the result of testing a projectile against the walls.
type WallOutcome int

const (
	WallNone      WallOutcome = iota // no wall hit
	WallDestroyed                    // a destructible wall was destroyed
	WallAbsorbed                     // an indestructible wall stopped the shot
)

// String returns the outcome name.
func (o WallOutcome) String() string {
	switch o {
	case WallNone:
		return "none"
	case WallDestroyed:
		return "destroyed"
	case WallAbsorbed:
		return "absorbed"
	default:
		return "unknown"
	}
}

// Projectile is a shot in flight. Its angle uses the math convention
// (0 travels right, 90 travels up the screen).
type Projectile struct {
	X, Y   int
	Angle  int
	Speed  int
	Width  int
	Height int
	Owner  Kind
}

// NewProjectile creates a projectile at (x, y).
func NewProjectile(x, y, angle, speed int, owner Kind) *Projectile {
	if speed <= 0 {
		speed = DefaultProjectileSpeed
	}
	return &Projectile{
		X:      x,
		Y:      y,
		Angle:  angle,
		Speed:  speed,
		Width:  ProjectileSize,
		Height: ProjectileSize,
		Owner:  owner,
	}
}

// Velocity returns the per-tick displacement for angle at speed. The four
// canonical angles are looked up exactly; anything else falls back to
// truncated trigonometry.
func Velocity(angle, speed int) (dx, dy int) {
	switch ((angle % 360) + 360) % 360 {
	case 0:
		return speed, 0
	case 90:
		return 0, -speed
	case 180:
		return -speed, 0
	case 270:
		return 0, speed
	}

	rad := float64(angle) * math.Pi / 180
	return int(float64(speed) * math.Cos(rad)), -int(float64(speed) * math.Sin(rad))
}

// Rect returns the projectile bounds.
func (p *Projectile) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Advance moves the projectile one tick.
func (p *Projectile) Advance() {
	dx, dy := Velocity(p.Angle, p.Speed)
	p.X += dx
	p.Y += dy
}

// ResolveWallCollision tests the projectile against the standing walls in
// insertion order. Only the first overlapping wall is affected.
func (p *Projectile) ResolveWallCollision(m *Map) (WallOutcome, *Wall) {
	w := m.FirstWallHit(p.Rect())
	if w == nil {
		return WallNone, nil
	}
	if m.DestroyWall(w) {
		return WallDestroyed, w
	}
	return WallAbsorbed, w
}

// IntersectsTank reports whether the projectile overlaps the tank.
func (p *Projectile) IntersectsTank(t *Tank) bool {
	return p.Rect().Intersects(t.Rect())
}

// OutOfRange reports whether the projectile has left the map by more than
// margin units on any side.
func (p *Projectile) OutOfRange(m *Map, margin int) bool {
	return !p.Rect().Intersects(m.Bounds().Grow(margin))
}

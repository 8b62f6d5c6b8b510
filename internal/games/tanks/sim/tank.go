package sim

import "github.com/vovakirdan/tui-tanks/internal/core"

const (
	TankSize        = 50
	DefaultTankStep = 5
	spawnOffset     = 30
	spawnSideShift  = 40
)

// Canonical orientations in degrees. Screen y grows downward, so "up" is 90.
const (
	AngleLeft  = 0
	AngleUp    = 90
	AngleRight = 180
	AngleDown  = 270
)

// Kind tells the player tank from the enemy tank.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Behavior is what drives a tank: player commands or the enemy controller.
type Behavior interface {
	Kind() Kind
}

// PlayerControlled marks a tank moved only by player commands.
type PlayerControlled struct{}

// Kind implements Behavior.
func (PlayerControlled) Kind() Kind {
	return KindPlayer
}

// Tank is a 50x50 vehicle positioned by its top-left corner.
type Tank struct {
	X, Y     int
	Width    int
	Height   int
	Angle    int
	Step     int
	Behavior Behavior
}

// NewTank creates a tank at (x, y) facing angle.
func NewTank(x, y, angle int, b Behavior) *Tank {
	return &Tank{
		X:        x,
		Y:        y,
		Width:    TankSize,
		Height:   TankSize,
		Angle:    angle,
		Step:     DefaultTankStep,
		Behavior: b,
	}
}

// Kind returns the kind of the tank's behavior.
func (t *Tank) Kind() Kind {
	if t.Behavior == nil {
		return KindPlayer
	}
	return t.Behavior.Kind()
}

// Rect returns the tank bounds.
func (t *Tank) Rect() core.Rect {
	return core.NewRect(t.X, t.Y, t.Width, t.Height)
}

// MoveUp tries one step up. It reports whether the move was applied.
func (t *Tank) MoveUp(m *Map) bool {
	return t.move(m, 0, -t.Step, AngleUp)
}

// MoveDown tries one step down.
func (t *Tank) MoveDown(m *Map) bool {
	return t.move(m, 0, t.Step, AngleDown)
}

// MoveLeft tries one step left.
func (t *Tank) MoveLeft(m *Map) bool {
	return t.move(m, -t.Step, 0, AngleLeft)
}

// MoveRight tries one step right.
func (t *Tank) MoveRight(m *Map) bool {
	return t.move(m, t.Step, 0, AngleRight)
}

// Orientation only changes when the move succeeds.
func (t *Tank) move(m *Map, dx, dy, angle int) bool {
	x, y := t.X+dx, t.Y+dy
	if !t.CanOccupy(x, y, m) {
		return false
	}
	t.X, t.Y = x, y
	t.Angle = angle
	return true
}

// CanOccupy reports whether the tank fits at (x, y): inside the map and
// clear of standing walls.
func (t *Tank) CanOccupy(x, y int, m *Map) bool {
	r := core.NewRect(x, y, t.Width, t.Height)
	if !r.Inside(m.Bounds()) {
		return false
	}
	return !t.CollidesWithWalls(x, y, m)
}

// CollidesWithWalls reports whether the tank placed at (x, y) would overlap
// a standing wall.
func (t *Tank) CollidesWithWalls(x, y int, m *Map) bool {
	return m.Blocked(core.NewRect(x, y, t.Width, t.Height))
}

// ProjectileSpawnPoint returns where a shot fired now appears. The point
// starts at the tank center and is pushed out along the facing; the
// horizontal cases carry an extra 40 unit shift.
func (t *Tank) ProjectileSpawnPoint() (int, int) {
	x := t.X + t.Width/2
	y := t.Y + t.Height/2

	switch t.Angle {
	case AngleLeft:
		x = t.X + t.Width - spawnOffset - spawnSideShift
	case AngleUp:
		y = t.Y - spawnOffset
	case AngleRight:
		x = t.X + spawnOffset + spawnSideShift
	case AngleDown:
		y = t.Y + t.Height + spawnOffset
	}
	return x, y
}

// FireAngle returns the travel angle of a shot. Tank and projectile angles
// disagree on the horizontal axis, so 0 and 180 swap.
func (t *Tank) FireAngle() int {
	switch t.Angle {
	case AngleLeft:
		return AngleRight
	case AngleRight:
		return AngleLeft
	default:
		return t.Angle
	}
}

// Fire creates a projectile leaving the tank.
func (t *Tank) Fire(speed int) *Projectile {
	x, y := t.ProjectileSpawnPoint()
	return NewProjectile(x, y, t.FireAngle(), speed, t.Kind())
}

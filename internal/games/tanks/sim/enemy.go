package sim

import "math/rand"

const (
	DefaultEnemySpeed = 1
	// DefaultTurnChance is the per-move chance, out of 1000, of picking a
	// new random direction.
	DefaultTurnChance = 5
)

var cardinals = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// EnemyController wanders the enemy tank: it keeps a cardinal velocity,
// bounces off walls and map edges, and now and then turns at random.
type EnemyController struct {
	VX, VY     int
	Speed      int
	TurnChance int

	rng *rand.Rand
}

// NewEnemyController creates an idle controller.
func NewEnemyController(rng *rand.Rand, speed, turnChance int) *EnemyController {
	if speed <= 0 {
		speed = DefaultEnemySpeed
	}
	return &EnemyController{
		Speed:      speed,
		TurnChance: turnChance,
		rng:        rng,
	}
}

// Kind implements Behavior.
func (c *EnemyController) Kind() Kind {
	return KindEnemy
}

// Step runs one move decision for t. A blocked move leaves the tank in
// place and reverses the velocity.
func (c *EnemyController) Step(t *Tank, m *Map) {
	x := t.X + c.VX*c.Speed
	y := t.Y + c.VY*c.Speed

	if t.CanOccupy(x, y, m) {
		t.X, t.Y = x, y
	} else {
		c.SetVelocity(t, -c.VX, -c.VY)
	}

	if c.rng != nil && c.rng.Intn(1000) < c.TurnChance {
		d := cardinals[c.rng.Intn(len(cardinals))]
		c.SetVelocity(t, d[0], d[1])
	}
}

// SetVelocity changes direction and turns the tank to face it. A zero
// velocity keeps the current facing.
func (c *EnemyController) SetVelocity(t *Tank, vx, vy int) {
	c.VX, c.VY = vx, vy
	if angle, ok := angleFor(vx, vy); ok {
		t.Angle = angle
	}
}

func angleFor(vx, vy int) (int, bool) {
	switch {
	case vx > 0:
		return AngleRight, true
	case vx < 0:
		return AngleLeft, true
	case vy < 0:
		return AngleUp, true
	case vy > 0:
		return AngleDown, true
	default:
		return 0, false
	}
}

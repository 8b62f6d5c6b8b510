package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func TestTankMovesAndTurns(t *testing.T) {
	m := NewMap(800, 450)
	tank := NewTank(0, 0, AngleLeft, PlayerControlled{})

	assert.False(t, tank.MoveUp(m), "top edge")
	assert.Equal(t, AngleLeft, tank.Angle, "blocked move keeps orientation")

	assert.True(t, tank.MoveDown(m))
	assert.Equal(t, 0, tank.X)
	assert.Equal(t, 5, tank.Y)
	assert.Equal(t, AngleDown, tank.Angle)

	assert.True(t, tank.MoveRight(m))
	assert.Equal(t, 5, tank.X)
	assert.Equal(t, AngleRight, tank.Angle)

	assert.True(t, tank.MoveLeft(m))
	assert.Equal(t, 0, tank.X)
	assert.Equal(t, AngleLeft, tank.Angle)

	assert.True(t, tank.MoveUp(m))
	assert.Equal(t, 0, tank.Y)
	assert.Equal(t, AngleUp, tank.Angle)
}

func TestTankStaysOnMap(t *testing.T) {
	m := NewMap(800, 450)
	tank := NewTank(750, 400, AngleUp, PlayerControlled{})

	assert.False(t, tank.MoveRight(m))
	assert.False(t, tank.MoveDown(m))
	assert.Equal(t, 750, tank.X)
	assert.Equal(t, 400, tank.Y)
	assert.Equal(t, AngleUp, tank.Angle)
}

func TestTankBlockedByWalls(t *testing.T) {
	m := NewMap(800, 450)
	right := m.AddWall(1, 0, true)
	m.AddWall(0, 1, false)
	tank := NewTank(0, 0, AngleUp, PlayerControlled{})

	// Touching a wall edge is allowed, entering it is not.
	assert.False(t, tank.CollidesWithWalls(0, 0, m))
	assert.True(t, tank.CollidesWithWalls(5, 0, m))

	assert.False(t, tank.MoveRight(m))
	assert.False(t, tank.MoveDown(m))
	assert.Equal(t, 0, tank.X)
	assert.Equal(t, 0, tank.Y)
	assert.Equal(t, AngleUp, tank.Angle)

	m.DestroyWall(right)
	assert.True(t, tank.MoveRight(m), "destroyed walls do not block")
}

func TestTankNeverOverlapsWalls(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	opts := DefaultGenerateOptions()
	opts.WallDivisor = 4
	opts.Reserved = []core.Rect{core.NewRect(0, 0, TankSize, TankSize)}
	m := Generate(800, 450, rng, opts)

	tank := NewTank(0, 0, AngleUp, PlayerControlled{})
	moves := []func(*Map) bool{tank.MoveUp, tank.MoveDown, tank.MoveLeft, tank.MoveRight}

	for i := 0; i < 5000; i++ {
		if !moves[rng.Intn(len(moves))](m) {
			continue
		}
		r := tank.Rect()
		require.True(t, r.Inside(m.Bounds()), "tank left the map at %+v", r)
		for _, w := range m.ActiveWalls() {
			require.False(t, r.Intersects(w.Rect()), "tank %+v overlaps wall %+v", r, w)
		}
	}
}

func TestProjectileSpawnPoint(t *testing.T) {
	tests := []struct {
		name  string
		angle int
		x, y  int
	}{
		{"facing left", AngleLeft, 80, 125},
		{"facing up", AngleUp, 125, 70},
		{"facing right", AngleRight, 170, 125},
		{"facing down", AngleDown, 125, 180},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tank := NewTank(100, 100, tc.angle, PlayerControlled{})
			x, y := tank.ProjectileSpawnPoint()
			assert.Equal(t, tc.x, x)
			assert.Equal(t, tc.y, y)

			// The shot never starts inside its own tank.
			shot := core.NewRect(x, y, ProjectileSize, ProjectileSize)
			assert.False(t, shot.Intersects(tank.Rect()))
		})
	}
}

func TestFireAngle(t *testing.T) {
	tests := []struct {
		tank, shot int
	}{
		{AngleLeft, 180},
		{AngleRight, 0},
		{AngleUp, 90},
		{AngleDown, 270},
	}

	for _, tc := range tests {
		tank := NewTank(0, 0, tc.tank, PlayerControlled{})
		assert.Equal(t, tc.shot, tank.FireAngle(), "tank angle %d", tc.tank)
	}
}

func TestShotTravelsAwayFromTank(t *testing.T) {
	for _, angle := range []int{AngleLeft, AngleUp, AngleRight, AngleDown} {
		tank := NewTank(300, 200, angle, PlayerControlled{})
		p := tank.Fire(DefaultProjectileSpeed)

		cx, cy := tank.Rect().Center()
		before := core.Abs(p.X-cx) + core.Abs(p.Y-cy)
		p.Advance()
		after := core.Abs(p.X-cx) + core.Abs(p.Y-cy)

		assert.Greater(t, after, before, "tank angle %d", angle)
		assert.Equal(t, KindPlayer, p.Owner)
	}
}

func TestTankKind(t *testing.T) {
	assert.Equal(t, KindPlayer, NewTank(0, 0, AngleUp, PlayerControlled{}).Kind())
	assert.Equal(t, KindEnemy, NewTank(0, 0, AngleUp, NewEnemyController(nil, 1, 0)).Kind())
	assert.Equal(t, KindPlayer, NewTank(0, 0, AngleUp, nil).Kind())
	assert.Equal(t, "enemy", KindEnemy.String())
}

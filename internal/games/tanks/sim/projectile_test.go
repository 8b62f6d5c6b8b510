package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVelocityIsAxisAligned(t *testing.T) {
	tests := []struct {
		angle  int
		dx, dy int
	}{
		{0, 10, 0},
		{90, 0, -10},
		{180, -10, 0},
		{270, 0, 10},
		{360, 10, 0},
		{-90, 0, 10},
	}

	for _, tc := range tests {
		dx, dy := Velocity(tc.angle, DefaultProjectileSpeed)
		assert.Equal(t, tc.dx, dx, "angle %d", tc.angle)
		assert.Equal(t, tc.dy, dy, "angle %d", tc.angle)
	}

	dx, dy := Velocity(45, 10)
	assert.Equal(t, 7, dx)
	assert.Equal(t, -7, dy)
}

func TestProjectileAdvance(t *testing.T) {
	p := NewProjectile(25, -30, AngleUp, DefaultProjectileSpeed, KindPlayer)
	for i := 0; i < 3; i++ {
		p.Advance()
	}
	assert.Equal(t, 25, p.X)
	assert.Equal(t, -60, p.Y)

	q := NewProjectile(0, 0, 0, 0, KindEnemy)
	assert.Equal(t, DefaultProjectileSpeed, q.Speed, "zero speed falls back to default")
	q.Advance()
	assert.Equal(t, 10, q.X)
}

func TestResolveWallCollision(t *testing.T) {
	t.Run("destructible wall is destroyed", func(t *testing.T) {
		m := NewMap(800, 450)
		target := m.AddWall(2, 2, true)
		other := m.AddWall(5, 5, true)

		p := NewProjectile(110, 110, 0, 10, KindPlayer)
		outcome, w := p.ResolveWallCollision(m)

		assert.Equal(t, WallDestroyed, outcome)
		assert.Same(t, target, w)
		assert.True(t, target.Destroyed)
		assert.False(t, other.Destroyed)
		assert.Len(t, m.ActiveWalls(), 1)
	})

	t.Run("indestructible wall absorbs", func(t *testing.T) {
		m := NewMap(800, 450)
		steel := m.AddWall(2, 2, false)

		p := NewProjectile(110, 110, 0, 10, KindPlayer)
		outcome, w := p.ResolveWallCollision(m)

		assert.Equal(t, WallAbsorbed, outcome)
		assert.Same(t, steel, w)
		assert.False(t, steel.Destroyed)
	})

	t.Run("first wall in insertion order wins", func(t *testing.T) {
		m := NewMap(800, 450)
		first := m.AddWall(1, 0, true)
		second := m.AddWall(0, 0, true)

		// Straddles the border between cells (0,0) and (1,0).
		p := NewProjectile(40, 10, 0, 10, KindPlayer)
		outcome, w := p.ResolveWallCollision(m)

		require.Equal(t, WallDestroyed, outcome)
		assert.Same(t, first, w)
		assert.True(t, first.Destroyed)
		assert.False(t, second.Destroyed)
	})

	t.Run("steel in front shields brick", func(t *testing.T) {
		m := NewMap(800, 450)
		steel := m.AddWall(0, 0, false)
		brick := m.AddWall(1, 0, true)

		p := NewProjectile(40, 10, 0, 10, KindPlayer)
		outcome, _ := p.ResolveWallCollision(m)

		assert.Equal(t, WallAbsorbed, outcome)
		assert.False(t, steel.Destroyed)
		assert.False(t, brick.Destroyed)
	})

	t.Run("destroyed walls are ignored", func(t *testing.T) {
		m := NewMap(800, 450)
		brick := m.AddWall(2, 2, true)
		m.DestroyWall(brick)

		p := NewProjectile(110, 110, 0, 10, KindPlayer)
		outcome, w := p.ResolveWallCollision(m)

		assert.Equal(t, WallNone, outcome)
		assert.Nil(t, w)
	})
}

func TestProjectileIntersectsTank(t *testing.T) {
	tank := NewTank(100, 100, AngleUp, PlayerControlled{})

	assert.True(t, NewProjectile(140, 140, 0, 10, KindEnemy).IntersectsTank(tank))
	assert.False(t, NewProjectile(150, 100, 0, 10, KindEnemy).IntersectsTank(tank), "edge contact")
	assert.False(t, NewProjectile(80, 80, 0, 10, KindEnemy).IntersectsTank(tank), "corner contact")
}

func TestProjectileOutOfRange(t *testing.T) {
	m := NewMap(800, 450)

	tests := []struct {
		name string
		x, y int
		out  bool
	}{
		{"on map", 100, 100, false},
		{"just above the map", 25, -30, false},
		{"inside the margin", 25, -119, false},
		{"past the top margin", 25, -120, true},
		{"past the right margin", 900, 100, true},
		{"past the bottom margin", 100, 550, true},
		{"past the left margin", -120, 100, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProjectile(tc.x, tc.y, 0, 10, KindPlayer)
			assert.Equal(t, tc.out, p.OutOfRange(m, 100))
		})
	}
}

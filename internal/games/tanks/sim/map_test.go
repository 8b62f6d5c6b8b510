package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func TestGenerateLayout(t *testing.T) {
	reserved := []core.Rect{
		core.NewRect(0, 0, TankSize, TankSize),
		core.NewRect(750, 400, TankSize, TankSize),
	}
	opts := DefaultGenerateOptions()
	opts.Reserved = reserved

	m := Generate(800, 450, rand.New(rand.NewSource(42)), opts)

	require.Equal(t, 16, m.Cols())
	require.Equal(t, 9, m.Rows())
	require.Len(t, m.Tiles, 16)
	for x := range m.Tiles {
		require.Len(t, m.Tiles[x], 9)
		for y := range m.Tiles[x] {
			assert.Equal(t, TerrainGrass, m.Tiles[x][y])
		}
	}

	// 144 cells / 13
	assert.Len(t, m.Walls, 11)

	seen := make(map[[2]int]bool)
	for _, w := range m.Walls {
		key := [2]int{w.CellX, w.CellY}
		assert.False(t, seen[key], "two walls on cell %v", key)
		seen[key] = true

		assert.False(t, w.Destroyed)
		assert.Same(t, w, m.WallAt(w.CellX, w.CellY))
		for _, r := range reserved {
			assert.False(t, w.Rect().Intersects(r), "wall %v placed on a spawn", key)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(800, 450, rand.New(rand.NewSource(7)), DefaultGenerateOptions())
	b := Generate(800, 450, rand.New(rand.NewSource(7)), DefaultGenerateOptions())

	require.Equal(t, len(a.Walls), len(b.Walls))
	for i := range a.Walls {
		assert.Equal(t, *a.Walls[i], *b.Walls[i])
	}
}

func TestGenerateMixesWallKinds(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.WallDivisor = 2

	m := Generate(1000, 1000, rand.New(rand.NewSource(3)), opts)
	require.Len(t, m.Walls, 200)

	destructible := 0
	for _, w := range m.Walls {
		if w.Destructible {
			destructible++
		}
	}
	assert.Greater(t, destructible, 50)
	assert.Less(t, destructible, 150)
}

func TestGenerateCapsWallsAtFreeCells(t *testing.T) {
	opts := GenerateOptions{
		WallDivisor:        1,
		DestructibleChance: 1,
		Reserved:           []core.Rect{core.NewRect(0, 0, TankSize, TankSize)},
	}

	m := Generate(100, 50, rand.New(rand.NewSource(1)), opts)

	require.Len(t, m.Walls, 1)
	assert.Nil(t, m.WallAt(0, 0))
	assert.NotNil(t, m.WallAt(1, 0))
}

func TestAddWallRejectsOccupiedAndOffGrid(t *testing.T) {
	m := NewMap(800, 450)

	require.NotNil(t, m.AddWall(3, 4, true))
	assert.Nil(t, m.AddWall(3, 4, false), "cell already taken")
	assert.Nil(t, m.AddWall(-1, 0, false))
	assert.Nil(t, m.AddWall(16, 0, false))
	assert.Nil(t, m.AddWall(0, 9, false))
	assert.Len(t, m.Walls, 1)
	assert.Nil(t, m.WallAt(0, 0))
}

func TestDestroyWall(t *testing.T) {
	m := NewMap(800, 450)
	brick := m.AddWall(1, 1, true)
	steel := m.AddWall(2, 2, false)

	assert.True(t, m.DestroyWall(brick))
	assert.True(t, brick.Destroyed)
	assert.False(t, m.DestroyWall(brick), "destroyed walls stay destroyed")

	assert.False(t, m.DestroyWall(steel))
	assert.False(t, steel.Destroyed)
	assert.False(t, m.DestroyWall(nil))

	active := m.ActiveWalls()
	require.Len(t, active, 1)
	assert.Same(t, steel, active[0])

	// Destroyed walls no longer block but are still found by cell.
	assert.False(t, m.Blocked(brick.Rect()))
	assert.True(t, m.Blocked(steel.Rect()))
	assert.Same(t, brick, m.WallAt(1, 1))
}

func TestWallRect(t *testing.T) {
	w := &Wall{CellX: 3, CellY: 2}
	assert.Equal(t, core.NewRect(150, 100, 50, 50), w.Rect())
}

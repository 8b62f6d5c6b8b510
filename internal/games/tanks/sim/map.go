// Package sim is the tank battle simulation: map, tanks, projectiles, the
// enemy controller and the fixed-tick engine that drives them. It has no
// terminal or storage dependencies.
package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// CellSize is the edge length of one map cell in world units.
const CellSize = 50

// Terrain is the ground type of a map cell.
type Terrain uint8

const (
	TerrainGrass Terrain = iota
)

// String returns the terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainGrass:
		return "grass"
	default:
		return "unknown"
	}
}

// Wall occupies one map cell. Destroyed flips to true at most once.
type Wall struct {
	CellX        int
	CellY        int
	Destructible bool
	Destroyed    bool
}

// Rect returns the wall's bounds in world units.
func (w *Wall) Rect() core.Rect {
	return core.NewRect(w.CellX*CellSize, w.CellY*CellSize, CellSize, CellSize)
}

type cell struct {
	x, y int
}

// Map is the battlefield: a terrain grid plus the walls placed on it.
// Walls are kept in insertion order, which is also the order collisions are
// resolved in.
type Map struct {
	Width  int // world units
	Height int // world units
	Tiles  [][]Terrain
	Walls  []*Wall

	byCell map[cell]*Wall
}

// GenerateOptions tunes map generation.
type GenerateOptions struct {
	// WallDivisor sets the wall count to cells/WallDivisor.
	WallDivisor int
	// DestructibleChance is the probability that a wall can be destroyed.
	DestructibleChance float64
	// Reserved areas (tank spawn boxes) never receive a wall.
	Reserved []core.Rect
}

// DefaultGenerateOptions returns the classic layout parameters.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		WallDivisor:        13,
		DestructibleChance: 0.5,
	}
}

// NewMap creates an empty grass map of the given size in world units.
func NewMap(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		byCell: make(map[cell]*Wall),
	}

	cols, rows := m.Cols(), m.Rows()
	m.Tiles = make([][]Terrain, cols)
	for x := range m.Tiles {
		m.Tiles[x] = make([]Terrain, rows)
		for y := range m.Tiles[x] {
			m.Tiles[x][y] = TerrainGrass
		}
	}
	return m
}

// Generate builds a map with randomly placed walls. Wall cells are sampled
// until a free one comes up, so no two walls ever share a cell.
func Generate(width, height int, rng *rand.Rand, opts GenerateOptions) *Map {
	m := NewMap(width, height)
	if opts.WallDivisor <= 0 {
		opts.WallDivisor = DefaultGenerateOptions().WallDivisor
	}

	cols, rows := m.Cols(), m.Rows()
	total := cols * rows

	reserved := make(map[cell]bool)
	for _, r := range opts.Reserved {
		for x := 0; x < cols; x++ {
			for y := 0; y < rows; y++ {
				if cellRect(x, y).Intersects(r) {
					reserved[cell{x, y}] = true
				}
			}
		}
	}

	count := min(total/opts.WallDivisor, total-len(reserved))
	for len(m.Walls) < count {
		c := cell{rng.Intn(cols), rng.Intn(rows)}
		if reserved[c] || m.byCell[c] != nil {
			continue
		}
		m.AddWall(c.x, c.y, rng.Float64() < opts.DestructibleChance)
	}

	return m
}

func cellRect(x, y int) core.Rect {
	return core.NewRect(x*CellSize, y*CellSize, CellSize, CellSize)
}

// Cols returns the number of cell columns.
func (m *Map) Cols() int {
	return m.Width / CellSize
}

// Rows returns the number of cell rows.
func (m *Map) Rows() int {
	return m.Height / CellSize
}

// Bounds returns the playable area in world units.
func (m *Map) Bounds() core.Rect {
	return core.NewRect(0, 0, m.Width, m.Height)
}

// TerrainAt returns the terrain of a cell. Cells off the grid read as grass.
func (m *Map) TerrainAt(cellX, cellY int) Terrain {
	if cellX < 0 || cellX >= len(m.Tiles) || cellY < 0 || cellY >= len(m.Tiles[cellX]) {
		return TerrainGrass
	}
	return m.Tiles[cellX][cellY]
}

// AddWall places a wall on a cell. It returns nil when the cell is off the
// grid or already holds a wall.
func (m *Map) AddWall(cellX, cellY int, destructible bool) *Wall {
	c := cell{cellX, cellY}
	if cellX < 0 || cellX >= m.Cols() || cellY < 0 || cellY >= m.Rows() {
		return nil
	}
	if m.byCell[c] != nil {
		return nil
	}

	w := &Wall{CellX: cellX, CellY: cellY, Destructible: destructible}
	m.Walls = append(m.Walls, w)
	m.byCell[c] = w
	return w
}

// WallAt returns the wall on a cell, destroyed or not, or nil.
func (m *Map) WallAt(cellX, cellY int) *Wall {
	return m.byCell[cell{cellX, cellY}]
}

// DestroyWall marks a destructible wall destroyed. It reports whether the
// wall changed state.
func (m *Map) DestroyWall(w *Wall) bool {
	if w == nil || !w.Destructible || w.Destroyed {
		return false
	}
	w.Destroyed = true
	return true
}

// ActiveWalls returns the walls that still block movement, in insertion
// order.
func (m *Map) ActiveWalls() []*Wall {
	active := make([]*Wall, 0, len(m.Walls))
	for _, w := range m.Walls {
		if !w.Destroyed {
			active = append(active, w)
		}
	}
	return active
}

// FirstWallHit returns the first standing wall, in insertion order, that
// overlaps r.
func (m *Map) FirstWallHit(r core.Rect) *Wall {
	for _, w := range m.Walls {
		if !w.Destroyed && w.Rect().Intersects(r) {
			return w
		}
	}
	return nil
}

// Blocked reports whether r overlaps any standing wall.
func (m *Map) Blocked(r core.Rect) bool {
	return m.FirstWallHit(r) != nil
}

package world

import (
	"fmt"

	"github.com/talgya/legion-shores/internal/errx"
)

// Grid size bounds. Playable recipes use [MinPlayableSize, MaxSize]; the
// builder accepts anything from MinSize so small fixtures stay expressible.
const (
	MinSize         = 8
	MinPlayableSize = 256
	MaxSize         = 512
)

// Grid holds an N×N terrain map in row-major order.
type Grid struct {
	size  int
	cells []Terrain
}

// NewGrid creates an ocean-filled grid.
func NewGrid(size int) (*Grid, error) {
	if size < MinSize || size > MaxSize {
		return nil, errx.Configuration("grid size out of range", "size", size, "min", MinSize, "max", MaxSize)
	}
	return &Grid{size: size, cells: make([]Terrain, size*size)}, nil
}

// GridFromCells wraps existing row-major cells (e.g. loaded from storage).
// The slice is copied.
func GridFromCells(size int, cells []Terrain) (*Grid, error) {
	if size < MinSize || size > MaxSize {
		return nil, errx.Structural("grid size out of range", "size", size)
	}
	if len(cells) != size*size {
		return nil, errx.Structural("cell count does not match size", "size", size, "cells", len(cells))
	}
	for i, c := range cells {
		if !c.Valid() {
			return nil, errx.Structural("invalid terrain value", "index", i, "value", uint8(c))
		}
	}
	g := &Grid{size: size, cells: make([]Terrain, len(cells))}
	copy(g.cells, cells)
	return g, nil
}

// Size returns N.
func (g *Grid) Size() int { return g.size }

// Cells exposes the backing slice.
func (g *Grid) Cells() []Terrain { return g.cells }

// Index returns the linear index for (x, y).
func (g *Grid) Index(x, y int) int { return y*g.size + x }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.size && y < g.size
}

// At returns the terrain at (x, y). Out-of-bounds reads return TerrainNull.
func (g *Grid) At(x, y int) Terrain {
	if !g.InBounds(x, y) {
		return TerrainNull
	}
	return g.cells[y*g.size+x]
}

// Set writes the terrain at (x, y).
func (g *Grid) Set(x, y int, t Terrain) { g.cells[y*g.size+x] = t }

// Fill overwrites every cell.
func (g *Grid) Fill(t Terrain) {
	for i := range g.cells {
		g.cells[i] = t
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, cells: make([]Terrain, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Bytes returns the cells as raw bytes, one per cell.
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.cells))
	for i, c := range g.cells {
		out[i] = byte(c)
	}
	return out
}

// CountNear counts the 8 neighbours of (x, y) whose terrain lies in
// [low, high]. Neighbours off the grid are not counted.
func (g *Grid) CountNear(x, y int, low, high Terrain) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			t := g.cells[ny*g.size+nx]
			if t >= low && t <= high {
				n++
			}
		}
	}
	return n
}

// HasNear reports whether at least required neighbours lie in [low, high].
func (g *Grid) HasNear(x, y int, low, high Terrain, required int) bool {
	return g.CountNear(x, y, low, high) >= required
}

// Counts returns a summary of terrain type distribution.
func Counts(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, c := range g.cells {
		counts[c]++
	}
	return counts
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(size=%d, cells=%d)", g.size, len(g.cells))
}

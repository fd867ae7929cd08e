// Staged terrain builder.
// A Builder owns one grid; stages run strictly in order and each validates its
// parameters before touching a cell. The first failing stage sticks and every
// later stage becomes a no-op, so a chain can be written without checks and
// inspected once at the end.
package world

import (
	"fmt"
	"log/slog"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
)

// Builder synthesizes a terrain grid from a seed.
type Builder struct {
	grid *Grid
	snap *Grid // read buffer for order-independent passes
	rng  *entropy.Source
	err  error
}

// NewBuilder creates a builder over an ocean-filled grid of the given size.
func NewBuilder(size int, seed int64) (*Builder, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	rng, err := entropy.NewSource(seed)
	if err != nil {
		return nil, err
	}
	return &Builder{grid: grid, snap: grid.Clone(), rng: rng}, nil
}

// Export runs construct over a fresh builder and returns the finished grid.
func Export(size int, seed int64, construct func(*Builder)) (*Grid, error) {
	b, err := NewBuilder(size, seed)
	if err != nil {
		return nil, err
	}
	construct(b)
	return b.Grid()
}

// Err returns the error recorded by the first failing stage.
func (b *Builder) Err() error { return b.err }

// Size returns N.
func (b *Builder) Size() int { return b.grid.size }

// Seed returns the seed the builder draws from.
func (b *Builder) Seed() int64 { return b.rng.Seed() }

// Grid hands off the grid, or the sticky error if a stage failed.
func (b *Builder) Grid() (*Grid, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.grid, nil
}

// stage runs fn unless an earlier stage failed.
func (b *Builder) stage(name string, fn func() error) *Builder {
	if b.err != nil {
		return b
	}
	if err := fn(); err != nil {
		b.err = fmt.Errorf("%s: %w", name, err)
		slog.Debug("terrain stage failed", "stage", name, "error", err)
		return b
	}
	slog.Debug("terrain stage done", "stage", name)
	return b
}

// freeze copies the live grid into the read buffer.
func (b *Builder) freeze() { copy(b.snap.cells, b.grid.cells) }

// area returns the inclusive scan bounds for an inner margin of buffer cells.
func (b *Builder) area(buffer int) (int, int) {
	return 1 + buffer, b.grid.size - 2 - buffer
}

// Fill overwrites every cell with t.
func (b *Builder) Fill(t Terrain) *Builder {
	return b.stage("fill", func() error {
		if !t.Valid() {
			return errx.Configuration("invalid fill terrain", "terrain", uint8(t))
		}
		b.grid.Fill(t)
		return nil
	})
}

// Border draws a frame of cloud of the given thickness along all four edges.
func (b *Builder) Border(thickness int) *Builder {
	return b.stage("border", func() error {
		n := b.grid.size
		if thickness < 0 || thickness > n/2 {
			return errx.Configuration("border thickness out of range", "thickness", thickness, "max", n/2)
		}
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if x < thickness || y < thickness || x >= n-thickness || y >= n-thickness {
					b.grid.Set(x, y, TerrainCloud)
				}
			}
		}
		return nil
	})
}

func checkBuffers(buffers ...int) error {
	for _, v := range buffers {
		if v < 0 {
			return errx.Configuration("buffer must be non-negative", "buffer", v)
		}
	}
	return nil
}

func checkUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return errx.Configuration(name+" must be within [0, 1]", name, v)
	}
	return nil
}

package world

import "github.com/talgya/legion-shores/internal/errx"

// RiverParams configures Rivers.
type RiverParams struct {
	Amount int `mapstructure:"amount"`
	// Width is the brush radius in Manhattan distance.
	Width int `mapstructure:"width"`
	// Minors halves the width for the second half of the rivers.
	Minors       bool    `mapstructure:"minors"`
	Straightness float64 `mapstructure:"straightness"`
	Depth        float64 `mapstructure:"depth"`
	// NaturalPref is the chance a river starts in a mountain range rather
	// than on open plains.
	NaturalPref float64 `mapstructure:"natural_pref"`
	// StartBuffer is added on top of FlowBuffer for origins only.
	StartBuffer int `mapstructure:"start_buffer"`
	FlowBuffer  int `mapstructure:"flow_buffer"`
}

func (p RiverParams) validate() error {
	if p.Amount < 0 || p.Width < 0 {
		return errx.Configuration("river counts must be non-negative", "amount", p.Amount, "width", p.Width)
	}
	if err := checkBuffers(p.StartBuffer, p.FlowBuffer); err != nil {
		return err
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"straightness", p.Straightness},
		{"depth", p.Depth},
		{"natural_pref", p.NaturalPref},
	} {
		if err := checkUnit(v.name, v.val); err != nil {
			return err
		}
	}
	return nil
}

// Rivers cuts channels from high ground to the sea. Channel cells are held
// as a transient river marker while drawing and settle into swamp at the end.
func (b *Builder) Rivers(p RiverParams) *Builder {
	return b.stage("rivers", func() error {
		if err := p.validate(); err != nil {
			return err
		}
		n := b.grid.size
		lo, hi := b.area(p.FlowBuffer)
		olo, ohi := lo+p.StartBuffer, hi-p.StartBuffer
		if p.Amount > 0 && olo > ohi {
			return errx.Configuration("river buffers leave no origin area",
				"start_buffer", p.StartBuffer, "flow_buffer", p.FlowBuffer)
		}
		maxAttempts := n * n
		width := p.Width
		for r := 0; r < p.Amount; r++ {
			if width == p.Width && r >= p.Amount/2 && p.Minors {
				width /= 2
			}
			b.freeze()

			mountain := b.rng.Chance(p.NaturalPref)
			var x, y int
			for attempts := 0; ; attempts++ {
				if attempts >= maxAttempts {
					return errx.Exhausted("river origin search", "attempts", attempts, "cap", maxAttempts)
				}
				x, y = b.rng.Int(olo, ohi), b.rng.Int(olo, ohi)
				t := b.snap.At(x, y)
				if mountain && t == TerrainMountains && b.snap.HasNear(x, y, TerrainMountains, TerrainMountains, 4) {
					break
				}
				if !mountain && t == TerrainPlains {
					break
				}
			}

			var dx, dy int
			for dx == 0 && dy == 0 {
				dx, dy = b.rng.Int(-1, 1), b.rng.Int(-1, 1)
			}
			ogx, ogy := dx, dy

			for steps := 0; ; {
				if steps >= maxAttempts {
					return errx.Exhausted("river walk", "steps", steps, "cap", maxAttempts)
				}
				if b.rng.Chance(1 - p.Straightness) {
					nx, ny := diagonal(dx, dy, b.rng.Chance(0.5))
					if nx == ogx || ny == ogy {
						dx, dy = nx, ny
					}
				}
				x += dx
				y += dy
				if x < lo || x > hi || y < lo || y > hi {
					break
				}
				if t := b.snap.At(x, y); t == TerrainOcean || t == TerrainRiver {
					break
				}
				steps++
				b.brush(x, y, width, p.Depth)
			}
		}
		for i, t := range b.grid.cells {
			if t == TerrainRiver {
				b.grid.cells[i] = TerrainSwamp
			}
		}
		return nil
	})
}

// brush paints a diamond of river around (cx, cy). Cells beside mountains
// are left alone except the centre, which always becomes river.
func (b *Builder) brush(cx, cy, width int, depth float64) {
	for j := -width; j <= width; j++ {
		for i := -width; i <= width; i++ {
			if abs(i)+abs(j) > width {
				continue
			}
			x, y := cx+i, cy+j
			if !b.grid.InBounds(x, y) {
				continue
			}
			centre := i == 0 && j == 0
			cur := b.grid.At(x, y)
			if cur == TerrainRiver || (cur == TerrainMountains && !centre) {
				continue
			}
			if !centre && b.snap.HasNear(x, y, TerrainMountains, TerrainMountains, 1) {
				continue
			}
			chance := depth
			if centre {
				chance = 1
			}
			if b.rng.Chance(chance) {
				b.grid.Set(x, y, TerrainRiver)
			} else if cur == TerrainPlains {
				b.grid.Set(x, y, TerrainWetlands)
			}
		}
	}
}

// diagonal returns a direction one eighth of a turn from (dx, dy). lower
// picks which side.
func diagonal(dx, dy int, lower bool) (int, int) {
	side := 1
	if lower {
		side = -1
	}
	switch {
	case dx == 0 && dy == 0:
		return 0, 0
	case dx == 0:
		return side, dy
	case dy == 0:
		return dx, side
	case lower:
		return 0, dy
	default:
		return dx, 0
	}
}

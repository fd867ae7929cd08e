package world

import "github.com/talgya/legion-shores/internal/errx"

// ForestParams configures Forests.
type ForestParams struct {
	// Size is the number of trees per forest, counting the origin.
	Size   int `mapstructure:"size"`
	Amount int `mapstructure:"amount"`
	// Density is the chance a visited plains cell is planted.
	Density float64 `mapstructure:"density"`
	// FastGen shrinks both search caps by a factor of N.
	FastGen    bool `mapstructure:"fast_gen"`
	AreaBuffer int  `mapstructure:"area_buffer"`
}

// Forests grows forests on plains with the same random walk floods use.
// Run it after the elevation stages: forest sits outside the elevation
// ladder.
func (b *Builder) Forests(p ForestParams) *Builder {
	return b.stage("forests", func() error {
		if p.Size < 0 || p.Amount < 0 {
			return errx.Configuration("forest counts must be non-negative", "size", p.Size, "amount", p.Amount)
		}
		if err := checkUnit("density", p.Density); err != nil {
			return err
		}
		if err := checkBuffers(p.AreaBuffer); err != nil {
			return err
		}
		n := b.grid.size
		lo, hi := b.area(p.AreaBuffer)
		if p.Amount > 0 && lo > hi {
			return errx.Configuration("forest buffer leaves no area", "area_buffer", p.AreaBuffer)
		}
		scale := n
		if p.FastGen {
			scale = 1
		}
		originCap := n * scale
		growCap := n * n * scale

		for f := 0; f < p.Amount; f++ {
			var x, y int
			for attempts := 0; ; attempts++ {
				if attempts >= originCap {
					return errx.Exhausted("forest origin search", "attempts", attempts, "cap", originCap)
				}
				x, y = b.rng.Int(lo, hi), b.rng.Int(lo, hi)
				if b.grid.At(x, y) == TerrainPlains {
					break
				}
			}
			w := walker{x: x, y: y, dir: dirNone, lo: lo, hi: hi}
			for planted, steps := 1, 0; planted < p.Size; steps++ {
				if steps >= growCap {
					return errx.Exhausted("forest walk", "planted", planted, "size", p.Size, "cap", growCap)
				}
				if b.grid.At(w.x, w.y) == TerrainPlains && b.rng.Chance(p.Density) {
					b.grid.Set(w.x, w.y, TerrainForest)
					planted++
				}
				w.step(b.rng)
			}
		}
		return nil
	})
}

package world

import (
	"math"

	"github.com/talgya/legion-shores/internal/errx"
)

// DesertParams configures Desertify.
type DesertParams struct {
	Cycles     int `mapstructure:"cycles"`
	AreaBuffer int `mapstructure:"area_buffer"`
	// Originate lets dense mountain ranges seed deserts in their lee.
	Originate bool `mapstructure:"originate"`
	// Direction is the wind heading as a fraction of a full turn,
	// counter-clockwise from +x.
	Direction float64 `mapstructure:"direction"`
	Force     float64 `mapstructure:"force"`
	Variance  float64 `mapstructure:"variance"`
}

// Desertify blows aridity downwind. Each source projects two to four cells
// along a jittered wind vector and dries the target: plains become desert,
// wetlands become plains, forest becomes dry forest.
func (b *Builder) Desertify(p DesertParams) *Builder {
	return b.stage("desertify", func() error {
		if p.Direction < 0 || p.Direction >= 1 {
			return errx.Configuration("direction must be within [0, 1)", "direction", p.Direction)
		}
		if err := checkUnit("variance", p.Variance); err != nil {
			return err
		}
		if p.Cycles < 0 {
			return errx.Configuration("cycles must be non-negative", "cycles", p.Cycles)
		}
		if err := checkBuffers(p.AreaBuffer); err != nil {
			return err
		}
		lo, hi := b.area(p.AreaBuffer)
		for c := 0; c < p.Cycles; c++ {
			b.freeze()
			for y := lo; y <= hi; y++ {
				for x := lo; x <= hi; x++ {
					t := b.snap.At(x, y)
					switch {
					case t == TerrainDesert:
					case p.Originate && t == TerrainMountains:
						if !b.snap.HasNear(x, y, TerrainMountains, TerrainMountains, 4) {
							continue
						}
					default:
						continue
					}

					heading := p.Direction + (b.rng.Fraction()/2-0.25)*p.Variance
					if heading >= 1 {
						heading--
					} else if heading < 0 {
						heading++
					}
					vx, vy := math.Cos(heading*2*math.Pi), math.Sin(heading*2*math.Pi)

					push := b.rng.Fraction()
					strength := 2.0
					if push < p.Force*0.1 {
						strength = 4
					} else if push < p.Force*0.5 {
						strength = 3
					}
					tx, ty := x+int(strength*vx), y+int(strength*vy)
					if tx < lo || tx > hi || ty < lo || ty > hi {
						continue
					}
					switch b.snap.At(tx, ty) {
					case TerrainPlains:
						b.grid.Set(tx, ty, TerrainDesert)
					case TerrainWetlands:
						b.grid.Set(tx, ty, TerrainPlains)
					case TerrainForest:
						b.grid.Set(tx, ty, TerrainDryForest)
					}
				}
			}
		}
		return nil
	})
}

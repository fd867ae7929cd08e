package world

import "github.com/talgya/legion-shores/internal/errx"

// SettleParams configures Settle.
type SettleParams struct {
	FluidStrength float64 `mapstructure:"fluid_strength"`
	LandStrength  float64 `mapstructure:"land_strength"`
	// DryBuffer is how many dry neighbours lift a swamp into wetlands.
	DryBuffer int `mapstructure:"dry_buffer"`
	// SinkBuffer is how many wet neighbours sink wetlands back to swamp.
	SinkBuffer int `mapstructure:"sink_buffer"`
	Cycles     int `mapstructure:"cycles"`
	AreaBuffer int `mapstructure:"area_buffer"`
}

// Settle erodes low ground into the sea and dries higher ground out.
func (b *Builder) Settle(p SettleParams) *Builder {
	return b.stage("settle", func() error {
		if err := checkUnit("fluid_strength", p.FluidStrength); err != nil {
			return err
		}
		if err := checkUnit("land_strength", p.LandStrength); err != nil {
			return err
		}
		if p.Cycles < 0 {
			return errx.Configuration("cycles must be non-negative", "cycles", p.Cycles)
		}
		if err := checkBuffers(p.AreaBuffer, p.DryBuffer, p.SinkBuffer); err != nil {
			return err
		}
		lo, hi := b.area(p.AreaBuffer)
		for c := 0; c < p.Cycles; c++ {
			b.freeze()
			for y := lo; y <= hi; y++ {
				for x := lo; x <= hi; x++ {
					switch b.snap.At(x, y) {
					case TerrainSwamp:
						if b.snap.HasNear(x, y, TerrainOcean, TerrainOcean, 1) {
							if b.rng.Chance(p.FluidStrength) {
								b.grid.Set(x, y, TerrainOcean)
							}
						} else if b.snap.HasNear(x, y, TerrainWetlands, TerrainMountains, p.DryBuffer) {
							if b.rng.Chance(p.LandStrength) {
								b.grid.Set(x, y, TerrainWetlands)
							}
						}
					case TerrainWetlands:
						if b.snap.HasNear(x, y, TerrainPlains, TerrainMountains, 1) {
							if b.rng.Chance(p.LandStrength) {
								b.grid.Set(x, y, TerrainPlains)
							}
						} else if b.snap.HasNear(x, y, TerrainOcean, TerrainSwamp, p.SinkBuffer) {
							if b.rng.Chance(p.FluidStrength) {
								b.grid.Set(x, y, TerrainSwamp)
							}
						}
					}
				}
			}
		}
		return nil
	})
}

// DeteriorateWetlands turns wetlands into plains with probability power.
// With innerOnly set, only wetlands fully surrounded by dry ground decay,
// which keeps shorelines marshy.
func (b *Builder) DeteriorateWetlands(power float64, innerOnly bool, cycles, areaBuffer int) *Builder {
	return b.stage("deteriorate wetlands", func() error {
		if err := checkUnit("power", power); err != nil {
			return err
		}
		if cycles < 0 {
			return errx.Configuration("cycles must be non-negative", "cycles", cycles)
		}
		if err := checkBuffers(areaBuffer); err != nil {
			return err
		}
		lo, hi := b.area(areaBuffer)
		for c := 0; c < cycles; c++ {
			b.freeze()
			for y := lo; y <= hi; y++ {
				for x := lo; x <= hi; x++ {
					if b.snap.At(x, y) != TerrainWetlands || !b.rng.Chance(power) {
						continue
					}
					if !innerOnly || b.snap.HasNear(x, y, TerrainWetlands, TerrainMountains, 8) {
						b.grid.Set(x, y, TerrainPlains)
					}
				}
			}
		}
		return nil
	})
}

// Cleanup is one majority pass that removes cells nearly enclosed by another
// biome. picky requires all eight neighbours to agree instead of six.
func (b *Builder) Cleanup(picky bool, areaBuffer int) *Builder {
	return b.stage("cleanup", func() error {
		if err := checkBuffers(areaBuffer); err != nil {
			return err
		}
		need := 6
		if picky {
			need = 8
		}
		lo, hi := b.area(areaBuffer)
		b.freeze()
		for y := lo; y <= hi; y++ {
			for x := lo; x <= hi; x++ {
				s := b.snap
				switch s.At(x, y) {
				case TerrainSwamp, TerrainShallow:
					if s.HasNear(x, y, TerrainOcean, TerrainOcean, need) {
						b.grid.Set(x, y, TerrainOcean)
					}
				case TerrainOcean:
					if s.HasNear(x, y, TerrainSwamp, TerrainMountains, need) {
						b.grid.Set(x, y, TerrainSwamp)
					} else if s.HasNear(x, y, TerrainShallow, TerrainShallow, need) {
						b.grid.Set(x, y, TerrainShallow)
					}
				case TerrainPlains:
					if s.HasNear(x, y, TerrainDesert, TerrainDesert, need) {
						b.grid.Set(x, y, TerrainDesert)
					}
				case TerrainDesert:
					if s.HasNear(x, y, TerrainPlains, TerrainPlains, need) {
						b.grid.Set(x, y, TerrainPlains)
					}
				case TerrainWetlands:
					if s.HasNear(x, y, TerrainPlains, TerrainMountains, need) {
						b.grid.Set(x, y, TerrainPlains)
					}
				}
			}
		}
		return nil
	})
}

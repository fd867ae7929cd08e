// Base elevation from layered simplex noise.
// NoiseFill lays a continent-shaped Ocean..Plains field that a later
// Flood{OverlayPrevious: true} can pile mountains onto.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
)

// NoiseParams configures NoiseFill.
type NoiseParams struct {
	Octaves     int     `mapstructure:"octaves"`
	Frequency   float64 `mapstructure:"frequency"`
	Persistence float64 `mapstructure:"persistence"`
	// SeaLevel is the normalized elevation below which cells stay ocean.
	SeaLevel float64 `mapstructure:"sea_level"`
	// Falloff sinks the map edges; larger values keep more land near the
	// rim. Zero disables it.
	Falloff    float64 `mapstructure:"falloff"`
	AreaBuffer int     `mapstructure:"area_buffer"`
}

// DefaultNoiseParams returns a gentle archipelago field.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Octaves:     4,
		Frequency:   0.02,
		Persistence: 0.5,
		SeaLevel:    0.45,
		Falloff:     3.5,
	}
}

// NoiseFill overwrites the area inside the buffer with a noise-derived
// elevation tier in Ocean..Plains.
func (b *Builder) NoiseFill(p NoiseParams) *Builder {
	return b.stage("noise fill", func() error {
		if p.Octaves < 1 || p.Frequency <= 0 {
			return errx.Configuration("noise needs at least one octave and a positive frequency",
				"octaves", p.Octaves, "frequency", p.Frequency)
		}
		if err := checkUnit("persistence", p.Persistence); err != nil {
			return err
		}
		if p.SeaLevel < 0 || p.SeaLevel >= 1 {
			return errx.Configuration("sea_level must be within [0, 1)", "sea_level", p.SeaLevel)
		}
		if p.Falloff < 0 {
			return errx.Configuration("falloff must be non-negative", "falloff", p.Falloff)
		}
		if err := checkBuffers(p.AreaBuffer); err != nil {
			return err
		}

		noise := opensimplex.NewNormalized(int64(b.rng.Int(entropy.SeedLow, entropy.SeedHigh)))
		n := b.grid.size
		half := float64(n) / 2
		lo, hi := b.area(p.AreaBuffer)
		for y := lo; y <= hi; y++ {
			for x := lo; x <= hi; x++ {
				elev := octaveNoise(noise, float64(x), float64(y), p.Octaves, p.Frequency, p.Persistence)

				if p.Falloff > 0 {
					dx, dy := (float64(x)-half)/half, (float64(y)-half)/half
					edge := 1.0 - math.Pow(math.Sqrt(dx*dx+dy*dy), p.Falloff)
					if edge < 0 {
						edge = 0
					}
					elev *= edge
				}
				b.grid.Set(x, y, elevationTier(elev, p.SeaLevel))
			}
		}
		return nil
	})
}

// elevationTier maps a normalized elevation onto the low half of the
// elevation ladder.
func elevationTier(elev, sea float64) Terrain {
	if elev < sea {
		return TerrainOcean
	}
	step := int((elev - sea) / (1 - sea) * 3)
	if step > 2 {
		step = 2
	}
	return TerrainSwamp + Terrain(step)
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

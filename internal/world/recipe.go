// Generation presets.
// A Recipe is the standard stage chain with every knob exposed, so presets
// can ship as code (StandardRecipe, LargeRecipe) or be loaded from a file.
package world

import (
	"log/slog"

	"github.com/talgya/legion-shores/internal/errx"
)

// DeteriorateParams configures DeteriorateWetlands inside a recipe.
type DeteriorateParams struct {
	Power      float64 `mapstructure:"power"`
	InnerOnly  bool    `mapstructure:"inner_only"`
	Cycles     int     `mapstructure:"cycles"`
	AreaBuffer int     `mapstructure:"area_buffer"`
}

// ShoreParams configures BuildShallows and ExpandShallows inside a recipe.
type ShoreParams struct {
	Preservation float64 `mapstructure:"preservation"`
	Expansion    float64 `mapstructure:"expansion"`
	Buffer       int     `mapstructure:"buffer"`
}

// Recipe holds the parameters of the standard terrain chain.
type Recipe struct {
	Name   string `mapstructure:"name"`
	Size   int    `mapstructure:"size"`
	Border int    `mapstructure:"border"`
	// Noise, when set, lays a simplex base field before flooding.
	Noise       *NoiseParams      `mapstructure:"noise"`
	Flood       FloodParams       `mapstructure:"flood"`
	Deteriorate DeteriorateParams `mapstructure:"deteriorate"`
	Settle      SettleParams      `mapstructure:"settle"`
	Rivers      RiverParams       `mapstructure:"rivers"`
	Shores      ShoreParams       `mapstructure:"shores"`
	Forests     ForestParams      `mapstructure:"forests"`
	// Highlands seeds deserts behind mountain ranges; Dunes spreads them.
	Highlands DesertParams `mapstructure:"highlands"`
	Dunes     DesertParams `mapstructure:"dunes"`
}

// StandardRecipe returns the default 256-cell world.
func StandardRecipe() Recipe {
	return Recipe{
		Name:   "standard",
		Size:   256,
		Border: 1,
		Flood: FloodParams{
			Cycles:          6,
			FloodsPerCycle:  6,
			FloodSize:       2500,
			SizeDecay:       100,
			DecayPerCycle:   true,
			OverlayPrevious: true,
			OriginVariation: 0.5,
		},
		Deteriorate: DeteriorateParams{Power: 0.1, InnerOnly: true, Cycles: 1},
		Settle: SettleParams{
			FluidStrength: 0.05,
			LandStrength:  0.2,
			DryBuffer:     3,
			SinkBuffer:    3,
			Cycles:        15,
		},
		Rivers: RiverParams{
			Amount:       50,
			Width:        3,
			Minors:       true,
			Straightness: 0.1,
			Depth:        0.5,
		},
		Shores:    ShoreParams{Preservation: 0.05, Expansion: 1},
		Forests:   ForestParams{Size: 50, Amount: 100, Density: 0.2},
		Highlands: DesertParams{Cycles: 1, Originate: true, Direction: 0.1},
		Dunes:     DesertParams{Cycles: 15, Direction: 0.1, Force: 0.99, Variance: 0.99},
	}
}

// LargeRecipe returns the 512-cell world.
func LargeRecipe() Recipe {
	r := StandardRecipe()
	r.Name = "large"
	r.Size = 512
	r.Flood.FloodSize = 10000
	r.Flood.SizeDecay = 400
	r.Rivers.Amount = 100
	r.Forests.Size = 100
	r.Forests.Amount = 200
	r.Dunes.Cycles = 25
	return r
}

// Validate checks the recipe-level constraints. Stage parameters are
// checked by the stages themselves.
func (r Recipe) Validate() error {
	if r.Size < MinPlayableSize || r.Size > MaxSize {
		return errx.Configuration("recipe size out of range",
			"size", r.Size, "min", MinPlayableSize, "max", MaxSize)
	}
	if r.Border < 0 || r.Border > r.Size/2 {
		return errx.Configuration("recipe border out of range", "border", r.Border)
	}
	return nil
}

// Apply runs the chain on b.
func (r Recipe) Apply(b *Builder) {
	if r.Noise != nil {
		b.NoiseFill(*r.Noise)
	}
	b.Flood(r.Flood).
		DeteriorateWetlands(r.Deteriorate.Power, r.Deteriorate.InnerOnly, r.Deteriorate.Cycles, r.Deteriorate.AreaBuffer).
		Settle(r.Settle).
		Rivers(r.Rivers).
		Cleanup(false, 0).
		BuildShallows(r.Shores.Preservation, r.Shores.Buffer).
		ExpandShallows(r.Shores.Expansion, r.Shores.Buffer).
		Forests(r.Forests).
		Desertify(r.Highlands).
		Desertify(r.Dunes).
		Cleanup(false, 0).
		Cleanup(false, 0).
		Border(r.Border)
}

// Build validates the recipe and produces a finished grid.
func (r Recipe) Build(seed int64) (*Grid, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	grid, err := Export(r.Size, seed, r.Apply)
	if err != nil {
		return nil, err
	}
	slog.Debug("terrain built", "recipe", r.Name, "size", r.Size, "seed", seed)
	return grid, nil
}

// Package engine orchestrates full world builds: terrain, population, and
// realms, one seed at a time or as a parallel sweep.
package engine

import (
	"strings"

	"github.com/talgya/legion-shores/internal/errx"
	"github.com/talgya/legion-shores/internal/social"
	"github.com/talgya/legion-shores/internal/world"
)

// Preset bundles everything needed to turn a seed into a World.
type Preset struct {
	Name            string                `mapstructure:"name"`
	Terrain         world.Recipe          `mapstructure:"terrain"`
	Populate        social.PopulateConfig `mapstructure:"populate"`
	RealmsPerEthnic int                   `mapstructure:"realms_per_ethnic"`
}

// StandardPreset is the 256×256 game map.
func StandardPreset() Preset {
	return Preset{
		Name:            "standard",
		Terrain:         world.StandardRecipe(),
		Populate:        social.DefaultPopulateConfig(),
		RealmsPerEthnic: 4,
	}
}

// LargePreset is the 512×512 game map.
func LargePreset() Preset {
	p := StandardPreset()
	p.Name = "large"
	p.Terrain = world.LargeRecipe()
	return p
}

// PresetByName returns a built-in preset.
func PresetByName(name string) (Preset, error) {
	switch strings.ToLower(name) {
	case "", "standard":
		return StandardPreset(), nil
	case "large":
		return LargePreset(), nil
	}
	return Preset{}, errx.Configuration("unknown preset", "preset", name)
}

// Validate checks the preset before any work is done.
func (p Preset) Validate() error {
	if err := p.Terrain.Validate(); err != nil {
		return err
	}
	if err := p.Populate.Validate(); err != nil {
		return err
	}
	if p.RealmsPerEthnic < 0 || p.RealmsPerEthnic > social.MaxRealmsPerEthnic {
		return errx.Configuration("realms per ethnic out of range", "realms", p.RealmsPerEthnic)
	}
	return nil
}

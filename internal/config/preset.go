package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/talgya/legion-shores/internal/engine"
)

// LoadPreset returns the named built-in preset, overlaid with the keys set
// in path when path is non-empty. The file format follows its extension.
func LoadPreset(name, path string) (engine.Preset, error) {
	p, err := engine.PresetByName(name)
	if err != nil {
		return engine.Preset{}, err
	}
	if path == "" {
		return p, p.Validate()
	}
	if _, err := os.Stat(path); err != nil {
		return engine.Preset{}, fmt.Errorf("preset file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return engine.Preset{}, fmt.Errorf("read preset %s: %w", path, err)
	}
	if err := v.Unmarshal(&p); err != nil {
		return engine.Preset{}, fmt.Errorf("decode preset %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return engine.Preset{}, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

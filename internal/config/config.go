// Package config loads process settings from the environment and command
// line, and generation presets from optional files.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
)

// Config holds the worldgen process settings.
type Config struct {
	DB         string `env:"DB" envDefault:"data/worlds.db"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"LOG_FILE"`
	Preset     string `env:"PRESET" envDefault:"standard"`
	PresetFile string `env:"PRESET_FILE"`
	Workers    int    `env:"WORKERS" envDefault:"4"`
	Seed       int64  `env:"SEED" envDefault:"-1"` // AnySeed draws a random seed
	Count      int    `env:"COUNT" envDefault:"1"`
	NoSave     bool   `env:"NO_SAVE"`
}

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "WORLDGEN_"

// AnySeed asks for a seed drawn at random.
const AnySeed int64 = -1

// Load reads Config from WORLDGEN_* environment variables.
func Load() (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Bind registers flags that override the loaded values.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.DB, "db", c.DB, "SQLite database path")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "also write JSON logs to this rotating file")
	fs.StringVar(&c.Preset, "preset", c.Preset, "built-in preset: standard or large")
	fs.StringVar(&c.PresetFile, "preset-file", c.PresetFile, "YAML, JSON or TOML file overriding the preset")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel builds when generating several worlds")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed; -1 picks one at random")
	fs.IntVar(&c.Count, "count", c.Count, "number of worlds to generate")
	fs.BoolVar(&c.NoSave, "no-save", c.NoSave, "skip writing worlds to the database")
}

// Validate rejects settings no run could use.
func (c Config) Validate() error {
	if c.Seed != AnySeed && (c.Seed < entropy.SeedLow || c.Seed > entropy.SeedHigh) {
		return errx.Range("seed out of range", "seed", c.Seed)
	}
	if c.Count < 1 {
		return errx.Configuration("count must be positive", "count", c.Count)
	}
	if c.Workers < 1 {
		return errx.Configuration("workers must be positive", "workers", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if !c.NoSave && c.DB == "" {
		return errx.Configuration("database path required unless saving is disabled")
	}
	return nil
}

// PickSeed returns Seed, or a fresh random seed for AnySeed.
func (c Config) PickSeed() (int64, error) {
	if c.Seed == AnySeed {
		return entropy.RandomSeed()
	}
	return c.Seed, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, errx.Configuration("unknown log level", "level", c.LogLevel)
	}
	return lvl, nil
}

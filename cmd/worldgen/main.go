// Command worldgen generates strategy-game worlds: terrain, ethnics,
// regions, and realms, saved to SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/legion-shores/internal/config"
	"github.com/talgya/legion-shores/internal/engine"
	"github.com/talgya/legion-shores/internal/logs"
	"github.com/talgya/legion-shores/internal/persistence"
	"github.com/talgya/legion-shores/internal/social"
	"github.com/talgya/legion-shores/internal/world"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worldgen failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	list := flag.Bool("list", false, "list saved worlds and exit")
	load := flag.String("load", "", "load a saved world by id (or \"last\") and print its summary")
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()
	closer, err := logs.Init(os.Stderr, logs.Options{Level: level, File: cfg.LogFile, MaxSizeMB: 20, MaxBackups: 5, MaxAgeDays: 30})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if !cfg.NoSave || *list || *load != "" {
		if dir := filepath.Dir(cfg.DB); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
		}
		db, err = persistence.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.DB)
	}

	switch {
	case *list:
		return listWorlds(db)
	case *load != "":
		return showWorld(db, *load)
	}

	// ── Preset and seeds ──────────────────────────────────────────────
	preset, err := config.LoadPreset(cfg.Preset, cfg.PresetFile)
	if err != nil {
		return err
	}
	seed, err := cfg.PickSeed()
	if err != nil {
		return err
	}
	slog.Info("generating", "preset", preset.Name, "size", preset.Terrain.Size,
		"seed", seed, "count", cfg.Count, "workers", cfg.Workers)

	save := func(w *social.World) error {
		if db == nil {
			return nil
		}
		id, err := db.SaveWorld(w)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s (seed %d)\n", id, w.Seed())
		return nil
	}

	// ── Generate ──────────────────────────────────────────────────────
	if cfg.Count == 1 {
		start := time.Now()
		w, err := engine.Generate(ctx, preset, seed)
		if err != nil {
			return err
		}
		report(w, time.Since(start))
		return save(w)
	}

	summaries, err := engine.Sweep(ctx, preset.Builder(), engine.Seeds(seed, cfg.Count), cfg.Workers, save)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("seed %11d  land %8s  ethnics %3d  regions %5s  realms %4d  %s\n",
			s.Seed, humanize.Comma(int64(s.Land)), s.Ethnics, humanize.Comma(int64(s.Regions)),
			s.Realms, s.Elapsed.Round(time.Millisecond))
	}
	return nil
}

func report(w *social.World, elapsed time.Duration) {
	counts := world.Counts(w.Grid())
	for t := world.TerrainOcean; t < world.TerrainRiver; t++ {
		slog.Debug("terrain", "type", t.String(), "count", counts[t])
	}
	s := engine.Summarize(w, elapsed)
	fmt.Printf("\nWorld %d: %d×%d, %s walkable cells, %d ethnics, %s regions, %d realms (%d houses) in %s.\n",
		s.Seed, w.Size(), w.Size(), humanize.Comma(int64(s.Land)), s.Ethnics,
		humanize.Comma(int64(s.Regions)), s.Realms, s.Players, elapsed.Round(time.Millisecond))
	for _, e := range w.Ethnics() {
		fmt.Printf("  %-20s %3d regions %3d realms\n", e.Name, len(e.Regions), len(e.Realms))
	}
}

func listWorlds(db *persistence.DB) error {
	worlds, err := db.ListWorlds()
	if err != nil {
		return err
	}
	if len(worlds) == 0 {
		fmt.Println("no saved worlds")
		return nil
	}
	for _, w := range worlds {
		fmt.Println(w)
	}
	return nil
}

func showWorld(db *persistence.DB, ref string) error {
	var id uuid.UUID
	var err error
	if ref == "last" {
		id, err = db.LastWorld()
	} else {
		id, err = uuid.Parse(ref)
	}
	if err != nil {
		return fmt.Errorf("world id %q: %w", ref, err)
	}
	start := time.Now()
	w, err := db.LoadWorld(id)
	if err != nil {
		return err
	}
	report(w, time.Since(start))
	return nil
}

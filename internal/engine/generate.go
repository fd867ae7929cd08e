package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/names"
	"github.com/talgya/legion-shores/internal/social"
	"github.com/talgya/legion-shores/internal/world"
)

// Generate builds the preset's terrain for seed, populates it, and spawns
// realms.
func Generate(ctx context.Context, p Preset, seed int64) (*social.World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	grid, err := p.Terrain.Build(seed)
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	return Populate(ctx, grid, p, seed)
}

// Populate runs the political half of a build on an existing grid.
func Populate(ctx context.Context, grid *world.Grid, p Preset, seed int64) (*social.World, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := p.Populate
	cfg.Seed = seed
	cfg.Names = names.NewSyllables()
	w, err := social.Populate(grid, cfg)
	if err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := w.SpawnWorldRealms(p.RealmsPerEthnic, names.NewSyllables()); err != nil {
		return nil, fmt.Errorf("realms: %w", err)
	}
	slog.Info("world generated", "preset", p.Name, "seed", seed,
		"ethnics", w.EthnicsCount(), "regions", w.RegionsCount(), "realms", w.RealmsCount())
	return w, nil
}

// Summary describes one generated world.
type Summary struct {
	Seed     int64         `json:"seed"`
	Land     int           `json:"land"`
	Ethnics  int           `json:"ethnics"`
	Regions  int           `json:"regions"`
	Realms   int           `json:"realms"`
	Players  int           `json:"players"`
	Entities int           `json:"entities"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Summarize counts a world's land and polities.
func Summarize(w *social.World, elapsed time.Duration) Summary {
	land := 0
	for _, t := range w.Grid().Cells() {
		if t.IsWalkable() {
			land++
		}
	}
	return Summary{
		Seed:     w.Seed(),
		Land:     land,
		Ethnics:  w.EthnicsCount(),
		Regions:  w.RegionsCount(),
		Realms:   w.RealmsCount(),
		Players:  w.PlayerCount(),
		Entities: w.EntitiesCount(),
		Elapsed:  elapsed,
	}
}

// BuildFunc produces the world for one seed.
type BuildFunc func(ctx context.Context, seed int64) (*social.World, error)

// Builder returns a BuildFunc running Generate with this preset.
func (p Preset) Builder() BuildFunc {
	return func(ctx context.Context, seed int64) (*social.World, error) {
		return Generate(ctx, p, seed)
	}
}

// Seeds derives count independent seeds from base.
func Seeds(base int64, count int) []int64 {
	out := make([]int64, count)
	for i := range out {
		out[i] = entropy.Derive(base, "sweep/"+strconv.Itoa(i))
	}
	return out
}

// Sweep builds one world per seed on up to workers goroutines and returns
// their summaries in seed order. sink, when set, receives each world as it
// completes; calls to it are serialized. The first error cancels the rest.
func Sweep(ctx context.Context, build BuildFunc, seeds []int64, workers int, sink func(*social.World) error) ([]Summary, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	out := make([]Summary, len(seeds))
	var mu sync.Mutex
	for i, seed := range seeds {
		g.Go(func() error {
			start := time.Now()
			w, err := build(ctx, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			out[i] = Summarize(w, time.Since(start))
			if sink == nil {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			return sink(w)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Info("sweep finished", "worlds", len(seeds), "workers", workers)
	return out, nil
}

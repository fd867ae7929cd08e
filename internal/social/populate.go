// Populator: partitions finished terrain into ethnics and regions.
package social

import (
	"log/slog"
	"math"
	"sort"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
	"github.com/talgya/legion-shores/internal/names"
	"github.com/talgya/legion-shores/internal/world"
)

// RegionSize is the target cell count of a region.
type RegionSize int

const (
	RegionTiny   RegionSize = 36
	RegionSmall  RegionSize = 49
	RegionNormal RegionSize = 64
	RegionLarge  RegionSize = 81
	RegionHuge   RegionSize = 100
)

// Valid reports whether s is one of the named sizes.
func (s RegionSize) Valid() bool {
	switch s {
	case RegionTiny, RegionSmall, RegionNormal, RegionLarge, RegionHuge:
		return true
	}
	return false
}

// MaxEthnics is the most named ethnics a world can hold.
const MaxEthnics = 128

const smoothingPasses = 4

// PopulateConfig controls Populate.
type PopulateConfig struct {
	Seed             int64           `mapstructure:"seed"`
	MaxEthnics       int             `mapstructure:"max_ethnics"`
	RegionSize       RegionSize      `mapstructure:"region_size"`
	Roughness        float64         `mapstructure:"roughness"` // [0, 1): higher grows ragged regions
	ForceDesertWilds bool            `mapstructure:"force_desert_wilds"`
	Names            names.Generator `mapstructure:"-"` // nil uses syllable names
}

// DefaultPopulateConfig matches the standard preset.
func DefaultPopulateConfig() PopulateConfig {
	return PopulateConfig{
		MaxEthnics: 16,
		RegionSize: RegionNormal,
		Roughness:  0.7,
	}
}

// Validate checks ranges before any work is done.
func (c PopulateConfig) Validate() error {
	if c.MaxEthnics < 0 || c.MaxEthnics > MaxEthnics {
		return errx.Configuration("max ethnics out of range", "max_ethnics", c.MaxEthnics)
	}
	if !(c.Roughness >= 0 && c.Roughness < 1) {
		return errx.Configuration("roughness must lie in [0, 1)", "roughness", c.Roughness)
	}
	if !c.RegionSize.Valid() {
		return errx.Configuration("unknown region size", "region_size", int(c.RegionSize))
	}
	return nil
}

// populator carries one Populate run.
type populator struct {
	grid   *world.Grid
	n      int
	cfg    PopulateConfig
	rng    *entropy.Source
	gen    names.Generator
	layers *Layers
	reg    *Registry

	nextRegion RegionID
}

// Populate assigns every walkable cell of a finished grid to an ethnic and
// a region, then assembles the World.
func Populate(grid *world.Grid, cfg PopulateConfig) (*World, error) {
	if grid == nil {
		return nil, errx.Configuration("populate needs a grid")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng, err := entropy.NewSource(cfg.Seed)
	if err != nil {
		return nil, err
	}
	for _, t := range grid.Cells() {
		if !t.Finished() {
			return nil, errx.Structural("grid holds unfinished terrain", "terrain", t.String())
		}
	}
	gen := cfg.Names
	if gen == nil {
		gen = names.NewSyllables()
	}

	p := &populator{
		grid:       grid,
		n:          grid.Size(),
		cfg:        cfg,
		rng:        rng,
		gen:        gen,
		layers:     NewLayers(grid.Size()),
		reg:        NewRegistry(),
		nextRegion: 1,
	}
	named := p.buildEthnics()
	p.smoothBorders()
	if err := p.formRegions(); err != nil {
		return nil, err
	}

	w, err := NewWorld(grid, p.layers, p.reg, cfg.Seed)
	if err != nil {
		return nil, err
	}
	slog.Info("world populated", "seed", cfg.Seed, "ethnics", named,
		"regions", w.RegionsCount())
	return w, nil
}

// biome groups cells that may share a landmass.
func biomeOf(t world.Terrain) func(world.Terrain) bool {
	if t.IsWalkableArid() {
		return world.Terrain.IsWalkableArid
	}
	return world.Terrain.IsWalkableNonArid
}

// buildEthnics partitions walkable land into 8-connected, biome-consistent
// landmasses and names the largest. Returns the number of named ethnics.
func (p *populator) buildEthnics() int {
	n := p.n
	comp := make([]int32, n*n)
	var sizes []int
	var queue []int
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*n + x
			t := p.grid.At(x, y)
			if comp[i] != 0 || !t.IsWalkable() {
				continue
			}
			if p.cfg.ForceDesertWilds && t.IsArid() {
				continue
			}
			same := biomeOf(t)
			id := int32(len(sizes) + 1)
			comp[i] = id
			size := 0
			queue = append(queue[:0], i)
			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				size++
				cx, cy := c%n, c/n
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := cx+dx, cy+dy
						if !p.grid.InBounds(nx, ny) {
							continue
						}
						j := ny*n + nx
						if comp[j] == 0 && same(p.grid.At(nx, ny)) {
							comp[j] = id
							queue = append(queue, j)
						}
					}
				}
			}
			sizes = append(sizes, size)
		}
	}

	rank := make([]int, len(sizes))
	for i := range rank {
		rank[i] = i
	}
	sort.SliceStable(rank, func(a, b int) bool { return sizes[rank[a]] > sizes[rank[b]] })

	k := min(p.cfg.MaxEthnics, len(sizes))
	ethnicOf := make([]EthnicID, len(sizes)+1)
	for i := 0; i < k; i++ {
		id := EthnicID(i + 1)
		p.reg.Ethnics[id] = &Ethnic{ID: id, Name: p.gen.Name(names.Ethnic, p.rng)}
		ethnicOf[rank[i]+1] = id
	}
	p.gen.Reset()
	p.reg.Ethnics[WildsID] = &Ethnic{ID: WildsID, Name: WildsName, Wild: true}

	for i, t := range p.grid.Cells() {
		if !t.IsWalkable() {
			continue
		}
		if id := ethnicOf[comp[i]]; id != 0 {
			p.layers.Ethnics[i] = id
		} else {
			p.layers.Ethnics[i] = WildsID
		}
	}
	slog.Debug("landmasses partitioned", "landmasses", len(sizes), "named", k)
	return k
}

// smoothBorders lets interior cells join an ethnic that holds at least
// five of their eight neighbours.
func (p *populator) smoothBorders() {
	n := p.n
	snap := make([]EthnicID, n*n)
	for pass := 0; pass < smoothingPasses; pass++ {
		copy(snap, p.layers.Ethnics)
		for y := 1; y < n-1; y++ {
			for x := 1; x < n-1; x++ {
				own := snap[y*n+x]
				if own == 0 {
					continue
				}
				if id := majority(snap, n, x, y); id != 0 && id != own {
					p.layers.Ethnics[y*n+x] = id
				}
			}
		}
	}
}

// majority returns the id held by at least five of the eight neighbours.
func majority(ids []EthnicID, n, x, y int) EthnicID {
	var seen [8]EthnicID
	var counts [8]int
	distinct := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			id := ids[(y+dy)*n+x+dx]
			j := 0
			for j < distinct && seen[j] != id {
				j++
			}
			if j == distinct {
				seen[j] = id
				distinct++
			}
			counts[j]++
			if counts[j] >= 5 {
				return id
			}
		}
	}
	return 0
}

// formRegions grows regions inside each ethnic's bounding box, ethnic ids
// in ascending order so the Wilds come last.
func (p *populator) formRegions() error {
	n := p.n
	bounds := make(map[EthnicID]*Bounds)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			id := p.layers.Ethnics[y*n+x]
			if id == 0 {
				continue
			}
			b := bounds[id]
			if b == nil {
				eb := emptyBounds()
				b = &eb
				bounds[id] = b
			}
			b.grow(x, y)
		}
	}
	ids := make([]EthnicID, 0, len(bounds))
	for id := range bounds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	for _, id := range ids {
		if err := p.growRegions(id, *bounds[id]); err != nil {
			return err
		}
	}
	p.gen.Reset()
	slog.Debug("regions formed", "regions", int(p.nextRegion)-1)
	return nil
}

func (p *populator) newRegion() (RegionID, error) {
	if p.nextRegion > MaxRegionID {
		return 0, errx.Structural("region id space exhausted", "next", int(p.nextRegion))
	}
	id := p.nextRegion
	p.nextRegion++
	return id, nil
}

func (p *populator) growRegions(eth EthnicID, b Bounds) error {
	n := p.n
	bw, bh := b.Width(), b.Height()
	claim := make([]RegionID, bw*bh)
	inside := func(x, y int) bool {
		return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY &&
			p.layers.Ethnics[y*n+x] == eth
	}
	at := func(x, y int) int { return (y-b.MinY)*bw + x - b.MinX }

	root := int(math.Sqrt(float64(p.cfg.RegionSize)))
	for y := b.MinY + root/2; y <= b.MaxY; y += root {
		for x := b.MinX + root/2; x <= b.MaxX; x += root {
			if !inside(x, y) {
				continue
			}
			id, err := p.newRegion()
			if err != nil {
				return err
			}
			claim[at(x, y)] = id
		}
	}

	damp := 0.5 + 0.5*p.cfg.Roughness
	snap := make([]RegionID, len(claim))
	// Growth reaches every cell in at most n*n claims; each frontier cell
	// claims with probability 1-damp per pass.
	passCap := math.MaxInt32
	if c := float64(n*n) / (1 - damp); c < float64(passCap) {
		passCap = int(c)
	}
	for pass := 0; ; pass++ {
		if pass >= passCap {
			return errx.Exhausted("region growth did not settle", "ethnic", eth.Code(), "passes", pass)
		}
		copy(snap, claim)
		spread := false
		for y := b.MinY; y <= b.MaxY; y++ {
			for x := b.MinX; x <= b.MaxX; x++ {
				if !inside(x, y) || snap[at(x, y)] != 0 {
					continue
				}
				near := plurality(snap, b, x, y)
				if near == 0 {
					continue
				}
				spread = true
				if !p.rng.Chance(damp) {
					claim[at(x, y)] = near
				}
			}
		}
		if !spread {
			break
		}
	}

	// Cells no root reached become one region per connected patch.
	var queue []int
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			if !inside(x, y) || claim[at(x, y)] != 0 {
				continue
			}
			id, err := p.newRegion()
			if err != nil {
				return err
			}
			claim[at(x, y)] = id
			queue = append(queue[:0], y*n+x)
			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				cx, cy := c%n, c/n
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := cx+dx, cy+dy
						if inside(nx, ny) && claim[at(nx, ny)] == 0 {
							claim[at(nx, ny)] = id
							queue = append(queue, ny*n+nx)
						}
					}
				}
			}
		}
	}

	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			if !inside(x, y) {
				continue
			}
			id := claim[at(x, y)]
			p.layers.Regions[y*n+x] = id
			if p.reg.Regions[id] == nil {
				p.reg.Regions[id] = &Region{
					ID:     id,
					Name:   p.gen.Name(names.Region, p.rng),
					Ethnic: eth,
				}
			}
		}
	}
	return nil
}

// plurality returns the region claimed by most neighbours of (x, y) within
// the box. Ties go to the first seen in scan order.
func plurality(claim []RegionID, b Bounds, x, y int) RegionID {
	var seen [8]RegionID
	var counts [8]int
	distinct := 0
	bw := b.Width()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if (dx == 0 && dy == 0) || nx < b.MinX || nx > b.MaxX || ny < b.MinY || ny > b.MaxY {
				continue
			}
			id := claim[(ny-b.MinY)*bw+nx-b.MinX]
			if id == 0 {
				continue
			}
			j := 0
			for j < distinct && seen[j] != id {
				j++
			}
			if j == distinct {
				seen[j] = id
				distinct++
			}
			counts[j]++
		}
	}
	best := 0
	for j := 1; j < distinct; j++ {
		if counts[j] > counts[best] {
			best = j
		}
	}
	if distinct == 0 {
		return 0
	}
	return seen[best]
}

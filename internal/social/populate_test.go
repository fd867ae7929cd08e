package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/legion-shores/internal/errx"
	"github.com/talgya/legion-shores/internal/world"
)

func TestPopulateValidation(t *testing.T) {
	g := oceanWith(t, 16)
	cases := []struct {
		name string
		mod  func(*PopulateConfig)
		want error
	}{
		{"negative ethnics", func(c *PopulateConfig) { c.MaxEthnics = -1 }, errx.ErrConfiguration},
		{"too many ethnics", func(c *PopulateConfig) { c.MaxEthnics = 129 }, errx.ErrConfiguration},
		{"roughness one", func(c *PopulateConfig) { c.Roughness = 1 }, errx.ErrConfiguration},
		{"negative roughness", func(c *PopulateConfig) { c.Roughness = -0.1 }, errx.ErrConfiguration},
		{"region size", func(c *PopulateConfig) { c.RegionSize = 50 }, errx.ErrConfiguration},
		{"seed", func(c *PopulateConfig) { c.Seed = -5 }, errx.ErrRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPopulateConfig()
			tc.mod(&cfg)
			_, err := Populate(g, cfg)
			require.ErrorIs(t, err, tc.want)
		})
	}

	g.Set(4, 4, world.TerrainRiver)
	_, err := Populate(g, DefaultPopulateConfig())
	require.ErrorIs(t, err, errx.ErrStructural)
}

func TestSmallIslandIsOneEthnicAndRegion(t *testing.T) {
	g := oceanWith(t, 16, patch{6, 6, 8, 8, world.TerrainPlains})
	cfg := DefaultPopulateConfig()
	cfg.MaxEthnics = 1
	cfg.RegionSize = RegionLarge
	w := populate(t, g, cfg)

	require.Equal(t, 1, w.EthnicsCount())
	e := w.Ethnics()[0]
	assert.False(t, e.Wild)
	assert.Equal(t, EthnicID(1), e.ID)
	assert.Equal(t, Bounds{MinX: 6, MinY: 6, MaxX: 8, MaxY: 8}, e.Bounds)

	cells := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if w.EthnicAt(x, y) == e.ID {
				cells++
			}
		}
	}
	assert.Equal(t, 9, cells)
	assert.Equal(t, 1, w.RegionsCount())
	assert.Len(t, e.Regions, 1)
	assert.Empty(t, w.RegionNeighbors(e.Regions[0]))
}

func TestZeroMaxEthnicsLeavesOnlyWilds(t *testing.T) {
	g := oceanWith(t, 32,
		patch{2, 2, 10, 10, world.TerrainPlains},
		patch{15, 15, 28, 28, world.TerrainDesert},
	)
	cfg := DefaultPopulateConfig()
	cfg.MaxEthnics = 0
	w := populate(t, g, cfg)

	require.Equal(t, 1, w.EthnicsCount())
	wild := w.Ethnics()[0]
	assert.True(t, wild.Wild)
	assert.Equal(t, WildsID, wild.ID)
	assert.Equal(t, WildsName, wild.Name)
	assert.Equal(t, WildsID, w.EthnicAt(5, 5))
	assert.Equal(t, WildsID, w.EthnicAt(20, 20))
}

func TestLargestLandmassesBecomeEthnics(t *testing.T) {
	g := continent(t)
	cfg := DefaultPopulateConfig()
	cfg.Seed = 9
	cfg.MaxEthnics = 2
	w := populate(t, g, cfg)

	assert.Equal(t, EthnicID(1), w.EthnicAt(10, 50), "plains mass is largest")
	assert.Equal(t, EthnicID(2), w.EthnicAt(44, 27), "desert is split off by biome")
	assert.Equal(t, WildsID, w.EthnicAt(57, 57), "island falls to the wilds")
	assert.Zero(t, w.EthnicAt(21, 20), "mountains hold no ethnic")
	assert.Zero(t, w.EthnicAt(0, 0))
	assert.Equal(t, 3, w.EthnicsCount())

	for _, e := range w.Ethnics() {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Regions)
	}
}

func TestForceDesertWilds(t *testing.T) {
	cfg := DefaultPopulateConfig()
	cfg.MaxEthnics = 8
	cfg.ForceDesertWilds = true
	w := populate(t, continent(t), cfg)

	assert.Equal(t, WildsID, w.EthnicAt(44, 27))
	assert.Equal(t, EthnicID(1), w.EthnicAt(10, 50))
	assert.Equal(t, EthnicID(2), w.EthnicAt(57, 57))
}

func TestRegionsAreConnectedAndCoverLand(t *testing.T) {
	for _, size := range []RegionSize{RegionTiny, RegionNormal, RegionHuge} {
		cfg := DefaultPopulateConfig()
		cfg.Seed = 31
		cfg.RegionSize = size
		w := populate(t, continent(t), cfg)

		n := w.Size()
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				walkable := w.Terrain(x, y).IsWalkable()
				assert.Equal(t, walkable, w.EthnicAt(x, y) != 0, "ethnic at %d,%d", x, y)
				assert.Equal(t, walkable, w.RegionAt(x, y) != 0, "region at %d,%d", x, y)
			}
		}

		cells := regionCells(w)
		assert.Len(t, cells, w.RegionsCount())
		for id, cs := range cells {
			assert.True(t, connected(cs), "region %s split", id)
			eth := w.Region(id).Ethnic
			for _, c := range cs {
				require.Equal(t, eth, w.EthnicAt(c[0], c[1]), "region %s crosses ethnics", id)
			}
			assert.Equal(t, eth, w.EthnicOfRegion(id).ID)
		}
		assertAdjacency(t, w)
	}
}

func TestRoughGrowthSettles(t *testing.T) {
	cfg := DefaultPopulateConfig()
	cfg.Seed = 8
	cfg.Roughness = 0.999
	cfg.RegionSize = RegionTiny
	w := populate(t, oceanWith(t, 24, patch{2, 2, 21, 21, world.TerrainPlains}), cfg)
	assert.Greater(t, w.RegionsCount(), 1)

	n := w.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			assert.Equal(t, w.Terrain(x, y).IsWalkable(), w.RegionAt(x, y) != 0, "region at %d,%d", x, y)
		}
	}
	for id, cs := range regionCells(w) {
		assert.True(t, connected(cs), "region %s split", id)
	}
}

func TestSmallerRegionSizeMakesMoreRegions(t *testing.T) {
	tiny := DefaultPopulateConfig()
	tiny.RegionSize = RegionTiny
	huge := DefaultPopulateConfig()
	huge.RegionSize = RegionHuge
	a := populate(t, continent(t), tiny)
	b := populate(t, continent(t), huge)
	assert.Greater(t, a.RegionsCount(), b.RegionsCount())
}

func TestPopulateIsDeterministic(t *testing.T) {
	cfg := DefaultPopulateConfig()
	cfg.Seed = 77
	a := populate(t, continent(t), cfg)
	b := populate(t, continent(t), cfg)
	assert.Equal(t, a.Layers(), b.Layers())
	for id, r := range a.Registry().Regions {
		assert.Equal(t, r.Name, b.Region(id).Name)
	}
}

func TestSmoothingAbsorbsEnclaves(t *testing.T) {
	// A lone desert cell inside plains is its own landmass, but all
	// eight neighbours belong to the plains ethnic.
	g := oceanWith(t, 16, patch{2, 2, 12, 12, world.TerrainPlains})
	g.Set(7, 7, world.TerrainDesert)
	cfg := DefaultPopulateConfig()
	cfg.MaxEthnics = 2
	w := populate(t, g, cfg)
	assert.Equal(t, EthnicID(1), w.EthnicAt(7, 7))
	assert.Equal(t, 1, w.EthnicsCount())
}

func assertAdjacency(t *testing.T, w *World) {
	t.Helper()
	for id, r := range w.Registry().Regions {
		assert.IsIncreasing(t, r.Neighbors, "region %s neighbours unsorted", id)
		for _, nb := range r.Neighbors {
			assert.NotEqual(t, id, nb, "self edge on %s", id)
			assert.Contains(t, w.RegionNeighbors(nb), id, "asymmetric %s-%s", id, nb)
		}
	}
}

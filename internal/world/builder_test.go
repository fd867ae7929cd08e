package world

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
)

func changedCells(a, b *Grid) int {
	n := 0
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			n++
		}
	}
	return n
}

func requireFinished(t *testing.T, g *Grid, size int) {
	t.Helper()
	require.Equal(t, size, g.Size())
	require.Len(t, g.Cells(), size*size)
	for i, c := range g.Cells() {
		require.Truef(t, c.Finished(), "cell %d holds %v", i, c)
	}
}

// testChain is a scaled-down version of the standard chain that is certain
// to find plains for every river and forest origin.
func testChain(b *Builder) {
	b.Fill(TerrainSwamp).
		Flood(FloodParams{Cycles: 3, FloodsPerCycle: 4, FloodSize: 300, OverlayPrevious: true, OriginVariation: 0.3}).
		DeteriorateWetlands(0.1, true, 1, 0).
		Settle(SettleParams{FluidStrength: 0.05, LandStrength: 0.2, DryBuffer: 3, SinkBuffer: 3, Cycles: 3}).
		Rivers(RiverParams{Amount: 4, Width: 2, Minors: true, Straightness: 0.5, Depth: 0.5}).
		Cleanup(false, 0).
		BuildShallows(0.05, 0).
		ExpandShallows(1, 0).
		Forests(ForestParams{Size: 20, Amount: 5, Density: 0.5}).
		Desertify(DesertParams{Cycles: 1, Originate: true, Direction: 0.1}).
		Desertify(DesertParams{Cycles: 3, Direction: 0.1, Force: 0.99, Variance: 0.99}).
		Cleanup(true, 0).
		Border(1)
}

func TestNewBuilderValidates(t *testing.T) {
	_, err := NewBuilder(MinSize-1, 1)
	require.ErrorIs(t, err, errx.ErrConfiguration)
	_, err = NewBuilder(MaxSize+1, 1)
	require.ErrorIs(t, err, errx.ErrConfiguration)
	_, err = NewBuilder(64, entropy.SeedHigh+1)
	require.ErrorIs(t, err, errx.ErrRange)

	b, err := NewBuilder(64, 42)
	require.NoError(t, err)
	g, err := b.Grid()
	require.NoError(t, err)
	for _, c := range g.Cells() {
		require.Equal(t, TerrainOcean, c)
	}
}

func TestSingleFloodRaisesExactlyItsSize(t *testing.T) {
	g, err := Export(64, 42, func(b *Builder) {
		b.Flood(FloodParams{Cycles: 1, FloodsPerCycle: 1, FloodSize: 10})
	})
	require.NoError(t, err)

	ocean, err := NewGrid(64)
	require.NoError(t, err)
	assert.Equal(t, 10, changedCells(ocean, g))
	assert.Equal(t, 10, Counts(g)[TerrainSwamp])
}

func TestFloodOverlapRaisesTiers(t *testing.T) {
	g, err := Export(32, 9, func(b *Builder) {
		b.Fill(TerrainPlains).Flood(FloodParams{Cycles: 1, FloodsPerCycle: 1, FloodSize: 50, OverlayPrevious: true})
	})
	require.NoError(t, err)
	assert.Equal(t, 50, Counts(g)[TerrainMountains])

	// Each cycle lifts exactly FloodSize cells by one tier and nothing
	// climbs past mountains, so the total lift is fixed.
	g, err = Export(32, 9, func(b *Builder) {
		b.Fill(TerrainWetlands).Flood(FloodParams{Cycles: 3, FloodsPerCycle: 1, FloodSize: 100, OverlayPrevious: true})
	})
	require.NoError(t, err)
	lift := 0
	for _, c := range g.Cells() {
		require.GreaterOrEqual(t, c, TerrainWetlands)
		require.LessOrEqual(t, c, TerrainMountains)
		lift += int(c - TerrainWetlands)
	}
	assert.Equal(t, 300, lift)

	g, err = Export(32, 9, func(b *Builder) {
		b.Fill(TerrainPlains).Flood(FloodParams{Cycles: 1, FloodsPerCycle: 1, FloodSize: 5})
	})
	require.NoError(t, err)
	assert.Equal(t, 5, Counts(g)[TerrainSwamp])
	assert.Zero(t, Counts(g)[TerrainPlains])
}

func TestChainIsDeterministic(t *testing.T) {
	a, err := Export(64, 1234, testChain)
	require.NoError(t, err)
	b, err := Export(64, 1234, testChain)
	require.NoError(t, err)
	require.True(t, bytes.Equal(a.Bytes(), b.Bytes()))

	c, err := Export(64, 4321, testChain)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a.Bytes(), c.Bytes()))
}

func TestEveryStageLeavesValidGrid(t *testing.T) {
	b, err := NewBuilder(64, 77)
	require.NoError(t, err)

	stages := []func(){
		func() { b.Fill(TerrainSwamp) },
		func() {
			b.Flood(FloodParams{Cycles: 3, FloodsPerCycle: 4, FloodSize: 300, OverlayPrevious: true, OriginVariation: 0.3})
		},
		func() { b.DeteriorateWetlands(0.5, false, 2, 1) },
		func() {
			b.Settle(SettleParams{FluidStrength: 0.3, LandStrength: 0.3, DryBuffer: 2, SinkBuffer: 2, Cycles: 2})
		},
		func() { b.Rivers(RiverParams{Amount: 3, Width: 1, Straightness: 0.2, Depth: 0.8}) },
		func() { b.Cleanup(false, 2) },
		func() { b.BuildShallows(0.5, 0) },
		func() { b.ExpandShallows(0.5, 0) },
		func() { b.Forests(ForestParams{Size: 10, Amount: 3, Density: 1, FastGen: true}) },
		func() { b.Desertify(DesertParams{Cycles: 2, Originate: true, Direction: 0.75, Force: 0.5, Variance: 0.5}) },
		func() { b.NoiseFill(DefaultNoiseParams()) },
		func() { b.Border(3) },
	}
	for i, run := range stages {
		run()
		require.NoErrorf(t, b.Err(), "stage %d", i)
		g, err := b.Grid()
		require.NoError(t, err)
		requireFinished(t, g, 64)
	}
}

func TestInvalidParametersMutateNothing(t *testing.T) {
	cases := map[string]func(*Builder){
		"flood variation":   func(b *Builder) { b.Flood(FloodParams{Cycles: 1, FloodsPerCycle: 1, FloodSize: 5, OriginVariation: 1.5}) },
		"flood area":        func(b *Builder) { b.Flood(FloodParams{Cycles: 1, FloodsPerCycle: 4, FloodSize: 1000}) },
		"flood buffer":      func(b *Builder) { b.Flood(FloodParams{Cycles: 1, FloodsPerCycle: 1, FloodSize: 1, SpreadBuffer: -1}) },
		"settle strength":   func(b *Builder) { b.Settle(SettleParams{FluidStrength: -0.1, Cycles: 1}) },
		"deteriorate power": func(b *Builder) { b.DeteriorateWetlands(2, true, 1, 0) },
		"river depth":       func(b *Builder) { b.Rivers(RiverParams{Amount: 1, Depth: 1.1}) },
		"river pref":        func(b *Builder) { b.Rivers(RiverParams{Amount: 1, NaturalPref: -1}) },
		"forest density":    func(b *Builder) { b.Forests(ForestParams{Size: 1, Amount: 1, Density: 3}) },
		"shallows":          func(b *Builder) { b.BuildShallows(1.5, 0) },
		"expand":            func(b *Builder) { b.ExpandShallows(-1, 0) },
		"desert direction":  func(b *Builder) { b.Desertify(DesertParams{Cycles: 1, Direction: 1}) },
		"desert variance":   func(b *Builder) { b.Desertify(DesertParams{Cycles: 1, Variance: 2}) },
		"border":            func(b *Builder) { b.Border(33) },
		"fill":              func(b *Builder) { b.Fill(Terrain(200)) },
		"noise":             func(b *Builder) { b.NoiseFill(NoiseParams{Octaves: 0, Frequency: 1}) },
	}
	for name, stage := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := NewBuilder(64, 5)
			require.NoError(t, err)
			b.Flood(FloodParams{Cycles: 2, FloodsPerCycle: 2, FloodSize: 200})
			require.NoError(t, b.Err())
			before := b.grid.Clone()

			stage(b)
			require.ErrorIs(t, b.Err(), errx.ErrConfiguration)
			assert.Equal(t, before.Bytes(), b.grid.Bytes())
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	b, err := NewBuilder(32, 3)
	require.NoError(t, err)
	b.Border(-1).Fill(TerrainPlains)

	_, err = b.Grid()
	require.ErrorIs(t, err, errx.ErrConfiguration)
	assert.Contains(t, err.Error(), "border")
	assert.Equal(t, TerrainOcean, b.grid.At(5, 5))
}

func TestSearchesAreCapped(t *testing.T) {
	_, err := Export(16, 8, func(b *Builder) {
		b.Rivers(RiverParams{Amount: 1, Width: 1, NaturalPref: 1})
	})
	require.ErrorIs(t, err, errx.ErrExhausted)

	_, err = Export(16, 8, func(b *Builder) {
		b.Forests(ForestParams{Size: 5, Amount: 1, Density: 0.5})
	})
	require.ErrorIs(t, err, errx.ErrExhausted)

	// One lonely plains cell cannot hold a three-tree forest.
	_, err = Export(16, 8, func(b *Builder) {
		b.stage("seed plains", func() error {
			b.grid.Set(8, 8, TerrainPlains)
			return nil
		})
		b.Forests(ForestParams{Size: 3, Amount: 1, Density: 1})
	})
	require.ErrorIs(t, err, errx.ErrExhausted)
}

func TestRiversDrainIntoSwamp(t *testing.T) {
	g, err := Export(32, 11, func(b *Builder) {
		b.Fill(TerrainPlains).Rivers(RiverParams{Amount: 4, Width: 1, Straightness: 1, Depth: 1})
	})
	require.NoError(t, err)
	counts := Counts(g)
	assert.Zero(t, counts[TerrainRiver])
	assert.Positive(t, counts[TerrainSwamp])
}

func TestBorderFramesEdges(t *testing.T) {
	g, err := Export(32, 1, func(b *Builder) { b.Fill(TerrainPlains).Border(2) })
	require.NoError(t, err)
	assert.Equal(t, 32*32-28*28, Counts(g)[TerrainCloud])
	assert.Equal(t, TerrainCloud, g.At(1, 16))
	assert.Equal(t, TerrainCloud, g.At(16, 30))
	assert.Equal(t, TerrainPlains, g.At(2, 2))
}

func TestWalkerNeverReverses(t *testing.T) {
	rng := entropy.MustSource(99)
	w := walker{x: 10, y: 10, dir: dirNone, lo: 0, hi: 20}
	prev := dirNone
	for i := 0; i < 5000; i++ {
		w.step(rng)
		require.GreaterOrEqual(t, w.x, 0)
		require.LessOrEqual(t, w.x, 20)
		require.GreaterOrEqual(t, w.y, 0)
		require.LessOrEqual(t, w.y, 20)
		if prev != dirNone && w.dir != prev {
			require.NotEqual(t, prev^1, w.dir)
		}
		prev = w.dir
	}
}

func TestDiagonal(t *testing.T) {
	cases := []struct {
		dx, dy int
		lower  bool
		wx, wy int
	}{
		{0, 0, true, 0, 0},
		{0, 1, true, -1, 1},
		{0, 1, false, 1, 1},
		{1, 0, true, 1, -1},
		{-1, 0, false, -1, 1},
		{1, 1, true, 0, 1},
		{1, -1, false, 1, 0},
	}
	for _, tc := range cases {
		x, y := diagonal(tc.dx, tc.dy, tc.lower)
		assert.Equal(t, [2]int{tc.wx, tc.wy}, [2]int{x, y}, "diagonal(%d,%d,%v)", tc.dx, tc.dy, tc.lower)
	}
}

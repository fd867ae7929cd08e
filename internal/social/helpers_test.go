package social

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/legion-shores/internal/world"
)

// patch is an inclusive rectangle of one terrain.
type patch struct {
	x0, y0, x1, y1 int
	t              world.Terrain
}

func oceanWith(t *testing.T, n int, patches ...patch) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(n)
	require.NoError(t, err)
	for _, p := range patches {
		for y := p.y0; y <= p.y1; y++ {
			for x := p.x0; x <= p.x1; x++ {
				g.Set(x, y, p.t)
			}
		}
	}
	return g
}

func populate(t *testing.T, g *world.Grid, cfg PopulateConfig) *World {
	t.Helper()
	w, err := Populate(g, cfg)
	require.NoError(t, err)
	return w
}

// continent is a 64×64 fixture: one large plains mass with a desert
// strip, a mountain ridge, and a small offshore island.
func continent(t *testing.T) *world.Grid {
	return oceanWith(t, 64,
		patch{3, 3, 50, 58, world.TerrainPlains},
		patch{20, 10, 22, 40, world.TerrainMountains},
		patch{38, 20, 50, 34, world.TerrainDesert},
		patch{55, 55, 60, 60, world.TerrainForest},
	)
}

func regionCells(w *World) map[RegionID][][2]int {
	out := make(map[RegionID][][2]int)
	n := w.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if id := w.RegionAt(x, y); id != 0 {
				out[id] = append(out[id], [2]int{x, y})
			}
		}
	}
	return out
}

// connected reports whether cells form one 8-connected patch.
func connected(cells [][2]int) bool {
	if len(cells) == 0 {
		return true
	}
	set := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	seen := map[[2]int]bool{cells[0]: true}
	queue := [][2]int{cells[0]}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nb := [2]int{c[0] + dx, c[1] + dy}
				if set[nb] && !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return len(seen) == len(cells)
}

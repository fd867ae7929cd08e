package world

import (
	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
)

// markOffset lifts a visited cell out of the terrain value range for the
// rest of a flood cycle. It must stay above every terrain value.
const markOffset = 20

// Walk directions. Opposite directions differ only in the lowest bit.
const (
	dirNone  = -1
	dirWest  = 0
	dirEast  = 1
	dirNorth = 2
	dirSouth = 3
)

// walker is a biased random walk confined to [lo, hi] on both axes that
// never immediately reverses. Blocked moves keep the walker in place.
type walker struct {
	x, y   int
	dir    int
	lo, hi int
}

func (w *walker) step(rng *entropy.Source) {
	r := rng.Fraction()
	var want int
	switch {
	case r < 0.25:
		want = dirWest
	case r < 0.5:
		want = dirEast
	case r < 0.75:
		want = dirNorth
	default:
		want = dirSouth
	}
	if w.dir != dirNone && want == w.dir^1 {
		return
	}
	switch want {
	case dirWest:
		if w.x <= w.lo {
			return
		}
		w.x--
	case dirEast:
		if w.x >= w.hi {
			return
		}
		w.x++
	case dirNorth:
		if w.y <= w.lo {
			return
		}
		w.y--
	case dirSouth:
		if w.y >= w.hi {
			return
		}
		w.y++
	}
	w.dir = want
}

// FloodParams configures Flood.
type FloodParams struct {
	Cycles         int `mapstructure:"cycles"`
	FloodsPerCycle int `mapstructure:"floods_per_cycle"`
	FloodSize      int `mapstructure:"flood_size"`
	// OriginBuffer is added on top of SpreadBuffer for origins only.
	OriginBuffer    int     `mapstructure:"origin_buffer"`
	SpreadBuffer    int     `mapstructure:"spread_buffer"`
	SizeDecay       int     `mapstructure:"size_decay"`
	DecayPerFlood   bool    `mapstructure:"decay_per_flood"`
	DecayPerCycle   bool    `mapstructure:"decay_per_cycle"`
	OverlayPrevious bool    `mapstructure:"overlay_previous"`
	OriginVariation float64 `mapstructure:"origin_variation"`
}

func (p FloodParams) validate(size int) error {
	if p.Cycles < 0 || p.FloodsPerCycle < 0 || p.FloodSize < 0 {
		return errx.Configuration("flood counts must be non-negative",
			"cycles", p.Cycles, "floods", p.FloodsPerCycle, "size", p.FloodSize)
	}
	if err := checkBuffers(p.OriginBuffer, p.SpreadBuffer); err != nil {
		return err
	}
	span := size - 2*(1+p.SpreadBuffer)
	if span < 0 {
		span = 0
	}
	if p.FloodsPerCycle*p.FloodSize > span*span {
		return errx.Configuration("flood area exceeds target region",
			"floods", p.FloodsPerCycle, "size", p.FloodSize, "span", span)
	}
	if p.SpreadBuffer+p.OriginBuffer > size-1-p.SpreadBuffer-p.OriginBuffer {
		return errx.Configuration("flood buffers leave no origin area",
			"origin_buffer", p.OriginBuffer, "spread_buffer", p.SpreadBuffer)
	}
	return checkUnit("origin_variation", p.OriginVariation)
}

// Flood raises terrain with overlapping random walks. Walks in one cycle
// never stack; walks from different cycles do, so the overlap count becomes
// the elevation tier, capped at mountains.
func (b *Builder) Flood(p FloodParams) *Builder {
	return b.stage("flood", func() error {
		n := b.grid.size
		if err := p.validate(n); err != nil {
			return err
		}
		if !p.OverlayPrevious {
			b.grid.Fill(TerrainOcean)
		}
		lo, hi := p.SpreadBuffer, n-1-p.SpreadBuffer
		olo, ohi := lo+p.OriginBuffer, hi-p.OriginBuffer
		minGap := float64(n/2-p.OriginBuffer-p.SpreadBuffer) * p.OriginVariation
		originCap := n * n
		walkCap := n * n * n

		size := p.FloodSize
		for c := 0; c < p.Cycles; c++ {
			lastX, lastY := n/2, n/2
			for f := 0; f < p.FloodsPerCycle; f++ {
				var x, y int
				for attempts := 0; ; attempts++ {
					if attempts >= originCap {
						return errx.Exhausted("flood origin search", "attempts", attempts, "cap", originCap)
					}
					x, y = b.rng.Int(olo, ohi), b.rng.Int(olo, ohi)
					if float64(abs(x-lastX)) >= minGap && float64(abs(y-lastY)) >= minGap {
						break
					}
				}
				lastX, lastY = x, y

				w := walker{x: x, y: y, dir: dirNone, lo: lo, hi: hi}
				for raised, steps := 0, 0; raised < size; steps++ {
					if steps >= walkCap {
						return errx.Exhausted("flood walk", "raised", raised, "size", size, "cap", walkCap)
					}
					if b.grid.At(w.x, w.y) < TerrainMountains {
						b.grid.Set(w.x, w.y, b.grid.At(w.x, w.y)+markOffset+1)
						raised++
					}
					w.step(b.rng)
				}
				if p.DecayPerFlood {
					size -= p.SizeDecay
				}
			}
			for y := lo; y <= hi; y++ {
				for x := lo; x <= hi; x++ {
					if t := b.grid.At(x, y); t > markOffset {
						b.grid.Set(x, y, t-markOffset)
					}
				}
			}
			if p.DecayPerCycle {
				size -= p.SizeDecay
			} else {
				size = p.FloodSize
			}
		}
		return nil
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

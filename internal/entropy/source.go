// Package entropy provides the deterministic random source every generation
// stage draws from, plus a crypto-backed helper for picking fresh seeds.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"hash/fnv"
	mrand "math/rand/v2"

	"github.com/talgya/legion-shores/internal/errx"
)

// Seed bounds accepted by NewSource.
const (
	SeedLow  = 0
	SeedHigh = 999_999_999
)

// Source is a seeded pseudo-random stream. The same seed and the same call
// sequence always reproduce the same outputs.
type Source struct {
	seed int64
	r    *mrand.Rand
}

// NewSource creates a source for the given seed.
func NewSource(seed int64) (*Source, error) {
	if seed < SeedLow || seed > SeedHigh {
		return nil, errx.Range("seed out of range", "seed", seed, "low", SeedLow, "high", SeedHigh)
	}
	return &Source{
		seed: seed,
		r:    mrand.New(mrand.NewPCG(uint64(seed), 0)),
	}, nil
}

// MustSource is NewSource for seeds already known to be valid.
func MustSource(seed int64) *Source {
	s, err := NewSource(seed)
	if err != nil {
		panic(err)
	}
	return s
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 { return s.seed }

// Int returns an integer in [low, high], inclusive of both bounds.
func (s *Source) Int(low, high int) int {
	if high < low {
		low, high = high, low
	}
	return low + s.r.IntN(high-low+1)
}

// Fraction returns a value in [0, 1).
func (s *Source) Fraction() float64 { return s.r.Float64() }

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool { return s.Fraction() < p }

// Pick returns a random index into a collection of length n (n > 0).
func (s *Source) Pick(n int) int { return s.Int(0, n-1) }

// RandomSeed draws a fresh seed in [SeedLow, SeedHigh] from crypto/rand.
// Used when the caller asks for "any seed"; generation itself never calls it.
func RandomSeed() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	n := binary.LittleEndian.Uint64(buf[:]) % uint64(SeedHigh-SeedLow+1)
	return int64(n) + SeedLow, nil
}

// Derive returns a seed in range for an independent sub-stream of seed,
// keyed by label. The same pair always yields the same seed.
func Derive(seed int64, label string) int64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	h.Write(buf[:])
	h.Write([]byte{0})
	h.Write([]byte(label))
	return int64(h.Sum64()%uint64(SeedHigh-SeedLow+1)) + SeedLow
}

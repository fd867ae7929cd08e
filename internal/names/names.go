// Package names generates display names for political entities. A generator
// remembers every name it handed out so names stay unique within one world
// build; Reset clears that memory between builds. Generators hold no global
// state, so independent builds can run side by side.
package names

import (
	"strconv"
	"strings"

	"github.com/talgya/legion-shores/internal/entropy"
)

// Kind is the sort of thing being named.
type Kind uint8

const (
	Ethnic Kind = iota // short, ends in -stan/-land/-os/-ia
	Realm              // medium, starts with a vowel
	Region             // long, starts with a consonant
	Settlement         // compound word, e.g. Ironhaven
)

func (k Kind) String() string {
	switch k {
	case Ethnic:
		return "ethnic"
	case Realm:
		return "realm"
	case Region:
		return "region"
	case Settlement:
		return "settlement"
	default:
		return "unknown"
	}
}

// Generator produces a unique name per call, drawing randomness from rng.
type Generator interface {
	Name(kind Kind, rng *entropy.Source) string
	Reset()
}

// maxRetries bounds redraws on a collision before falling back to a
// numbered variant.
const maxRetries = 32

// Syllables builds names from weighted syllable tables.
type Syllables struct {
	used map[string]struct{}
}

// NewSyllables returns an empty syllable generator.
func NewSyllables() *Syllables {
	return &Syllables{used: make(map[string]struct{})}
}

// Name returns a name not handed out since the last Reset.
func (s *Syllables) Name(kind Kind, rng *entropy.Source) string {
	var name string
	for i := 0; i < maxRetries; i++ {
		name = compose(kind, rng)
		if _, taken := s.used[name]; !taken {
			s.used[name] = struct{}{}
			return name
		}
	}
	for n := 2; ; n++ {
		candidate := name + " " + strconv.Itoa(n)
		if _, taken := s.used[candidate]; !taken {
			s.used[candidate] = struct{}{}
			return candidate
		}
	}
}

// Reset forgets every name handed out so far.
func (s *Syllables) Reset() { clear(s.used) }

// Used returns how many names are currently reserved.
func (s *Syllables) Used() int { return len(s.used) }

func compose(kind Kind, rng *entropy.Source) string {
	if kind == Settlement {
		return pick(rng, settlementPrefixes) + pick(rng, settlementSuffixes)
	}

	minLen, maxLen := 1, 1
	switch kind {
	case Realm:
		minLen, maxLen = 1, 2
	case Region:
		minLen, maxLen = 2, 3
	}

	var b strings.Builder
	if kind == Realm || (kind == Ethnic && rng.Chance(0.25)) {
		b.WriteString(vowel(rng, 0.05))
	}
	b.WriteString(consonant(rng, 0.2))
	n := rng.Int(minLen, maxLen)
	for i := 1; i <= n; i++ {
		if kind == Realm && rng.Chance(0.025) {
			b.WriteByte('-')
		}
		b.WriteString(vowel(rng, 0.1))
		if i == n {
			b.WriteString(consonant(rng, 0))
		} else {
			b.WriteString(consonant(rng, 0.2))
		}
	}
	if kind == Ethnic {
		b.WriteString(pick(rng, ethnicSuffixes))
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func vowel(rng *entropy.Source, pairWeight float64) string {
	if rng.Chance(pairWeight) {
		return pick(rng, vowelPairs)
	}
	return pick(rng, vowels)
}

func consonant(rng *entropy.Source, clusterWeight float64) string {
	if rng.Chance(clusterWeight) {
		if rng.Chance(0.5) {
			return pick(rng, clusters)
		}
		return pick(rng, consonants) + pick(rng, clusters)
	}
	return pick(rng, consonants)
}

func pick(rng *entropy.Source, options []string) string {
	return options[rng.Pick(len(options))]
}

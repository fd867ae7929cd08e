// Registry and layers: the id-keyed storage behind a World.
package social

import (
	"slices"

	"github.com/talgya/legion-shores/internal/errx"
)

// Layers holds four parallel N×N id grids, row-major.
type Layers struct {
	Size     int        `json:"size"`
	Ethnics  []EthnicID `json:"ethnics"`
	Realms   []RealmID  `json:"realms"`
	Regions  []RegionID `json:"regions"`
	Entities []EntityID `json:"entities"`
}

// NewLayers returns all-null layers for an n×n grid.
func NewLayers(n int) *Layers {
	return &Layers{
		Size:     n,
		Ethnics:  make([]EthnicID, n*n),
		Realms:   make([]RealmID, n*n),
		Regions:  make([]RegionID, n*n),
		Entities: make([]EntityID, n*n),
	}
}

func (l *Layers) validate() error {
	cells := l.Size * l.Size
	if l.Size <= 0 || len(l.Ethnics) != cells || len(l.Realms) != cells ||
		len(l.Regions) != cells || len(l.Entities) != cells {
		return errx.Structural("layer dimensions disagree", "size", l.Size)
	}
	return nil
}

// Clone returns a deep copy.
func (l *Layers) Clone() *Layers {
	return &Layers{
		Size:     l.Size,
		Ethnics:  slices.Clone(l.Ethnics),
		Realms:   slices.Clone(l.Realms),
		Regions:  slices.Clone(l.Regions),
		Entities: slices.Clone(l.Entities),
	}
}

// Registry owns every political entity, one map per kind.
type Registry struct {
	Ethnics  map[EthnicID]*Ethnic `json:"ethnics"`
	Realms   map[RealmID]*Realm   `json:"realms"`
	Regions  map[RegionID]*Region `json:"regions"`
	Entities map[EntityID]*Entity `json:"entities"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Ethnics:  make(map[EthnicID]*Ethnic),
		Realms:   make(map[RealmID]*Realm),
		Regions:  make(map[RegionID]*Region),
		Entities: make(map[EntityID]*Entity),
	}
}

// Lookup resolves a tagged reference.
func (r *Registry) Lookup(ref Ref) (Political, bool) {
	switch ref.Kind {
	case KindEthnic:
		return lookup(r.Ethnics, EthnicID(ref.ID))
	case KindRealm:
		return lookup(r.Realms, RealmID(ref.ID))
	case KindRegion:
		return lookup(r.Regions, RegionID(ref.ID))
	case KindEntity:
		return lookup(r.Entities, EntityID(ref.ID))
	}
	return nil, false
}

func lookup[K comparable, V Political](m map[K]V, k K) (Political, bool) {
	v, ok := m[k]
	if !ok {
		return nil, false
	}
	return v, true
}

// Clone returns a deep copy.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for id, e := range r.Ethnics {
		cp := *e
		cp.Regions = slices.Clone(e.Regions)
		cp.Realms = slices.Clone(e.Realms)
		c.Ethnics[id] = &cp
	}
	for id, e := range r.Realms {
		cp := *e
		cp.Regions = slices.Clone(e.Regions)
		cp.Vassals = slices.Clone(e.Vassals)
		c.Realms[id] = &cp
	}
	for id, e := range r.Regions {
		cp := *e
		cp.Neighbors = slices.Clone(e.Neighbors)
		c.Regions[id] = &cp
	}
	for id, e := range r.Entities {
		cp := *e
		cp.Decks = cloneDecks(e.Decks)
		c.Entities[id] = &cp
	}
	return c
}

func cloneDecks(d Decks) Decks {
	var c Decks
	if d.Civic != nil {
		c.Civic = &PileDeck[CivicCard]{Cards: slices.Clone(d.Civic.Cards)}
	}
	if d.Army != nil {
		c.Army = &PileDeck[TroopCard]{Cards: slices.Clone(d.Army.Cards)}
	}
	if d.Naval != nil {
		c.Naval = &PileDeck[ShipCard]{Cards: slices.Clone(d.Naval.Cards)}
	}
	if d.Income != nil {
		inc := *d.Income
		c.Income = &inc
	}
	return c
}

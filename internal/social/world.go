// World: terrain plus the political layers and registry built on it.
package social

import (
	"log/slog"
	"slices"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
	"github.com/talgya/legion-shores/internal/names"
	"github.com/talgya/legion-shores/internal/world"
)

// World owns a finished terrain grid and everything placed on it.
type World struct {
	grid    *world.Grid
	layers  *Layers
	reg     *Registry
	seed    int64
	ethnics []EthnicID // first-seen scan order

	owner      map[RegionID]RealmID
	nextRealm  RealmID
	nextEntity EntityID

	entityNames names.Generator
	entityRNG   *entropy.Source
}

// NewWorld assembles a World from its parts and rebuilds every derived
// collection (ethnic bounds and membership, realm regions, region
// adjacency) from the layers. Any non-null id without a registry entry is
// a StructuralError. The layers and registry are owned by the World
// afterwards.
func NewWorld(grid *world.Grid, layers *Layers, reg *Registry, seed int64) (*World, error) {
	if grid == nil || layers == nil || reg == nil {
		return nil, errx.Configuration("world needs a grid, layers and a registry")
	}
	if err := layers.validate(); err != nil {
		return nil, err
	}
	if layers.Size != grid.Size() {
		return nil, errx.Structural("layers and grid differ in size",
			"grid", grid.Size(), "layers", layers.Size)
	}
	if _, err := entropy.NewSource(seed); err != nil {
		return nil, err
	}

	w := &World{
		grid:        grid,
		layers:      layers,
		reg:         reg,
		seed:        seed,
		owner:       make(map[RegionID]RealmID),
		nextRealm:   1,
		nextEntity:  1,
		entityNames: names.NewSyllables(),
		entityRNG:   entropy.MustSource(entropy.Derive(seed, "entities")),
	}

	for _, e := range reg.Ethnics {
		e.Bounds = emptyBounds()
		e.Regions = e.Regions[:0]
		e.Realms = e.Realms[:0]
	}
	for id, r := range reg.Realms {
		r.Regions = r.Regions[:0]
		w.nextRealm = max(w.nextRealm, id+1)
	}
	for _, r := range reg.Regions {
		r.Neighbors = r.Neighbors[:0]
	}
	for id := range reg.Entities {
		w.nextEntity = max(w.nextEntity, id+1)
	}

	seenEthnic := make(map[EthnicID]bool)
	seenRegion := make(map[RegionID]bool)
	n := layers.Size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*n + x
			eid, rid, realmID := layers.Ethnics[i], layers.Regions[i], layers.Realms[i]
			if ent := layers.Entities[i]; ent != 0 && reg.Entities[ent] == nil {
				return nil, errx.Structural("entity missing from registry", "id", ent.Code(), "x", x, "y", y)
			}
			if realmID != 0 && reg.Realms[realmID] == nil {
				return nil, errx.Structural("realm missing from registry", "id", realmID.Code(), "x", x, "y", y)
			}
			if rid != 0 && reg.Regions[rid] == nil {
				return nil, errx.Structural("region missing from registry", "id", rid.Code(), "x", x, "y", y)
			}
			if eid == 0 {
				continue
			}
			e := reg.Ethnics[eid]
			if e == nil {
				return nil, errx.Structural("ethnic missing from registry", "id", eid.Code(), "x", x, "y", y)
			}
			if rid == 0 {
				return nil, errx.Structural("ethnic cell without region", "ethnic", eid.Code(), "x", x, "y", y)
			}
			if !seenEthnic[eid] {
				seenEthnic[eid] = true
				w.ethnics = append(w.ethnics, eid)
			}
			e.Bounds.grow(x, y)

			region := reg.Regions[rid]
			if !seenRegion[rid] {
				seenRegion[rid] = true
				region.Ethnic = eid
				e.Regions = append(e.Regions, rid)
			}
			if realmID == 0 {
				continue
			}
			if _, owned := w.owner[rid]; !owned {
				w.owner[rid] = realmID
				realm := reg.Realms[realmID]
				realm.Regions = append(realm.Regions, rid)
				if !slices.Contains(e.Realms, realmID) {
					e.Realms = append(e.Realms, realmID)
				}
			}
		}
	}

	w.discoverAdjacency()
	slog.Debug("world assembled", "size", n, "ethnics", len(w.ethnics),
		"regions", len(reg.Regions), "realms", len(reg.Realms))
	return w, nil
}

// discoverAdjacency links regions whose cells touch, orthogonally or
// diagonally, over interior cells.
func (w *World) discoverAdjacency() {
	n := w.layers.Size
	links := make(map[RegionID]map[RegionID]struct{})
	link := func(a, b RegionID) {
		if links[a] == nil {
			links[a] = make(map[RegionID]struct{})
		}
		links[a][b] = struct{}{}
	}
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			a := w.layers.Regions[y*n+x]
			if a == 0 {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					b := w.layers.Regions[(y+dy)*n+x+dx]
					if b == 0 || b == a {
						continue
					}
					link(a, b)
					link(b, a)
				}
			}
		}
	}
	for id, set := range links {
		r := w.reg.Regions[id]
		for other := range set {
			r.Neighbors = append(r.Neighbors, other)
		}
		slices.Sort(r.Neighbors)
	}
}

func (w *World) Size() int                      { return w.layers.Size }
func (w *World) Seed() int64                    { return w.seed }
func (w *World) Grid() *world.Grid              { return w.grid }
func (w *World) Layers() *Layers                { return w.layers }
func (w *World) Registry() *Registry            { return w.reg }
func (w *World) Terrain(x, y int) world.Terrain { return w.grid.At(x, y) }

func (w *World) inBounds(x, y int) bool { return w.grid.InBounds(x, y) }

// EthnicAt returns the ethnic id of a cell, zero off the grid.
func (w *World) EthnicAt(x, y int) EthnicID {
	if !w.inBounds(x, y) {
		return 0
	}
	return w.layers.Ethnics[y*w.layers.Size+x]
}

// RegionAt returns the region id of a cell, zero off the grid.
func (w *World) RegionAt(x, y int) RegionID {
	if !w.inBounds(x, y) {
		return 0
	}
	return w.layers.Regions[y*w.layers.Size+x]
}

// RealmAt returns the realm id of a cell, zero off the grid.
func (w *World) RealmAt(x, y int) RealmID {
	if !w.inBounds(x, y) {
		return 0
	}
	return w.layers.Realms[y*w.layers.Size+x]
}

// EntityAt returns the entity id of a cell, zero off the grid.
func (w *World) EntityAt(x, y int) EntityID {
	if !w.inBounds(x, y) {
		return 0
	}
	return w.layers.Entities[y*w.layers.Size+x]
}

func (w *World) Ethnic(id EthnicID) *Ethnic { return w.reg.Ethnics[id] }
func (w *World) Region(id RegionID) *Region { return w.reg.Regions[id] }
func (w *World) Realm(id RealmID) *Realm    { return w.reg.Realms[id] }
func (w *World) Entity(id EntityID) *Entity { return w.reg.Entities[id] }

// Ethnics returns the ethnics that own at least one cell, in first-seen
// scan order.
func (w *World) Ethnics() []*Ethnic {
	out := make([]*Ethnic, 0, len(w.ethnics))
	for _, id := range w.ethnics {
		out = append(out, w.reg.Ethnics[id])
	}
	return out
}

// Realms returns every registered realm ordered by id.
func (w *World) Realms() []*Realm {
	ids := make([]RealmID, 0, len(w.reg.Realms))
	for id := range w.reg.Realms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*Realm, len(ids))
	for i, id := range ids {
		out[i] = w.reg.Realms[id]
	}
	return out
}

// EthnicOfRegion returns the ethnic a region belongs to, or nil.
func (w *World) EthnicOfRegion(id RegionID) *Ethnic {
	r := w.reg.Regions[id]
	if r == nil {
		return nil
	}
	return w.reg.Ethnics[r.Ethnic]
}

// EthnicOfRealm returns the first ethnic, in scan order, listing the realm
// as a member, or nil.
func (w *World) EthnicOfRealm(id RealmID) *Ethnic {
	for _, eid := range w.ethnics {
		e := w.reg.Ethnics[eid]
		if slices.Contains(e.Realms, id) {
			return e
		}
	}
	return nil
}

// RegionNeighbors returns the sorted adjacency list of a region.
func (w *World) RegionNeighbors(id RegionID) []RegionID {
	r := w.reg.Regions[id]
	if r == nil {
		return nil
	}
	return r.Neighbors
}

// RealmNeighbors returns the realms owning a region adjacent to one of
// this realm's regions, sorted by id.
func (w *World) RealmNeighbors(id RealmID) []RealmID {
	realm := w.reg.Realms[id]
	if realm == nil {
		return nil
	}
	var out []RealmID
	for _, rid := range realm.Regions {
		for _, near := range w.reg.Regions[rid].Neighbors {
			other, ok := w.owner[near]
			if !ok || other == id || slices.Contains(out, other) {
				continue
			}
			out = append(out, other)
		}
	}
	slices.Sort(out)
	return out
}

// OwnerOf returns the realm holding a region, zero when unclaimed.
func (w *World) OwnerOf(id RegionID) RealmID { return w.owner[id] }

// EthnicsCount counts ethnics with cells, the Wilds included.
func (w *World) EthnicsCount() int  { return len(w.ethnics) }
func (w *World) EntitiesCount() int { return len(w.reg.Entities) }

// RegionsCount counts regions with cells, summed over ethnics.
func (w *World) RegionsCount() int {
	n := 0
	for _, id := range w.ethnics {
		n += len(w.reg.Ethnics[id].Regions)
	}
	return n
}

// RealmsCount counts realms holding at least one region. Realms that lost
// every region stay in the registry but are not counted.
func (w *World) RealmsCount() int { return w.countRealms(func(*Realm) bool { return true }) }

// PlayerCount counts realms of type Player holding at least one region.
func (w *World) PlayerCount() int {
	return w.countRealms(func(r *Realm) bool { return r.Type == RealmPlayer })
}

func (w *World) countRealms(keep func(*Realm) bool) int {
	n := 0
	for _, r := range w.reg.Realms {
		if len(r.Regions) > 0 && keep(r) {
			n++
		}
	}
	return n
}

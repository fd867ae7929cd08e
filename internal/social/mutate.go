// Mutators: realm assignment, vassalage, and entity placement.
package social

import (
	"slices"

	"github.com/talgya/legion-shores/internal/errx"
	"github.com/talgya/legion-shores/internal/names"
	"github.com/talgya/legion-shores/internal/world"
)

// AssignRegion hands a region to a realm. An unregistered realm gets the
// next realm id on its first assignment. The region leaves its previous
// owner, and the realm layer is repainted over the region's cells.
func (w *World) AssignRegion(realm *Realm, region RegionID) error {
	if realm == nil {
		return errx.Configuration("assign to nil realm")
	}
	reg := w.reg.Regions[region]
	if reg == nil {
		return errx.Configuration("unknown region", "region", region.Code())
	}
	if realm.ID == 0 || w.reg.Realms[realm.ID] != realm {
		if w.nextRealm > MaxRealmID {
			return errx.Structural("realm id space exhausted", "next", int(w.nextRealm))
		}
		realm.ID = w.nextRealm
		w.nextRealm++
		w.reg.Realms[realm.ID] = realm
	}

	prev, owned := w.owner[region]
	if owned && prev == realm.ID {
		return nil
	}
	ethnic := w.reg.Ethnics[reg.Ethnic]
	if owned {
		if old := w.reg.Realms[prev]; old != nil {
			old.Regions = remove(old.Regions, region)
			if ethnic != nil && !w.holdsIn(old, ethnic) {
				ethnic.Realms = remove(ethnic.Realms, prev)
			}
		}
	}

	w.owner[region] = realm.ID
	realm.Regions = append(realm.Regions, region)
	if ethnic != nil && !slices.Contains(ethnic.Realms, realm.ID) {
		ethnic.Realms = append(ethnic.Realms, realm.ID)
	}
	w.paintRealm(region, ethnic, realm.ID)
	return nil
}

// holdsIn reports whether realm owns any region of ethnic.
func (w *World) holdsIn(realm *Realm, ethnic *Ethnic) bool {
	for _, rid := range realm.Regions {
		if w.reg.Regions[rid].Ethnic == ethnic.ID {
			return true
		}
	}
	return false
}

func (w *World) paintRealm(region RegionID, ethnic *Ethnic, id RealmID) {
	n := w.layers.Size
	b := Bounds{MinX: 0, MinY: 0, MaxX: n - 1, MaxY: n - 1}
	if ethnic != nil && !ethnic.Bounds.Empty() {
		b = ethnic.Bounds
	}
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			if i := y*n + x; w.layers.Regions[i] == region {
				w.layers.Realms[i] = id
			}
		}
	}
}

// AddVassal places vassal under overlord, detaching it from any previous
// overlord. Self-vassalage and cycles are rejected.
func (w *World) AddVassal(overlord, vassal RealmID) error {
	lord, sub := w.reg.Realms[overlord], w.reg.Realms[vassal]
	if lord == nil || sub == nil {
		return errx.Configuration("vassalage between unknown realms",
			"overlord", overlord.Code(), "vassal", vassal.Code())
	}
	if overlord == vassal {
		return errx.Configuration("realm cannot be its own vassal", "realm", vassal.Code())
	}
	for up := lord.Overlord; up != 0; up = w.reg.Realms[up].Overlord {
		if up == vassal {
			return errx.Configuration("vassalage would form a cycle",
				"overlord", overlord.Code(), "vassal", vassal.Code())
		}
		if w.reg.Realms[up] == nil {
			break
		}
	}
	if sub.Overlord == overlord {
		return nil
	}
	if prev := w.reg.Realms[sub.Overlord]; prev != nil {
		prev.Vassals = remove(prev.Vassals, vassal)
	}
	sub.Overlord = overlord
	lord.Vassals = append(lord.Vassals, vassal)
	return nil
}

// RemoveVassal releases vassal from overlord.
func (w *World) RemoveVassal(overlord, vassal RealmID) error {
	lord := w.reg.Realms[overlord]
	if lord == nil || !slices.Contains(lord.Vassals, vassal) {
		return errx.Configuration("not a vassal", "overlord", overlord.Code(), "vassal", vassal.Code())
	}
	lord.Vassals = remove(lord.Vassals, vassal)
	if sub := w.reg.Realms[vassal]; sub != nil {
		sub.Overlord = 0
	}
	return nil
}

// PlaceEntity puts a new entity of kind k on a free walkable cell inside
// an ethnic. Ports need an aquatic neighbour and mines a mountain one.
func (w *World) PlaceEntity(k EntityKind, x, y int) (EntityID, error) {
	if !k.Valid() {
		return 0, errx.Configuration("unknown entity kind", "kind", int(k))
	}
	if !w.inBounds(x, y) {
		return 0, errx.Configuration("cell out of bounds", "x", x, "y", y)
	}
	if t := w.grid.At(x, y); !t.IsWalkable() {
		return 0, errx.Configuration("cell is not walkable", "x", x, "y", y, "terrain", t.String())
	}
	if w.EthnicAt(x, y) == 0 {
		return 0, errx.Configuration("cell is outside every ethnic", "x", x, "y", y)
	}
	if w.EntityAt(x, y) != 0 {
		return 0, errx.Configuration("cell already occupied", "x", x, "y", y)
	}
	switch k {
	case EntityPort:
		if !w.nearAquatic(x, y) {
			return 0, errx.Configuration("port needs water alongside", "x", x, "y", y)
		}
	case EntityMine:
		if !w.grid.HasNear(x, y, world.TerrainMountains, world.TerrainMountains, 1) {
			return 0, errx.Configuration("mine needs mountains alongside", "x", x, "y", y)
		}
	}
	if w.nextEntity > MaxEntityID {
		return 0, errx.Structural("entity id space exhausted", "next", int(w.nextEntity))
	}

	id := w.nextEntity
	w.nextEntity++
	w.reg.Entities[id] = &Entity{
		ID:    id,
		Name:  w.entityNames.Name(names.Settlement, w.entityRNG),
		Type:  k,
		X:     x,
		Y:     y,
		Decks: DecksFor(k),
	}
	w.layers.Entities[y*w.layers.Size+x] = id
	return id, nil
}

func (w *World) nearAquatic(x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && w.grid.InBounds(x+dx, y+dy) && w.grid.At(x+dx, y+dy).IsAquatic() {
				return true
			}
		}
	}
	return false
}

// Raze removes the entity standing on a cell.
func (w *World) Raze(x, y int) error {
	id := w.EntityAt(x, y)
	if id == 0 {
		return errx.Configuration("no entity to raze", "x", x, "y", y)
	}
	delete(w.reg.Entities, id)
	w.layers.Entities[y*w.layers.Size+x] = 0
	return nil
}

func remove[T comparable](s []T, v T) []T {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

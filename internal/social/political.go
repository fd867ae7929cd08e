// Political entities: ethnics, realms, regions, and placed entities.
package social

import "fmt"

// Kind tags which registry a Ref points into.
type Kind uint8

const (
	KindEthnic Kind = iota + 1
	KindRealm
	KindRegion
	KindEntity
)

func (k Kind) String() string {
	switch k {
	case KindEthnic:
		return "ethnic"
	case KindRealm:
		return "realm"
	case KindRegion:
		return "region"
	case KindEntity:
		return "entity"
	default:
		return "unknown"
	}
}

// Ref is a tagged key into the registry.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   uint32 `json:"id"`
}

func (r Ref) String() string {
	var code string
	switch r.Kind {
	case KindEthnic:
		code = EthnicID(r.ID).Code()
	case KindRealm:
		code = RealmID(r.ID).Code()
	case KindRegion:
		code = RegionID(r.ID).Code()
	default:
		code = EntityID(r.ID).Code()
	}
	return fmt.Sprintf("%d:%s", r.Kind, code)
}

// Political is implemented by every registry entry.
type Political interface {
	DisplayName() string
	Kind() Kind
}

// Bounds is an inclusive bounding box over occupied cells.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

func emptyBounds() Bounds { return Bounds{MinX: -1, MinY: -1, MaxX: -1, MaxY: -1} }

// Empty reports whether no cell has been added.
func (b Bounds) Empty() bool { return b.MaxX < 0 }

// Width and Height of the box; zero when empty.
func (b Bounds) Width() int {
	if b.Empty() {
		return 0
	}
	return b.MaxX - b.MinX + 1
}

func (b Bounds) Height() int {
	if b.Empty() {
		return 0
	}
	return b.MaxY - b.MinY + 1
}

// grow extends the box to cover (x, y).
func (b *Bounds) grow(x, y int) {
	if b.Empty() {
		*b = Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
		return
	}
	b.MinX = min(b.MinX, x)
	b.MinY = min(b.MinY, y)
	b.MaxX = max(b.MaxX, x)
	b.MaxY = max(b.MaxY, y)
}

// Ethnic is a cultural landmass. Regions and Realms are rebuilt from the
// layers whenever a World is constructed.
type Ethnic struct {
	ID      EthnicID   `json:"id"`
	Name    string     `json:"name"`
	Wild    bool       `json:"wild"`
	Bounds  Bounds     `json:"bounds"`
	Regions []RegionID `json:"regions"`
	Realms  []RealmID  `json:"realms"`
}

func (e *Ethnic) DisplayName() string { return e.Name }
func (e *Ethnic) Kind() Kind          { return KindEthnic }

// RealmType is a realm's standing in the feudal hierarchy.
type RealmType uint8

const (
	RealmNone   RealmType = iota // unranked
	RealmPlayer                  // crownland house
	RealmBaron                   // landed noble
	RealmLord                    // vassal lord
)

func (t RealmType) String() string {
	switch t {
	case RealmPlayer:
		return "Player"
	case RealmBaron:
		return "Baron"
	case RealmLord:
		return "Lord"
	default:
		return "None"
	}
}

// Realm is a political holding of one or more regions. Overlord and
// Vassals are kept mutually consistent by the World mutators.
type Realm struct {
	ID       RealmID    `json:"id"`
	Name     string     `json:"name"`
	Type     RealmType  `json:"type"`
	Regions  []RegionID `json:"regions"`
	Overlord RealmID    `json:"overlord,omitempty"`
	Vassals  []RealmID  `json:"vassals,omitempty"`
}

// NewRealm returns an unregistered realm; AssignRegion registers it.
func NewRealm(name string, t RealmType) *Realm {
	return &Realm{Name: name, Type: t}
}

func (r *Realm) DisplayName() string { return r.Name }
func (r *Realm) Kind() Kind          { return KindRealm }

// Region is a contiguous sub-area of one ethnic.
type Region struct {
	ID        RegionID   `json:"id"`
	Name      string     `json:"name"`
	Ethnic    EthnicID   `json:"ethnic"`
	Neighbors []RegionID `json:"neighbors"` // sorted, symmetric
}

func (r *Region) DisplayName() string { return r.Name }
func (r *Region) Kind() Kind          { return KindRegion }

// EntityKind is what stands on a cell.
type EntityKind uint8

const (
	EntityFarm EntityKind = iota + 1
	EntityField
	EntityMine
	EntityPort
	EntityRoad
	EntityVillage
	EntityVillageFort
	EntityCastle
	EntityCastleFort
)

// Valid reports whether k names a placeable kind.
func (k EntityKind) Valid() bool { return k >= EntityFarm && k <= EntityCastleFort }

func (k EntityKind) String() string {
	switch k {
	case EntityFarm:
		return "Farm"
	case EntityField:
		return "Field"
	case EntityMine:
		return "Mine"
	case EntityPort:
		return "Port"
	case EntityRoad:
		return "Road"
	case EntityVillage:
		return "Village"
	case EntityVillageFort:
		return "VillageFort"
	case EntityCastle:
		return "Castle"
	case EntityCastleFort:
		return "CastleFort"
	default:
		return "Unknown"
	}
}

// Entity is a placed gameplay object.
type Entity struct {
	ID    EntityID   `json:"id"`
	Name  string     `json:"name"`
	Type  EntityKind `json:"type"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Decks Decks      `json:"decks"`
}

func (e *Entity) DisplayName() string { return e.Name }
func (e *Entity) Kind() Kind          { return KindEntity }

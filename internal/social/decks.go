// Resource decks: what an entity produces or fields.
package social

import "slices"

// CivicCard is a civic development held by a settlement.
type CivicCard uint8

const (
	CivicCharter  CivicCard = iota + 1 // market rights
	CivicTemple                        // worship
	CivicGranary                       // food reserve
	CivicGuild                         // crafts
)

// TroopCard is a land unit; the low nibble is its weight class.
type TroopCard uint8

const (
	TroopLight  TroopCard = 1
	TroopMedium TroopCard = 2
	TroopHeavy  TroopCard = 3

	TroopInfantry  TroopCard = 0x10
	TroopCavalry   TroopCard = 0x20
	TroopArchery   TroopCard = 0x30
	TroopArtillery TroopCard = 0x40
	TroopJazz      TroopCard = 0x50 // irregulars, no weight class
)

// Arm returns the unit arm without its weight class.
func (c TroopCard) Arm() TroopCard { return c &^ 0x0f }

// Weight returns the weight class, zero for irregulars.
func (c TroopCard) Weight() TroopCard { return c & 0x0f }

// ShipCard is a naval unit.
type ShipCard uint8

const (
	ShipTransportLight ShipCard = iota + 1
	ShipTransportHeavy
	ShipFrigateLight
	ShipFrigateHeavy
)

// IncomeType is the currency an income deck yields.
type IncomeType uint8

const (
	IncomeSilver IncomeType = iota + 1
	IncomeGold
)

func (t IncomeType) String() string {
	if t == IncomeGold {
		return "gold"
	}
	return "silver"
}

// PileDeck is an ordered pile of cards.
type PileDeck[T comparable] struct {
	Cards []T `json:"cards"`
}

// Has reports whether the pile holds at least one c.
func (d *PileDeck[T]) Has(c T) bool { return slices.Contains(d.Cards, c) }

// Add puts c on top of the pile.
func (d *PileDeck[T]) Add(c T) { d.Cards = append(d.Cards, c) }

// Remove takes the first c out of the pile.
func (d *PileDeck[T]) Remove(c T) bool {
	i := slices.Index(d.Cards, c)
	if i < 0 {
		return false
	}
	d.Cards = slices.Delete(d.Cards, i, i+1)
	return true
}

// Transfer moves one c from d to dst.
func (d *PileDeck[T]) Transfer(c T, dst *PileDeck[T]) bool {
	if dst == nil || !d.Remove(c) {
		return false
	}
	dst.Add(c)
	return true
}

// Len returns the number of cards.
func (d *PileDeck[T]) Len() int { return len(d.Cards) }

// IncomeDeck counts income tokens of one currency.
type IncomeDeck struct {
	Type  IncomeType `json:"type"`
	Count int        `json:"count"`
}

// Incr adds n tokens.
func (d *IncomeDeck) Incr(n int) { d.Count += n }

// Decr removes up to n tokens and returns how many were removed.
func (d *IncomeDeck) Decr(n int) int {
	n = min(n, d.Count)
	d.Count -= n
	return n
}

// Decks is the set of decks attached to an entity. Nil decks are absent.
type Decks struct {
	Civic  *PileDeck[CivicCard] `json:"civic,omitempty"`
	Army   *PileDeck[TroopCard] `json:"army,omitempty"`
	Naval  *PileDeck[ShipCard]  `json:"naval,omitempty"`
	Income *IncomeDeck          `json:"income,omitempty"`
}

// DecksFor returns the empty loadout for an entity kind.
func DecksFor(k EntityKind) Decks {
	switch k {
	case EntityFarm, EntityField:
		return Decks{Income: &IncomeDeck{Type: IncomeSilver}}
	case EntityMine:
		return Decks{Income: &IncomeDeck{Type: IncomeGold}}
	case EntityPort:
		return Decks{Naval: &PileDeck[ShipCard]{}}
	case EntityVillage:
		return Decks{Civic: &PileDeck[CivicCard]{}}
	case EntityVillageFort, EntityCastleFort:
		return Decks{Civic: &PileDeck[CivicCard]{}, Army: &PileDeck[TroopCard]{}}
	case EntityCastle:
		return Decks{Army: &PileDeck[TroopCard]{}}
	default:
		return Decks{}
	}
}

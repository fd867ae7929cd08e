package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeckLoadouts(t *testing.T) {
	cases := []struct {
		kind               EntityKind
		civic, army, naval bool
		income             IncomeType
	}{
		{EntityFarm, false, false, false, IncomeSilver},
		{EntityField, false, false, false, IncomeSilver},
		{EntityMine, false, false, false, IncomeGold},
		{EntityPort, false, false, true, 0},
		{EntityRoad, false, false, false, 0},
		{EntityVillage, true, false, false, 0},
		{EntityVillageFort, true, true, false, 0},
		{EntityCastle, false, true, false, 0},
		{EntityCastleFort, true, true, false, 0},
	}
	for _, tc := range cases {
		d := DecksFor(tc.kind)
		name := tc.kind.String()
		assert.Equal(t, tc.civic, d.Civic != nil, name)
		assert.Equal(t, tc.army, d.Army != nil, name)
		assert.Equal(t, tc.naval, d.Naval != nil, name)
		if tc.income == 0 {
			assert.Nil(t, d.Income, name)
		} else {
			assert.Equal(t, tc.income, d.Income.Type, name)
		}
	}
}

func TestPileDeck(t *testing.T) {
	var a, b PileDeck[TroopCard]
	heavyHorse := TroopCavalry | TroopHeavy
	a.Add(heavyHorse)
	a.Add(TroopJazz)
	assert.True(t, a.Has(heavyHorse))
	assert.Equal(t, TroopCavalry, heavyHorse.Arm())
	assert.Equal(t, TroopHeavy, heavyHorse.Weight())
	assert.Zero(t, TroopJazz.Weight())

	assert.True(t, a.Transfer(heavyHorse, &b))
	assert.False(t, a.Has(heavyHorse))
	assert.True(t, b.Has(heavyHorse))
	assert.False(t, a.Transfer(heavyHorse, &b))
	assert.False(t, a.Transfer(TroopJazz, nil))
	assert.Equal(t, 1, a.Len())
	assert.False(t, b.Remove(TroopJazz))
}

func TestIncomeDeck(t *testing.T) {
	d := IncomeDeck{Type: IncomeGold}
	d.Incr(5)
	assert.Equal(t, 3, d.Decr(3))
	assert.Equal(t, 2, d.Decr(10))
	assert.Zero(t, d.Count)
	assert.Equal(t, "gold", d.Type.String())
}

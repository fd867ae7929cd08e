// Realm hierarchy: crownland houses and their vassal lords.
package social

import (
	"log/slog"
	"slices"

	"github.com/talgya/legion-shores/internal/entropy"
	"github.com/talgya/legion-shores/internal/errx"
	"github.com/talgya/legion-shores/internal/names"
)

// MaxRealmsPerEthnic caps crownland houses per ethnic.
const MaxRealmsPerEthnic = 16

// maxLords is how many neighbouring regions a house takes as vassals.
const maxLords = 4

// SpawnWorldRealms seeds every named ethnic with up to maxRealmsPerEthnic
// houses. Each house claims a random unowned region, enfeoffs up to four of
// its unowned neighbours as lords, and leaves the lords' neighbours
// unclaimed as a buffer. Regions a realm already holds are never drawn.
func (w *World) SpawnWorldRealms(maxRealmsPerEthnic int, gen names.Generator) error {
	if maxRealmsPerEthnic < 0 || maxRealmsPerEthnic > MaxRealmsPerEthnic {
		return errx.Configuration("realms per ethnic out of range", "realms", maxRealmsPerEthnic)
	}
	if gen == nil {
		return errx.Configuration("realm spawning needs a name generator")
	}
	defer gen.Reset()
	rng := entropy.MustSource(w.seed)

	houses := 0
	for _, eid := range w.ethnics {
		ethnic := w.reg.Ethnics[eid]
		if ethnic.Wild {
			continue
		}
		var pool []RegionID
		for _, id := range ethnic.Regions {
			if w.owner[id] == 0 {
				pool = append(pool, id)
			}
		}
		for placed := 0; placed < maxRealmsPerEthnic && len(pool) > 0; placed++ {
			house := NewRealm("House "+gen.Name(names.Realm, rng), RealmPlayer)
			i := rng.Int(0, len(pool)-1)
			seat := pool[i]
			if err := w.AssignRegion(house, seat); err != nil {
				return err
			}
			pool = slices.Delete(pool, i, i+1)
			houses++

			var buffer []RegionID
			lords := 0
			for _, near := range w.reg.Regions[seat].Neighbors {
				j := slices.Index(pool, near)
				if j < 0 {
					continue
				}
				pool = slices.Delete(pool, j, j+1)
				if lords++; lords > maxLords {
					continue
				}
				lord := NewRealm("Lord "+gen.Name(names.Realm, rng), RealmLord)
				if err := w.AssignRegion(lord, near); err != nil {
					return err
				}
				if err := w.AddVassal(house.ID, lord.ID); err != nil {
					return err
				}
				buffer = append(buffer, w.reg.Regions[near].Neighbors...)
			}
			for _, b := range buffer {
				pool = remove(pool, b)
			}
		}
	}
	slog.Info("realms spawned", "houses", houses, "realms", w.RealmsCount())
	return nil
}

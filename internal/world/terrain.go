// Package world provides the square terrain grid and the staged builder that
// synthesizes it from a seed.
package world

// Terrain is the biome stored in one grid cell.
type Terrain uint8

// The first five values form the elevation ladder: flooding raises a cell
// one step at a time and stops at TerrainMountains.
const (
	TerrainOcean     Terrain = iota // Deep water
	TerrainSwamp                    // Low, waterlogged
	TerrainWetlands                 // Marsh edging into dry land
	TerrainPlains                   // Open, fertile
	TerrainMountains                // Highest tier, impassable
	TerrainForest
	TerrainDesert
	TerrainShallow
	TerrainDryForest
	TerrainCloud      // Map border
	TerrainUpperCloud // Map border, upper layer
	TerrainRiver      // Transient, only while rivers are drawn
	TerrainNull       // Transient marker

	terrainCount
)

// Valid reports whether t is a known terrain value.
func (t Terrain) Valid() bool { return t < terrainCount }

// Finished reports whether t may appear in a completed grid.
func (t Terrain) Finished() bool { return t < TerrainRiver }

// IsAquatic reports water cells.
func (t Terrain) IsAquatic() bool {
	return t == TerrainOcean || t == TerrainShallow || t == TerrainSwamp || t == TerrainRiver
}

// IsUncrossable reports cells nothing can walk over.
func (t Terrain) IsUncrossable() bool {
	return t == TerrainMountains || t == TerrainCloud || t == TerrainUpperCloud || t == TerrainNull
}

// IsArid reports the dry biome.
func (t Terrain) IsArid() bool { return t == TerrainDesert || t == TerrainDryForest }

// IsWalkable reports land that can be settled.
func (t Terrain) IsWalkable() bool { return !t.IsUncrossable() && !t.IsAquatic() }

// IsWalkableArid reports walkable desert or dry forest.
func (t Terrain) IsWalkableArid() bool { return t.IsWalkable() && t.IsArid() }

// IsWalkableNonArid reports walkable temperate land.
func (t Terrain) IsWalkableNonArid() bool { return t.IsWalkable() && !t.IsArid() }

// String returns a human-readable name for a terrain type.
func (t Terrain) String() string {
	switch t {
	case TerrainOcean:
		return "Ocean"
	case TerrainSwamp:
		return "Swamp"
	case TerrainWetlands:
		return "Wetlands"
	case TerrainPlains:
		return "Plains"
	case TerrainMountains:
		return "Mountains"
	case TerrainForest:
		return "Forest"
	case TerrainDesert:
		return "Desert"
	case TerrainShallow:
		return "Shallow"
	case TerrainDryForest:
		return "DryForest"
	case TerrainCloud:
		return "Cloud"
	case TerrainUpperCloud:
		return "UpperCloud"
	case TerrainRiver:
		return "River"
	case TerrainNull:
		return "Null"
	default:
		return "Unknown"
	}
}

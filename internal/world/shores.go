package world

// BuildShallows turns swamp into shallow water. Swamp touching dry land
// survives with probability preservation.
func (b *Builder) BuildShallows(preservation float64, buffer int) *Builder {
	return b.stage("build shallows", func() error {
		if err := checkUnit("preservation", preservation); err != nil {
			return err
		}
		if err := checkBuffers(buffer); err != nil {
			return err
		}
		lo, hi := b.area(buffer)
		b.freeze()
		for y := lo; y <= hi; y++ {
			for x := lo; x <= hi; x++ {
				if b.snap.At(x, y) != TerrainSwamp {
					continue
				}
				if !(b.snap.HasNear(x, y, TerrainWetlands, TerrainMountains, 1) && b.rng.Chance(preservation)) {
					b.grid.Set(x, y, TerrainShallow)
				}
			}
		}
		return nil
	})
}

// ExpandShallows turns ocean beside dry land into shallow water with
// probability amount.
func (b *Builder) ExpandShallows(amount float64, buffer int) *Builder {
	return b.stage("expand shallows", func() error {
		if err := checkUnit("amount", amount); err != nil {
			return err
		}
		if err := checkBuffers(buffer); err != nil {
			return err
		}
		lo, hi := b.area(buffer)
		b.freeze()
		for y := lo; y <= hi; y++ {
			for x := lo; x <= hi; x++ {
				if b.snap.At(x, y) == TerrainOcean &&
					b.snap.HasNear(x, y, TerrainWetlands, TerrainMountains, 1) &&
					b.rng.Chance(amount) {
					b.grid.Set(x, y, TerrainShallow)
				}
			}
		}
		return nil
	})
}

package atmos

// considerSuperconductivity tests whether a tile becomes eligible for
// superconduction this cycle. starting=true uses the higher
// "start" threshold (called from process_cell on very hot tiles);
// starting=false uses the lower "sustain" threshold (called by the
// superconduction pass itself on neighbors it just conducted into).
// Idempotent: adding an already-tracked tile is a no-op.
func (g *Grid) considerSuperconductivity(index int32, starting bool) bool {
	if !g.Config.SuperconductionEnabled {
		return false
	}
	t := g.tileAt(index)
	if t == nil || t.ThermalConductivity == 0 {
		return false
	}
	c := &g.Config.Constants

	threshold := c.MinimumTemperatureForSuperconduction
	if starting {
		threshold = c.MinimumTemperatureStartSuperConduction
	}
	if t.Temperature < threshold {
		return false
	}
	if t.HeatCapacity < c.McellWithRatio {
		return false
	}

	if !t.isSuperconduct() {
		g.addSuperconductTile(index)
	}
	return true
}

// processSuperconduction runs one cycle of superconduction for a tracked
// tile: conducts into every valid neighbor with nonzero thermal
// conductivity (archiving a neighbor first unless active-tile processing
// already stamped it this cycle) and offers each such neighbor to
// tracking at the sustain threshold, radiates to space, then decides
// whether the tile drops out of tracking.
func (g *Grid) processSuperconduction(index int32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}

	dirMask := g.conductivityDirections(index)
	for dir := 0; dir < DirCount; dir++ {
		bit := uint8(1 << dir)
		if dirMask&bit == 0 || t.AdjacentBits&bit == 0 {
			continue
		}
		neighborIdx := t.AdjacentIndices[dir]
		neighbor := g.tileAt(neighborIdx)
		if neighbor == nil || neighbor.ThermalConductivity == 0 {
			continue
		}
		if neighbor.LastCycle != g.updateCounter {
			ArchiveTile(neighbor)
		}
		g.neighborConductWithSource(neighborIdx, index)
		g.AddActiveTile(neighborIdx)
		g.considerSuperconductivity(neighborIdx, false)
	}

	g.radiateToSpace(index)
	g.finishSuperconduction(index, t.Temperature)
}

// conductivityDirections reports which of a tile's cardinal directions
// currently participate in conduction. The original always returns all
// four bits; kept as a separate hook since future rewrites may gate
// directions by wall/window state.
func (g *Grid) conductivityDirections(index int32) uint8 {
	return DirBitAll
}

// neighborConductWithSource resolves one of four sub-cases depending on
// whether each side currently holds gas (heatCapacity from stored solid
// constants vs. from its gas mixture).
func (g *Grid) neighborConductWithSource(neighborIdx, sourceIdx int32) {
	neighbor := g.tileAt(neighborIdx)
	source := g.tileAt(sourceIdx)
	if neighbor == nil || source == nil {
		return
	}
	c := &g.Config.Constants

	neighborHasGas := !neighbor.isSpace() && TotalMoles(neighbor) > c.GasMinMoles
	sourceHasGas := !source.isSpace() && TotalMoles(source) > c.GasMinMoles

	switch {
	case !neighborHasGas && !sourceHasGas:
		// both solid: pure solid-solid conduction using stored constants.
		if neighbor.isImmutable() {
			return
		}
		k := neighbor.ThermalConductivity * source.ThermalConductivity
		if neighbor.HeatCapacity+source.HeatCapacity <= 0 {
			return
		}
		dT := source.Temperature - neighbor.Temperature
		heat := k * dT * (neighbor.HeatCapacity * source.HeatCapacity) / (neighbor.HeatCapacity + source.HeatCapacity)
		neighbor.Temperature += heat / neighbor.HeatCapacity
		neighbor.Temperature = clamp32(neighbor.Temperature, c.TCMB, c.Tmax)

	case !neighborHasGas && sourceHasGas:
		// neighbor solid, source gaseous.
		newSolid := g.TemperatureShareSolid(sourceIdx, 1.0, neighbor.Temperature, neighbor.HeatCapacity)
		if !neighbor.isImmutable() {
			neighbor.Temperature = clamp32(newSolid, c.TCMB, c.Tmax)
		}

	case neighborHasGas && !sourceHasGas:
		// neighbor gaseous, source solid: window-coefficient share.
		newSolidUnused := g.TemperatureShareSolid(neighborIdx, c.WindowHeatTransferCoefficient, source.Temperature, source.HeatCapacity)
		_ = newSolidUnused

	default:
		// both gaseous: window-coefficient share.
		g.TemperatureShare(neighborIdx, sourceIdx, c.WindowHeatTransferCoefficient)
	}
}

// radiateToSpace loses heat to a virtual vacuum at TCMB via the
// configured vacuum heat capacity, for any tile hotter than T0C.
func (g *Grid) radiateToSpace(index int32) {
	t := g.tileAt(index)
	if t == nil || t.isImmutable() {
		return
	}
	c := &g.Config.Constants
	if t.Temperature <= c.T0C || t.HeatCapacity <= 0 {
		return
	}
	dT := t.Temperature - c.TCMB
	heat := dT * (t.HeatCapacity * c.HeatCapacityVacuum) / (t.HeatCapacity + c.HeatCapacityVacuum)
	t.Temperature -= heat / t.HeatCapacity
	if t.Temperature < c.TCMB {
		t.Temperature = c.TCMB
	}
}

// finishSuperconduction performs the legacy self-share step (if the tile
// holds gas) and then drops the tile from tracking once it cools below
// the sustain threshold.
func (g *Grid) finishSuperconduction(index int32, temperature float32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	c := &g.Config.Constants

	if !t.isSpace() && TotalMoles(t) > c.GasMinMoles && !t.isImmutable() {
		g.TemperatureShare(index, index, 1.0)
	}

	if temperature < c.MinimumTemperatureForSuperconduction {
		g.removeSuperconductTile(index)
	}
}

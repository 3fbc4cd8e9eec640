package atmos

// IgniteHotspot is the public ignition entry point named in §6. Unlike
// igniteHotspotImpl (used internally by fire spread), it unconditionally
// overwrites an already-burning hotspot's temperature and volume rather
// than only monotonically raising them — see SPEC_FULL.md's
// Public-vs-internal API split.
func (g *Grid) IgniteHotspot(index int32, temperature, volume float32) {
	t := g.tileAt(index)
	if t == nil || t.isSpace() {
		return
	}
	c := &g.Config.Constants
	plasma, tritium, oxygen := t.Moles[GasPlasma], t.Moles[GasTritium], t.Moles[GasOxygen]
	if plasma < 0.5 && tritium < 0.5 {
		return
	}
	if oxygen < 0.5 {
		return
	}
	if temperature < c.PlasmaMinimumBurnTemperature {
		return
	}

	if t.isHotspot() {
		t.HotspotTemperature = temperature
		t.HotspotVolume = volume
		return
	}

	t.HotspotTemperature = temperature
	t.HotspotVolume = volume
	t.Flags |= FlagHotspot
	t.HotspotState = 1
	g.addHotspotTile(index)
	g.AddActiveTile(index)
}

// igniteHotspotImpl is the internally-used, monotonic-raise-only
// ignition used by fire spread: if the tile is already a hotspot, it
// only raises temperature/volume, never lowers them.
func (g *Grid) igniteHotspotImpl(index int32, temperature, volume float32) {
	t := g.tileAt(index)
	if t == nil || t.isSpace() {
		return
	}
	c := &g.Config.Constants
	plasma, tritium, oxygen := t.Moles[GasPlasma], t.Moles[GasTritium], t.Moles[GasOxygen]
	if plasma < 0.5 && tritium < 0.5 {
		return
	}
	if oxygen < 0.5 {
		return
	}
	if temperature < c.PlasmaMinimumBurnTemperature {
		return
	}

	if t.isHotspot() {
		if temperature > t.HotspotTemperature {
			t.HotspotTemperature = temperature
		}
		if volume > t.HotspotVolume {
			t.HotspotVolume = volume
		}
		return
	}

	t.HotspotTemperature = temperature
	t.HotspotVolume = volume
	t.Flags |= FlagHotspot
	t.HotspotState = 1
	g.addHotspotTile(index)
	g.AddActiveTile(index)
}

// ExtinguishHotspot clears a tile's hotspot state and removes it from
// the hotspot list.
func (g *Grid) ExtinguishHotspot(index int32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	t.Flags &^= FlagHotspot
	t.HotspotTemperature = 0
	t.HotspotVolume = 0
	t.HotspotState = 0
	g.removeHotspotTile(index)
}

// processHotspot advances one hotspot one cycle: possible extinguish,
// volume decay, fire consumption, exposure to the bulk tile, a second
// extinguish check, spread to eligible neighbors, and hotspotState
// recomputation.
func (g *Grid) processHotspot(index int32) {
	t := g.tileAt(index)
	if t == nil || !t.isHotspot() {
		return
	}
	c := &g.Config.Constants

	if t.HotspotTemperature < c.FireMinimumTemperatureToExist {
		g.ExtinguishHotspot(index)
		return
	}

	if t.HotspotVolume > 1.0 {
		t.HotspotVolume -= 1.0
	}

	g.performHotspotFire(index)
	g.exposeHotspot(index)

	if t.HotspotTemperature < c.FireMinimumTemperatureToExist {
		g.ExtinguishHotspot(index)
		return
	}

	if t.HotspotTemperature > c.FireMinimumTemperatureToSpread {
		for dir := 0; dir < DirCount; dir++ {
			bit := uint8(1 << dir)
			if t.AdjacentBits&bit == 0 {
				continue
			}
			adjIdx := t.AdjacentIndices[dir]
			adj := g.tileAt(adjIdx)
			if adj == nil || adj.isHotspot() || adj.isSpace() {
				continue
			}
			plasma, tritium, oxygen := adj.Moles[GasPlasma], adj.Moles[GasTritium], adj.Moles[GasOxygen]
			if (plasma > 0.5 || tritium > 0.5) && oxygen > 0.5 {
				spreadTemp := t.HotspotTemperature * c.FireSpreadRadiosityScale
				if spreadTemp > c.FireMinimumTemperatureToExist {
					g.igniteHotspotImpl(adjIdx, spreadTemp, 1.0)
				}
			}
		}
	}

	var newState uint8
	switch {
	case t.HotspotTemperature > c.PlasmaUpperTemperature:
		newState = 3
	case t.HotspotTemperature > c.PlasmaMinimumBurnTemperature+500.0:
		newState = 2
	case t.HotspotTemperature > c.PlasmaMinimumBurnTemperature:
		newState = 1
	}
	t.HotspotState = newState
}

// exposeHotspot raises the tile's bulk temperature using half the
// hotspot's temperature*volume product, divided by the tile's heat
// capacity.
func (g *Grid) exposeHotspot(index int32) {
	t := g.tileAt(index)
	if t == nil || !t.isHotspot() {
		return
	}
	c := &g.Config.Constants
	hc := g.GetHeatCapacityForTile(index)
	if hc <= c.MinimumHeatCapacity {
		return
	}
	energy := t.HotspotTemperature * t.HotspotVolume * 0.5
	if !t.isImmutable() {
		t.Temperature += energy / hc
		t.Temperature = clamp32(t.Temperature, c.TCMB, c.Tmax)
	}
}

// performHotspotFire burns plasma and/or tritium using the same
// chemistry as the plasma/tritium reaction rules, feeding released
// energy into the hotspot's own temperature (not the bulk tile's) scaled
// by heatScale. If no fuel was consumed, the hotspot decays by 5K.
func (g *Grid) performHotspotFire(index int32) {
	t := g.tileAt(index)
	if t == nil || t.isImmutable() {
		return
	}
	c := &g.Config.Constants
	heats := g.Config.GasSpecificHeats[:]

	plasma := t.Moles[GasPlasma]
	oxygen := t.Moles[GasOxygen]
	tritium := t.Moles[GasTritium]
	temperature := t.HotspotTemperature

	var energyReleased, consumedFuel float32

	if plasma > 0.5 && oxygen > 0.5 && temperature >= c.PlasmaMinimumBurnTemperature {
		var scale float32 = 1.0
		if temperature <= c.PlasmaUpperTemperature {
			scale = (temperature - c.PlasmaMinimumBurnTemperature) / (c.PlasmaUpperTemperature - c.PlasmaMinimumBurnTemperature)
		}
		if scale > 0 {
			oxygenBurnRate := c.OxygenBurnRateBase - scale
			var plasmaBurnRate float32
			if oxygen > plasma*c.PlasmaOxygenFullburn {
				plasmaBurnRate = plasma * scale / c.PlasmaBurnRateDelta
			} else {
				plasmaBurnRate = (scale * (oxygen / plasma)) / (c.PlasmaBurnRateDelta * c.PlasmaOxygenFullburn)
			}
			plasmaBurnRate = min32(plasmaBurnRate, plasma)
			plasmaBurnRate = min32(plasmaBurnRate, oxygen/oxygenBurnRate)

			if plasmaBurnRate > c.GasMinMoles {
				burnedPlasma := plasmaBurnRate
				burnedOxygen := plasmaBurnRate * oxygenBurnRate

				t.Moles[GasPlasma] -= burnedPlasma
				t.Moles[GasOxygen] -= burnedOxygen
				t.Moles[GasCO2] += burnedPlasma * 0.75
				t.Moles[GasWaterVapor] += burnedPlasma * 0.25

				energyReleased += c.FirePlasmaEnergyReleased * burnedPlasma
				consumedFuel += burnedPlasma
			}
		}
	}

	if tritium > 0.5 && oxygen > 0.5 && temperature >= c.PlasmaMinimumBurnTemperature {
		burnedTritium := min32(tritium, oxygen/c.TritiumBurnOxyFactor)
		burnedTritium = min32(burnedTritium, c.TritiumBurnTritFactor)

		if burnedTritium > c.GasMinMoles {
			burnedOxygen := burnedTritium * c.TritiumBurnOxyFactor

			t.Moles[GasTritium] -= burnedTritium
			t.Moles[GasOxygen] -= burnedOxygen
			t.Moles[GasWaterVapor] += burnedTritium

			energyReleased += c.FireHydrogenEnergyReleased * burnedTritium
			consumedFuel += burnedTritium
		}
	}

	if energyReleased > 0 {
		hc := currentHeatCapacity(t, c, heats)
		if hc > c.MinimumHeatCapacity {
			t.HotspotTemperature += energyReleased / hc / g.Config.HeatScale
			t.HotspotTemperature = clamp32(t.HotspotTemperature, c.TCMB, c.Tmax)
		}
	}

	if consumedFuel <= 0 {
		t.HotspotTemperature -= 5.0
	}
}

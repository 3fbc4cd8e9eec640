package atmos

// ReactionStatus reports what happened when a tile's reactions were
// evaluated.
type ReactionStatus int

const (
	ReactionNone ReactionStatus = iota
	ReactionReacting
	ReactionStop
)

// React runs all seven reaction rules against a tile in the fixed
// precedence order the reaction-precedence design note requires: plasma
// fire, tritium fire, frezon production, frezon coolant, water vapor
// condensation, N2O decomposition, ammonia+oxygen. A no-op on immutable
// tiles or tiles whose thermal energy is below 1000 units.
func (g *Grid) React(index int32) ReactionStatus {
	t := g.tileAt(index)
	if t == nil || t.isImmutable() {
		return ReactionNone
	}
	hc := g.GetHeatCapacityForTile(index)
	if t.Temperature*hc < 1000 {
		return ReactionNone
	}

	c := &g.Config.Constants
	heats := g.Config.GasSpecificHeats[:]
	heatScale := g.Config.HeatScale

	status := ReactionNone
	apply := func(s ReactionStatus) bool {
		switch s {
		case ReactionStop:
			status = ReactionStop
			return true
		case ReactionReacting:
			status = ReactionReacting
		}
		return false
	}

	if apply(plasmaFireReaction(t, c, heats, heatScale)) {
		return status
	}
	if apply(tritiumFireReaction(t, c, heats, heatScale)) {
		return status
	}
	if apply(frezonProductionReaction(t, c)) {
		return status
	}
	if apply(frezonCoolantReaction(t, c, heats)) {
		return status
	}
	if apply(waterVaporReaction(t, c)) {
		return status
	}
	if apply(n2oDecompositionReaction(t, c, heats, heatScale)) {
		return status
	}
	apply(ammoniaOxygenReaction(t, c))
	return status
}

func currentHeatCapacity(t *Tile, c *AtmosConstants, heats []float32) float32 {
	return GetHeatCapacity(t.Moles[:GasCount], heats[:GasCount], t.isSpace(), c)
}

func raiseTemperature(t *Tile, energy float32, c *AtmosConstants, heats []float32, heatScale float32) {
	hc := currentHeatCapacity(t, c, heats)
	if hc <= c.MinimumHeatCapacity {
		return
	}
	t.Temperature += energy / hc / heatScale
	t.Temperature = clamp32(t.Temperature, c.TCMB, c.Tmax)
}

// plasmaFireReaction: plasma and oxygen each >= 0.5 and T >= the plasma
// minimum burn temperature. Burn rate ramps with temperature and is
// capped by the oxygen:plasma ratio against plasmaOxygenFullburn.
// Products are CO2 (75% of burned plasma) and water vapor (25%).
func plasmaFireReaction(t *Tile, c *AtmosConstants, heats []float32, heatScale float32) ReactionStatus {
	plasma := t.Moles[GasPlasma]
	oxygen := t.Moles[GasOxygen]
	if plasma < 0.5 || oxygen < 0.5 || t.Temperature < c.PlasmaMinimumBurnTemperature {
		return ReactionNone
	}

	var scale float32 = 1.0
	if t.Temperature <= c.PlasmaUpperTemperature {
		scale = (t.Temperature - c.PlasmaMinimumBurnTemperature) / (c.PlasmaUpperTemperature - c.PlasmaMinimumBurnTemperature)
	}
	if scale <= 0 {
		return ReactionNone
	}

	oxygenBurnRate := c.OxygenBurnRateBase - scale
	var plasmaBurnRate float32
	if oxygen > plasma*c.PlasmaOxygenFullburn {
		plasmaBurnRate = plasma * scale / c.PlasmaBurnRateDelta
	} else {
		plasmaBurnRate = (scale * (oxygen / plasma)) / (c.PlasmaBurnRateDelta * c.PlasmaOxygenFullburn)
	}
	plasmaBurnRate = min32(plasmaBurnRate, plasma)
	plasmaBurnRate = min32(plasmaBurnRate, oxygen/oxygenBurnRate)

	if plasmaBurnRate <= c.GasMinMoles {
		return ReactionNone
	}

	burnedPlasma := plasmaBurnRate
	burnedOxygen := plasmaBurnRate * oxygenBurnRate

	t.Moles[GasPlasma] -= burnedPlasma
	t.Moles[GasOxygen] -= burnedOxygen
	t.Moles[GasCO2] += burnedPlasma * 0.75
	t.Moles[GasWaterVapor] += burnedPlasma * 0.25

	raiseTemperature(t, c.FirePlasmaEnergyReleased*burnedPlasma, c, heats, heatScale)
	return ReactionReacting
}

// tritiumFireReaction: tritium and oxygen each >= 0.5, T at or above the
// plasma minimum burn temperature (tritium shares that threshold).
func tritiumFireReaction(t *Tile, c *AtmosConstants, heats []float32, heatScale float32) ReactionStatus {
	tritium := t.Moles[GasTritium]
	oxygen := t.Moles[GasOxygen]
	if tritium < 0.5 || oxygen < 0.5 || t.Temperature < c.PlasmaMinimumBurnTemperature {
		return ReactionNone
	}

	burned := min32(tritium, oxygen/c.TritiumBurnOxyFactor)
	burned = min32(burned, c.TritiumBurnTritFactor)
	if burned <= c.GasMinMoles {
		return ReactionNone
	}

	burnedOxygen := burned * c.TritiumBurnOxyFactor
	t.Moles[GasTritium] -= burned
	t.Moles[GasOxygen] -= burnedOxygen
	t.Moles[GasWaterVapor] += burned

	raiseTemperature(t, c.FireHydrogenEnergyReleased*burned, c, heats, heatScale)
	return ReactionReacting
}

// frezonProductionReaction: tritium, oxygen, nitrogen each >= 0.5 and T
// at or below frezonCoolMidTemperature. Efficiency decays linearly from 1
// at 73.15K to 0 at the mid temperature.
func frezonProductionReaction(t *Tile, c *AtmosConstants) ReactionStatus {
	tritium := t.Moles[GasTritium]
	oxygen := t.Moles[GasOxygen]
	nitrogen := t.Moles[GasNitrogen]
	if tritium < 0.5 || oxygen < 0.5 || nitrogen < 0.5 || t.Temperature > c.FrezonCoolMidTemperature {
		return ReactionNone
	}

	const floorTemp = 73.15
	efficiency := (c.FrezonCoolMidTemperature - t.Temperature) / (c.FrezonCoolMidTemperature - floorTemp)
	efficiency = clamp32(efficiency, 0, 1)

	tritiumUsed := min32(tritium, oxygen/50)
	tritiumUsed = min32(tritiumUsed, nitrogen*10)
	if tritiumUsed <= c.GasMinMoles {
		return ReactionNone
	}

	frezonProduced := tritiumUsed * efficiency / 50
	if frezonProduced <= c.GasMinMoles {
		return ReactionNone
	}

	t.Moles[GasOxygen] -= tritiumUsed * 50
	t.Moles[GasNitrogen] -= tritiumUsed / 10
	t.Moles[GasTritium] -= tritiumUsed
	t.Moles[GasFrezon] += frezonProduced

	return ReactionReacting
}

// frezonCoolantReaction: frezon and nitrogen each >= 0.5, T at or above
// frezonCoolLowerTemperature. Releases negative energy (cooling).
func frezonCoolantReaction(t *Tile, c *AtmosConstants, heats []float32) ReactionStatus {
	frezon := t.Moles[GasFrezon]
	nitrogen := t.Moles[GasNitrogen]
	if frezon < 0.5 || nitrogen < 0.5 || t.Temperature < c.FrezonCoolLowerTemperature {
		return ReactionNone
	}

	var scale float32
	if t.Temperature <= c.FrezonCoolMidTemperature {
		scale = (t.Temperature - c.FrezonCoolLowerTemperature) / (c.FrezonCoolMidTemperature - c.FrezonCoolLowerTemperature)
	} else {
		scale = 1 + (t.Temperature-c.FrezonCoolMidTemperature)/c.FrezonCoolMidTemperature
	}
	scale = clamp32(scale, 0, c.FrezonCoolMaximumEnergyModifier)

	rate := frezon * scale * c.FrezonCoolRateModifier
	nitrogenConsumed := min32(nitrogen, frezon*c.FrezonNitrogenCoolRatio)
	if rate <= c.GasMinMoles {
		return ReactionNone
	}

	t.Moles[GasNitrogen] -= nitrogenConsumed

	energy := c.FrezonCoolEnergyReleased * rate
	hc := currentHeatCapacity(t, c, heats)
	if hc > c.MinimumHeatCapacity {
		t.Temperature += energy / hc
		if t.Temperature < c.TCMB {
			t.Temperature = c.TCMB
		}
	}
	return ReactionReacting
}

// waterVaporReaction: water vapor >= 0.5 and T at or below T0C+100;
// removes 5% of the water vapor with no energy release.
func waterVaporReaction(t *Tile, c *AtmosConstants) ReactionStatus {
	vapor := t.Moles[GasWaterVapor]
	if vapor < 0.5 || t.Temperature > c.T0C+100 {
		return ReactionNone
	}
	t.Moles[GasWaterVapor] -= vapor * 0.05
	return ReactionReacting
}

// n2oDecompositionReaction: N2O >= 0.5 and T at or above T0C+250; half
// decomposes into equal moles of N2 and half as much O2.
func n2oDecompositionReaction(t *Tile, c *AtmosConstants, heats []float32, heatScale float32) ReactionStatus {
	n2o := t.Moles[GasN2O]
	if n2o < 0.5 || t.Temperature < c.T0C+250 {
		return ReactionNone
	}
	decomposed := n2o * 0.5
	t.Moles[GasN2O] -= decomposed
	t.Moles[GasNitrogen] += decomposed
	t.Moles[GasOxygen] += decomposed * 0.5

	raiseTemperature(t, 20000*decomposed, c, heats, heatScale)
	return ReactionReacting
}

// ammoniaOxygenReaction: ammonia and oxygen each >= 0.5, T at or above
// T0C+100; produces N2 and water vapor, consuming oxygen.
func ammoniaOxygenReaction(t *Tile, c *AtmosConstants) ReactionStatus {
	ammonia := t.Moles[GasAmmonia]
	oxygen := t.Moles[GasOxygen]
	if ammonia < 0.5 || oxygen < 0.5 || t.Temperature < c.T0C+100 {
		return ReactionNone
	}
	used := min32(ammonia, oxygen/0.75) / 10
	if used <= c.GasMinMoles {
		return ReactionNone
	}
	t.Moles[GasAmmonia] -= used
	t.Moles[GasOxygen] -= used * 0.75
	t.Moles[GasNitrogen] += used * 0.5
	t.Moles[GasWaterVapor] += used * 1.5
	return ReactionReacting
}

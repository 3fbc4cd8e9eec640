package atmos

// Share performs the pairwise gas/heat exchange between receiver and
// sharer, using archived values to avoid order dependence within the
// cycle (see the Archive semantics design note). adjacentCount is the
// number of the receiver's valid neighbors.
func (g *Grid) Share(receiverIndex, sharerIndex int32, adjacentCount int) {
	r := g.tileAt(receiverIndex)
	s := g.tileAt(sharerIndex)
	if r == nil || s == nil {
		return
	}
	c := &g.Config.Constants
	heats := g.Config.GasSpecificHeats[:]

	dT := r.TempArchived - s.TempArchived
	absDT := abs32(dT)

	var oldHC, oldSharerHC float32
	if absDT > c.MinimumTemperatureDeltaToConsider {
		oldHC = GetHeatCapacity(r.Moles[:GasCount], heats[:GasCount], r.isSpace(), c)
		oldSharerHC = GetHeatCapacity(s.Moles[:GasCount], heats[:GasCount], s.isSpace(), c)
	}

	divisor := 1.0 / float32(adjacentCount+1)
	var heatCapacityToSharer, heatCapacitySharerToThis, totalShared float32

	for i := 0; i < GasCount; i++ {
		delta := (r.Moles[i] - s.Moles[i]) * divisor
		if abs32(delta) < c.GasMinMoles {
			continue
		}
		if absDT > c.MinimumTemperatureDeltaToConsider {
			gasHC := delta * heats[i]
			if delta > 0 {
				heatCapacityToSharer += gasHC
			} else {
				heatCapacitySharerToThis -= gasHC
			}
		}
		if !r.isImmutable() {
			r.Moles[i] -= delta
		}
		if !s.isImmutable() {
			s.Moles[i] += delta
		}
		totalShared += abs32(delta)
	}
	r.LastShare = totalShared

	if absDT > c.MinimumTemperatureDeltaToConsider {
		newHC := oldHC + heatCapacitySharerToThis - heatCapacityToSharer
		newSharerHC := oldSharerHC + heatCapacityToSharer - heatCapacitySharerToThis

		if !r.isImmutable() && newHC > c.MinimumHeatCapacity {
			r.Temperature = (oldHC*r.Temperature - heatCapacityToSharer*r.TempArchived + heatCapacitySharerToThis*s.TempArchived) / newHC
			r.Temperature = clamp32(r.Temperature, c.TCMB, c.Tmax)
		}
		if !s.isImmutable() && newSharerHC > c.MinimumHeatCapacity {
			s.Temperature = (oldSharerHC*s.Temperature - heatCapacitySharerToThis*s.TempArchived + heatCapacityToSharer*r.TempArchived) / newSharerHC
			s.Temperature = clamp32(s.Temperature, c.TCMB, c.Tmax)
		}

		if abs32(oldSharerHC) > c.MinimumHeatCapacity {
			ratio := newSharerHC/oldSharerHC - 1.0
			if abs32(ratio) < 0.1 {
				g.TemperatureShare(receiverIndex, sharerIndex, c.OpenHeatTransferCoefficient)
			}
		}
	}
}

// TemperatureShare moves heat between two tiles using their archived
// heat capacities: heat = k * dT_archived * (HC_r*HC_s)/(HC_r+HC_s).
func (g *Grid) TemperatureShare(receiverIndex, sharerIndex int32, k float32) {
	r := g.tileAt(receiverIndex)
	s := g.tileAt(sharerIndex)
	if r == nil || s == nil {
		return
	}
	c := &g.Config.Constants
	heats := g.Config.GasSpecificHeats[:]

	rHC := GetHeatCapacity(r.MolesArchived[:GasCount], heats[:GasCount], r.isSpace(), c)
	sHC := GetHeatCapacity(s.MolesArchived[:GasCount], heats[:GasCount], s.isSpace(), c)
	if rHC+sHC <= 0 {
		return
	}
	dT := r.TempArchived - s.TempArchived
	heat := k * dT * (rHC * sHC) / (rHC + sHC)

	if !r.isImmutable() && rHC > 0 {
		r.Temperature -= heat / rHC
		if r.Temperature < c.TCMB {
			r.Temperature = c.TCMB
		}
	}
	if !s.isImmutable() && sHC > 0 {
		s.Temperature += heat / sHC
		if s.Temperature < c.TCMB {
			s.Temperature = c.TCMB
		}
	}
}

// TemperatureShareSolid shares heat between a tile and a caller-supplied
// solid temperature/heat-capacity pair (used by superconduction), and
// returns the updated solid temperature.
func (g *Grid) TemperatureShareSolid(receiverIndex int32, k, solidTemp, solidHC float32) float32 {
	r := g.tileAt(receiverIndex)
	if r == nil {
		return solidTemp
	}
	c := &g.Config.Constants
	heats := g.Config.GasSpecificHeats[:]

	rHC := GetHeatCapacity(r.MolesArchived[:GasCount], heats[:GasCount], r.isSpace(), c)
	if rHC+solidHC <= 0 {
		return solidTemp
	}
	dT := r.TempArchived - solidTemp
	heat := k * dT * (rHC * solidHC) / (rHC + solidHC)

	if !r.isImmutable() && rHC > 0 {
		r.Temperature -= heat / rHC
		if r.Temperature < c.TCMB {
			r.Temperature = c.TCMB
		}
	}
	newSolid := solidTemp
	if solidHC > 0 {
		newSolid += heat / solidHC
		if newSolid < c.TCMB {
			newSolid = c.TCMB
		}
	}
	return newSolid
}

// lastShareCheck resets a tile's excited group's cooldowns based on the
// magnitude of its last Linda share.
func (g *Grid) lastShareCheck(index int32) {
	t := g.tileAt(index)
	if t == nil || t.ExcitedGroupID == NoGroup {
		return
	}
	c := &g.Config.Constants
	if t.LastShare > c.MinimumAirToSuspend {
		g.resetExcitedGroupCooldowns(t.ExcitedGroupID)
	} else if t.LastShare > c.MinimumMolesDeltaToMove {
		if eg := g.groupAt(t.ExcitedGroupID); eg != nil {
			eg.DismantleCooldown = 0
		}
	}
}

// CompareExchange reports the verdict the Monstermos fast path and
// process_cell use to decide whether two tiles still need to exchange:
// the index of the first species whose delta exceeds both thresholds, or
// -1 meaning "temperature still differs enough to matter", or -2 meaning
// "no exchange needed, stay quiescent". Not antisymmetric: the verdict is
// defined by A's composition.
func (g *Grid) CompareExchange(a, b int32) int {
	ta := g.tileAt(a)
	tb := g.tileAt(b)
	if ta == nil || tb == nil {
		return -2
	}
	c := &g.Config.Constants
	for i := 0; i < GasCount; i++ {
		delta := abs32(ta.Moles[i] - tb.Moles[i])
		if delta > c.MinimumMolesDeltaToMove && delta > ta.Moles[i]*c.MinimumAirRatioToMove {
			return i
		}
	}
	if TotalMoles(ta) > c.MinimumMolesDeltaToMove && abs32(ta.Temperature-tb.Temperature) > c.MinimumTemperatureDeltaToSuspend {
		return -1
	}
	return -2
}

package atmos

// Process runs the full per-cycle pipeline in the fixed order the
// Ordering guarantees (§5) require: increment the cycle counter, process
// active tiles under the wall-clock budget, advance excited-group
// timers, update hotspots, run superconduction, then drain the
// high-pressure list.
func (g *Grid) Process() AtmosResult {
	if g == nil {
		return AtmosResult{ProcessingComplete: true}
	}
	g.updateCounter++

	var result AtmosResult
	activeResult := g.processActiveTiles()
	result.TilesProcessed = activeResult.TilesProcessed
	result.ProcessingComplete = activeResult.ProcessingComplete

	if g.Config.ExcitedGroupsEnabled {
		result.ExcitedGroupsCount = g.processExcitedGroups()
	}

	result.HotspotTilesCount = g.processHotspots()

	if g.Config.SuperconductionEnabled {
		result.SuperconductTilesCount = g.processSuperconductivity()
	}

	result.MaxPressureDelta = g.processHighPressure()
	result.ActiveTilesCount = int32(len(g.activeTiles))

	g.log.Debugf("grid %s: cycle %d complete=%v tiles=%d", g.ID, g.updateCounter, result.ProcessingComplete, result.TilesProcessed)
	return result
}

// processActiveTiles archives every non-immutable tile, then walks the
// active list, polling the wall-clock budget every 30 tiles.
//
// Unlike the original (whose top-level atmos_process never copies this
// inner ProcessingComplete into its own result), this port propagates it
// faithfully — §7 and §8 both treat processingComplete=0 as an
// observable contract; see SPEC_FULL.md item 2.
func (g *Grid) processActiveTiles() AtmosResult {
	g.archiveActive()

	clock := startBudgetClock()
	budget := g.Config.MaxProcessTimeMicroseconds

	var processed int32
	complete := true

	i := 0
	for i < len(g.activeTiles) {
		idx := g.activeTiles[i]
		before := len(g.activeTiles)
		if g.Config.MonstermosEnabled {
			g.EqualizePressureZone(idx)
		}
		g.processCell(idx)
		processed++

		if len(g.activeTiles) < before && i < len(g.activeTiles) {
			// the tile at i was removed via swap-remove; re-visit i.
		} else {
			i++
		}

		if processed%30 == 0 && budget > 0 {
			if clock.elapsedMicroseconds() > budget {
				complete = false
				break
			}
		}
	}

	return AtmosResult{TilesProcessed: processed, ProcessingComplete: complete}
}

// processCell is the per-tile body of the active-tile loop: merge/share
// with unprocessed neighbors, run reactions, consider superconduction,
// and deactivate if the tile has settled and excited groups are in use.
func (g *Grid) processCell(index int32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	if t.isImmutable() {
		g.RemoveActiveTile(index)
		return
	}
	t.LastCycle = g.updateCounter

	neighborCount := 0
	for dir := 0; dir < DirCount; dir++ {
		if t.AdjacentBits&(1<<dir) != 0 {
			neighborCount++
		}
	}

	for dir := 0; dir < DirCount; dir++ {
		bit := uint8(1 << dir)
		if t.AdjacentBits&bit == 0 {
			continue
		}
		nIdx := t.AdjacentIndices[dir]
		n := g.tileAt(nIdx)
		if n == nil || n.isImmutable() || n.LastCycle == g.updateCounter {
			continue
		}

		shareAir := false
		if g.Config.ExcitedGroupsEnabled && t.ExcitedGroupID != NoGroup && n.ExcitedGroupID != NoGroup {
			if t.ExcitedGroupID != n.ExcitedGroupID {
				g.mergeExcitedGroups(t.ExcitedGroupID, n.ExcitedGroupID)
			}
			shareAir = true
		} else {
			verdict := g.CompareExchange(index, nIdx)
			if verdict != -2 {
				g.AddActiveTile(nIdx)
				if g.Config.ExcitedGroupsEnabled {
					g.ensureSharedGroup(index, nIdx)
				}
				shareAir = true
			}
		}

		if shareAir {
			g.Share(index, nIdx, neighborCount)
			if !g.Config.MonstermosEnabled {
				pDiff := Pressure(t, g.Config.Constants.R, g.Config.Constants.CellVolume) - Pressure(n, g.Config.Constants.R, g.Config.Constants.CellVolume)
				g.considerPressureDifference(index, int32(dir), pDiff)
				g.considerPressureDifference(nIdx, int32(OppositeDir(dir)), -pDiff)
			}
			g.lastShareCheck(index)
		}
	}

	g.React(index)

	if t.Temperature > g.Config.Constants.MinimumTemperatureStartSuperConduction {
		if g.considerSuperconductivity(index, true) {
			return
		}
	}

	if g.Config.ExcitedGroupsEnabled && t.ExcitedGroupID == NoGroup {
		g.RemoveActiveTile(index)
	}
}

// processExcitedGroups advances every non-disposed group's cooldowns,
// self-breaking-down groups past the breakdown threshold and
// deactivating groups past the dismantle threshold (breakdown takes
// priority when both fire the same cycle).
func (g *Grid) processExcitedGroups() int32 {
	count := int32(0)
	for i := range g.excitedGroups {
		eg := &g.excitedGroups[i]
		if eg.Disposed {
			continue
		}
		count++
		eg.BreakdownCooldown++
		eg.DismantleCooldown++

		if eg.BreakdownCooldown > g.Config.Constants.ExcitedGroupBreakdownCycles {
			g.selfBreakdownGroup(eg.ID)
		} else if eg.DismantleCooldown > g.Config.Constants.ExcitedGroupsDismantleCycles {
			g.deactivateGroupTiles(eg.ID)
		}
	}
	return count
}

// processHotspots iterates the hotspot list unconditionally (hotspots
// have no enable flag, unlike the other three gated stages).
func (g *Grid) processHotspots() int32 {
	for _, idx := range append([]int32(nil), g.hotspotTiles...) {
		g.processHotspot(idx)
	}
	return int32(len(g.hotspotTiles))
}

// processSuperconductivity iterates the superconduct list.
func (g *Grid) processSuperconductivity() int32 {
	for _, idx := range append([]int32(nil), g.superconductTiles...) {
		g.processSuperconduction(idx)
	}
	return int32(len(g.superconductTiles))
}

// ProcessActiveTiles runs just the active-tile stage, for hosts driving
// the pipeline stage-by-stage instead of via Process.
func (g *Grid) ProcessActiveTiles() AtmosResult {
	if g == nil {
		return AtmosResult{ProcessingComplete: true}
	}
	g.updateCounter++
	return g.processActiveTiles()
}

// ProcessExcitedGroups runs just the excited-group timer stage.
func (g *Grid) ProcessExcitedGroups() AtmosResult {
	return AtmosResult{ExcitedGroupsCount: g.processExcitedGroups(), ProcessingComplete: true}
}

// ProcessHotspots runs just the hotspot stage.
func (g *Grid) ProcessHotspots() AtmosResult {
	return AtmosResult{HotspotTilesCount: g.processHotspots(), ProcessingComplete: true}
}

// ProcessSuperconductivity runs just the superconduction stage.
func (g *Grid) ProcessSuperconductivity() AtmosResult {
	return AtmosResult{SuperconductTilesCount: g.processSuperconductivity(), ProcessingComplete: true}
}

// ProcessHighPressure runs just the high-pressure drain stage.
func (g *Grid) ProcessHighPressure() AtmosResult {
	return AtmosResult{MaxPressureDelta: g.processHighPressure(), ProcessingComplete: true}
}

// ProcessRevalidate is a reserved entry point: a literal no-op that
// returns an always-complete, zeroed result. The name suggests a future
// "re-test active tiles' suspend conditions" pass that was never
// implemented upstream; see the Open Questions design note.
func (g *Grid) ProcessRevalidate() AtmosResult {
	return AtmosResult{ProcessingComplete: true}
}

// GetVersion reports the engine's version number.
func GetVersion() int32 { return 1 }

// GetActiveTileCount, GetHotspotTileCount, GetSuperconductTileCount, and
// GetExcitedGroupCount are read accessors for the host's diagnostics.
func (g *Grid) GetActiveTileCount() int32      { return int32(len(g.activeTiles)) }
func (g *Grid) GetHotspotTileCount() int32      { return int32(len(g.hotspotTiles)) }
func (g *Grid) GetSuperconductTileCount() int32 { return int32(len(g.superconductTiles)) }
func (g *Grid) GetExcitedGroupCount() int32 {
	count := int32(0)
	for _, eg := range g.excitedGroups {
		if !eg.Disposed {
			count++
		}
	}
	return count
}

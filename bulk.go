package atmos

// GetHeatCapacity computes a tile's heat capacity: space tiles with an
// ~empty mixture report the vacuum constant; otherwise it is the
// dot product of moles and the configured per-species specific heats,
// floored at MinimumHeatCapacity.
func GetHeatCapacity(moles []float32, specificHeats []float32, space bool, c *AtmosConstants) float32 {
	if space && totalMolesSlice(moles) < c.GasMinMoles {
		return c.SpaceHeatCapacity
	}
	hc := dotProduct(moles, specificHeats)
	if hc < c.MinimumHeatCapacity {
		return c.MinimumHeatCapacity
	}
	return hc
}

// GetHeatCapacityArchived is GetHeatCapacity applied to a tile's archived
// mixture, used by pairwise exchanges that must not read live values
// mid-cycle (see the Archive semantics design note).
func (g *Grid) GetHeatCapacityArchived(index int32) float32 {
	t := g.tileAt(index)
	if t == nil {
		return 0
	}
	return GetHeatCapacity(t.MolesArchived[:GasCount], g.Config.GasSpecificHeats[:GasCount], t.isSpace(), &g.Config.Constants)
}

// GetHeatCapacityForTile is the live-mixture counterpart of
// GetHeatCapacityArchived.
func (g *Grid) GetHeatCapacityForTile(index int32) float32 {
	t := g.tileAt(index)
	if t == nil {
		return 0
	}
	return GetHeatCapacity(t.Moles[:GasCount], g.Config.GasSpecificHeats[:GasCount], t.isSpace(), &g.Config.Constants)
}

// GetThermalEnergy returns temperature * heat capacity for the tile's
// live mixture.
func (g *Grid) GetThermalEnergy(index int32) float32 {
	t := g.tileAt(index)
	if t == nil {
		return 0
	}
	return t.Temperature * g.GetHeatCapacityForTile(index)
}

// ArchiveTile snapshots a tile's current moles and temperature into its
// archive fields. Called once per non-immutable tile at the top of
// active-tile processing; pairwise exchanges read the archive instead of
// live values to avoid order dependence within a cycle.
func ArchiveTile(t *Tile) {
	copyInto(t.MolesArchived[:], t.Moles[:])
	t.TempArchived = t.Temperature
}

// ArchiveAll archives every tile in the grid, immutable or not — matching
// the source's archive_all, which is an unconditional full sweep used by
// tests and by callers driving the stage-selective API directly.
func (g *Grid) ArchiveAll() {
	for i := range g.tiles {
		ArchiveTile(&g.tiles[i])
	}
}

// archiveActive archives every non-immutable tile; this is what the
// cycle orchestrator runs at the top of process_active_tiles, skipping
// immutable tiles since their moles/temperature never change anyway.
func (g *Grid) archiveActive() {
	for i := range g.tiles {
		t := &g.tiles[i]
		if t.isImmutable() {
			continue
		}
		ArchiveTile(t)
	}
}

// Merge folds giverMoles/giverTemp into receiver in place. If the
// temperature delta exceeds minTempDelta and the combined heat capacity
// exceeds minHC, the receiver's temperature becomes the energy-weighted
// mean of the two; moles are always added afterward. A no-op on an
// immutable receiver.
func Merge(receiver *Tile, giverMoles []float32, giverTemp float32, specificHeats []float32, minTempDelta, minHC float32) {
	if receiver.isImmutable() {
		return
	}
	if abs32(receiver.Temperature-giverTemp) > minTempDelta {
		recvHC := dotProduct(receiver.Moles[:GasCount], specificHeats[:GasCount])
		giveHC := dotProduct(giverMoles[:GasCount], specificHeats[:GasCount])
		combined := recvHC + giveHC
		if combined > minHC {
			receiver.Temperature = (receiver.Temperature*recvHC + giverTemp*giveHC) / combined
		}
	}
	addInto(receiver.Moles[:], receiver.Moles[:], giverMoles)
}

// Merge is the public wrapper named in §6. It hardcodes the same literal
// thresholds the original atmos_merge hardcodes rather than reading live
// config — see SPEC_FULL.md's Public-vs-internal API split.
func (g *Grid) Merge(receiverIndex int32, giverMoles []float32, giverTemp float32) {
	t := g.tileAt(receiverIndex)
	if t == nil {
		return
	}
	Merge(t, giverMoles, giverTemp, g.Config.GasSpecificHeats[:], 0.01, 0.0003)
}

// RemoveGas removes amount moles (composition-preserving) from a tile,
// via RemoveRatio with ratio = amount/total.
func (g *Grid) RemoveGas(index int32, amount float32, out []float32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	total := TotalMoles(t)
	if total <= 0 {
		zeroFill(out)
		return
	}
	ratio := amount / total
	g.removeRatioImpl(t, ratio, out, 0.00000005)
}

// removeRatioImpl is the internally-used remove_ratio_impl: clamps ratio
// to [0,1], fills out with ratio*moles at the tile's current temperature,
// reduces the tile by that amount (skipped if immutable), and snaps any
// resulting species below gasMinMoles to zero on both sides.
func (g *Grid) removeRatioImpl(t *Tile, ratio float32, out []float32, gasMinMoles float32) {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	scaleInto(out, t.Moles[:], ratio)
	if len(out) > GasCount {
		for i := GasCount; i < len(out); i++ {
			out[i] = 0
		}
	}
	snapMinMoles(out, gasMinMoles)
	if t.isImmutable() {
		return
	}
	for i := 0; i < GasCount; i++ {
		t.Moles[i] -= out[i]
		if t.Moles[i] < 0 {
			t.Moles[i] = 0
		}
	}
	snapMinMoles(t.Moles[:], gasMinMoles)
}

// RemoveRatio is the public wrapper named in §6. Like Merge, it hardcodes
// the original's literal gasMinMoles rather than reading live config.
func (g *Grid) RemoveRatio(index int32, ratio float32, out []float32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	g.removeRatioImpl(t, ratio, out, 0.00000005)
}

func snapMinMoles(moles []float32, gasMinMoles float32) {
	for i := 0; i < GasCount && i < len(moles); i++ {
		if moles[i] < gasMinMoles {
			moles[i] = 0
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

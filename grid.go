package atmos

import "github.com/google/uuid"

// ExcitedGroup unifies a connected region of tiles still exchanging
// mass. See the Excited groups component and the Flag-as-set-membership
// design note: Disposed slots are reused by CreateExcitedGroup.
type ExcitedGroup struct {
	ID                int32
	BreakdownCooldown int32
	DismantleCooldown int32
	TileIndices       []int32
	Disposed          bool
}

// AtmosResult is the per-call report produced by Process and the
// stage-selective entry points.
type AtmosResult struct {
	TilesProcessed        int32
	ActiveTilesCount       int32
	HotspotTilesCount      int32
	SuperconductTilesCount int32
	ExcitedGroupsCount     int32
	ReactionsTriggered     int32
	MaxPressureDelta       float32
	ProcessingComplete     bool
}

// Grid is a GridState: the dense tile array plus the bookkeeping lists
// every stage of the pipeline reads and mutates. Owned exclusively by
// whichever caller is executing an engine entry point — engine operations
// assume no concurrent reader or writer (see Concurrency & Resource
// Model).
type Grid struct {
	ID uuid.UUID

	Config AtmosConfig
	log    Logger

	tiles []Tile

	activeTiles []int32

	hotspotTiles []int32

	superconductTiles []int32

	highPressureTiles []int32

	excitedGroups []ExcitedGroup

	updateCounter          int64
	equalizationQueueCycle int64
}

// CreateGrid allocates a new Grid. initialCapacity is floored to 64,
// matching atmos_create_grid.
func CreateGrid(initialCapacity int, cfg AtmosConfig, logger Logger) *Grid {
	if initialCapacity < 64 {
		initialCapacity = 64
	}
	g := &Grid{
		ID:     uuid.New(),
		Config: cfg,
		log:    logOrNop(logger),

		tiles:             make([]Tile, 0, initialCapacity),
		activeTiles:       make([]int32, 0, initialCapacity),
		hotspotTiles:      make([]int32, 0, 16),
		superconductTiles: make([]int32, 0, 16),
		highPressureTiles: make([]int32, 0, 16),
		excitedGroups:     make([]ExcitedGroup, 0, 256),

		updateCounter: 1,
	}
	g.log.Debugf("grid %s: created with capacity %d", g.ID, initialCapacity)
	return g
}

// DestroyGrid releases a grid's backing storage. The engine never frees
// individual tiles — only the whole grid, by dropping the reference.
func DestroyGrid(g *Grid) {
	if g == nil {
		return
	}
	*g = Grid{}
}

// ResetGrid clears counts while retaining the array capacities allocated
// so far, resets updateCounter to 1 and equalizationQueueCycle to 0,
// matching atmos_reset_grid.
func (g *Grid) ResetGrid() {
	if g == nil {
		return
	}
	g.tiles = g.tiles[:0]
	g.activeTiles = g.activeTiles[:0]
	g.hotspotTiles = g.hotspotTiles[:0]
	g.superconductTiles = g.superconductTiles[:0]
	g.highPressureTiles = g.highPressureTiles[:0]
	g.excitedGroups = g.excitedGroups[:0]
	g.updateCounter = 1
	g.equalizationQueueCycle = 0
}

// AddTile appends a tile, growing capacity by doubling, and returns its
// stable index.
func (g *Grid) AddTile(template Tile) int32 {
	if g == nil {
		return -1
	}
	template.ExcitedGroupID = NoGroup
	g.tiles = append(g.tiles, template)
	return int32(len(g.tiles) - 1)
}

// UpdateTile bulk-overwrites a tile's record; no validation besides range.
func (g *Grid) UpdateTile(index int32, template Tile) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	*t = template
}

// GetTile returns a copy of the tile at index, or the zero Tile if out of
// range.
func (g *Grid) GetTile(index int32) Tile {
	t := g.tileAt(index)
	if t == nil {
		return Tile{}
	}
	return *t
}

// GetTilesPtr exposes the backing tile slice directly, for hosts that
// want to read many tiles without per-call copies.
func (g *Grid) GetTilesPtr() []Tile { return g.tiles }

// GetTileCount returns the number of tiles currently in the grid.
func (g *Grid) GetTileCount() int32 { return int32(len(g.tiles)) }

// SetAdjacency updates a tile's adjacency slot. The host is responsible
// for symmetry (invariant 7).
func (g *Grid) SetAdjacency(index int32, direction int, neighbor int32) {
	t := g.tileAt(index)
	if t == nil || direction < 0 || direction >= DirCount {
		return
	}
	t.AdjacentIndices[direction] = neighbor
	bit := uint8(1 << direction)
	if neighbor < 0 {
		t.AdjacentBits &^= bit
	} else {
		t.AdjacentBits |= bit
	}
}

// tileAt returns a pointer to the tile at index, or nil if out of range —
// the shared guard behind the silent-null-guard contract.
func (g *Grid) tileAt(index int32) *Tile {
	if g == nil || index < 0 || int(index) >= len(g.tiles) {
		return nil
	}
	return &g.tiles[index]
}

// --- active tile list -------------------------------------------------

// AddActiveTile adds a tile to the active list if not already present,
// setting FlagExcited. O(1) thanks to the flag check.
func (g *Grid) AddActiveTile(index int32) {
	t := g.tileAt(index)
	if t == nil || t.isExcited() {
		return
	}
	t.Flags |= FlagExcited
	g.activeTiles = append(g.activeTiles, index)
}

// RemoveActiveTile removes a tile from the active list (swap-remove) and
// disposes its excited group, matching atmos_remove_active_tile.
func (g *Grid) RemoveActiveTile(index int32) {
	t := g.tileAt(index)
	if t == nil || !t.isExcited() {
		return
	}
	for i, v := range g.activeTiles {
		if v == index {
			last := len(g.activeTiles) - 1
			g.activeTiles[i] = g.activeTiles[last]
			g.activeTiles = g.activeTiles[:last]
			break
		}
	}
	t.Flags &^= FlagExcited
	if t.ExcitedGroupID != NoGroup {
		g.disposeExcitedGroup(t.ExcitedGroupID)
	}
}

// --- hotspot list -------------------------------------------------------

func (g *Grid) addHotspotTile(index int32) {
	for _, v := range g.hotspotTiles {
		if v == index {
			return
		}
	}
	g.hotspotTiles = append(g.hotspotTiles, index)
}

func (g *Grid) removeHotspotTile(index int32) {
	for i, v := range g.hotspotTiles {
		if v == index {
			last := len(g.hotspotTiles) - 1
			g.hotspotTiles[i] = g.hotspotTiles[last]
			g.hotspotTiles = g.hotspotTiles[:last]
			return
		}
	}
}

// --- superconduct list ---------------------------------------------------

func (g *Grid) addSuperconductTile(index int32) {
	t := g.tileAt(index)
	if t == nil || t.isSuperconduct() {
		return
	}
	t.Flags |= FlagSuperconduct
	g.superconductTiles = append(g.superconductTiles, index)
}

func (g *Grid) removeSuperconductTile(index int32) {
	t := g.tileAt(index)
	if t == nil || !t.isSuperconduct() {
		return
	}
	for i, v := range g.superconductTiles {
		if v == index {
			last := len(g.superconductTiles) - 1
			g.superconductTiles[i] = g.superconductTiles[last]
			g.superconductTiles = g.superconductTiles[:last]
			break
		}
	}
	t.Flags &^= FlagSuperconduct
}

// --- high pressure list --------------------------------------------------

// considerPressureDifference records a pressure-difference observation
// if it is larger (in magnitude) than what the tile currently holds, and
// appends the tile to the high-pressure list if it isn't there yet.
func (g *Grid) considerPressureDifference(index int32, dir int32, diff float32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	if abs32(diff) <= t.PressureDifference {
		return
	}
	t.PressureDifference = abs32(diff)
	t.CurrentTransferDirection = dir
	for _, v := range g.highPressureTiles {
		if v == index {
			return
		}
	}
	g.highPressureTiles = append(g.highPressureTiles, index)
}

// addHighPressureTileUnconditional appends without deduplication, as
// explosive_depressurize does in the original (see SPEC_FULL.md item 5's
// sibling note on asymmetric list-insert behavior being preserved
// literally across components).
func (g *Grid) addHighPressureTileUnconditional(index int32) {
	g.highPressureTiles = append(g.highPressureTiles, index)
}

// --- excited groups -------------------------------------------------------

func (g *Grid) createExcitedGroup() int32 {
	for i := range g.excitedGroups {
		if g.excitedGroups[i].Disposed {
			eg := &g.excitedGroups[i]
			eg.Disposed = false
			eg.BreakdownCooldown = 0
			eg.DismantleCooldown = 0
			eg.TileIndices = eg.TileIndices[:0]
			return eg.ID
		}
	}
	id := int32(len(g.excitedGroups))
	g.excitedGroups = append(g.excitedGroups, ExcitedGroup{ID: id})
	return id
}

func (g *Grid) groupAt(id int32) *ExcitedGroup {
	if id < 0 || int(id) >= len(g.excitedGroups) {
		return nil
	}
	eg := &g.excitedGroups[id]
	if eg.Disposed {
		return nil
	}
	return eg
}

func (g *Grid) addTileToExcitedGroup(groupID, tileIndex int32) {
	eg := g.groupAt(groupID)
	t := g.tileAt(tileIndex)
	if eg == nil || t == nil {
		return
	}
	if t.ExcitedGroupID == groupID {
		return
	}
	if t.ExcitedGroupID != NoGroup {
		g.removeTileFromExcitedGroup(tileIndex)
	}
	eg.TileIndices = append(eg.TileIndices, tileIndex)
	t.ExcitedGroupID = groupID
}

func (g *Grid) removeTileFromExcitedGroup(tileIndex int32) {
	t := g.tileAt(tileIndex)
	if t == nil || t.ExcitedGroupID == NoGroup {
		return
	}
	eg := g.groupAt(t.ExcitedGroupID)
	t.ExcitedGroupID = NoGroup
	if eg == nil {
		return
	}
	for i, v := range eg.TileIndices {
		if v == tileIndex {
			last := len(eg.TileIndices) - 1
			eg.TileIndices[i] = eg.TileIndices[last]
			eg.TileIndices = eg.TileIndices[:last]
			break
		}
	}
	if len(eg.TileIndices) == 0 {
		g.disposeExcitedGroup(eg.ID)
	}
}

// mergeExcitedGroups reparents every tile in g2 into g1 and disposes g2.
func (g *Grid) mergeExcitedGroups(g1, g2 int32) {
	if g1 == g2 {
		return
	}
	src := g.groupAt(g2)
	dst := g.groupAt(g1)
	if src == nil || dst == nil {
		return
	}
	for _, ti := range src.TileIndices {
		if t := g.tileAt(ti); t != nil {
			t.ExcitedGroupID = g1
		}
	}
	dst.TileIndices = append(dst.TileIndices, src.TileIndices...)
	g.excitedGroups[g2].TileIndices = nil
	g.excitedGroups[g2].Disposed = true
}

func (g *Grid) disposeExcitedGroup(id int32) {
	eg := g.groupAt(id)
	if eg == nil {
		return
	}
	for _, ti := range eg.TileIndices {
		if t := g.tileAt(ti); t != nil {
			t.ExcitedGroupID = NoGroup
		}
	}
	eg.TileIndices = nil
	eg.Disposed = true
}

func (g *Grid) resetExcitedGroupCooldowns(id int32) {
	eg := g.groupAt(id)
	if eg == nil {
		return
	}
	eg.BreakdownCooldown = 0
	eg.DismantleCooldown = 0
}

// ensureSharedGroup makes sure both tiles belong to the same excited
// group, creating one if neither has one, adopting the other's group if
// exactly one does, or merging if both do and differ.
func (g *Grid) ensureSharedGroup(a, b int32) {
	ta, tb := g.tileAt(a), g.tileAt(b)
	if ta == nil || tb == nil {
		return
	}
	switch {
	case ta.ExcitedGroupID == NoGroup && tb.ExcitedGroupID == NoGroup:
		id := g.createExcitedGroup()
		g.addTileToExcitedGroup(id, a)
		g.addTileToExcitedGroup(id, b)
	case ta.ExcitedGroupID == NoGroup:
		g.addTileToExcitedGroup(tb.ExcitedGroupID, a)
	case tb.ExcitedGroupID == NoGroup:
		g.addTileToExcitedGroup(ta.ExcitedGroupID, b)
	case ta.ExcitedGroupID != tb.ExcitedGroupID:
		g.mergeExcitedGroups(ta.ExcitedGroupID, tb.ExcitedGroupID)
	}
}

// deactivateGroupTiles removes every member of a group from the active
// list, then disposes the group.
func (g *Grid) deactivateGroupTiles(id int32) {
	eg := g.groupAt(id)
	if eg == nil {
		return
	}
	members := append([]int32(nil), eg.TileIndices...)
	for _, ti := range members {
		g.RemoveActiveTile(ti)
	}
	g.disposeExcitedGroup(id)
}

// selfBreakdownGroup redistributes temperature and moles uniformly
// across a group's mutable members, using the energy-weighted mean
// temperature, and resets the breakdown cooldown.
func (g *Grid) selfBreakdownGroup(id int32) {
	eg := g.groupAt(id)
	if eg == nil || len(eg.TileIndices) == 0 {
		return
	}
	var totalEnergy, totalHC float32
	var sumMoles [GasArraySize]float32
	mutableCount := 0
	for _, ti := range eg.TileIndices {
		t := g.tileAt(ti)
		if t == nil || t.isImmutable() {
			continue
		}
		hc := g.GetHeatCapacityForTile(ti)
		totalEnergy += t.Temperature * hc
		totalHC += hc
		addInto(sumMoles[:], sumMoles[:], t.Moles[:])
		mutableCount++
	}
	if mutableCount == 0 {
		eg.BreakdownCooldown = 0
		return
	}
	meanTemp := g.Config.Constants.TCMB
	if totalHC > 0 {
		meanTemp = totalEnergy / totalHC
	}
	var meanMoles [GasArraySize]float32
	scaleInto(meanMoles[:], sumMoles[:], 1.0/float32(mutableCount))
	for _, ti := range eg.TileIndices {
		t := g.tileAt(ti)
		if t == nil || t.isImmutable() {
			continue
		}
		copyInto(t.Moles[:], meanMoles[:])
		t.Temperature = clamp32(meanTemp, g.Config.Constants.TCMB, g.Config.Constants.Tmax)
	}
	eg.BreakdownCooldown = 0
}

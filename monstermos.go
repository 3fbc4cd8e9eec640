package atmos

import "sort"

// zoneTile is one tile visited by the Monstermos BFS: its index and its
// redistribution scratch (mole delta and giver/taker class). parentDir is
// not set or read; the slow path keeps each tile's direction back toward
// the tile that discovered it in Tile.CurrentTransferDirection.
type zoneTile struct {
	index         int32
	moleDelta     float32
	giver         bool
	parentDir     int32
}

// EqualizePressureZone is the Monstermos entry point: zone-scale
// redistribution of mass starting from a tile. See the Equalization
// component description for the full seven-step algorithm.
func (g *Grid) EqualizePressureZone(startIndex int32) {
	start := g.tileAt(startIndex)
	if start == nil {
		return
	}
	c := &g.Config.Constants

	// Step 1: archive-test short-circuit.
	anyDifferent := false
	for dir := 0; dir < DirCount; dir++ {
		bit := uint8(1 << dir)
		if start.AdjacentBits&bit == 0 {
			continue
		}
		neighbor := g.tileAt(start.AdjacentIndices[dir])
		if neighbor == nil {
			continue
		}
		if abs32(TotalMoles(neighbor)-TotalMoles(start)) > c.MinimumMolesDeltaToMove {
			anyDifferent = true
			break
		}
	}
	if !anyDifferent {
		start.LastCycle = g.updateCounter
		return
	}

	// Step 2: BFS from the start tile, soft/hard limited.
	g.equalizationQueueCycle++
	queueCycle := g.equalizationQueueCycle

	visited := make([]zoneTile, 0, c.MonstermosTileLimit)
	queued := make([]int32, 0, c.MonstermosHardTileLimit)
	hardLimit := int(c.MonstermosHardTileLimit)
	softLimit := int(c.MonstermosTileLimit)

	start.MoleDelta = 0
	start.FastDone = false
	start.TransferDirections = [DirCount]float32{}

	frontier := []int32{startIndex}
	start.LastQueueCycle = queueCycle
	queued = append(queued, startIndex)

	hitSpace := false
	var spaceIndex int32 = -1

	for len(frontier) > 0 && len(queued) < hardLimit {
		cur := frontier[0]
		frontier = frontier[1:]
		curTile := g.tileAt(cur)
		if curTile == nil {
			continue
		}
		if len(visited) < softLimit {
			visited = append(visited, zoneTile{index: cur})
		}
		for dir := 0; dir < DirCount; dir++ {
			bit := uint8(1 << dir)
			if curTile.AdjacentBits&bit == 0 {
				continue
			}
			nIdx := curTile.AdjacentIndices[dir]
			n := g.tileAt(nIdx)
			if n == nil || n.LastQueueCycle == queueCycle {
				continue
			}
			n.MoleDelta = 0
			n.FastDone = false
			n.TransferDirections = [DirCount]float32{}
			n.LastQueueCycle = queueCycle
			if n.isSpace() && g.Config.SpacingEnabled {
				hitSpace = true
				spaceIndex = nIdx
				break
			}
			queued = append(queued, nIdx)
			frontier = append(frontier, nIdx)
			if len(queued) >= hardLimit {
				break
			}
		}
		if hitSpace {
			break
		}
	}

	if hitSpace {
		g.ExplosiveDepressurize(spaceIndex)
		return
	}

	// Step 3: classify.
	var total float32
	for _, zt := range visited {
		t := g.tileAt(zt.index)
		total += TotalMoles(t)
	}
	n := len(visited)
	if n == 0 {
		return
	}
	mean := total / float32(n)

	var givers, takers int
	for i := range visited {
		t := g.tileAt(visited[i].index)
		visited[i].moleDelta = TotalMoles(t) - mean
		t.MoleDelta = visited[i].moleDelta
		if visited[i].moleDelta > 0 {
			visited[i].giver = true
			givers++
		} else {
			takers++
		}
	}

	logN := log2Int(n)

	// Step 4: fast path.
	if givers > logN && takers > logN {
		sort.Slice(visited, func(i, j int) bool { return visited[i].moleDelta < visited[j].moleDelta })
		for i := range visited {
			t := g.tileAt(visited[i].index)
			if t.FastDone || visited[i].moleDelta <= 0 {
				continue
			}
			eligible := eligibleNeighbors(g, visited[i].index, queueCycleSet(visited))
			if len(eligible) == 0 {
				continue
			}
			share := visited[i].moleDelta / float32(len(eligible))
			for _, dir := range eligible {
				nIdx := t.AdjacentIndices[dir]
				g.adjustEqMovement(visited[i].index, nIdx, int32(dir), share)
			}
			t.FastDone = true
		}
		// Re-classify after fast path.
		total = 0
		for _, zt := range visited {
			total += TotalMoles(g.tileAt(zt.index))
		}
		mean = total / float32(n)
		givers, takers = 0, 0
		for i := range visited {
			t := g.tileAt(visited[i].index)
			visited[i].moleDelta = TotalMoles(t) - mean
			t.MoleDelta = visited[i].moleDelta
			if visited[i].moleDelta > 0 {
				visited[i].giver = true
				givers++
			} else {
				takers++
			}
		}
	}

	// Step 5: slow path, on whichever side is smaller.
	g.equalizeSlowPath(visited, givers <= takers, queueCycle)

	// Step 6: finalize.
	for _, zt := range visited {
		g.finalizeEq(zt.index)
	}

	// Step 7: revisit.
	for _, zt := range visited {
		t := g.tileAt(zt.index)
		if t == nil {
			continue
		}
		for dir := 0; dir < DirCount; dir++ {
			bit := uint8(1 << dir)
			if t.AdjacentBits&bit == 0 {
				continue
			}
			nIdx := t.AdjacentIndices[dir]
			if g.CompareExchange(startIndex, nIdx) != -2 {
				g.AddActiveTile(nIdx)
			}
		}
	}
}

func queueCycleSet(visited []zoneTile) map[int32]bool {
	m := make(map[int32]bool, len(visited))
	for _, zt := range visited {
		m[zt.index] = true
	}
	return m
}

func eligibleNeighbors(g *Grid, index int32, inZone map[int32]bool) []int {
	t := g.tileAt(index)
	var dirs []int
	for dir := 0; dir < DirCount; dir++ {
		bit := uint8(1 << dir)
		if t.AdjacentBits&bit == 0 {
			continue
		}
		nIdx := t.AdjacentIndices[dir]
		if !inZone[nIdx] {
			continue
		}
		n := g.tileAt(nIdx)
		if n == nil || n.FastDone {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

// adjustEqMovement records a transfer of `amount` from src to dst in
// direction dir, writing opposing signs into both tiles'
// TransferDirections scratch.
func (g *Grid) adjustEqMovement(src, dst int32, dir int32, amount float32) {
	s := g.tileAt(src)
	d := g.tileAt(dst)
	if s == nil || d == nil {
		return
	}
	s.TransferDirections[dir] += amount
	opp := OppositeDir(int(dir))
	if opp >= 0 {
		d.TransferDirections[opp] -= amount
	}
}

// equalizeSlowPath floods from each seed on the smaller side (givers if
// fromGivers, else takers), assigning each discovered neighbor a parent
// direction and propagating remaining delta back through the frontier in
// reverse once the flood completes.
func (g *Grid) equalizeSlowPath(visited []zoneTile, fromGivers bool, parentCycle int64) {
	g.equalizationQueueCycle++
	slowCycle := g.equalizationQueueCycle

	inZone := queueCycleSet(visited)

	var seeds []int
	for i, zt := range visited {
		if zt.giver == fromGivers {
			seeds = append(seeds, i)
		}
	}

	var frontierOrder []int32
	remaining := make(map[int32]float32, len(visited))
	for _, zt := range visited {
		remaining[zt.index] = zt.moleDelta
	}

	for _, seedIdx := range seeds {
		seed := visited[seedIdx].index
		seedTile := g.tileAt(seed)
		if seedTile == nil || seedTile.LastSlowQueueCycle == slowCycle {
			continue
		}
		seedTile.LastSlowQueueCycle = slowCycle
		seedTile.CurrentTransferDirection = -1
		seedTile.CurrentTransferAmount = 0
		queue := []int32{seed}
		frontierOrder = append(frontierOrder, seed)

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			curTile := g.tileAt(cur)
			if curTile == nil {
				continue
			}
			for dir := 0; dir < DirCount; dir++ {
				bit := uint8(1 << dir)
				if curTile.AdjacentBits&bit == 0 {
					continue
				}
				nIdx := curTile.AdjacentIndices[dir]
				if !inZone[nIdx] {
					continue
				}
				n := g.tileAt(nIdx)
				if n == nil || n.LastSlowQueueCycle == slowCycle {
					continue
				}
				n.LastSlowQueueCycle = slowCycle
				n.CurrentTransferDirection = int32(OppositeDir(dir))
				n.CurrentTransferAmount = 0
				queue = append(queue, nIdx)
				frontierOrder = append(frontierOrder, nIdx)

				seedDelta := remaining[seed]
				want := remaining[nIdx]
				if fromGivers && seedDelta > 0 && want < 0 {
					move := min32(seedDelta, -want)
					n.CurrentTransferAmount -= move
					remaining[seed] -= move
					remaining[nIdx] += move
				} else if !fromGivers && seedDelta < 0 && want > 0 {
					move := min32(-seedDelta, want)
					n.CurrentTransferAmount += move
					remaining[seed] += move
					remaining[nIdx] -= move
				}
			}
		}
	}

	for i := len(frontierOrder) - 1; i >= 0; i-- {
		idx := frontierOrder[i]
		t := g.tileAt(idx)
		if t == nil || t.CurrentTransferAmount == 0 {
			continue
		}
		dir := t.CurrentTransferDirection
		if dir < 0 || int(dir) >= DirCount {
			continue
		}
		parentIdx := t.AdjacentIndices[dir]
		g.adjustEqMovement(idx, parentIdx, dir, t.CurrentTransferAmount)
		if parent := g.tileAt(parentIdx); parent != nil {
			parent.CurrentTransferAmount += t.CurrentTransferAmount
		}
		t.CurrentTransferAmount = 0
	}
}

// finalizeEq realizes a tile's outgoing TransferDirections as actual
// mass/temperature moves, recording pressure differences as it goes.
// Directions still holding a negative (incoming) amount are resolved
// first by recursing into that neighbor, so the tile has enough supply
// on hand before it gives any away — mirroring finalize_eq_neighbors in
// the original. TransferDirections is zeroed up front, before any
// recursive call, so a cycle of mutual dependents simply sees
// hasTransferDirs false on re-entry and returns immediately.
func (g *Grid) finalizeEq(index int32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}

	var transferDirs [DirCount]float32
	hasTransferDirs := false
	for dir := 0; dir < DirCount; dir++ {
		amount := t.TransferDirections[dir]
		if amount == 0 {
			continue
		}
		transferDirs[dir] = amount
		t.TransferDirections[dir] = 0
		hasTransferDirs = true
	}
	if !hasTransferDirs {
		return
	}

	for dir := 0; dir < DirCount; dir++ {
		bit := uint8(1 << dir)
		if t.AdjacentBits&bit == 0 {
			continue
		}
		amount := transferDirs[dir]
		if amount <= 0 {
			continue
		}
		recvIdx := t.AdjacentIndices[dir]
		recv := g.tileAt(recvIdx)
		if recv == nil {
			continue
		}

		if TotalMoles(t) < amount {
			g.finalizeEqNeighbors(index, transferDirs[:])
		}

		total := TotalMoles(t)
		if total <= 0 {
			continue
		}
		ratio := min32(amount/total, 1.0)

		opp := OppositeDir(dir)
		if opp >= 0 {
			recv.TransferDirections[opp] = 0
		}

		if !t.isImmutable() && !recv.isImmutable() {
			var transferred [GasArraySize]float32
			for i := 0; i < GasCount; i++ {
				transferred[i] = t.Moles[i] * ratio
				t.Moles[i] -= transferred[i]
			}
			Merge(recv, transferred[:], t.Temperature, g.Config.GasSpecificHeats[:], g.Config.Constants.MinimumTemperatureDeltaToConsider, g.Config.Constants.MinimumHeatCapacity)
		}

		g.considerPressureDifference(index, int32(dir), amount)
	}
}

// finalizeEqNeighbors forces every neighbor this tile still expects an
// incoming transfer from (a negative entry in transferDirs) to finalize
// first, so the supply exists before finalizeEq tries to draw on it.
func (g *Grid) finalizeEqNeighbors(index int32, transferDirs []float32) {
	t := g.tileAt(index)
	if t == nil {
		return
	}
	for dir := 0; dir < DirCount; dir++ {
		if transferDirs[dir] >= 0 {
			continue
		}
		bit := uint8(1 << dir)
		if t.AdjacentBits&bit == 0 {
			continue
		}
		adjIdx := t.AdjacentIndices[dir]
		g.finalizeEq(adjIdx)
	}
}

func log2Int(n int) int {
	if n <= 1 {
		return 0
	}
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

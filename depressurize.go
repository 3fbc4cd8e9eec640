package atmos

// ExplosiveDepressurize vents gas from a zone toward a connected region
// of SPACE tiles: a BFS discovers the zone and its space tiles, a
// wavefront expansion builds a progression order pointing toward the
// sink, and a reverse walk moves mass outward, losing 30% to vacuum.
func (g *Grid) ExplosiveDepressurize(startIndex int32) {
	start := g.tileAt(startIndex)
	if start == nil {
		return
	}
	c := &g.Config.Constants
	hardLimit := int(c.MonstermosHardTileLimit)

	g.equalizationQueueCycle++
	queueCycle := g.equalizationQueueCycle

	spaceTiles := make([]int32, 0, 16)
	queued := make([]int32, 0, hardLimit)

	frontier := []int32{startIndex}
	start.LastQueueCycle = queueCycle
	queued = append(queued, startIndex)
	if start.isSpace() {
		spaceTiles = append(spaceTiles, startIndex)
	}

	for len(frontier) > 0 && len(queued) < hardLimit {
		cur := frontier[0]
		frontier = frontier[1:]
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
			n := g.tileAt(nIdx)
			if n == nil || n.LastQueueCycle == queueCycle {
				continue
			}
			n.LastQueueCycle = queueCycle
			queued = append(queued, nIdx)
			if n.isSpace() {
				spaceTiles = append(spaceTiles, nIdx)
			}
			frontier = append(frontier, nIdx)
			if len(queued) >= hardLimit {
				break
			}
		}
	}

	if len(spaceTiles) == 0 {
		return
	}

	if !g.Config.SpacingEnabled {
		// mass-no-op: no tile's gas, temperature or active-list
		// membership is touched.
		return
	}

	g.equalizationQueueCycle++
	slowCycle := g.equalizationQueueCycle

	progression := make([]int32, 0, 2*hardLimit)
	for _, si := range spaceTiles {
		s := g.tileAt(si)
		if s == nil || s.LastSlowQueueCycle == slowCycle {
			continue
		}
		s.LastSlowQueueCycle = slowCycle
		s.CurrentTransferDirection = -1
		progression = append(progression, si)
	}

	// Wavefront expansion.
	for i := 0; i < len(progression); i++ {
		cur := progression[i]
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
			n := g.tileAt(nIdx)
			if n == nil || n.isSpace() || n.LastSlowQueueCycle == slowCycle {
				continue
			}
			n.LastSlowQueueCycle = slowCycle
			n.CurrentTransferDirection = int32(OppositeDir(dir))
			progression = append(progression, nIdx)
		}
	}

	// Reverse-iterate, moving mass outward toward the sink.
	for i := len(progression) - 1; i >= 0; i-- {
		idx := progression[i]
		t := g.tileAt(idx)
		if t == nil {
			continue
		}
		dir := t.CurrentTransferDirection
		if dir < 0 || int(dir) >= DirCount {
			continue
		}
		bit := uint8(1 << dir)
		if t.AdjacentBits&bit == 0 {
			continue
		}
		receiverIdx := t.AdjacentIndices[dir]
		receiver := g.tileAt(receiverIdx)
		if receiver == nil {
			continue
		}

		total := TotalMoles(t)
		sum := total * g.Config.SpacingEscapeRatio
		if sum < g.Config.SpacingMinGas {
			sum = g.Config.SpacingMinGas
		}
		headroom := g.Config.SpacingMaxWind - receiver.CurrentTransferAmount
		if sum > headroom {
			sum = headroom
		}
		if sum < 0 {
			sum = 0
		}

		receiver.CurrentTransferAmount += sum
		receiver.PressureDifference = sum
		g.AddActiveTile(receiverIdx)
		g.addHighPressureTileUnconditional(receiverIdx)

		if total > 0 {
			ratio := clamp32(sum/total, 0, 1)
			var removed [GasArraySize]float32
			scaleInto(removed[:], t.Moles[:], ratio)

			if !t.isImmutable() {
				for gi := 0; gi < GasCount; gi++ {
					t.Moles[gi] -= removed[gi]
					if t.Moles[gi] < 0 {
						t.Moles[gi] = 0
					}
				}
			}

			if !receiver.isSpace() && !receiver.isImmutable() {
				var deposited [GasArraySize]float32
				scaleInto(deposited[:], removed[:], 0.7)
				addInto(receiver.Moles[:], receiver.Moles[:], deposited[:])
			}

			remaining := TotalMoles(t)
			if remaining < g.Config.Constants.GasMinMoles && !t.isImmutable() {
				zeroFill(t.Moles[:])
				t.Temperature = g.Config.Constants.TCMB
			}
		}

		if t.Temperature > 280 && !t.isImmutable() {
			total2 := TotalMoles(t)
			var fraction float32 = 0
			if total > 0 {
				fraction = total2 / total
			}
			t.Temperature *= 0.9 + 0.1*fraction
		}
	}
}

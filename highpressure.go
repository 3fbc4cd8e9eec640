package atmos

import "github.com/go-gl/mathgl/mgl32"

// processHighPressure walks the high-pressure list, lets the host read
// each tile's pressureDifference/currentTransferDirection, then clears
// both and resets the list — matching atmos_process_high_pressure's real
// (non-stub) bookkeeping loop; see SPEC_FULL.md item 4.
func (g *Grid) processHighPressure() float32 {
	var maxDelta float32
	for _, idx := range g.highPressureTiles {
		t := g.tileAt(idx)
		if t == nil {
			continue
		}
		if t.PressureDifference > maxDelta {
			maxDelta = t.PressureDifference
		}
		t.PressureDifference = 0
		t.CurrentTransferDirection = 0
		t.CurrentTransferAmount = 0
	}
	g.highPressureTiles = g.highPressureTiles[:0]
	return maxDelta
}

// HighPressureWind is a read-only convenience the host may ignore: the
// direction/magnitude pair expressed as an mgl32.Vec2, for hosts that
// want to interpret wind geometrically rather than as a direction index.
// Grounded in the host engine's own use of mgl32 for its physics vectors.
func HighPressureWind(t *Tile) mgl32.Vec2 {
	var dir mgl32.Vec2
	switch int(t.CurrentTransferDirection) {
	case DirNorth:
		dir = mgl32.Vec2{0, 1}
	case DirSouth:
		dir = mgl32.Vec2{0, -1}
	case DirEast:
		dir = mgl32.Vec2{1, 0}
	case DirWest:
		dir = mgl32.Vec2{-1, 0}
	}
	return dir.Mul(t.PressureDifference)
}

package atmos

import "testing"

// Scenario 2 from the spec: three standard tiles in a row with a SPACE
// tile to the east of the last one; one ExplosiveDepressurize call must
// lose mass and leave at least one tile with a recorded pressure
// difference.
func TestExplosiveDepressurizeVentsTowardSpace(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	indices := setupLinearGrid(g, cfg, 3)
	space := g.AddTile(spaceTile(cfg, 3, 0))
	setupAdjacency(g, indices[2], space, DirEast)

	before := sumTotalMoles(g)
	g.ExplosiveDepressurize(indices[0])
	after := sumTotalMoles(g)

	if after >= before {
		t.Fatalf("expected mass loss: before %v after %v", before, after)
	}

	foundPressureDiff := false
	for _, idx := range indices {
		if g.GetTile(idx).PressureDifference > 0 {
			foundPressureDiff = true
		}
	}
	if !foundPressureDiff {
		t.Fatalf("expected at least one tile with a recorded pressure difference")
	}
}

func TestExplosiveDepressurizeDisabledBySpacingConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpacingEnabled = false
	g := newTestGrid(cfg)
	indices := setupLinearGrid(g, cfg, 3)
	space := g.AddTile(spaceTile(cfg, 3, 0))
	setupAdjacency(g, indices[2], space, DirEast)

	before := sumTotalMoles(g)
	g.ExplosiveDepressurize(indices[0])
	after := sumTotalMoles(g)

	if abs32(after-before) > 0.0001 {
		t.Fatalf("spacing disabled should be a mass no-op: before %v after %v", before, after)
	}
}

func TestExplosiveDepressurizeNoSpaceIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	indices := setupLinearGrid(g, cfg, 3)

	before := sumTotalMoles(g)
	g.ExplosiveDepressurize(indices[0])
	after := sumTotalMoles(g)

	if abs32(after-before) > 0.0001 {
		t.Fatalf("no reachable space tile should be a mass no-op: before %v after %v", before, after)
	}
}

func TestExplosiveDepressurizeNeverDrainsSpaceTile(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	indices := setupLinearGrid(g, cfg, 2)
	space := g.AddTile(spaceTile(cfg, 2, 0))
	setupAdjacency(g, indices[1], space, DirEast)

	g.ExplosiveDepressurize(indices[0])

	spaceAfter := g.GetTile(space)
	if TotalMoles(&spaceAfter) != 0 {
		t.Fatalf("space tile must never accumulate moles")
	}
}

func TestExplosiveDepressurizeOnNilTileIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)

	g.ExplosiveDepressurize(999)
}

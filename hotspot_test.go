package atmos

import "testing"

func TestIgniteHotspotRequiresFuelAndOxygen(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	tile.Moles[GasOxygen] = 0
	idx := g.AddTile(tile)

	g.IgniteHotspot(idx, cfg.Constants.PlasmaMinimumBurnTemperature+100, 500)

	if g.GetTile(idx).isHotspot() {
		t.Fatalf("tile ignited without oxygen")
	}
}

func TestIgniteHotspotOnSpaceTileNoOp(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	idx := g.AddTile(spaceTile(cfg, 0, 0))

	g.IgniteHotspot(idx, cfg.Constants.PlasmaMinimumBurnTemperature+100, 500)

	if g.GetTile(idx).isHotspot() {
		t.Fatalf("space tile should never ignite")
	}
}

func TestIgniteHotspotOverwritesExisting(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	idx := g.AddTile(plasmaTile(cfg, 0, 0, 10, 30))

	g.IgniteHotspot(idx, 1000, 1000)
	g.IgniteHotspot(idx, 500, 200)

	after := g.GetTile(idx)
	if after.HotspotTemperature != 500 || after.HotspotVolume != 200 {
		t.Fatalf("public IgniteHotspot should overwrite, got T=%v V=%v", after.HotspotTemperature, after.HotspotVolume)
	}
}

func TestIgniteHotspotImplMonotonicRaiseOnly(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	idx := g.AddTile(plasmaTile(cfg, 0, 0, 10, 30))

	g.igniteHotspotImpl(idx, 1000, 1000)
	g.igniteHotspotImpl(idx, 500, 200)

	after := g.GetTile(idx)
	if after.HotspotTemperature != 1000 || after.HotspotVolume != 1000 {
		t.Fatalf("internal ignite should only raise monotonically, got T=%v V=%v", after.HotspotTemperature, after.HotspotVolume)
	}
}

// Scenario 4 from the spec: fire spread between two adjacent plasma-rich
// tiles, not spreading into an adjacent SPACE tile.
func TestFireSpreadDoesNotIgniteSpace(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)

	first := g.AddTile(plasmaTile(cfg, 0, 0, 50, 100))
	second := g.AddTile(plasmaTile(cfg, 1, 0, 50, 100))
	space := g.AddTile(spaceTile(cfg, 2, 0))

	setupAdjacency(g, first, second, DirEast)
	setupAdjacency(g, second, space, DirEast)

	g.IgniteHotspot(first, 1000, 1000)
	g.processHotspot(first)

	if g.GetTile(space).isHotspot() {
		t.Fatalf("space tile must never ignite")
	}
	if !g.GetTile(second).isHotspot() && g.GetTile(second).HotspotTemperature == 0 {
		t.Fatalf("adjacent fuel tile should have caught fire")
	}
}

func TestExtinguishBelowMinimumTemperature(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	idx := g.AddTile(plasmaTile(cfg, 0, 0, 10, 30))

	g.IgniteHotspot(idx, cfg.Constants.FireMinimumTemperatureToExist+10, 1)
	if !g.GetTile(idx).isHotspot() {
		t.Fatalf("setup: hotspot did not ignite")
	}
	g.tiles[idx].HotspotTemperature = cfg.Constants.FireMinimumTemperatureToExist - 1

	g.processHotspot(idx)

	if g.GetTile(idx).isHotspot() {
		t.Fatalf("hotspot should have extinguished below minimum temperature")
	}
}

func TestExposeHotspotRaisesBulkTemperature(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	idx := g.AddTile(plasmaTile(cfg, 0, 0, 50, 100))

	before := g.GetTile(idx).Temperature
	g.IgniteHotspot(idx, 2000, 1000)
	g.exposeHotspot(idx)

	after := g.GetTile(idx).Temperature
	if after <= before {
		t.Fatalf("bulk temperature did not rise from exposure: before %v after %v", before, after)
	}
}

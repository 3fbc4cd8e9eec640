package atmos

import "testing"

func TestShareIsMassSymmetric(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)

	receiver := standardTile(cfg, 0, 0)
	receiver.Moles[GasOxygen] = 200
	receiver.Moles[GasNitrogen] = 800
	sharer := standardTile(cfg, 1, 0)
	sharer.Moles[GasOxygen] = 5
	sharer.Moles[GasNitrogen] = 20

	rIdx := g.AddTile(receiver)
	sIdx := g.AddTile(sharer)
	setupAdjacency(g, rIdx, sIdx, DirEast)

	g.ArchiveAll()

	before := TotalMoles(&g.tiles[rIdx]) + TotalMoles(&g.tiles[sIdx])
	g.Share(rIdx, sIdx, 1)
	after := TotalMoles(&g.tiles[rIdx]) + TotalMoles(&g.tiles[sIdx])

	if abs32(after-before) > before*0.0001 {
		t.Fatalf("mass not preserved: before %v after %v", before, after)
	}
}

func TestShareMovesTowardsEquilibrium(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)

	receiver := standardTile(cfg, 0, 0)
	receiver.Moles[GasOxygen] = 200
	receiver.Moles[GasNitrogen] = 800
	sharer := standardTile(cfg, 1, 0)
	sharer.Moles[GasOxygen] = 5
	sharer.Moles[GasNitrogen] = 20

	rIdx := g.AddTile(receiver)
	sIdx := g.AddTile(sharer)
	setupAdjacency(g, rIdx, sIdx, DirEast)
	g.ArchiveAll()

	for i := 0; i < 20; i++ {
		g.ArchiveAll()
		g.Share(rIdx, sIdx, 1)
	}

	rTotal := TotalMoles(&g.tiles[rIdx])
	sTotal := TotalMoles(&g.tiles[sIdx])
	if abs32(rTotal-sTotal) > (rTotal+sTotal)*0.1 {
		t.Fatalf("did not converge: receiver %v sharer %v", rTotal, sTotal)
	}
}

func TestTemperatureShareConservesEnergy(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)

	hot := standardTile(cfg, 0, 0)
	hot.Temperature = 400
	cold := standardTile(cfg, 1, 0)
	cold.Temperature = 280

	hIdx := g.AddTile(hot)
	cIdx := g.AddTile(cold)
	g.ArchiveAll()

	hHC := g.GetHeatCapacityArchived(hIdx)
	cHC := g.GetHeatCapacityArchived(cIdx)
	energyBefore := hot.Temperature*hHC + cold.Temperature*cHC

	g.TemperatureShare(hIdx, cIdx, 0.4)

	after1 := g.GetTile(hIdx)
	after2 := g.GetTile(cIdx)
	energyAfter := after1.Temperature*hHC + after2.Temperature*cHC

	if abs32(energyAfter-energyBefore) > abs32(energyBefore)*0.01 {
		t.Fatalf("energy not conserved: before %v after %v", energyBefore, energyAfter)
	}
	if after1.Temperature >= hot.Temperature {
		t.Fatalf("hot side did not cool")
	}
	if after2.Temperature <= cold.Temperature {
		t.Fatalf("cold side did not warm")
	}
}

func TestCompareExchangeEqualTilesSuspends(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	a := g.AddTile(standardTile(cfg, 0, 0))
	b := g.AddTile(standardTile(cfg, 1, 0))

	verdict := g.CompareExchange(a, b)
	if verdict != -2 {
		t.Fatalf("verdict for equal tiles = %d, want -2", verdict)
	}
}

func TestCompareExchangeDetectsMoleDelta(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	a := g.AddTile(standardTile(cfg, 0, 0))
	bTile := standardTile(cfg, 1, 0)
	bTile.Moles[GasOxygen] = 0
	bTile.Moles[GasNitrogen] = 0
	b := g.AddTile(bTile)

	verdict := g.CompareExchange(a, b)
	if verdict == -2 {
		t.Fatalf("verdict = -2, want a real exchange index")
	}
}

package atmos

import "testing"

func TestReactNoOpBelowThermalEnergyFloor(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	// Water vapor would condense at this temperature, so only the floor
	// keeps the mixture unchanged: thermal energy = 20 K * (1 * 40) = 800.
	tile.Moles[GasOxygen] = 0
	tile.Moles[GasNitrogen] = 0
	tile.Moles[GasWaterVapor] = 1
	tile.Temperature = 20
	idx := g.AddTile(tile)

	before := g.GetTile(idx)
	status := g.React(idx)
	after := g.GetTile(idx)

	if status != ReactionNone {
		t.Fatalf("status = %v, want ReactionNone", status)
	}
	if before.Moles != after.Moles {
		t.Fatalf("moles changed despite low thermal energy: before %+v after %+v", before.Moles, after.Moles)
	}
}

func TestReactNoOpOnImmutable(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := plasmaTile(cfg, 0, 0, 10, 30)
	tile.Flags |= FlagImmutable
	idx := g.AddTile(tile)

	before := g.GetTile(idx)
	g.React(idx)
	after := g.GetTile(idx)

	if before.Moles != after.Moles || before.Temperature != after.Temperature {
		t.Fatalf("immutable tile mutated by React")
	}
}

// Scenario 3 from the spec: plasma fire temperature rise.
func TestPlasmaFireBurnsAndHeats(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	tile.Moles[GasOxygen] = 30
	tile.Moles[GasNitrogen] = 0
	tile.Moles[GasPlasma] = 10
	tile.Temperature = cfg.Constants.PlasmaUpperTemperature + 100
	idx := g.AddTile(tile)

	before := g.GetTile(idx)
	status := g.React(idx)
	after := g.GetTile(idx)

	if status != ReactionReacting {
		t.Fatalf("status = %v, want ReactionReacting", status)
	}
	if after.Moles[GasPlasma] >= before.Moles[GasPlasma] {
		t.Fatalf("plasma did not decrease: before %v after %v", before.Moles[GasPlasma], after.Moles[GasPlasma])
	}
	if after.Moles[GasOxygen] >= before.Moles[GasOxygen] {
		t.Fatalf("oxygen did not decrease: before %v after %v", before.Moles[GasOxygen], after.Moles[GasOxygen])
	}
	if after.Moles[GasCO2] <= before.Moles[GasCO2] {
		t.Fatalf("CO2 did not grow")
	}
	if after.Moles[GasWaterVapor] <= before.Moles[GasWaterVapor] {
		t.Fatalf("water vapor did not grow")
	}
	ratio := after.Moles[GasCO2] / after.Moles[GasWaterVapor]
	if abs32(ratio-3.0) > 0.01 {
		t.Fatalf("CO2/waterVapor ratio = %v, want ~3.0", ratio)
	}
	if after.Temperature <= before.Temperature {
		t.Fatalf("temperature did not strictly increase: before %v after %v", before.Temperature, after.Temperature)
	}
}

func TestTritiumFireProducesWaterVapor(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	tile.Moles[GasOxygen] = 1000
	tile.Moles[GasNitrogen] = 0
	tile.Moles[GasTritium] = 5
	tile.Temperature = cfg.Constants.PlasmaMinimumBurnTemperature + 50
	idx := g.AddTile(tile)

	before := g.GetTile(idx)
	status := g.React(idx)
	after := g.GetTile(idx)

	if status != ReactionReacting {
		t.Fatalf("status = %v, want ReactionReacting", status)
	}
	if after.Moles[GasTritium] >= before.Moles[GasTritium] {
		t.Fatalf("tritium did not burn")
	}
	if after.Moles[GasWaterVapor] <= before.Moles[GasWaterVapor] {
		t.Fatalf("water vapor did not form")
	}
	if after.Temperature <= before.Temperature {
		t.Fatalf("temperature did not rise")
	}
}

func TestFrezonProduction(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	tile.Moles[GasOxygen] = 500
	tile.Moles[GasNitrogen] = 50
	tile.Moles[GasTritium] = 5
	tile.Temperature = 100
	idx := g.AddTile(tile)

	status := g.React(idx)
	if status != ReactionReacting {
		t.Fatalf("status = %v, want ReactionReacting", status)
	}
	after := g.GetTile(idx)
	if after.Moles[GasFrezon] <= 0 {
		t.Fatalf("frezon was not produced")
	}
}

func TestN2ODecompositionReleasesEnergy(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	tile.Moles[GasN2O] = 10
	tile.Temperature = cfg.Constants.T0C + 300
	idx := g.AddTile(tile)

	before := g.GetTile(idx)
	status := g.React(idx)
	after := g.GetTile(idx)

	if status != ReactionReacting {
		t.Fatalf("status = %v, want ReactionReacting", status)
	}
	if after.Moles[GasN2O] >= before.Moles[GasN2O] {
		t.Fatalf("N2O did not decompose")
	}
	if after.Moles[GasNitrogen] <= before.Moles[GasNitrogen] {
		t.Fatalf("nitrogen did not grow")
	}
	if after.Temperature <= before.Temperature {
		t.Fatalf("temperature did not rise")
	}
}

func TestAmmoniaOxygenReaction(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	tile.Moles[GasAmmonia] = 20
	tile.Moles[GasOxygen] = 100
	tile.Temperature = cfg.Constants.T0C + 150
	idx := g.AddTile(tile)

	before := g.GetTile(idx)
	status := g.React(idx)
	after := g.GetTile(idx)

	if status != ReactionReacting {
		t.Fatalf("status = %v, want ReactionReacting", status)
	}
	if after.Moles[GasAmmonia] >= before.Moles[GasAmmonia] {
		t.Fatalf("ammonia was not consumed")
	}
	if after.Moles[GasWaterVapor] <= before.Moles[GasWaterVapor] {
		t.Fatalf("water vapor did not grow")
	}
}

func TestTemperatureStaysWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	g := newTestGrid(cfg)
	tile := standardTile(cfg, 0, 0)
	tile.Moles[GasPlasma] = 100000
	tile.Moles[GasOxygen] = 100000
	tile.Temperature = cfg.Constants.PlasmaUpperTemperature
	idx := g.AddTile(tile)

	for i := 0; i < 20; i++ {
		g.React(idx)
	}
	after := g.GetTile(idx)
	if after.Temperature < cfg.Constants.TCMB || after.Temperature > cfg.Constants.Tmax {
		t.Fatalf("temperature out of bounds: %v", after.Temperature)
	}
	for i := 0; i < GasCount; i++ {
		if after.Moles[i] < 0 {
			t.Fatalf("moles[%d] went negative: %v", i, after.Moles[i])
		}
	}
}

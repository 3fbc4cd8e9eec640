package atmos

// Shared tile/grid builders for the atmos test suite, grounded on the
// original test suite's AtmosTestFixture helpers (CreateStandardTile,
// CreateSpaceTile, SetupLinearGrid, SetupSquareGrid).

func newTestGrid(cfg AtmosConfig) *Grid {
	return CreateGrid(64, cfg, nil)
}

func standardTile(cfg AtmosConfig, x, y int32) Tile {
	t := Tile{
		GridX:       x,
		GridY:       y,
		Temperature: cfg.Constants.T20C,
	}
	t.Moles[GasOxygen] = 21.0
	t.Moles[GasNitrogen] = 79.0
	t.ThermalConductivity = 0.5
	t.HeatCapacity = 10000.0
	for i := range t.AdjacentIndices {
		t.AdjacentIndices[i] = -1
	}
	t.ExcitedGroupID = NoGroup
	t.CurrentTransferDirection = -1
	return t
}

func spaceTile(cfg AtmosConfig, x, y int32) Tile {
	t := Tile{
		GridX:       x,
		GridY:       y,
		Temperature: cfg.Constants.TCMB,
		Flags:       FlagSpace | FlagImmutable,
	}
	t.HeatCapacity = cfg.Constants.SpaceHeatCapacity
	for i := range t.AdjacentIndices {
		t.AdjacentIndices[i] = -1
	}
	t.ExcitedGroupID = NoGroup
	t.CurrentTransferDirection = -1
	return t
}

func plasmaTile(cfg AtmosConfig, x, y int32, plasma, oxygen float32) Tile {
	t := standardTile(cfg, x, y)
	t.Moles[GasOxygen] = oxygen
	t.Moles[GasNitrogen] = 0
	t.Moles[GasPlasma] = plasma
	t.Temperature = cfg.Constants.PlasmaMinimumBurnTemperature + 100.0
	return t
}

// setupAdjacency wires a and b as neighbors in both directions, matching
// the host's symmetry responsibility (invariant 7).
func setupAdjacency(g *Grid, a, b int32, dirAtoB int) {
	g.SetAdjacency(a, dirAtoB, b)
	g.SetAdjacency(b, OppositeDir(dirAtoB), a)
}

// setupLinearGrid builds `count` standard tiles in an east-west row and
// returns their indices.
func setupLinearGrid(g *Grid, cfg AtmosConfig, count int) []int32 {
	indices := make([]int32, count)
	for i := 0; i < count; i++ {
		indices[i] = g.AddTile(standardTile(cfg, int32(i), 0))
	}
	for i := 0; i < count-1; i++ {
		setupAdjacency(g, indices[i], indices[i+1], DirEast)
	}
	return indices
}

// setupSquareGrid builds a width x height grid of standard tiles, row
// major, with east/south adjacency wiring (and the reciprocal west/north
// set automatically by setupAdjacency).
func setupSquareGrid(g *Grid, cfg AtmosConfig, width, height int) []int32 {
	indices := make([]int32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			indices[y*width+x] = g.AddTile(standardTile(cfg, int32(x), int32(y)))
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if x < width-1 {
				setupAdjacency(g, indices[idx], indices[idx+1], DirEast)
			}
			if y < height-1 {
				setupAdjacency(g, indices[idx], indices[idx+width], DirSouth)
			}
		}
	}
	return indices
}

func sumTotalMoles(g *Grid) float32 {
	var total float32
	for i := range g.tiles {
		total += TotalMoles(&g.tiles[i])
	}
	return total
}

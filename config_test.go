package atmos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigPhysicalConstants(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Constants

	assert.InDelta(t, 8.314462618, c.R, 1e-6)
	assert.InDelta(t, float32(101.325), c.OneAtmosphere, 1e-6)
	assert.InDelta(t, 2.7, c.TCMB, 1e-6)
	assert.InDelta(t, float32(273.15), c.T0C, 1e-6)
	assert.InDelta(t, float32(293.15), c.T20C, 1e-6)
	assert.InDelta(t, 262144.0, c.Tmax, 1e-6)
	assert.InDelta(t, 2500.0, c.CellVolume, 1e-6)
	assert.InDelta(t, 0.00000005, c.GasMinMoles, 1e-12)
}

func TestDefaultConfigDerivedConstants(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Constants

	molesCellStandard := (c.OneAtmosphere * c.CellVolume) / (c.T20C * c.R)
	assert.InDelta(t, molesCellStandard*c.MinimumAirRatioToSuspend, c.MinimumAirToSuspend, 1e-3)
	assert.InDelta(t, molesCellStandard*c.MinimumAirRatioToMove, c.MinimumMolesDeltaToMove, 1e-3)
	assert.InDelta(t, molesCellStandard*0.005, c.McellWithRatio, 1e-3)
	assert.InDelta(t, c.T20C+100.0, c.MinimumTemperatureToMove, 1e-6)
}

func TestDefaultConfigFeatureFlagsAllEnabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.MonstermosEnabled)
	assert.True(t, cfg.ExcitedGroupsEnabled)
	assert.True(t, cfg.SuperconductionEnabled)
	assert.True(t, cfg.SpacingEnabled)
}

func TestDefaultConfigGasSpecificHeats(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, float32(20), cfg.GasSpecificHeats[GasOxygen])
	assert.Equal(t, float32(20), cfg.GasSpecificHeats[GasNitrogen])
	assert.Equal(t, float32(200), cfg.GasSpecificHeats[GasPlasma])
	assert.Equal(t, float32(600), cfg.GasSpecificHeats[GasFrezon])
}

func TestDefaultConfigSpacingDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 0.9, cfg.SpacingEscapeRatio, 1e-6)
	assert.InDelta(t, 2.0, cfg.SpacingMinGas, 1e-6)
	assert.InDelta(t, 500.0, cfg.SpacingMaxWind, 1e-6)
}

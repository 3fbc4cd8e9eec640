package atmos

// AtmosConstants holds the physical and tuning constants that drive every
// component. Values are computed once by DefaultConfig and then treated
// as read-only for the lifetime of a Grid.
type AtmosConstants struct {
	R                                  float32
	OneAtmosphere                      float32
	TCMB                               float32
	T0C                                float32
	T20C                               float32
	Tmax                               float32
	CellVolume                         float32
	GasMinMoles                        float32
	OpenHeatTransferCoefficient        float32
	HeatCapacityVacuum                 float32
	MinimumAirRatioToSuspend           float32
	MinimumAirRatioToMove              float32
	MinimumAirToSuspend                float32
	MinimumTemperatureToMove           float32
	MinimumMolesDeltaToMove            float32
	MinimumTemperatureDeltaToSuspend   float32
	MinimumTemperatureDeltaToConsider  float32
	MinimumTemperatureStartSuperConduction float32
	MinimumTemperatureForSuperconduction   float32
	MinimumHeatCapacity                float32
	SpaceHeatCapacity                  float32
	FireMinimumTemperatureToExist      float32
	FireMinimumTemperatureToSpread     float32
	FireSpreadRadiosityScale           float32
	FirePlasmaEnergyReleased           float32
	FireHydrogenEnergyReleased         float32
	FireGrowthRate                     float32
	PlasmaMinimumBurnTemperature       float32
	PlasmaUpperTemperature             float32
	PlasmaOxygenFullburn               float32
	PlasmaBurnRateDelta                float32
	OxygenBurnRateBase                 float32
	SuperSaturationThreshold           float32
	TritiumBurnOxyFactor               float32
	TritiumBurnTritFactor              float32
	FrezonCoolLowerTemperature         float32
	FrezonCoolMidTemperature           float32
	FrezonCoolMaximumEnergyModifier    float32
	FrezonNitrogenCoolRatio            float32
	FrezonCoolEnergyReleased           float32
	FrezonCoolRateModifier             float32
	WindowHeatTransferCoefficient      float32
	McellWithRatio                     float32

	ExcitedGroupBreakdownCycles int32
	ExcitedGroupsDismantleCycles int32
	MonstermosHardTileLimit     int32
	MonstermosTileLimit         int32
}

// AtmosConfig bundles the per-gas specific heats alongside AtmosConstants
// and the feature flags/budgets that govern a Grid's behavior.
type AtmosConfig struct {
	GasSpecificHeats [GasArraySize]float32
	Constants        AtmosConstants

	MaxProcessTimeMicroseconds int64
	Speedup                    float32
	HeatScale                  float32

	MonstermosEnabled     bool
	ExcitedGroupsEnabled  bool
	SuperconductionEnabled bool
	SpacingEnabled        bool

	SpacingEscapeRatio float32
	SpacingMinGas      float32
	SpacingMaxWind     float32
}

// DefaultConfig returns the stock configuration: specific heats, physical
// constants, and feature flags exactly as the original
// atmos_config_init_default/atmos_constants_init_default initialize them.
func DefaultConfig() AtmosConfig {
	var cfg AtmosConfig

	cfg.GasSpecificHeats[GasOxygen] = 20
	cfg.GasSpecificHeats[GasNitrogen] = 20
	cfg.GasSpecificHeats[GasCO2] = 30
	cfg.GasSpecificHeats[GasPlasma] = 200
	cfg.GasSpecificHeats[GasTritium] = 10
	cfg.GasSpecificHeats[GasWaterVapor] = 40
	cfg.GasSpecificHeats[GasAmmonia] = 20
	cfg.GasSpecificHeats[GasN2O] = 40
	cfg.GasSpecificHeats[GasFrezon] = 600

	c := &cfg.Constants
	c.R = 8.314462618
	c.OneAtmosphere = 101.325
	c.TCMB = 2.7
	c.T0C = 273.15
	c.T20C = 293.15
	c.Tmax = 262144.0
	c.CellVolume = 2500.0
	c.GasMinMoles = 0.00000005
	c.OpenHeatTransferCoefficient = 0.4
	c.HeatCapacityVacuum = 7000.0
	c.MinimumAirRatioToSuspend = 0.1
	c.MinimumAirRatioToMove = 0.001

	molesCellStandard := (c.OneAtmosphere * c.CellVolume) / (c.T20C * c.R)
	c.MinimumAirToSuspend = molesCellStandard * c.MinimumAirRatioToSuspend
	c.MinimumTemperatureToMove = c.T20C + 100.0
	c.MinimumMolesDeltaToMove = molesCellStandard * c.MinimumAirRatioToMove
	c.MinimumTemperatureDeltaToSuspend = 4.0
	c.MinimumTemperatureDeltaToConsider = 0.01
	c.MinimumTemperatureStartSuperConduction = c.T20C + 400.0
	c.MinimumTemperatureForSuperconduction = c.T20C + 80.0
	c.MinimumHeatCapacity = 0.0003
	c.SpaceHeatCapacity = 7000.0
	c.FireMinimumTemperatureToExist = c.T0C + 100.0
	c.FireMinimumTemperatureToSpread = c.T0C + 150.0
	c.FireSpreadRadiosityScale = 0.85
	c.FirePlasmaEnergyReleased = 160000.0
	c.FireHydrogenEnergyReleased = 284000.0
	c.FireGrowthRate = 40000.0
	c.PlasmaMinimumBurnTemperature = c.T0C + 100.0
	c.PlasmaUpperTemperature = c.T0C + 1370.0
	c.PlasmaOxygenFullburn = 10.0
	c.PlasmaBurnRateDelta = 9.0
	c.OxygenBurnRateBase = 1.4
	c.SuperSaturationThreshold = 96.0
	c.TritiumBurnOxyFactor = 100.0
	c.TritiumBurnTritFactor = 10.0
	c.FrezonCoolLowerTemperature = 23.15
	c.FrezonCoolMidTemperature = 373.15
	c.FrezonCoolMaximumEnergyModifier = 10.0
	c.FrezonNitrogenCoolRatio = 5.0
	c.FrezonCoolEnergyReleased = -600000.0
	c.FrezonCoolRateModifier = 20.0
	c.WindowHeatTransferCoefficient = 0.1
	c.McellWithRatio = molesCellStandard * 0.005

	c.ExcitedGroupBreakdownCycles = 4
	c.ExcitedGroupsDismantleCycles = 16
	c.MonstermosHardTileLimit = 2000
	c.MonstermosTileLimit = 200

	cfg.MaxProcessTimeMicroseconds = 5000
	cfg.Speedup = 1.0
	cfg.HeatScale = 1.0

	cfg.MonstermosEnabled = true
	cfg.ExcitedGroupsEnabled = true
	cfg.SuperconductionEnabled = true
	cfg.SpacingEnabled = true

	cfg.SpacingEscapeRatio = 0.9
	cfg.SpacingMinGas = 2.0
	cfg.SpacingMaxWind = 500.0

	return cfg
}

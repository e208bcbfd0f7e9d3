package ascent

const (
	// G0 is the standard gravity in m/s². It converts Isp to exhaust velocity
	// and tonnes-force to Newtons for every component, regardless of which
	// planet is being simulated.
	G0 = 9.80665

	// SeaLevelDensity is the sea-level atmospheric density in kg/m³ used by
	// the exponential atmosphere approximation.
	SeaLevelDensity = 1.225

	// dragMassFactor scales the initial total mass into a crude Cd·A proxy.
	// It is not physically calibrated; sweeps only need relative comparisons.
	dragMassFactor = 0.005

	// liftoffGate is the TWR below which a launch is reported with zero
	// motion. The slack above 1 absorbs float TWR==1 configurations.
	liftoffGate = 1.0001

	massε = 1e-9 // tonnes
	timeε = 1e-9 // seconds
)

package ascent

/* The instantaneous force model. Pure functions of a state snapshot, so the
telemetry sampler can recompute exact values outside the integrator. */

// StateVector is the integrator's state: owned by a single launch, never shared.
type StateVector struct {
	T float64 // elapsed time in seconds
	R float64 // distance from body center in meters
	V float64 // radial velocity in m/s
	M float64 // instantaneous total mass in kg
}

// StateDerivative is the time derivative of a StateVector.
type StateDerivative struct {
	DR float64
	DV float64
	DM float64
}

// Forces carries the instantaneous accelerations and flows acting on a rocket.
type Forces struct {
	Gravity     float64 // local gravitational acceleration in m/s², toward the body
	ThrustN     float64 // thrust force in Newtons, 0 once the burn is over
	ThrustAccel float64 // thrust acceleration in m/s²
	DragN       float64 // drag force magnitude in Newtons
	DragAccel   float64 // drag acceleration in m/s², signed to oppose velocity
	MassFlow    float64 // propellant consumption in kg/s
}

// burnParams are the per-launch scalars the force model needs. The burn time
// is precomputed from the initial fuel load: the cutoff is time based, not
// fuel based, which only holds for constant mass flow.
type burnParams struct {
	thrustN    float64 // in Newtons
	massFlow   float64 // in kg/s
	burnTime   float64 // in seconds
	dragFactor float64 // crude Cd·A proxy, 0.005 × initial total mass in kg
}

// forcesAt evaluates the force model for one state snapshot.
func forcesAt(s StateVector, planet Planet, settings SimulationSettings, burn burnParams) Forces {
	f := Forces{Gravity: planet.GravityAt(s.R, settings.GravityModel)}
	if s.T < burn.burnTime && burn.thrustN > 0 && s.M > 0 {
		f.ThrustN = burn.thrustN
		f.ThrustAccel = burn.thrustN / s.M
		f.MassFlow = burn.massFlow
	}
	altitude := s.R - planet.Radius
	if settings.Drag && altitude < planet.AtmosphereAlt && s.V != 0 && s.M > 0 {
		f.DragN = 0.5 * planet.DensityAt(altitude) * s.V * s.V * burn.dragFactor
		f.DragAccel = sign(s.V) * f.DragN / s.M
	}
	return f
}

// deriveState returns the state derivative under the provided forces.
func deriveState(s StateVector, f Forces) StateDerivative {
	return StateDerivative{
		DR: s.V,
		DV: f.ThrustAccel - f.Gravity - f.DragAccel,
		DM: -f.MassFlow,
	}
}

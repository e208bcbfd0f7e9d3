package ascent

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ChristopherRabotin/ode"
	kitlog "github.com/go-kit/kit/log"
)

/* Handles single vertical launch simulations. */

// OptimizationTarget defines which metric a sweep is trying to maximize.
type OptimizationTarget uint8

const (
	// TargetMaxHeight maximizes the peak altitude.
	TargetMaxHeight OptimizationTarget = iota
	// TargetDeltaV maximizes the theoretical vacuum Δv.
	TargetDeltaV
)

func (t OptimizationTarget) String() string {
	switch t {
	case TargetMaxHeight:
		return "max-height"
	case TargetDeltaV:
		return "delta-v"
	}
	panic("cannot stringify unknown optimization target")
}

// ParseOptimizationTarget returns the target from its name.
func ParseOptimizationTarget(name string) (OptimizationTarget, error) {
	switch strings.ToLower(name) {
	case "max-height", "height", "":
		return TargetMaxHeight, nil
	case "delta-v", "deltav":
		return TargetDeltaV, nil
	default:
		return TargetMaxHeight, fmt.Errorf("undefined optimization target '%s'", name)
	}
}

// SweepRange bounds one swept design variable, in tonnes.
type SweepRange struct {
	Min, Max, Step float64
}

// Valid returns whether the range can be iterated at all.
func (r SweepRange) Valid() bool {
	return r.Step > 0 && r.Min <= r.Max
}

// RocketParams describes the fixed design of a rocket, plus the sweep bounds
// of the free variables.
type RocketParams struct {
	Engine       Engine
	EngineCount  int
	Payload      float64 // in tonnes
	TankMass     float64 // wet tank mass in tonnes, used when it is not the swept variable
	TankRatio    float64 // tank dry/wet mass fraction, 0 < ratio < 1
	TankSweep    SweepRange
	PayloadSweep SweepRange
}

// SimulationSettings configure a flight, not the rocket itself.
type SimulationSettings struct {
	GravityModel GravityModel
	Drag         bool
	TimeStep     float64 // integration step in seconds
	MaxTime      float64 // hard simulation limit in seconds
	Target       OptimizationTarget
}

// SimulationResult is the outcome of one launch. Masses are in tonnes,
// distances in meters, velocities and Δv in m/s.
type SimulationResult struct {
	TankMass    float64
	Payload     float64
	TotalMass   float64
	DryMass     float64
	FuelMass    float64
	BurnTime    float64
	MaxHeight   float64
	MaxVelocity float64
	TWR         float64 // thrust to weight at liftoff
	DeltaV      float64 // Tsiolkovsky vacuum Δv, reported even without liftoff
	Telemetry   []TelemetryPoint
}

// String implements the Stringer interface.
func (r SimulationResult) String() string {
	return fmt.Sprintf("launch [tank=%.1ft payload=%.1ft]: height=%.0fm vmax=%.1fm/s Δv=%.1fm/s twr=%.2f", r.TankMass, r.Payload, r.MaxHeight, r.MaxVelocity, r.DeltaV, r.TWR)
}

// Launch integrates one rocket configuration from the pad. All state is owned
// by the launch, so distinct launches may run concurrently.
type Launch struct {
	Planet   Planet
	Params   RocketParams
	Settings SimulationSettings

	// Derived figures, all SI (kg, N, s).
	fuelMass, dryMass, totalMass float64
	burn                         burnParams
	ve                           float64 // exhaust velocity in m/s

	state       StateVector
	elapsed     float64 // advanced once per integration step
	maxR, maxV  float64
	logInterval float64
	nextLog     float64
	telemetry   []TelemetryPoint
	logger      kitlog.Logger
	done        bool
}

// NewLaunch returns a launch for a given swept tank mass (tonnes). A positive
// logInterval samples telemetry every logInterval simulated seconds.
func NewLaunch(tankMass float64, params RocketParams, planet Planet, settings SimulationSettings, logInterval float64) *Launch {
	l := &Launch{Planet: planet, Params: params, Settings: settings, logInterval: logInterval}
	l.Params.TankMass = tankMass
	if l.Settings.TimeStep <= 0 {
		l.Settings.TimeStep = 0.1
	}

	// Mass breakdown, tonnes to kg.
	fuelT := tankMass * (1 - params.TankRatio)
	tankDryT := tankMass * params.TankRatio
	enginesT := float64(params.EngineCount) * params.Engine.Mass
	l.fuelMass = fuelT * 1000
	l.dryMass = (enginesT + params.Payload + tankDryT) * 1000
	l.totalMass = l.dryMass + l.fuelMass

	l.ve = params.Engine.ExhaustVelocity()
	l.burn.thrustN = params.Engine.ThrustN(params.EngineCount)
	l.burn.massFlow = params.Engine.MassFlowRate(params.EngineCount)
	if l.burn.massFlow > 0 {
		l.burn.burnTime = l.fuelMass / l.burn.massFlow
	}
	l.burn.dragFactor = dragMassFactor * l.totalMass

	l.logger = kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "subsys", "launch")
	return l
}

// SetLogger changes the launch logger. Sweeps silence their sub-launches.
func (l *Launch) SetLogger(logger kitlog.Logger) {
	l.logger = logger
}

// Simulate runs the launch to completion and returns its result.
func (l *Launch) Simulate() SimulationResult {
	res := SimulationResult{
		TankMass:  l.Params.TankMass,
		Payload:   l.Params.Payload,
		TotalMass: l.totalMass / 1000,
		DryMass:   l.dryMass / 1000,
		FuelMass:  l.fuelMass / 1000,
		BurnTime:  l.burn.burnTime,
	}
	// Tsiolkovsky holds whether or not the rocket ever leaves the pad.
	if l.totalMass > 0 && l.dryMass > 0 {
		res.DeltaV = l.ve * math.Log(l.totalMass/l.dryMass)
	}
	if weight := l.totalMass * l.Planet.Gravity; weight > 0 {
		res.TWR = l.burn.thrustN / weight
	}
	if res.TWR <= liftoffGate {
		// Not an error: the rocket is simply too weak to lift off.
		l.logger.Log("level", "warning", "status", "no liftoff", "twr", res.TWR, "Δv(m/s)", res.DeltaV)
		return res
	}

	l.state = StateVector{T: 0, R: l.Planet.Radius, V: 0, M: l.totalMass}
	l.maxR = l.state.R
	if l.logInterval > 0 {
		l.telemetry = append(l.telemetry, l.sample())
		l.nextLog = l.logInterval
	}

	l.logger.Log("level", "info", "status", "liftoff", "planet", l.Planet.Name, "mass(t)", res.TotalMass, "twr", res.TWR)
	ode.NewRK4(0, l.Settings.TimeStep, l).Solve() // Blocking.

	res.MaxHeight = math.Max(0, l.maxR-l.Planet.Radius)
	res.MaxVelocity = l.maxV
	res.Telemetry = l.telemetry
	l.logger.Log("level", "info", "status", "finished", "t(s)", l.elapsed, "height(m)", res.MaxHeight, "vmax(m/s)", res.MaxVelocity)
	return res
}

// GetState returns the integrator state (radius, velocity, mass).
func (l *Launch) GetState() []float64 {
	return []float64{l.state.R, l.state.V, l.state.M}
}

// SetState sets the updated state after one integration step.
func (l *Launch) SetState(t float64, s []float64) {
	l.state.T = l.elapsed
	l.state.R = s[0]
	l.state.V = s[1]
	l.state.M = s[2]
	if l.state.M < l.dryMass {
		// Float drift must not burn into the structure.
		l.state.M = l.dryMass
	}
	if l.state.V > l.maxV {
		l.maxV = l.state.V
	}
	if l.state.R > l.maxR {
		l.maxR = l.state.R
	}
	if l.logInterval > 0 && l.state.T >= l.nextLog-timeε {
		l.telemetry = append(l.telemetry, l.sample())
		l.nextLog += l.logInterval
	}
}

// Stop implements the stop condition of the integrator.
func (l *Launch) Stop(t float64) bool {
	if l.done {
		return true
	}
	switch {
	case l.elapsed > l.Settings.MaxTime:
		l.done = true
	case l.elapsed > 1 && l.state.R <= l.Planet.Radius:
		// Back on the ground. Only checked after the first second so the
		// initial surface state does not end the flight at once.
		l.done = true
	case l.state.V < 0:
		// Apoapsis reached: the ascent is over, even mid-burn.
		l.done = true
	default:
		l.elapsed += l.Settings.TimeStep
	}
	return l.done
}

// Func is the integration function of the vertical flight.
func (l *Launch) Func(t float64, s []float64) []float64 {
	sv := StateVector{T: l.elapsed, R: s[0], V: s[1], M: math.Max(s[2], l.dryMass)}
	d := deriveState(sv, forcesAt(sv, l.Planet, l.Settings, l.burn))
	return []float64{d.DR, d.DV, d.DM}
}

// sample recomputes the exact instantaneous figures for the current state.
// This is independent of the RK4 sub-stages, so logged values are exact for
// the sampled instant.
func (l *Launch) sample() TelemetryPoint {
	f := forcesAt(l.state, l.Planet, l.Settings, l.burn)
	pt := TelemetryPoint{
		Time:     l.state.T,
		Height:   math.Max(0, l.state.R-l.Planet.Radius),
		Velocity: l.state.V,
		Gravity:  f.Gravity,
		Mass:     l.state.M / 1000,
		Accel:    f.ThrustAccel - f.Gravity - f.DragAccel,
		Thrust:   f.ThrustN,
		Drag:     f.DragN,
	}
	fuelLeft := math.Max(0, l.state.M-l.dryMass)
	pt.FuelBurned = (l.fuelMass - fuelLeft) / 1000
	if l.fuelMass > 0 {
		pt.FuelPct = 100 * fuelLeft / l.fuelMass
	}
	if weight := l.state.M * f.Gravity; weight > 0 {
		pt.TWR = f.ThrustN / weight
	}
	return pt
}

// SimulateLaunch runs a single launch for the given swept tank mass in tonnes.
// Degenerate configurations (TWR ≤ 1, zero thrust, zero fuel) return a valid
// result with zero motion fields, never an error.
func SimulateLaunch(tankMass float64, params RocketParams, planet Planet, settings SimulationSettings, logInterval float64) SimulationResult {
	return NewLaunch(tankMass, params, planet, settings, logInterval).Simulate()
}

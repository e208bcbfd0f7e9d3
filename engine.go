package ascent

import (
	"fmt"
	"strings"
)

// Engine defines a liquid fuel engine.
type Engine struct {
	Name   string
	Thrust float64 // in tonnes-force
	Isp    float64 // specific impulse in seconds
	Mass   float64 // dry mass in tonnes
}

// String implements the Stringer interface.
func (e Engine) String() string {
	return fmt.Sprintf("%s (%.0f t-f, %.0f s)", e.Name, e.Thrust, e.Isp)
}

// ThrustN returns the thrust of count engines in Newtons.
func (e Engine) ThrustN(count int) float64 {
	return float64(count) * e.Thrust * 1000 * G0
}

// ExhaustVelocity returns the exhaust velocity in m/s.
func (e Engine) ExhaustVelocity() float64 {
	return e.Isp * G0
}

// MassFlowRate returns the propellant consumption of count engines in kg/s.
func (e Engine) MassFlowRate(count int) float64 {
	if e.Thrust <= 0 || e.Isp <= 0 {
		return 0
	}
	return e.ThrustN(count) / e.ExhaustVelocity()
}

// NewGenericEngine returns an engine with the provided characteristics.
func NewGenericEngine(thrust, isp, mass float64) Engine {
	return Engine{"Generic", thrust, isp, mass}
}

// EngineFromString returns the engine from its name.
func EngineFromString(name string) (Engine, error) {
	switch strings.ToLower(name) {
	case "kolibri":
		return Kolibri, nil
	case "valiant":
		return Valiant, nil
	case "hawk":
		return Hawk, nil
	case "titan":
		return Titan, nil
	case "frontier":
		return Frontier, nil
	default:
		return Engine{}, fmt.Errorf("undefined engine '%s'", name)
	}
}

/* Available engines */

// Kolibri is tiny and lands things gently.
var Kolibri = Engine{"Kolibri", 12, 220, 0.6}

// Valiant is the starter upper stage engine.
var Valiant = Engine{"Valiant", 50, 235, 2.5}

// Hawk lifts medium stacks off the pad.
var Hawk = Engine{"Hawk", 120, 255, 5}

// Titan is the heavy lifter.
var Titan = Engine{"Titan", 400, 240, 12}

// Frontier trades raw thrust for efficiency up high.
var Frontier = Engine{"Frontier", 140, 310, 6}

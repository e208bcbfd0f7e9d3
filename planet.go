package ascent

import (
	"fmt"
	"math"
	"strings"
)

// GravityModel selects how gravity varies with altitude during a flight.
type GravityModel uint8

const (
	// ConstantGravity keeps the surface value all the way up.
	ConstantGravity GravityModel = iota
	// VariableGravity applies the inverse-square law referenced to the surface value.
	VariableGravity
)

func (m GravityModel) String() string {
	switch m {
	case ConstantGravity:
		return "constant"
	case VariableGravity:
		return "variable"
	}
	panic("cannot stringify unknown gravity model")
}

// ParseGravityModel returns the gravity model from its name.
func ParseGravityModel(name string) (GravityModel, error) {
	switch strings.ToLower(name) {
	case "constant", "":
		return ConstantGravity, nil
	case "variable":
		return VariableGravity, nil
	default:
		return ConstantGravity, fmt.Errorf("undefined gravity model '%s'", name)
	}
}

// Planet defines the body a rocket climbs away from.
type Planet struct {
	Name          string
	Gravity       float64 // surface gravity in m/s²
	Radius        float64 // in meters
	AtmosphereAlt float64 // atmosphere height in meters, 0 for airless bodies
}

// String implements the Stringer interface.
func (p Planet) String() string {
	return p.Name + " body"
}

// Equals returns whether the provided planet is the same.
func (p *Planet) Equals(b Planet) bool {
	return p.Name == b.Name && p.Gravity == b.Gravity && p.Radius == b.Radius && p.AtmosphereAlt == b.AtmosphereAlt
}

// GravityAt returns the gravitational acceleration at a given distance from
// the body center, per the requested model.
func (p Planet) GravityAt(r float64, model GravityModel) float64 {
	if model == ConstantGravity || r <= 0 {
		return p.Gravity
	}
	ratio := p.Radius / r
	return p.Gravity * ratio * ratio
}

// ScaleHeight returns the e-folding altitude of the exponential atmosphere.
func (p Planet) ScaleHeight() float64 {
	return p.AtmosphereAlt / 5
}

// DensityAt returns the atmospheric density in kg/m³ at a given altitude.
// Altitudes below the surface are evaluated at sea level.
func (p Planet) DensityAt(altitude float64) float64 {
	if p.AtmosphereAlt <= 0 || altitude >= p.AtmosphereAlt {
		return 0
	}
	if altitude < 0 {
		altitude = 0
	}
	return SeaLevelDensity * math.Exp(-altitude/p.ScaleHeight())
}

// PlanetFromString returns the planet from its name.
func PlanetFromString(name string) (Planet, error) {
	switch strings.ToLower(name) {
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "mars":
		return Mars, nil
	case "venus":
		return Venus, nil
	default:
		return Planet{}, fmt.Errorf("undefined planet '%s'", name)
	}
}

/* Definitions. Radii use the reference 1:20 scale, not the real bodies. */

// Earth is home.
var Earth = Planet{"Earth", G0, 315000, 30000}

// Moon has no air to slow you down, nor to bring you back.
var Moon = Planet{"Moon", 1.62, 52000, 0}

// Mars is the vacation place.
var Mars = Planet{"Mars", 3.71, 167000, 15000}

// Venus is poisonous.
var Venus = Planet{"Venus", 8.87, 300000, 35000}

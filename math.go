package ascent

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if scalar.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// flowRate returns the propellant mass flow rate in tonnes per second for an
// aggregate thrust in tonnes-force. Zero-thrust stages coast, they don't flow.
func flowRate(thrust, isp float64) float64 {
	if thrust <= 0 || isp <= 0 {
		return 0
	}
	// (thrust × 1000 × G0) / (isp × G0) kg/s, expressed in t/s.
	return thrust / isp
}

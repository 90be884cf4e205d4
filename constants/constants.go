// Package constants holds the physical constants shared by every
// component of the vesicle simulation, grounded on the teacher's
// leaf `mreten`/`mconduct` style of small, dependency-free packages.
package constants

import "math"

const (
	// Faraday is the Faraday constant F, in C·mol⁻¹.
	Faraday = 96485.0

	// GasConstant is the ideal gas constant R, in J·mol⁻¹·K⁻¹.
	GasConstant = 8.314

	// LitresPerCubicMetre converts mol·L⁻¹ · m³ → mol: n = c · LitresPerCubicMetre · V_m³.
	LitresPerCubicMetre = 1000.0

	// MinConcentration is the clamp floor ε for vesicle concentrations (mol·L⁻¹).
	MinConcentration = 1e-9

	// DefaultPH is the fallback pH used when free [H⁺] is non-positive.
	DefaultPH = 7.0

	// ExpOverflowGuard bounds the argument fed to math.Exp in gating
	// functions; exp(709) is near the float64 overflow boundary.
	ExpOverflowGuard = 709.0
)

// VolumeToArea is k_VA, the geometric constant relating the volume V
// of a sphere to its surface area A: A = VolumeToArea * V^(2/3).
// For a sphere, A = 4πr² and V = (4/3)πr³, so k_VA = (36π)^(1/3).
var VolumeToArea = math.Cbrt(36.0 * math.Pi)

// NernstCoefficient returns N = R·T/F, the thermal voltage scale (V)
// at absolute temperature T (K).
func NernstCoefficient(temperatureK float64) float64 {
	return GasConstant * temperatureK / Faraday
}

package ion

import (
	"math"

	"github.com/bielosheikin/vesiclesim/constants"
	"github.com/bielosheikin/vesiclesim/simerr"
)

// ComputeFlux evaluates the channel's flux law against ctx (spec.md
// §4.5), updating and returning Flux. NumericDomain is returned for a
// non-positive concentration inside the log term.
func (c *Channel) ComputeFlux(ctx *FluxContext) (float64, error) {
	logTerm, err := c.computeLogTerm(ctx)
	if err != nil {
		return 0, err
	}

	nEff := ctx.Nernst
	if c.cfg.CustomNernstConstant != nil {
		nEff = *c.cfg.CustomNernstConstant
	}

	nernstTerm := c.cfg.VoltageMultiplier*ctx.Voltage + c.cfg.NernstMultiplier*nEff*logTerm - c.cfg.VoltageShift
	c.NernstPotential = nernstTerm

	baseFlux := c.cfg.FluxMultiplier * nernstTerm * c.cfg.Conductance * ctx.Area

	dV := c.computeVoltageDependence(ctx.Voltage)
	dPH := c.computePHDependence(ctx.PH)
	dT := c.computeTimeDependence(ctx.Time)

	c.Flux = baseFlux * dV * dPH * dT
	return c.Flux, nil
}

// computeLogTerm assembles L per spec.md §4.5 and returns log(L).
func (c *Channel) computeLogTerm(ctx *FluxContext) (float64, error) {
	extPrimary, vesPrimary, err := c.ionConcentrations(c.primary, c.cfg.PrimaryExponent, ctx)
	if err != nil {
		return 0, err
	}

	var logTerm float64
	if c.cfg.InvertPrimaryLogTerm {
		logTerm = vesPrimary / extPrimary
	} else {
		logTerm = extPrimary / vesPrimary
	}

	if c.secondary != nil {
		extSecondary, vesSecondary, err := c.ionConcentrations(c.secondary, c.cfg.SecondaryExponent, ctx)
		if err != nil {
			return 0, err
		}
		if c.cfg.InvertSecondaryLogTerm {
			logTerm *= extSecondary / vesSecondary
		} else {
			logTerm *= vesSecondary / extSecondary
		}
	}

	if logTerm <= 0 {
		return 0, simerr.AtTime(simerr.NumericDomain, c.displayName, ctx.Time, "log term %g is non-positive; cannot take logarithm", logTerm)
	}
	return math.Log(logTerm), nil
}

// ionConcentrations returns (exterior, vesicle) concentrations for sp,
// each raised to exponent, substituting free-hydrogen values when the
// channel opts in and sp is the hydrogen species. Both must be
// strictly positive, else a NumericDomain error naming sp is returned.
func (c *Channel) ionConcentrations(sp *Species, exponent int, ctx *FluxContext) (ext, ves float64, err error) {
	if c.cfg.UseFreeHydrogen && sp.IsHydrogen {
		if !ctx.HasHydrogen {
			return 0, 0, simerr.At(simerr.MissingDependency, c.displayName, "channel requires free hydrogen concentrations but the flux context has none")
		}
		ext = math.Pow(ctx.ExteriorHydrogenFree, float64(exponent))
		ves = math.Pow(ctx.VesicleHydrogenFree, float64(exponent))
	} else {
		ext = math.Pow(sp.ExteriorConc, float64(exponent))
		ves = math.Pow(sp.VesicleConc, float64(exponent))
	}
	if ext <= 0 || ves <= 0 {
		return 0, 0, simerr.AtTime(simerr.NumericDomain, sp.DisplayName(), ctx.Time,
			"ion concentrations must be positive for log term; exterior=%g vesicle=%g", ext, ves)
	}
	return ext, ves, nil
}

// computeVoltageDependence returns D_V, clamping the voltage fed to
// the sigmoid to keep exp(·) representable (spec.md §4.6).
func (c *Channel) computeVoltageDependence(vm float64) float64 {
	if !c.hasVoltage {
		c.VoltageDependence = 1.0
		return 1.0
	}
	v := vm
	c.VoltageClamped = false
	if c.voltageExponent != 0 {
		maxV := constants.ExpOverflowGuard/c.voltageExponent + c.halfActVoltage
		if v > maxV {
			v = maxV
			c.VoltageClamped = true
		} else if v < -maxV {
			v = -maxV
			c.VoltageClamped = true
		}
	}
	d := 1.0 / (1.0 + math.Exp(c.voltageExponent*(v-c.halfActVoltage)))
	c.VoltageDependence = d
	return d
}

// computePHDependence returns D_pH.
func (c *Channel) computePHDependence(pH float64) float64 {
	if !c.hasPH {
		c.PHDependence = 1.0
		return 1.0
	}
	d := 1.0 / (1.0 + math.Exp(c.pHExponent*(pH-c.halfActPH)))
	c.PHDependence = d
	return d
}

// computeTimeDependence returns D_t. Note the (t_½ − t) sign
// convention, unlike voltage/pH — this is intentional (spec.md §9).
func (c *Channel) computeTimeDependence(t float64) float64 {
	if !c.hasTime {
		c.TimeDependence = 1.0
		return 1.0
	}
	d := 1.0 / (1.0 + math.Exp(c.timeExponent*(c.halfActTime-t)))
	c.TimeDependence = d
	return d
}

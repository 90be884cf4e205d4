package simulation

import (
	"math"

	"github.com/bielosheikin/vesiclesim/constants"
	"github.com/bielosheikin/vesiclesim/ion"
)

// resetState returns the vesicle, species and simulation-owned mutable
// state to their construction-time values, so that Run is reproducible
// after a history flush (spec.md §8, property 10).
func (s *Simulation) resetState() {
	v := s.vesicle
	v.Volume = v.InitVolume
	v.Area = v.InitArea
	v.Capacitance = v.InitCapacitance
	v.Charge = v.InitCharge
	v.Voltage = v.InitVoltage
	v.PH = v.InitPH

	for _, name := range s.speciesOrder {
		sp := s.species[name]
		sp.VesicleConc = sp.InitVesicleConc
		sp.VesicleAmount = 0
	}

	s.Time = 0
	s.BufferCapacity = s.initBuffer
	// Keep the construction-time warnings (Step -1, from resolveLinks);
	// drop only those recorded by a previous run.
	kept := s.warnings[:0]
	for _, w := range s.warnings {
		if w.Step < 0 {
			kept = append(kept, w)
		}
	}
	s.warnings = kept
	for k := range s.amountClamped {
		delete(s.amountClamped, k)
	}
	for k := range s.concClamped {
		delete(s.concClamped, k)
	}
}

// seedAmounts implements spec.md §4.2: sets each species' initial
// vesicle_amount from its initial concentration and the vesicle's
// initial volume, then computes the unaccounted charge offset n_u
// once from the vesicle's initial charge and the species' initial
// concentrations.
func (s *Simulation) seedAmounts() {
	for _, name := range s.speciesOrder {
		s.species[name].SeedAmount(s.vesicle.InitVolume)
	}

	weightedConc := 0.0
	for _, name := range s.speciesOrder {
		sp := s.species[name]
		weightedConc += float64(sp.ElementaryCharge) * sp.InitVesicleConc
	}
	s.unaccounted = s.vesicle.InitCharge/constants.Faraday -
		weightedConc*constants.LitresPerCubicMetre*s.vesicle.InitVolume
}

// Run resets mutable state to its construction-time values, seeds the
// initial ion amounts and unaccounted charge offset, then drives
// one_step exactly iterNum times (spec.md §4.1). progress, if
// non-nil, is invoked with a monotonically non-decreasing percentage
// in [0, 100]. Cancellation is checked at iteration boundaries only;
// no partial iteration is ever recorded.
func (s *Simulation) Run(progress func(pct float64)) error {
	s.resetState()
	s.seedAmounts()

	if progress != nil {
		progress(0)
	}
	for i := 0; i < s.iterNum; i++ {
		if s.cancel != nil && s.cancel() {
			break
		}
		if err := s.oneStep(i); err != nil {
			return err
		}
		if progress != nil {
			progress(100 * float64(i+1) / float64(s.iterNum))
		}
	}
	return nil
}

// oneStep runs the fixed update pipeline, computes fluxes, records a
// snapshot, integrates ion amounts, and advances time (spec.md §4.1,
// §4.3). step is the zero-based iteration index, used only for
// warning diagnostics.
func (s *Simulation) oneStep(step int) error {
	s.updateState(step)

	ctx := s.buildFluxContext()

	fluxes := make(map[string]float64, len(s.speciesOrder))
	for _, name := range s.speciesOrder {
		sp := s.species[name]
		flux, err := sp.ComputeTotalFlux(ctx)
		if err != nil {
			return err
		}
		fluxes[name] = flux
	}
	s.collectClampWarnings(step)

	s.history.AppendSnapshot()

	for _, name := range s.speciesOrder {
		sp := s.species[name]
		if clamped := sp.Integrate(fluxes[name], s.timeStep); clamped && !s.amountClamped[name] {
			s.amountClamped[name] = true
			s.warn(step, name, "vesicle_amount", "ion amount went negative after integration; clamped to 0")
		}
	}

	s.Time += s.timeStep
	return nil
}

// updateState runs the fixed geometry -> buffer -> capacitance ->
// charge -> voltage -> pH pipeline (spec.md §4.3). Execution order is
// load-bearing: each step consumes the previous step's result.
func (s *Simulation) updateState(step int) {
	v := s.vesicle

	nonHydrogenConc, nonHydrogenConc0 := 0.0, 0.0
	for _, name := range s.speciesOrder {
		sp := s.species[name]
		if sp.IsHydrogen {
			continue
		}
		nonHydrogenConc += sp.VesicleConc
		nonHydrogenConc0 += sp.InitVesicleConc
	}
	absUnaccounted := math.Abs(s.unaccounted)
	v.Volume = v.InitVolume * (nonHydrogenConc + absUnaccounted) / (nonHydrogenConc0 + absUnaccounted)

	for _, name := range s.speciesOrder {
		sp := s.species[name]
		if clamped := sp.UpdateVesicleConc(v.Volume); clamped && !s.concClamped[name] {
			s.concClamped[name] = true
			s.warn(step, name, "vesicle_conc", "concentration non-positive after recompute; clamped to %g", constants.MinConcentration)
		}
	}

	s.BufferCapacity = s.initBuffer * v.Volume / v.InitVolume

	v.UpdateArea()
	v.UpdateCapacitance()

	weightedAmount := 0.0
	for _, name := range s.speciesOrder {
		sp := s.species[name]
		weightedAmount += float64(sp.ElementaryCharge) * sp.VesicleAmount
	}
	v.Charge = (weightedAmount + s.unaccounted) * constants.Faraday

	v.UpdateVoltage()

	if s.hydrogen == nil {
		v.PH = constants.DefaultPH
		return
	}
	free := s.hydrogen.VesicleConc * s.BufferCapacity
	if free <= 0 {
		v.PH = constants.DefaultPH
		s.warn(step, s.hydrogen.DisplayName(), "pH", "free hydrogen concentration non-positive; pH reset to %g", constants.DefaultPH)
		return
	}
	v.PH = -math.Log10(free)
}

// buildFluxContext assembles the immutable per-step snapshot handed to
// every channel (spec.md §4.4). The exterior free-hydrogen term uses
// the initial buffer capacity β₀, not the live β, consistent with
// treating the bath as an infinite, unchanging reservoir.
func (s *Simulation) buildFluxContext() *ion.FluxContext {
	ctx := &ion.FluxContext{
		Voltage: s.vesicle.Voltage,
		PH:      s.vesicle.PH,
		Area:    s.vesicle.Area,
		Time:    s.Time,
		Nernst:  s.nernst,
	}
	if s.hydrogen != nil {
		ctx.HasHydrogen = true
		ctx.VesicleHydrogenFree = s.hydrogen.VesicleConc * s.BufferCapacity
		ctx.ExteriorHydrogenFree = s.hydrogen.ExteriorConc * s.initBuffer
	}
	return ctx
}

// collectClampWarnings records a voltage-clamp warning for any channel
// that clamped its gating voltage during the flux pass just completed
// (spec.md §4.9). The per-step VoltageClamped flag lives on the
// channel itself; the simulation only translates it into a warning.
func (s *Simulation) collectClampWarnings(step int) {
	for name, ch := range s.channels {
		if ch.VoltageClamped {
			s.warn(step, name, "voltage_dependence", "gating voltage clamped to keep exp(.) representable")
		}
	}
}

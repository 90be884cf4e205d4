// Package ion implements the ion species and ion channel data model
// (spec.md components C4, C5, C7): a species' concentrations and
// amount, a channel's flux law and gating, and the per-step flux
// context passed between them. Species and Channel live in one
// package, by design: each needs a non-owning reference to the other
// (species sum fluxes over their bound channels; channels read their
// bound species' concentrations), and that cycle is resolved with
// direct *Species/*Channel pointers inside this one package rather
// than through a cross-package import cycle.
package ion

import (
	"github.com/bielosheikin/vesiclesim/constants"
	"github.com/bielosheikin/vesiclesim/history"
)

// SpeciesConfig holds the construction-time parameters for a Species.
type SpeciesConfig struct {
	InitVesicleConc  float64 `json:"init_vesicle_conc"` // mol·L⁻¹
	ExteriorConc     float64 `json:"exterior_conc"`     // mol·L⁻¹
	ElementaryCharge int     `json:"elementary_charge"` // z
}

// Species is one tracked ionic species. IsHydrogen is derived once at
// construction from the display name "h", which the engine treats as
// the designated hydrogen handle (spec.md §9).
type Species struct {
	displayName string

	ElementaryCharge int
	ExteriorConc     float64
	InitVesicleConc  float64
	VesicleConc      float64
	VesicleAmount    float64
	IsHydrogen       bool

	channels []*Channel // bound channels, in link-resolution order
}

// NewSpecies constructs a Species from its config. VesicleAmount is
// left at zero until Simulation seeds it from the vesicle's initial
// volume (spec.md §4.2).
func NewSpecies(displayName string, cfg SpeciesConfig) *Species {
	return &Species{
		displayName:      displayName,
		ElementaryCharge: cfg.ElementaryCharge,
		ExteriorConc:     cfg.ExteriorConc,
		InitVesicleConc:  cfg.InitVesicleConc,
		VesicleConc:      cfg.InitVesicleConc,
		IsHydrogen:       displayName == "h",
	}
}

// DisplayName returns the entity's unique name.
func (s *Species) DisplayName() string { return s.displayName }

// Fields implements history.Trackable.
func (s *Species) Fields() []history.Field {
	return []history.Field{
		{Name: "vesicle_conc", Value: s.VesicleConc},
		{Name: "vesicle_amount", Value: s.VesicleAmount},
	}
}

// ConnectChannel records a channel bound to this species, in the
// order links are resolved; binding compatibility must already have
// been validated via Channel.Bind.
func (s *Species) ConnectChannel(ch *Channel) {
	s.channels = append(s.channels, ch)
}

// ComputeTotalFlux sums ComputeFlux(ctx) over every channel bound to
// this species, in channel-insertion order (spec.md §4.7).
func (s *Species) ComputeTotalFlux(ctx *FluxContext) (float64, error) {
	total := 0.0
	for _, ch := range s.channels {
		flux, err := ch.ComputeFlux(ctx)
		if err != nil {
			return 0, err
		}
		total += flux
	}
	return total, nil
}

// SeedAmount sets the initial vesicle amount from the initial
// concentration and vesicle volume (m³): n_v = c_v0 · 1000 · V_v0.
func (s *Species) SeedAmount(initVolumeM3 float64) {
	s.VesicleAmount = s.InitVesicleConc * constants.LitresPerCubicMetre * initVolumeM3
}

// UpdateVesicleConc recomputes c_v = n_v / (1000 · V_v) from the
// current amount and vesicle volume (m³), clamping to ε if
// non-positive. Returns whether clamping occurred.
func (s *Species) UpdateVesicleConc(volumeM3 float64) (clamped bool) {
	c := s.VesicleAmount / (constants.LitresPerCubicMetre * volumeM3)
	if c <= 0 {
		s.VesicleConc = constants.MinConcentration
		return true
	}
	s.VesicleConc = c
	return false
}

// Integrate advances the vesicle amount by flux·dt, clamping at zero.
// Returns whether clamping occurred.
func (s *Species) Integrate(flux, dt float64) (clamped bool) {
	n := s.VesicleAmount + flux*dt
	if n < 0 {
		s.VesicleAmount = 0
		return true
	}
	s.VesicleAmount = n
	return false
}

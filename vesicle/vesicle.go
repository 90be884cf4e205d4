// Package vesicle models the mutable spherical compartment at the
// centre of the simulation: its geometry, capacitance, charge,
// voltage and pH.
package vesicle

import (
	"math"

	"github.com/bielosheikin/vesiclesim/constants"
	"github.com/bielosheikin/vesiclesim/history"
	"github.com/bielosheikin/vesiclesim/simerr"
)

// Config holds the immutable construction-time parameters of a Vesicle.
type Config struct {
	InitRadius          float64 `json:"init_radius"`          // m
	InitVoltage         float64 `json:"init_voltage"`         // V
	InitPH              float64 `json:"init_pH"`
	SpecificCapacitance float64 `json:"specific_capacitance"` // F·m⁻²
}

// DefaultConfig returns the default vesicle parameters used when a
// simulation config omits vesicle_params.
func DefaultConfig() Config {
	return Config{
		InitRadius:          1.3e-6,
		InitVoltage:         0.04,
		InitPH:              7.4,
		SpecificCapacitance: 0.01,
	}
}

// Validate checks ConfigValidation invariants: a non-positive radius
// or specific capacitance makes every derived quantity meaningless.
func (c Config) Validate() error {
	if c.InitRadius <= 0 {
		return simerr.New(simerr.ConfigValidation, "vesicle init_radius must be positive, got %g", c.InitRadius)
	}
	if c.SpecificCapacitance <= 0 {
		return simerr.New(simerr.ConfigValidation, "vesicle specific_capacitance must be positive, got %g", c.SpecificCapacitance)
	}
	return nil
}

// Vesicle is the mutable spherical compartment. InitVolume, InitArea,
// InitCapacitance and InitCharge are derived once at construction and
// never change afterwards; Volume, Area, Capacitance, Charge, Voltage
// and PH are updated once per step by the simulation's update pipeline.
type Vesicle struct {
	displayName string
	cfg         Config

	// derived initial quantities, fixed for the life of the run
	InitVolume      float64 // m³ (mol·L⁻¹ concentrations are converted via constants.LitresPerCubicMetre)
	InitArea        float64 // m²
	InitCapacitance float64 // F
	InitCharge      float64 // C
	InitVoltage     float64 // V
	InitPH          float64

	// mutable state
	Volume      float64 // m³
	Area        float64 // m²
	Capacitance float64 // F
	Charge      float64 // C
	Voltage     float64 // V
	PH          float64
}

// New constructs a Vesicle from its config, computing the derived
// initial geometry/capacitance/charge once.
func New(displayName string, cfg Config) (*Vesicle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r0 := cfg.InitRadius
	initVolume := (4.0 / 3.0) * math.Pi * r0 * r0 * r0
	initArea := 4.0 * math.Pi * r0 * r0
	initCapacitance := initArea * cfg.SpecificCapacitance
	initCharge := cfg.InitVoltage * initCapacitance

	v := &Vesicle{
		displayName:     displayName,
		cfg:             cfg,
		InitVolume:      initVolume,
		InitArea:        initArea,
		InitCapacitance: initCapacitance,
		InitCharge:      initCharge,
		InitVoltage:     cfg.InitVoltage,
		InitPH:          cfg.InitPH,
		Volume:          initVolume,
		Area:            initArea,
		Capacitance:     initCapacitance,
		Charge:          initCharge,
		Voltage:         cfg.InitVoltage,
		PH:              cfg.InitPH,
	}
	return v, nil
}

// DisplayName returns the entity's unique name.
func (v *Vesicle) DisplayName() string { return v.displayName }

// SpecificCapacitance returns the constant c_s used by UpdateCapacitance.
func (v *Vesicle) SpecificCapacitance() float64 { return v.cfg.SpecificCapacitance }

// Fields implements history.Trackable.
func (v *Vesicle) Fields() []history.Field {
	return []history.Field{
		{Name: "volume", Value: v.Volume},
		{Name: "area", Value: v.Area},
		{Name: "capacitance", Value: v.Capacitance},
		{Name: "charge", Value: v.Charge},
		{Name: "voltage", Value: v.Voltage},
		{Name: "pH", Value: v.PH},
	}
}

// UpdateArea recomputes A = k_VA · V^(2/3) from the current volume.
func (v *Vesicle) UpdateArea() {
	v.Area = constants.VolumeToArea * math.Pow(v.Volume, 2.0/3.0)
}

// UpdateCapacitance recomputes C = A · c_s from the current area.
func (v *Vesicle) UpdateCapacitance() {
	v.Capacitance = v.Area * v.cfg.SpecificCapacitance
}

// UpdateVoltage recomputes V_m = Q / C from the current charge and capacitance.
func (v *Vesicle) UpdateVoltage() {
	v.Voltage = v.Charge / v.Capacitance
}

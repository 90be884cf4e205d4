package ion

import (
	"github.com/bielosheikin/vesiclesim/history"
	"github.com/bielosheikin/vesiclesim/simerr"
)

// ChannelType selects the default pH-gating constants for a channel
// (spec.md §4.6). The empty string is treated as ChannelTypeNone.
type ChannelType string

// Recognised channel types.
const (
	ChannelTypeNone ChannelType = "none"
	ChannelTypeWT   ChannelType = "wt"
	ChannelTypeMT   ChannelType = "mt"
	ChannelTypeCLC  ChannelType = "clc"
)

// DependenceType selects which gating factors a channel's flux is
// multiplied by. The empty string is treated as DependenceNone.
type DependenceType string

// Recognised dependence types.
const (
	DependenceNone          DependenceType = "none"
	DependenceVoltage       DependenceType = "voltage"
	DependencePH            DependenceType = "pH"
	DependenceVoltageAndPH  DependenceType = "voltage_and_pH"
	DependenceTime          DependenceType = "time"
)

// ChannelConfig holds the construction-time parameters for a Channel
// (spec.md §4.5/§6). Pointer fields are optional overrides of the
// channel_type-dependent defaults resolved in NewChannel.
type ChannelConfig struct {
	Conductance       float64        `json:"conductance"`
	ChannelType       ChannelType    `json:"channel_type"`
	DependenceType    DependenceType `json:"dependence_type"`
	VoltageMultiplier float64        `json:"voltage_multiplier"`
	NernstMultiplier  float64        `json:"nernst_multiplier"`
	VoltageShift      float64        `json:"voltage_shift"`
	FluxMultiplier    float64        `json:"flux_multiplier"`

	AllowedPrimaryIon   string `json:"allowed_primary_ion"`
	AllowedSecondaryIon string `json:"allowed_secondary_ion"`
	PrimaryExponent     int    `json:"primary_exponent"`
	SecondaryExponent   int    `json:"secondary_exponent"`

	CustomNernstConstant *float64 `json:"custom_nernst_constant"`
	UseFreeHydrogen      bool     `json:"use_free_hydrogen"`

	InvertPrimaryLogTerm   bool `json:"invert_primary_log_term"`
	InvertSecondaryLogTerm bool `json:"invert_secondary_log_term"`

	VoltageExponent *float64 `json:"voltage_exponent"`
	HalfActVoltage  *float64 `json:"half_act_voltage"`
	PHExponent      *float64 `json:"pH_exponent"`
	HalfActPH       *float64 `json:"half_act_pH"`
	TimeExponent    *float64 `json:"time_exponent"`
	HalfActTime     *float64 `json:"half_act_time"`
}

// Channel is one ion channel's flux law plus its resolved gating
// parameters and per-step mutable results (spec.md §4.5-§4.7).
type Channel struct {
	displayName string
	cfg         ChannelConfig

	primary   *Species
	secondary *Species // nil unless AllowedSecondaryIon is set

	hasPH, hasVoltage, hasTime bool
	voltageExponent            float64
	halfActVoltage             float64
	pHExponent                 float64
	halfActPH                  float64
	timeExponent               float64
	halfActTime                float64

	// per-step trackable results
	Flux              float64
	NernstPotential   float64
	PHDependence      float64
	VoltageDependence float64
	TimeDependence    float64

	// VoltageClamped is set by the most recent ComputeFlux call; it is
	// not itself tracked, but the simulation consults it to emit the
	// clamping warning required by spec.md §4.9.
	VoltageClamped bool
}

// NewChannel validates cfg and resolves its gating defaults (spec.md
// §4.6), returning a ConfigValidation error for an unrecognised
// channel_type/dependence_type or a missing primary ion name.
func NewChannel(displayName string, cfg ChannelConfig) (*Channel, error) {
	switch cfg.ChannelType {
	case "", ChannelTypeNone, ChannelTypeWT, ChannelTypeMT, ChannelTypeCLC:
	default:
		return nil, simerr.At(simerr.ConfigValidation, displayName, "unrecognised channel_type %q", cfg.ChannelType)
	}
	switch cfg.DependenceType {
	case "", DependenceNone, DependenceVoltage, DependencePH, DependenceVoltageAndPH, DependenceTime:
	default:
		return nil, simerr.At(simerr.ConfigValidation, displayName, "unrecognised dependence_type %q", cfg.DependenceType)
	}
	if cfg.AllowedPrimaryIon == "" {
		return nil, simerr.At(simerr.ConfigValidation, displayName, "allowed_primary_ion must be set")
	}
	if cfg.PrimaryExponent == 0 {
		cfg.PrimaryExponent = 1
	}
	if cfg.SecondaryExponent == 0 {
		cfg.SecondaryExponent = 1
	}

	c := &Channel{displayName: displayName, cfg: cfg}
	c.hasPH = cfg.DependenceType == DependencePH || cfg.DependenceType == DependenceVoltageAndPH
	c.hasVoltage = cfg.DependenceType == DependenceVoltage || cfg.DependenceType == DependenceVoltageAndPH
	c.hasTime = cfg.DependenceType == DependenceTime

	if c.hasPH {
		if cfg.PHExponent == nil || cfg.HalfActPH == nil {
			c.pHExponent, c.halfActPH = defaultPHGating(cfg.ChannelType)
		} else {
			c.pHExponent, c.halfActPH = *cfg.PHExponent, *cfg.HalfActPH
		}
	}
	if c.hasVoltage {
		if cfg.VoltageExponent == nil || cfg.HalfActVoltage == nil {
			c.voltageExponent, c.halfActVoltage = 80.0, -0.04
		} else {
			c.voltageExponent, c.halfActVoltage = *cfg.VoltageExponent, *cfg.HalfActVoltage
		}
	}
	if c.hasTime {
		if cfg.TimeExponent == nil || cfg.HalfActTime == nil {
			c.timeExponent, c.halfActTime = 0.0, 0.0
		} else {
			c.timeExponent, c.halfActTime = *cfg.TimeExponent, *cfg.HalfActTime
		}
	}
	return c, nil
}

// defaultPHGating returns (k_pH, pH_½) for the given channel_type,
// per spec.md §4.6.
func defaultPHGating(ct ChannelType) (exponent, halfAct float64) {
	switch ct {
	case ChannelTypeWT:
		return 3.0, 5.4
	case ChannelTypeMT:
		return 1.0, 7.4
	case ChannelTypeCLC:
		return -1.5, 5.5
	default:
		return 3.0, 5.4
	}
}

// DisplayName returns the entity's unique name.
func (c *Channel) DisplayName() string { return c.displayName }

// Fields implements history.Trackable; which dependence fields are
// tracked depends on dependence_type, fixed at construction (spec.md §4.8).
func (c *Channel) Fields() []history.Field {
	fields := []history.Field{
		{Name: "flux", Value: c.Flux},
		{Name: "nernst_potential", Value: c.NernstPotential},
	}
	if c.hasPH {
		fields = append(fields, history.Field{Name: "pH_dependence", Value: c.PHDependence})
	}
	if c.hasVoltage {
		fields = append(fields, history.Field{Name: "voltage_dependence", Value: c.VoltageDependence})
	}
	if c.hasTime {
		fields = append(fields, history.Field{Name: "time_dependence", Value: c.TimeDependence})
	}
	return fields
}

// RequiresFreeHydrogen reports whether this channel needs free [H⁺]
// scaling for either of its bound ions.
func (c *Channel) RequiresFreeHydrogen() bool { return c.cfg.UseFreeHydrogen }

// PrimaryIonName and SecondaryIonName expose the configured binding
// targets, used by link resolution before species are connected.
func (c *Channel) PrimaryIonName() string   { return c.cfg.AllowedPrimaryIon }
func (c *Channel) SecondaryIonName() string { return c.cfg.AllowedSecondaryIon }

// Bind connects this channel to a primary species a and, if the
// channel declares a secondary ion, a secondary species b (spec.md
// §4.5 binding compatibility). a/b may be supplied in either order
// when both are set; Bind sorts them so PrimaryIonSpecies is the one
// named AllowedPrimaryIon.
func (c *Channel) Bind(a, b *Species) error {
	if c.cfg.AllowedSecondaryIon == "" {
		if b != nil {
			return simerr.At(simerr.BindingError, c.displayName, "channel does not accept a secondary ion, got %q", b.DisplayName())
		}
		if a.DisplayName() != c.cfg.AllowedPrimaryIon {
			return simerr.At(simerr.BindingError, c.displayName, "channel only works with primary ion %q, got %q", c.cfg.AllowedPrimaryIon, a.DisplayName())
		}
		c.primary = a
		return nil
	}
	if b == nil {
		return simerr.At(simerr.BindingError, c.displayName, "channel requires a secondary ion species %q", c.cfg.AllowedSecondaryIon)
	}
	switch {
	case a.DisplayName() == c.cfg.AllowedPrimaryIon && b.DisplayName() == c.cfg.AllowedSecondaryIon:
		c.primary, c.secondary = a, b
	case a.DisplayName() == c.cfg.AllowedSecondaryIon && b.DisplayName() == c.cfg.AllowedPrimaryIon:
		c.primary, c.secondary = b, a
	default:
		return simerr.At(simerr.BindingError, c.displayName, "channel requires ions %q and %q, got %q and %q",
			c.cfg.AllowedPrimaryIon, c.cfg.AllowedSecondaryIon, a.DisplayName(), b.DisplayName())
	}
	return nil
}

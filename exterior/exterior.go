// Package exterior models the bath surrounding the vesicle: an
// immutable reservoir characterised, for this engine's purposes,
// solely by its pH.
package exterior

import "github.com/bielosheikin/vesiclesim/history"

// Config holds the construction-time parameters for an Exterior.
type Config struct {
	PH float64 `json:"pH"`
}

// DefaultConfig returns the default exterior parameters used when a
// simulation config omits exterior_params.
func DefaultConfig() Config {
	return Config{PH: 7.2}
}

// Exterior is the immutable bath. It never changes over a run.
type Exterior struct {
	displayName string
	pH          float64
}

// New constructs an Exterior with the given display name and config.
func New(displayName string, cfg Config) *Exterior {
	return &Exterior{displayName: displayName, pH: cfg.PH}
}

// DisplayName returns the entity's unique name, used as the history key prefix.
func (e *Exterior) DisplayName() string { return e.displayName }

// PH returns the (constant) bath pH.
func (e *Exterior) PH() float64 { return e.pH }

// Fields implements history.Trackable: Exterior tracks only pH.
func (e *Exterior) Fields() []history.Field {
	return []history.Field{{Name: "pH", Value: e.pH}}
}

// Package simerr defines the structured error kinds raised by the
// vesicle simulation engine, so callers can distinguish a setup-time
// mistake from a runtime numerical failure without string matching.
package simerr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind classifies a simulation error per the engine's error-handling design.
type Kind int

const (
	// ConfigValidation marks a bad construction-time parameter (e.g. non-positive time_step).
	ConfigValidation Kind = iota
	// NameConflict marks two entities registered under the same display name.
	NameConflict
	// BindingError marks a channel whose primary/secondary ion expectations
	// do not match the link map.
	BindingError
	// MissingDependency marks a channel that requires something the
	// simulation does not provide (free hydrogen, gating parameters).
	MissingDependency
	// NumericDomain marks a runtime math failure: non-positive log argument,
	// exp overflow, division by zero.
	NumericDomain
)

func (k Kind) String() string {
	switch k {
	case ConfigValidation:
		return "ConfigValidation"
	case NameConflict:
		return "NameConflict"
	case BindingError:
		return "BindingError"
	case MissingDependency:
		return "MissingDependency"
	case NumericDomain:
		return "NumericDomain"
	default:
		return "Unknown"
	}
}

// Error is a kind-tagged, wrapped error. Entity, if non-empty, names the
// channel/species responsible; Time is the simulation time at failure
// (runtime errors only).
type Error struct {
	Kind   Kind
	Entity string
	Time   float64
	err    error
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.err)
	}
	if e.Time != 0 {
		return fmt.Sprintf("%s: %s @ t=%g: %v", e.Kind, e.Entity, e.Time, e.err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Entity, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// New builds a Kind-tagged error from a chk-style format string.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, err: chk.Err(format, args...)}
}

// At builds a Kind-tagged error naming the offending entity.
func At(kind Kind, entity string, format string, args ...interface{}) error {
	return &Error{Kind: kind, Entity: entity, err: chk.Err(format, args...)}
}

// AtTime builds a runtime Kind-tagged error naming the entity and the
// simulation time at which it failed.
func AtTime(kind Kind, entity string, time float64, format string, args ...interface{}) error {
	return &Error{Kind: kind, Entity: entity, Time: time, err: chk.Err(format, args...)}
}

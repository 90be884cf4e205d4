// Package history implements the append-only time-series store that
// backs every tracked quantity in a simulation run. It replaces the
// original's runtime reflection over named attributes with a small,
// statically typed Trackable interface: each entity kind returns its
// own fixed tuple of (field name, current value) rather than being
// inspected by name at record time.
package history

import (
	"fmt"

	"github.com/bielosheikin/vesiclesim/simerr"
)

// Field is one named, trackable scalar exposed by an entity at a
// given instant.
type Field struct {
	Name  string
	Value float64
}

// Trackable is implemented by every entity kind that can be
// registered with a Store: Vesicle, Exterior, IonSpecies, IonChannel,
// and Simulation itself.
type Trackable interface {
	DisplayName() string
	Fields() []Field
}

// Store is a registry of tracked entities plus the append-only
// dictionary of named time series derived from them. A Store is owned
// exclusively by one Simulation; concurrent snapshots are unsupported.
type Store struct {
	order   []string             // display names in registration order
	kinds   map[string]string    // display name -> Go type name, for conflict diagnostics
	series  map[string][]float64 // "<display_name>_<field>" -> samples
	fields  map[string][]string  // display name -> its field names, in Fields() order
	objects map[string]Trackable
}

// NewStore returns an empty history store.
func NewStore() *Store {
	return &Store{
		kinds:   make(map[string]string),
		series:  make(map[string][]float64),
		fields:  make(map[string][]string),
		objects: make(map[string]Trackable),
	}
}

// Register adds obj to the store under its DisplayName and
// preallocates an empty series for each of its trackable fields. It
// is an error to register two entities (of the same kind or
// different kinds) under the same display name.
func (s *Store) Register(obj Trackable) error {
	name := obj.DisplayName()
	kind := typeName(obj)
	if existingKind, ok := s.kinds[name]; ok {
		if existingKind == kind {
			return simerr.At(simerr.NameConflict, name, "duplicate %s: an entity named %q is already registered", kind, name)
		}
		return simerr.At(simerr.NameConflict, name, "name conflict: %q is already used by a %s, cannot reuse it for a %s", name, existingKind, kind)
	}
	s.kinds[name] = kind
	s.objects[name] = obj
	s.order = append(s.order, name)

	fields := obj.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		s.series[seriesKey(name, f.Name)] = []float64{}
	}
	s.fields[name] = names
	return nil
}

// AppendSnapshot reads the current Fields() of every registered
// entity and appends one sample to each corresponding series.
func (s *Store) AppendSnapshot() {
	for _, name := range s.order {
		obj := s.objects[name]
		for _, f := range obj.Fields() {
			key := seriesKey(name, f.Name)
			s.series[key] = append(s.series[key], f.Value)
		}
	}
}

// Flush clears every series but keeps registrations, for re-running
// the same Simulation.
func (s *Store) Flush() {
	for key := range s.series {
		s.series[key] = []float64{}
	}
}

// Reset drops all registrations and series.
func (s *Store) Reset() {
	s.order = nil
	s.kinds = make(map[string]string)
	s.series = make(map[string][]float64)
	s.fields = make(map[string][]string)
	s.objects = make(map[string]Trackable)
}

// Series returns the recorded samples for "<display_name>_<field>",
// and whether that key exists.
func (s *Store) Series(key string) ([]float64, bool) {
	v, ok := s.series[key]
	return v, ok
}

// SeriesFor returns the recorded samples for a given entity's field.
func (s *Store) SeriesFor(displayName, field string) ([]float64, bool) {
	return s.Series(seriesKey(displayName, field))
}

// Len returns the number of snapshots recorded so far (0 if nothing
// has been registered yet).
func (s *Store) Len() int {
	for _, key := range s.series {
		return len(key)
	}
	return 0
}

// Keys returns every series key currently tracked, in registration order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.series))
	for _, name := range s.order {
		for _, f := range s.fields[name] {
			keys = append(keys, seriesKey(name, f))
		}
	}
	return keys
}

// All returns a copy of the full series map, suitable for serialisation.
func (s *Store) All() map[string][]float64 {
	out := make(map[string][]float64, len(s.series))
	for _, key := range s.Keys() {
		vals := s.series[key]
		cp := make([]float64, len(vals))
		copy(cp, vals)
		out[key] = cp
	}
	return out
}

func seriesKey(displayName, field string) string {
	return displayName + "_" + field
}

func typeName(obj Trackable) string {
	return fmt.Sprintf("%T", obj)
}

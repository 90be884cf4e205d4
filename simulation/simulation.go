// Package simulation implements the orchestrator (spec.md C9): it owns
// the vesicle, exterior, every species and channel, the link map and
// the history store, resolves name-based bindings into direct
// pointers once at construction, and drives the fixed-step update
// loop.
package simulation

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/io"

	"github.com/bielosheikin/vesiclesim/config"
	"github.com/bielosheikin/vesiclesim/constants"
	"github.com/bielosheikin/vesiclesim/exterior"
	"github.com/bielosheikin/vesiclesim/history"
	"github.com/bielosheikin/vesiclesim/ion"
	"github.com/bielosheikin/vesiclesim/link"
	"github.com/bielosheikin/vesiclesim/vesicle"
)

// Warning is a non-fatal diagnostic emitted during run (spec.md §4.9).
// Warnings never abort a run; Simulation just accumulates them.
type Warning struct {
	Step    int
	Entity  string
	Field   string
	Message string
}

// Simulation is the orchestrator. It exclusively owns every entity it
// constructs; species and channels hold only non-owning references to
// each other, wired once in New and never rebuilt afterwards.
type Simulation struct {
	displayName string

	vesicle      *vesicle.Vesicle
	exterior     *exterior.Exterior
	species      map[string]*ion.Species
	speciesOrder []string // registration order, for deterministic sums
	channels     map[string]*ion.Channel
	hydrogen     *ion.Species // nil if no species is named "h"

	history *history.Store
	cfg     *config.Config

	timeStep    float64
	iterNum     int
	temperature float64
	initBuffer  float64

	nernst      float64 // N = R·T/F
	unaccounted float64 // n_u, fixed after seeding

	// mutable per-step / per-run state, tracked via Fields()
	BufferCapacity float64
	Time           float64

	warnings       []Warning
	amountClamped  map[string]bool // species that already warned once about amount clamping
	concClamped    map[string]bool // species that already warned once about concentration clamping
	cancel         func() bool
}

// New validates cfg, builds every entity, resolves the link map into
// direct bindings, and registers everything with the history store
// (spec.md §4.1). No partial Simulation is ever returned on error.
func New(cfg *config.Config) (*Simulation, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ves, err := vesicle.New("vesicle", *cfg.VesicleParams)
	if err != nil {
		return nil, err
	}
	ext := exterior.New("exterior", *cfg.ExteriorParams)

	sim := &Simulation{
		displayName:   cfg.Simulation.DisplayName,
		vesicle:       ves,
		exterior:      ext,
		species:       make(map[string]*ion.Species),
		channels:      make(map[string]*ion.Channel),
		history:       history.NewStore(),
		cfg:           cfg,
		timeStep:      cfg.Simulation.TimeStep,
		iterNum:       int(math.Floor(cfg.Simulation.TotalTime / cfg.Simulation.TimeStep)),
		temperature:   cfg.Simulation.Temperature,
		initBuffer:    cfg.Simulation.InitBufferCapacity,
		amountClamped: make(map[string]bool),
		concClamped:   make(map[string]bool),
	}
	if sim.displayName == "" {
		sim.displayName = "simulation"
	}

	// Species first, so a collision between a species and a channel
	// name is caught when the channel is registered next. Species are
	// registered in sorted name order so that speciesOrder, and every
	// sum taken over it, is the same for every construction.
	speciesNames := make([]string, 0, len(cfg.Species))
	for name := range cfg.Species {
		speciesNames = append(speciesNames, name)
	}
	sort.Strings(speciesNames)
	for _, name := range speciesNames {
		sp := ion.NewSpecies(name, cfg.Species[name])
		sim.species[name] = sp
		sim.speciesOrder = append(sim.speciesOrder, name)
		if sp.IsHydrogen {
			sim.hydrogen = sp
		}
		if err := sim.history.Register(sp); err != nil {
			return nil, err
		}
	}

	for name, chCfg := range cfg.Channels {
		ch, err := ion.NewChannel(name, chCfg)
		if err != nil {
			return nil, err
		}
		if ch.RequiresFreeHydrogen() && sim.hydrogen == nil {
			return nil, missingHydrogen(name)
		}
		sim.channels[name] = ch
		if err := sim.history.Register(ch); err != nil {
			return nil, err
		}
	}

	if err := sim.resolveLinks(cfg.LinkMap()); err != nil {
		return nil, err
	}

	if err := sim.history.Register(ves); err != nil {
		return nil, err
	}
	if err := sim.history.Register(ext); err != nil {
		return nil, err
	}
	if err := sim.history.Register(sim); err != nil {
		return nil, err
	}

	sim.nernst = constants.NernstCoefficient(sim.temperature)
	sim.BufferCapacity = sim.initBuffer

	return sim, nil
}

// resolveLinks binds channels to species per the configured link map
// (spec.md §4.1/§4.5). A channel or species named in a link that does
// not exist is skipped with a warning rather than failing
// construction; an existing channel bound to an existing but
// incompatible species set IS fatal (ion.Channel.Bind's BindingError),
// since that reflects a malformed configuration, not a missing
// optional link.
func (s *Simulation) resolveLinks(links link.Map) error {
	for primaryName, entries := range links {
		primary, ok := s.species[primaryName]
		if !ok {
			s.warn(-1, primaryName, "ion_channel_links", "link map references unknown species %q; skipping its links", primaryName)
			continue
		}
		for _, e := range entries {
			ch, ok := s.channels[e.Channel]
			if !ok {
				s.warn(-1, e.Channel, "ion_channel_links", "link map references unknown channel %q; skipping", e.Channel)
				continue
			}
			var secondary *ion.Species
			if e.SecondaryIon != "" {
				secondary, ok = s.species[e.SecondaryIon]
				if !ok {
					s.warn(-1, e.SecondaryIon, "ion_channel_links", "link map references unknown secondary species %q for channel %q; skipping", e.SecondaryIon, e.Channel)
					continue
				}
			}
			if err := ch.Bind(primary, secondary); err != nil {
				return err
			}
			// Only the primary species accumulates this channel in its
			// own flux sum; the secondary ion's contribution is carried
			// entirely inside the channel's own log term, not double
			// counted as a second independent flux (matches the
			// original binding semantics).
			primary.ConnectChannel(ch)
		}
	}
	return nil
}

// DisplayName returns the simulation's own entity name, used as the
// prefix for its "buffer_capacity"/"time" series.
func (s *Simulation) DisplayName() string { return s.displayName }

// Fields implements history.Trackable.
func (s *Simulation) Fields() []history.Field {
	return []history.Field{
		{Name: "buffer_capacity", Value: s.BufferCapacity},
		{Name: "time", Value: s.Time},
	}
}

// Warnings returns every non-fatal warning accumulated so far.
func (s *Simulation) Warnings() []Warning { return s.warnings }

// History returns the store backing this simulation's recorded series.
func (s *Simulation) History() *history.Store { return s.history }

// IterNum returns the number of iterations a call to Run performs.
func (s *Simulation) IterNum() int { return s.iterNum }

// TimeStep returns the fixed integration time step.
func (s *Simulation) TimeStep() float64 { return s.timeStep }

// TotalTime returns iterNum * timeStep, the configured run duration
// rounded down to a whole number of steps.
func (s *Simulation) TotalTime() float64 { return float64(s.iterNum) * s.timeStep }

// UnaccountedIonAmount returns n_u, fixed once per Run call from the
// vesicle's initial charge and the species' initial concentrations
// (spec.md §4.2). It is only meaningful after Run has been called at
// least once.
func (s *Simulation) UnaccountedIonAmount() float64 { return s.unaccounted }

// SetCancel installs a cooperative cancellation check consulted at
// iteration boundaries (spec.md §5): if it returns true, Run stops
// before starting the next iteration, leaving the history collected
// so far intact.
func (s *Simulation) SetCancel(cancel func() bool) { s.cancel = cancel }

func (s *Simulation) warn(step int, entity, field, format string, args ...interface{}) {
	s.warnings = append(s.warnings, Warning{Step: step, Entity: entity, Field: field, Message: io.Sf(format, args...)})
}

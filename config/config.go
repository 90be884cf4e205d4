// Package config implements the typed configuration schema described
// in spec.md §6 (the schema carries no version field), loaded from JSON (teacher idiom: typed
// structs with json tags plus github.com/cpmech/gosl/io.ReadFile,
// mirroring inp.Data/inp.Material in the teacher) or YAML.
package config

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"

	"github.com/bielosheikin/vesiclesim/exterior"
	"github.com/bielosheikin/vesiclesim/ion"
	"github.com/bielosheikin/vesiclesim/link"
	"github.com/bielosheikin/vesiclesim/simerr"
	"github.com/bielosheikin/vesiclesim/vesicle"
)

// SimulationConfig holds the global run parameters (spec.md §6).
type SimulationConfig struct {
	DisplayName        string  `json:"display_name" yaml:"display_name"`
	TimeStep           float64 `json:"time_step" yaml:"time_step"`
	TotalTime          float64 `json:"total_time" yaml:"total_time"`
	Temperature         float64 `json:"temperature" yaml:"temperature"`
	InitBufferCapacity float64 `json:"init_buffer_capacity" yaml:"init_buffer_capacity"`
}

// LinkEntry is one (channel, optional secondary species) binding. It
// marshals as the two-element JSON/YAML array the spec schema
// describes: `[channel-name, secondary-species-name-or-empty]`.
type LinkEntry struct {
	Channel      string
	SecondaryIon string
}

// MarshalJSON renders a LinkEntry as a 2-element array.
func (e LinkEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Channel, e.SecondaryIon})
}

// UnmarshalJSON parses a 2-element array into a LinkEntry.
func (e *LinkEntry) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	e.Channel, e.SecondaryIon = pair[0], pair[1]
	return nil
}

// MarshalYAML renders a LinkEntry as a 2-element sequence.
func (e LinkEntry) MarshalYAML() (interface{}, error) {
	return [2]string{e.Channel, e.SecondaryIon}, nil
}

// UnmarshalYAML parses a 2-element sequence into a LinkEntry.
func (e *LinkEntry) UnmarshalYAML(value *yaml.Node) error {
	var pair [2]string
	if err := value.Decode(&pair); err != nil {
		return err
	}
	e.Channel, e.SecondaryIon = pair[0], pair[1]
	return nil
}

// Config is the top-level simulation configuration (spec.md §6). It
// is the language-neutral schema's direct Go rendering: every optional
// block is an explicit pointer defaulted by Normalize, never a dynamic
// dictionary. It has no schema-version field, and Load does not check
// one.
type Config struct {
	Simulation      SimulationConfig                `json:"simulation" yaml:"simulation"`
	VesicleParams   *vesicle.Config                 `json:"vesicle_params,omitempty" yaml:"vesicle_params,omitempty"`
	ExteriorParams  *exterior.Config                `json:"exterior_params,omitempty" yaml:"exterior_params,omitempty"`
	Species         map[string]ion.SpeciesConfig    `json:"species" yaml:"species"`
	Channels        map[string]ion.ChannelConfig    `json:"channels" yaml:"channels"`
	IonChannelLinks map[string][]LinkEntry          `json:"ion_channel_links" yaml:"ion_channel_links"`
}

// Normalize fills in defaults for any omitted optional block, per
// spec.md §4.1 ("falling back to defaults if absent").
func (c *Config) Normalize() {
	if c.VesicleParams == nil {
		d := vesicle.DefaultConfig()
		c.VesicleParams = &d
	}
	if c.ExteriorParams == nil {
		d := exterior.DefaultConfig()
		c.ExteriorParams = &d
	}
	if c.Species == nil {
		c.Species = map[string]ion.SpeciesConfig{}
	}
	if c.Channels == nil {
		c.Channels = map[string]ion.ChannelConfig{}
	}
	if c.IonChannelLinks == nil {
		c.IonChannelLinks = map[string][]LinkEntry{}
	}
}

// Validate checks the ConfigValidation invariants that belong to the
// configuration itself, ahead of any entity construction: a positive
// time_step, a non-negative total_time, and a positive temperature.
func (c *Config) Validate() error {
	if c.Simulation.TimeStep <= 0 {
		return simerr.New(simerr.ConfigValidation, "time_step must be positive, got %g", c.Simulation.TimeStep)
	}
	if c.Simulation.TotalTime < 0 {
		return simerr.New(simerr.ConfigValidation, "total_time cannot be negative, got %g", c.Simulation.TotalTime)
	}
	if c.Simulation.Temperature <= 0 {
		return simerr.New(simerr.ConfigValidation, "temperature must be positive, got %g", c.Simulation.Temperature)
	}
	return nil
}

// LinkMap converts the configuration's ion_channel_links into a
// link.Map for simulation construction.
func (c *Config) LinkMap() link.Map {
	m := make(link.Map, len(c.IonChannelLinks))
	for species, entries := range c.IonChannelLinks {
		bindings := make([]link.Entry, len(entries))
		for i, e := range entries {
			bindings[i] = link.Entry{Channel: e.Channel, SecondaryIon: e.SecondaryIon}
		}
		m[species] = bindings
	}
	return m
}

// Load reads a .json or .yaml/.yml configuration file and returns a
// normalized, validated Config.
func Load(path string) (*Config, error) {
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, simerr.New(simerr.ConfigValidation, "cannot read config file %q: %v", path, err)
	}

	cfg := new(Config)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		// The nested parameter blocks (vesicle, exterior, species,
		// channels) carry json tags only, so YAML is decoded generically
		// and then read through the JSON decoder, which honours them.
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, simerr.New(simerr.ConfigValidation, "cannot parse YAML config %q: %v", path, err)
		}
		asJSON, err := json.Marshal(doc)
		if err != nil {
			return nil, simerr.New(simerr.ConfigValidation, "cannot convert YAML config %q: %v", path, err)
		}
		if err := json.Unmarshal(asJSON, cfg); err != nil {
			return nil, simerr.New(simerr.ConfigValidation, "cannot parse YAML config %q: %v", path, err)
		}
	case ".json", "":
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, simerr.New(simerr.ConfigValidation, "cannot parse JSON config %q: %v", path, err)
		}
	default:
		return nil, simerr.New(simerr.ConfigValidation, "unrecognised config file extension %q", ext)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Hash returns a deterministic content hash of the configuration,
// suitable for naming a run without re-implementing canonical JSON in
// every caller (spec.md §6 persistence interface; supplemented from
// the original's save_simulation config-hash directory naming).
func (c *Config) Hash() (string, error) {
	canonical, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("cannot canonicalise config: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%x", sum), nil
}

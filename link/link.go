// Package link implements the ion-channels link map (spec.md C6): a
// pure, name-based bipartite binding description between ion species
// and ion channels. It carries no behaviour and no reference to the
// ion package — resolving names into live *ion.Species/*ion.Channel
// pointers is the simulation package's job, once at construction, per
// the "no name lookups in the inner loop" redesign note (spec.md §9).
package link

// Entry is one (channel, optional secondary species) binding for a
// given primary species.
type Entry struct {
	Channel         string
	SecondaryIon    string // empty if the channel is single-ion
}

// Map is the ion-channels link map: primary species name -> ordered
// list of bindings. Preserving entry order matters — it is the order
// in which channels are bound to their primary species, and hence the
// deterministic summation order for IonSpecies.ComputeTotalFlux
// (spec.md §4.7).
type Map map[string][]Entry

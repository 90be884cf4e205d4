package ion

// FluxContext is the immutable per-step snapshot (spec.md §4.4)
// handed to every channel's ComputeFlux. HasHydrogen is false when
// the simulation has no hydrogen species, in which case
// VesicleHydrogenFree and ExteriorHydrogenFree are zero and must not
// be read by a channel requesting free-hydrogen scaling — that
// request is rejected as a MissingDependency at construction time,
// before any FluxContext is ever built.
type FluxContext struct {
	Voltage float64
	PH      float64
	Area    float64
	Time    float64
	Nernst  float64 // N = R·T/F

	HasHydrogen          bool
	VesicleHydrogenFree  float64 // c_v,h · β
	ExteriorHydrogenFree float64 // c_e,h · β₀
}

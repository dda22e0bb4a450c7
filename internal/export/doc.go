// Package export collects the output of the panel builder, shelf planner
// and hardware placer into a single ordered Assembly, and renders it for
// consumers that are not the geometry kernel: a shop cut list, JSON and
// YAML documents, and batches of cabinets generated in parallel.
//
// Nothing in this package knows about scene, layer or block APIs; the
// kernel package realizes an Assembly separately.
package export

// Package engine implements parameter validation and the dimension
// derivation engine for cabinetgen.
//
// Validate turns five raw scalars into CabinetParameters or fails with
// model.ErrInvalidParameter. Derive turns CabinetParameters plus the
// construction standards table into DerivedDimensions, or fails with
// model.ErrDegenerateGeometry when any derived extent or spacing would be
// non-positive. Both are pure functions: no I/O, no shared state, and the
// same inputs always produce bit-identical outputs.
package engine

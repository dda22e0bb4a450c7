// Package model defines the domain types and value objects for the
// cabinetgen CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (CabinetParameters, DerivedDimensions, PanelSpec, Assembly,
// etc.) are values computed from a handful of input scalars. Nothing here
// is persisted or mutated after construction.
//
// The package also defines the error taxonomy (InvalidParameter,
// DegenerateGeometry, ConstructionFailure, AssetRetrievalFailure), exit
// codes (ExitCode) and a custom error type (CLIError) that carries exit
// codes for proper OS process exit handling.
package model

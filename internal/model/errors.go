package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure classes. Every typed error below
// matches exactly one of these via errors.Is.
var (
	// ErrInvalidParameter marks input that fails validation. The caller
	// can correct it.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateGeometry marks a parameter combination that validates
	// but yields a non-positive extent or spacing.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrConstructionFailure marks a single item the geometry kernel
	// could not realize. The rest of the assembly still proceeds.
	ErrConstructionFailure = errors.New("construction failure")

	// ErrAssetRetrievalFailure marks a network or file error in the block
	// library client.
	ErrAssetRetrievalFailure = errors.New("asset retrieval failure")
)

// ParameterError reports which input field was rejected and why.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

// Error implements the error interface.
func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidParameter.
func (e *ParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// GeometryError reports the derived quantity that came out non-positive
// (or otherwise infeasible).
type GeometryError struct {
	Quantity string
	Value    float64
	Reason   string
}

// Error implements the error interface.
func (e *GeometryError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be > 0"
	}
	return fmt.Sprintf("degenerate geometry: %s=%g: %s", e.Quantity, e.Value, reason)
}

// Is reports whether target is ErrDegenerateGeometry.
func (e *GeometryError) Is(target error) bool {
	return target == ErrDegenerateGeometry
}

// ConstructionError wraps a kernel failure for one named item.
type ConstructionError struct {
	Item string
	Err  error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction failure: %s: %v", e.Item, e.Err)
}

// Is reports whether target is ErrConstructionFailure.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstructionFailure
}

// Unwrap returns the kernel's error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// RetrievalError wraps a block library failure with the operation and the
// URL or path it concerned.
type RetrievalError struct {
	Op     string
	Target string
	Err    error
}

// Error implements the error interface.
func (e *RetrievalError) Error() string {
	return fmt.Sprintf("asset retrieval failure: %s %s: %v", e.Op, e.Target, e.Err)
}

// Is reports whether target is ErrAssetRetrievalFailure.
func (e *RetrievalError) Is(target error) bool {
	return target == ErrAssetRetrievalFailure
}

// Unwrap returns the underlying network or file error.
func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidParameter indicates the input scalars failed validation.
	ExitInvalidParameter ExitCode = 2

	// ExitDegenerateGeometry indicates the inputs are valid individually
	// but cannot produce a buildable cabinet.
	ExitDegenerateGeometry ExitCode = 3

	// ExitConstructionFailure indicates one or more items could not be
	// realized by the geometry kernel.
	ExitConstructionFailure ExitCode = 4

	// ExitAssetRetrievalFailure indicates a block library download or
	// cache operation failed.
	ExitAssetRetrievalFailure ExitCode = 5
)

// ExitCodeFor maps an error from the domain packages to its exit code.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidParameter):
		return ExitInvalidParameter
	case errors.Is(err, ErrDegenerateGeometry):
		return ExitDegenerateGeometry
	case errors.Is(err, ErrConstructionFailure):
		return ExitConstructionFailure
	case errors.Is(err, ErrAssetRetrievalFailure):
		return ExitAssetRetrievalFailure
	default:
		return ExitGeneralError
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// WrapDomainError wraps err in a CLIError whose code is chosen by
// ExitCodeFor.
func WrapDomainError(message string, err error) *CLIError {
	return WrapCLIError(ExitCodeFor(err), message, err)
}

// Package errs provides standardized error types for the tracking application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The kinds map onto the failure modes of the package lifecycle: missing or
// invalid caller input, lookups that match nothing, and operations rejected
// by a domain rule. All of them are caller errors, never transient, and are
// surfaced to the client with an HTTP status by the presentation adapter.
package errs

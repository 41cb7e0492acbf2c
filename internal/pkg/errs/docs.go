// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is classification
//   - A struct type with fields for error details
//   - Constructor functions with and without an underlying cause
//   - Error() for single-line formatting and Unwrap() for error-chain support
//
// VersionIsInvalidError doubles as the optimistic-concurrency conflict signal:
// repositories return it when a conditional write touches a stale aggregate
// version, and the retry package keys its retry decision on ErrVersionIsInvalid.
package errs

// Package errs provides standardized error types for the fuel delivery service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced order, user, station or fuel type is absent
//   - TransitionIsInvalidError: the order lifecycle rejects a status change
//   - VersionConflictError: an order moved past the version the caller read
//   - VersionIsInvalidError: a caller supplied a malformed expected version
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify with errors.Is
//
// Inbound adapters translate the sentinels into transport status codes; nothing
// below the adapters knows about HTTP.
package errs

// Package errs holds the typed errors the dispatch service speaks in.
//
// Validation failures (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError, VersionIsInvalidError) all satisfy IsValidation.
// Lookups fail with ObjectNotFoundError. The access gate denies with
// UnauthenticatedError or ForbiddenError. Lifecycle rules fail with
// InvalidTransitionError and VehicleUnavailableError, and a lost optimistic
// version race with ConflictError.
//
// Every type pairs a sentinel (ErrForbidden, ErrConflict, ...) with a struct
// carrying the details, so callers match with errors.Is and inspect with
// errors.As:
//
//	if errors.Is(err, errs.ErrVehicleUnavailable) {
//		// 423 at the HTTP edge
//	}
//
// Constructors come in pairs, with and without a cause. The cause only feeds
// the message; Unwrap yields the sentinel.
package errs

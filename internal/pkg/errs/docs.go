// Package errs provides the error types shared by the order engine.
//
// The package includes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation failures,
//     all members of the ErrValidation class
//   - ObjectNotFoundError: an unknown order, notification or catalog item
//   - StoreError: a failure reported by the record store, propagated unchanged
//
// Each error type has a sentinel (e.g. ErrValueIsRequired), constructors with and without
// cause, and an Unwrap method returning the sentinel together with the cause, so that
// errors.Is matches the error class as well as the specific rule that was violated.
package errs

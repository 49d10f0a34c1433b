// Package errs provides the typed validation errors shared by the shipping service.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrValueIsRequired, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - NewXxx and NewXxxWithCause constructors
//   - Error() for a one-line message and Unwrap() returning the sentinel
//
// The HTTP adapter relies on the sentinels to map failures onto status codes, so
// domain code should wrap or return these types instead of ad hoc strings whenever
// an input is missing, malformed or unknown.
package errs

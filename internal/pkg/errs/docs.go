// Package errs provides the typed errors shared by the tailoring service.
//
// Every error type follows the same shape:
//   - a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// Domain constructors join these errors with errors.Join, adapters map
// ErrObjectNotFound onto 404 responses and job loggers filter on the sentinels.
package errs

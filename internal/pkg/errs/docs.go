// Package errs provides the structured error types used across the dispatch
// engine.
//
// Each error type pairs a sentinel (for errors.Is classification) with a
// struct carrying the failing parameter, an optional cause, and an Unwrap
// method. Handlers branch on the sentinel; the struct fields feed logs and
// HTTP responses.
//
// VersionIsInvalidError reports a lost status-guarded write: the conditional
// update matched zero rows because a concurrent writer moved the aggregate
// first.
package errs

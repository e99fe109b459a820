// Package order provides the Order aggregate root and its status state
// machine for the dispatch engine.
//
// The package includes:
//   - Order: the aggregate root owning the dispatch lifecycle, the courier
//     assignment and the refusal bookkeeping
//   - Status: a state machine enforcing valid lifecycle transitions
//
// Key business rules:
//   - An order carries an assigned courier exactly while its status is
//     Offered, CourierAccepted, ArrivedPickup or InProgress
//   - At most one offer per order is outstanding at any time
//   - Courier progress signals apply monotonically; duplicates and
//     out-of-order signals are reported as stale, never as regressions
//   - Delivered and Cancelled are terminal and immutable
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order

// Package courier provides the Courier aggregate root for the dispatch
// engine. It tracks courier identity and the Offline/Online/Busy
// availability machine that the coordinator mutates as offers are placed,
// refused and completed.
//
// Key business rules:
//   - Only Online couriers may receive offers
//   - A courier is Busy iff it holds exactly one active order
//   - A Busy courier with no active order is "stuck" and may only be
//     repaired through the audited ForceAvailable operation
package courier

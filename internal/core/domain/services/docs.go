// Package services provides domain services that orchestrate dispatch rules
// spanning multiple aggregates.
//
// The package includes:
//   - OfferPolicy: the dispatch gate and refusal cooldown timing rules
//   - CourierPicker: courier selection for tick-driven dispatch
//
// Domain services coordinate between aggregates, implementing business logic
// that does not naturally belong to a single aggregate root.
package services

// Package services provides domain services that work across multiple
// aggregates of the dispatch system.
//
// The package includes:
//   - CourierScorer: ranks courier candidates for a delivery by estimated
//     time to complete it, given each courier's current workload
//
// Domain services hold logic that does not naturally belong to a single
// aggregate root; they stay free of infrastructure concerns.
package services

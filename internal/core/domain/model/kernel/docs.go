// Package kernel provides core domain primitives shared across the dispatch
// domain model:
//
//   - UUID: a value object for aggregate identifiers with validation and comparison
//   - GeoPoint and Address: validated location value objects; GeoPoint carries
//     the deliberately flat-plane distance metric used for courier ranking
//   - DomainEvent and BaseAggregate: the event-accumulation and optimistic
//     versioning base embedded by aggregate roots
//
// These primitives enforce domain invariants at construction time and are
// immutable (UUID, GeoPoint, Address) or mutated only through aggregate
// methods (BaseAggregate), making them safe to share across goroutines once
// constructed.
package kernel

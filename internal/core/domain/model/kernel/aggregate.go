package kernel

// DomainEvent is implemented by every fact the domain publishes after a state
// change. RoutingKey names the logical channel the event is delivered on; the
// messaging layer binds a queue per key.
type DomainEvent interface {
	RoutingKey() string
}

// BaseAggregate supplies the event-accumulation and optimistic-versioning
// machinery shared by aggregate roots. Mutating methods register events via
// RegisterEvent; use cases drain them with TakeEvents after the transaction
// commits, so nothing is published for state that rolled back.
//
// The aggregate never talks to the event bus itself: accumulated events are
// the only externally observable side channel of a mutation.
type BaseAggregate struct {
	version int
	events  []DomainEvent
}

// NewBaseAggregate initializes the base for a freshly created aggregate.
// New aggregates start at version 1.
func NewBaseAggregate() BaseAggregate {
	return BaseAggregate{version: 1}
}

// RestoreBaseAggregate initializes the base for an aggregate loaded from
// storage at the given version.
func RestoreBaseAggregate(version int) BaseAggregate {
	return BaseAggregate{version: version}
}

// Version returns the optimistic-concurrency version the aggregate was loaded
// at. Repositories write conditionally on this value.
func (a *BaseAggregate) Version() int {
	return a.version
}

// RegisterEvent appends a domain event to the pending list.
func (a *BaseAggregate) RegisterEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// PendingEvents returns the not-yet-drained events without clearing them.
func (a *BaseAggregate) PendingEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.events))
	copy(out, a.events)
	return out
}

// TakeEvents drains and returns all accumulated events. After the call the
// pending list is empty; draining twice yields nothing the second time.
func (a *BaseAggregate) TakeEvents() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}

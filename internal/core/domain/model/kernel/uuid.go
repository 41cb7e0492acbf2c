package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID that
// bypassed the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object shared by every aggregate and entity in
// the system. It wraps github.com/google/uuid so the domain model never
// depends on the library directly, and so a zero value can be told apart from
// a constructed one.
//
// The zero value is invalid; obtain instances through NewUUID,
// UUIDFromString, or UUIDFromBytes. UUID is immutable and safe to copy and
// compare.
//
// Example usage:
//
//	courierID := kernel.NewUUID()
//
//	orderID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // handle error
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 UUID. This is how new aggregates get
// their identity.
//
// Example:
//
//	order, err := order.NewOrder(kernel.NewUUID(), ...)
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the textual representation of a UUID, as received in
// HTTP path parameters or message payloads.
//
// Returns an error wrapping the parse failure when s is not a valid UUID.
//
// Example:
//
//	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
//	if err != nil {
//	    return fmt.Errorf("invalid courier id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, used when
// restoring identifiers from database columns.
//
// Returns an error when b is not exactly 16 bytes or represents the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// A zero value renders as all zeros.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID for persistence mapping. Slice it
// (`id.Bytes()[:]`) when a []byte is needed. Adapters are the only intended
// callers.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs carry the same value.
//
// Example:
//
//	if request.CourierID().IsEqual(courierID) {
//	    // this request belongs to the courier
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value. Constructors
// of aggregates and commands call this on every identifier they receive.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

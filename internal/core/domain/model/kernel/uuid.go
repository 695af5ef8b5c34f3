package kernel

import (
	"shipflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object wrapping github.com/google/uuid to give entity
// identifiers domain-specific behavior and immutability. The zero value is
// invalid; use one of the constructor functions.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from its canonical string representation.
func UUIDFromString(value string) (UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes reconstructs a UUID from its 16-byte representation,
// typically when loading entities from persistence.
func UUIDFromBytes(value []byte) (UUID, error) {
	id, err := uuid.FromBytes(value)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	return UUID{id: id}, nil
}

// Validate reports whether the UUID was created through a constructor.
// The zero value (uuid.Nil) fails validation.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// IsEqual compares two UUIDs by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Bytes returns the underlying uuid.UUID for persistence mapping.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// String returns the canonical textual form.
func (u UUID) String() string {
	return u.id.String()
}

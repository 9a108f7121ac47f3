package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies users, orders, vehicles and location reports.
// It wraps github.com/google/uuid so the zero value can be told apart from a real identifier.
//
// Example:
//
//	id, err := kernel.UUIDFromString(ctx.Param("id"))
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("id", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn and hyphen-less forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from a 16 byte slice. The nil UUID is rejected.
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

// UUIDFromGoogle adapts a value produced by a driver or an oapi binder.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	return UUIDFromBytes(id[:])
}

// OptionalUUID converts a nullable column into an optional identifier.
func OptionalUUID(id *uuid.UUID) (*UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	converted, err := UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// RawPtr converts an optional identifier into a nullable column value.
func RawPtr(id *UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// StringPtr converts an optional identifier into its wire form.
func StringPtr(id *UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

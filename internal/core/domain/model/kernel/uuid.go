package kernel

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("id must be created via NewUUID, UUIDFromString or UUIDFromBytes")

// UUID identifies orders, restaurants, delivery persons, customers and outbox messages.
// The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any textual form accepted by google/uuid and rejects the nil UUID.
func UUIDFromString(s string) (UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q: %w", s, err))
	}
	return fromGoogle(parsed)
}

// UUIDFromBytes rebuilds an identifier read from a uuid column. Like UUIDFromString it
// rejects the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	parsed, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return fromGoogle(parsed)
}

func fromGoogle(id uuid.UUID) (UUID, error) {
	result := UUID{id: id}
	if err := result.Validate(); err != nil {
		return UUID{}, err
	}
	return result, nil
}

// String returns the canonical 36-character form used in JSON and Kafka keys.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value used by persistence DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares the underlying values.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether u is the nil UUID. SystemActor carries a zero id.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for a zero value built outside the constructors.
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Role is the platform role of whoever issues a command.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleOwner          Role = "owner"
	RoleDeliveryPerson Role = "delivery"
	RoleAdmin          Role = "admin"

	// RoleSystem is used by jobs and event handlers.
	RoleSystem Role = "system"
)

var (
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor or SystemActor")
	ErrForbidden             = errors.New("actor is not allowed to perform this operation")
)

// Actor is the authenticated caller of a command: a user id and the role from the token.
//
// Handlers authorize with the role and, for owners and couriers, with the id:
//   - customers act on orders they placed
//   - owners act on orders of restaurants they own
//   - delivery persons act on orders assigned to them
//   - admins and the system act on any order
//
// The zero value is invalid; build actors with NewActor or SystemActor.
type Actor struct {
	id          kernel.UUID
	role        Role
	constructed bool
}

// NewActor builds a user actor. RoleSystem is rejected so that a token can never claim it.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	switch role {
	case RoleCustomer, RoleOwner, RoleDeliveryPerson, RoleAdmin:
	default:
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", role))
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, constructed: true}, nil
}

// SystemActor has no user id; events it causes carry an empty actor.
func SystemActor() Actor {
	return Actor{role: RoleSystem, constructed: true}
}

// Validate returns ErrActorIsNotConstructed for the zero value.
func (a Actor) Validate() error {
	if !a.constructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

func (a Actor) ID() kernel.UUID { return a.id }
func (a Actor) Role() Role      { return a.role }

// Is reports whether the actor has exactly role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// IsStaff reports whether the actor may act on any order.
func (a Actor) IsStaff() bool {
	return a.role == RoleAdmin || a.role == RoleSystem
}

package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrReleaseOrderAssignmentCommandIsNotConstructed = errors.New(
	"ReleaseOrderAssignmentCommand must be created via NewReleaseOrderAssignmentCommand constructor",
)

// ReleaseOrderAssignmentCommand takes the courier off a WaitingCourier order. The assigned
// courier may release it to decline the job.
type ReleaseOrderAssignmentCommand struct {
	actor   Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewReleaseOrderAssignmentCommand(actor Actor, orderID kernel.UUID) (ReleaseOrderAssignmentCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return ReleaseOrderAssignmentCommand{}, err
	}

	return ReleaseOrderAssignmentCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseOrderAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderAssignmentCommandIsNotConstructed)
}

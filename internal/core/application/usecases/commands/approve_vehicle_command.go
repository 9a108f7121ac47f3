package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/guard"
)

var ErrApproveVehicleCommandIsNotConstructed = errors.New(
	"ApproveVehicleCommand must be created via NewApproveVehicleCommand constructor",
)

// ApproveVehicleCommand records an approval decision, approved or rejected.
type ApproveVehicleCommand struct { //nolint:recvcheck //using for validation
	actor     user.Identity
	vehicleID kernel.UUID
	decision  vehicle.ApprovalStatus

	guard guard.ConstructorGuard
}

func NewApproveVehicleCommand(
	actor user.Identity,
	vehicleID kernel.UUID,
	decision vehicle.ApprovalStatus,
) (ApproveVehicleCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return ApproveVehicleCommand{}, err
	}
	if _, err := vehicle.ParseDecision(decision.String()); err != nil {
		return ApproveVehicleCommand{}, err
	}

	return ApproveVehicleCommand{
		actor:     actor,
		vehicleID: vehicleID,
		decision:  decision,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveVehicleCommand) Validate() error {
	return c.guard.Validate(ErrApproveVehicleCommandIsNotConstructed)
}

func (c ApproveVehicleCommand) Actor() user.Identity             { return c.actor }
func (c ApproveVehicleCommand) VehicleID() kernel.UUID           { return c.vehicleID }
func (c ApproveVehicleCommand) Decision() vehicle.ApprovalStatus { return c.decision }

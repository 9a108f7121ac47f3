package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterVehicleCommandIsNotConstructed = errors.New(
	"RegisterVehicleCommand must be created via NewRegisterVehicleCommand constructor",
)

type RegisterVehicleCommand struct { //nolint:recvcheck //using for validation
	actor     user.Identity
	vehicleID kernel.UUID
	spec      vehicle.Spec

	guard guard.ConstructorGuard
}

func NewRegisterVehicleCommand(actor user.Identity, vehicleID kernel.UUID, spec vehicle.Spec) (RegisterVehicleCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return RegisterVehicleCommand{}, err
	}

	return RegisterVehicleCommand{
		actor:     actor,
		vehicleID: vehicleID,
		spec:      spec,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVehicleCommandIsNotConstructed)
}

func (c RegisterVehicleCommand) Actor() user.Identity   { return c.actor }
func (c RegisterVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c RegisterVehicleCommand) Spec() vehicle.Spec     { return c.spec }

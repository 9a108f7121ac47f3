package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrAssignVehicleAgentCommandIsNotConstructed = errors.New(
	"AssignVehicleAgentCommand must be created via NewAssignVehicleAgentCommand constructor",
)

type AssignVehicleAgentCommand struct { //nolint:recvcheck //using for validation
	actor     user.Identity
	vehicleID kernel.UUID
	agentID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignVehicleAgentCommand(actor user.Identity, vehicleID, agentID kernel.UUID) (AssignVehicleAgentCommand, error) {
	if err := errors.Join(vehicleID.Validate(), agentID.Validate()); err != nil {
		return AssignVehicleAgentCommand{}, err
	}

	return AssignVehicleAgentCommand{
		actor:     actor,
		vehicleID: vehicleID,
		agentID:   agentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignVehicleAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignVehicleAgentCommandIsNotConstructed)
}

func (c AssignVehicleAgentCommand) Actor() user.Identity   { return c.actor }
func (c AssignVehicleAgentCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c AssignVehicleAgentCommand) AgentID() kernel.UUID   { return c.agentID }

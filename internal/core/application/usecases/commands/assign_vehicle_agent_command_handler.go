package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AssignVehicleAgentCommandHandler sets the default driver of an approved vehicle.
// There is no dedicated event kind for assignments: a successful assignment is
// published as vehicle_approved carrying the vehicle's current agent, so
// subscribers see that kind for approvals and reassignments alike.
type AssignVehicleAgentCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	notifier   notifier
}

func NewAssignVehicleAgentCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignVehicleAgentCommandHandler {
	return AssignVehicleAgentCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		notifier:   newNotifier(publisher, logger, "assign_vehicle_agent"),
	}
}

func (h AssignVehicleAgentCommandHandler) Handle(
	ctx context.Context,
	cmd AssignVehicleAgentCommand,
) (*vehicle.Vehicle, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionAssignVehicleAgent, nil); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := requireAgent(ctx, uow.UserRepository(), cmd.AgentID()); err != nil {
		return nil, err
	}

	vehicleRepo := uow.VehicleRepository()
	v, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return nil, err
	}

	if err = v.AssignAgent(cmd.AgentID()); err != nil {
		return nil, err
	}

	if err = vehicleRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewVehicleApproved(v))
	return v, nil
}

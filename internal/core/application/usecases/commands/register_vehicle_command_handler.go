package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// RegisterVehicleCommandHandler adds a vehicle to the fleet.
// A duplicate license plate is reported by the repository as a validation error.
type RegisterVehicleCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	notifier   notifier
}

func NewRegisterVehicleCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RegisterVehicleCommandHandler {
	return RegisterVehicleCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		notifier:   newNotifier(publisher, logger, "register_vehicle"),
	}
}

func (h RegisterVehicleCommandHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) (*vehicle.Vehicle, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionRegisterVehicle, nil); err != nil {
		return nil, err
	}

	registered, err := vehicle.Register(cmd.VehicleID(), cmd.Spec(), cmd.Actor())
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.VehicleRepository().Add(ctx, registered); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewVehicleRegistered(registered))
	return registered, nil
}

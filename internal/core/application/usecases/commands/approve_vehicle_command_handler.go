package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ApproveVehicleCommandHandler applies approval decisions.
// Admins decide on any vehicle, owners only on vehicles they own.
type ApproveVehicleCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	notifier   notifier
}

func NewApproveVehicleCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ApproveVehicleCommandHandler {
	return ApproveVehicleCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		notifier:   newNotifier(publisher, logger, "approve_vehicle"),
	}
}

func (h ApproveVehicleCommandHandler) Handle(ctx context.Context, cmd ApproveVehicleCommand) (*vehicle.Vehicle, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionApproveVehicle, nil); err != nil {
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

	vehicleRepo := uow.VehicleRepository()
	v, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return nil, err
	}

	if err = h.gate.Authorize(cmd.Actor(), services.ActionApproveVehicle, v); err != nil {
		return nil, err
	}

	if err = v.Decide(cmd.Decision()); err != nil {
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

package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AdvanceOrderCommandHandler moves an order along its lifecycle.
//
// The order and the vehicle it claims or releases are written in one unit of work.
// When two agents race for the same vehicle, the loser's vehicle write fails the
// version check and the caller gets a VehicleUnavailableError.
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	dispatcher services.OrderDispatcher
	notifier   notifier
}

func NewAdvanceOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		dispatcher: services.NewOrderDispatcher(),
		notifier:   newNotifier(publisher, logger, "advance_order"),
	}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionUpdateOrderStatus, nil); err != nil {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.CanAdvance(cmd.Actor().UserID, cmd.Target()); err != nil {
		return nil, err
	}

	v, lastFix, err := h.loadVehicle(ctx, uow, o, cmd)
	if err != nil {
		return nil, err
	}

	touched, err := h.dispatcher.Advance(o, cmd.Actor(), cmd.Target(), v, lastFix)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if touched != nil {
		if err = uow.VehicleRepository().Update(ctx, touched); err != nil {
			var conflict *errs.ConflictError
			if cmd.Target() == order.PickedUp && errors.As(err, &conflict) {
				return nil, errs.NewVehicleUnavailableError(
					touched.ID().String(), vehicle.StatusInUse.String(), touched.Approval().String())
			}
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewOrderStatus(o))
	return o, nil
}

// loadVehicle fetches what the dispatcher needs for the requested edge: the named
// vehicle and the agent's last fix for a pickup, the bound vehicle for a delivery.
func (h AdvanceOrderCommandHandler) loadVehicle(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd AdvanceOrderCommand,
) (*vehicle.Vehicle, *tracking.DriverLocation, error) {
	var vehicleID *kernel.UUID
	switch cmd.Target() { //nolint:exhaustive // other edges carry no vehicle
	case order.PickedUp:
		vehicleID = cmd.VehicleID()
	case order.Delivered:
		vehicleID = o.Vehicle()
	}
	if vehicleID == nil {
		return nil, nil, nil
	}

	v, err := uow.VehicleRepository().Get(ctx, *vehicleID)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Target() != order.PickedUp {
		return v, nil, nil
	}

	lastFix, err := uow.LocationRepository().GetLatest(ctx, cmd.Actor().UserID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return v, nil, nil
		}
		return nil, nil, err
	}
	return v, lastFix, nil
}

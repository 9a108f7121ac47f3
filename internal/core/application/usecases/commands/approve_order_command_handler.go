package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ApproveOrderCommandHandler approves pending orders and reassigns in-flight ones.
//
// Reassignment is allowed on every non-terminal order and leaves the status as is.
// Delivered orders are rejected with an InvalidTransitionError.
type ApproveOrderCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	notifier   notifier
}

func NewApproveOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		notifier:   newNotifier(publisher, logger, "approve_order"),
	}
}

func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionApproveOrder, nil); err != nil {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Approve(cmd.AgentID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewOrderStatus(o))
	return o, nil
}

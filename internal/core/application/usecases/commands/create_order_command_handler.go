package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler creates pending orders.
//
// The status is always pending. An owner becomes the owner of record; orders
// created by admins and agents have no owner. A pre-assigned agent must exist
// and have the agent role.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	notifier   notifier
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		notifier:   newNotifier(publisher, logger, "create_order"),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionCreateOrder, nil); err != nil {
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

	if agentID := cmd.AssignedAgentID(); agentID != nil {
		if err := requireAgent(ctx, uow.UserRepository(), *agentID); err != nil {
			return nil, err
		}
	}

	var ownerID *kernel.UUID
	if cmd.Actor().Is(user.RoleOwner) {
		id := cmd.Actor().UserID
		ownerID = &id
	}

	created, err := order.NewOrder(cmd.OrderID(), cmd.Details(), ownerID, cmd.AssignedAgentID())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewOrderCreated(created))
	return created, nil
}

// requireAgent loads agentID and checks it is an active agent.
func requireAgent(ctx context.Context, users ports.UserRepository, agentID kernel.UUID) error {
	agent, err := users.Get(ctx, agentID)
	if err != nil {
		return err
	}
	if !agent.IsAgent() {
		return errs.NewValueIsInvalidErrorWithCause("agent_id",
			fmt.Errorf("user %s has role %s, not agent", agentID, agent.Role()))
	}
	return nil
}

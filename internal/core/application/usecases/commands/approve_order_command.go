package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand binds an agent to an order, approving it when pending.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	actor   user.Identity
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveOrderCommand(actor user.Identity, orderID, agentID kernel.UUID) (ApproveOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), agentID.Validate()); err != nil {
		return ApproveOrderCommand{}, err
	}

	return ApproveOrderCommand{
		actor:   actor,
		orderID: orderID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

func (c ApproveOrderCommand) Actor() user.Identity { return c.actor }
func (c ApproveOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ApproveOrderCommand) AgentID() kernel.UUID { return c.agentID }

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new delivery order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(identity, kernel.NewUUID(), order.Details{
//	    CustomerName:    "Ada",
//	    DeliveryAddress: "1 Harbour Rd",
//	}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor           user.Identity
	orderID         kernel.UUID
	details         order.Details
	assignedAgentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers. Details are validated by the aggregate.
func NewCreateOrderCommand(
	actor user.Identity,
	orderID kernel.UUID,
	details order.Details,
	assignedAgentID *kernel.UUID,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if assignedAgentID != nil {
		if err := assignedAgentID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return CreateOrderCommand{
		actor:           actor,
		orderID:         orderID,
		details:         details,
		assignedAgentID: assignedAgentID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() user.Identity          { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CreateOrderCommand) Details() order.Details        { return c.details }
func (c CreateOrderCommand) AssignedAgentID() *kernel.UUID { return c.assignedAgentID }

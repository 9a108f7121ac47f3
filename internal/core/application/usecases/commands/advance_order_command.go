package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand asks to move an order one step forward.
// vehicleID is required when target is order.PickedUp and ignored otherwise.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	actor     user.Identity
	orderID   kernel.UUID
	target    order.Status
	vehicleID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(
	actor user.Identity,
	orderID kernel.UUID,
	target order.Status,
	vehicleID *kernel.UUID,
) (AdvanceOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return AdvanceOrderCommand{}, err
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return AdvanceOrderCommand{}, err
		}
	}

	return AdvanceOrderCommand{
		actor:     actor,
		orderID:   orderID,
		target:    target,
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) Actor() user.Identity    { return c.actor }
func (c AdvanceOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c AdvanceOrderCommand) Target() order.Status    { return c.target }
func (c AdvanceOrderCommand) VehicleID() *kernel.UUID { return c.vehicleID }

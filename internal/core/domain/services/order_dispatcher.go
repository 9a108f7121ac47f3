package services

import (
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
)

// OrderDispatcher is a domain service that moves an order forward together with
// the vehicle it is bound to.
//
// Business rules:
//   - Only the assigned agent advances the order
//   - Pickup claims an approved, available vehicle and stamps the agent's last position on it
//   - Delivery releases the bound vehicle
//   - Nothing is mutated when any rule fails
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	touched, err := dispatcher.Advance(o, actor, order.PickedUp, v, lastFix)
//	if errors.Is(err, errs.ErrVehicleUnavailable) {
//	    // vehicle busy, order untouched
//	}
//	// persist o and touched (if not nil) in one unit of work
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Advance applies the actor's requested edge.
//
// Parameters:
//   - o: the order to advance
//   - actor: the verified caller
//   - target: requested status
//   - v: the vehicle named in a pickup request, or the order's bound vehicle for a delivery; nil otherwise
//   - lastFix: the actor's latest position report, may be nil
//
// Returns the vehicle that changed and must be persisted with the order, or nil.
func (d OrderDispatcher) Advance(
	o *order.Order,
	actor user.Identity,
	target order.Status,
	v *vehicle.Vehicle,
	lastFix *tracking.DriverLocation,
) (*vehicle.Vehicle, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := o.CanAdvance(actor.UserID, target); err != nil {
		return nil, err
	}

	switch target { //nolint:exhaustive // only pickup and delivery touch vehicles
	case order.PickedUp:
		return d.pickUp(o, actor, v, lastFix)
	case order.Delivered:
		return d.deliver(o, actor, v)
	default:
		return nil, o.Advance(actor.UserID, target, nil)
	}
}

func (d OrderDispatcher) pickUp(
	o *order.Order,
	actor user.Identity,
	v *vehicle.Vehicle,
	lastFix *tracking.DriverLocation,
) (*vehicle.Vehicle, error) {
	if v == nil {
		return nil, errs.NewValueIsRequiredError("vehicle_id")
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	if err := v.Claim(); err != nil {
		return nil, err
	}

	if lastFix != nil {
		if err := v.MoveTo(lastFix.Location()); err != nil {
			return nil, err
		}
	}

	vehicleID := v.ID()
	if err := o.Advance(actor.UserID, order.PickedUp, &vehicleID); err != nil {
		return nil, err
	}
	return v, nil
}

func (d OrderDispatcher) deliver(o *order.Order, actor user.Identity, v *vehicle.Vehicle) (*vehicle.Vehicle, error) {
	bound := o.Vehicle()
	if bound == nil {
		return nil, o.Advance(actor.UserID, order.Delivered, nil)
	}

	if v == nil || !v.ID().IsEqual(*bound) {
		return nil, errs.NewObjectNotFoundError("vehicle", bound.String())
	}

	if err := v.Release(); err != nil {
		return nil, err
	}

	if err := o.Advance(actor.UserID, order.Delivered, nil); err != nil {
		return nil, err
	}
	return v, nil
}

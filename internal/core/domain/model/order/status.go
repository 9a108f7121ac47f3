package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Approved ──> PickedUp ──> InTransit ──> Delivered
//	               │  ▲
//	               └──┘ (reassignment, also from PickedUp and InTransit)
//
// Statuses are ordered: a later constant is always a later lifecycle stage.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending orders wait for an admin to approve them and bind an agent.
	Pending

	// Approved orders have an agent and wait for pickup.
	Approved

	// PickedUp orders are bound to a vehicle.
	PickedUp

	// InTransit orders are on their way to the delivery address.
	InTransit

	// Delivered is terminal.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Approved:  "approved",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Approved:  "approved",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
	}
}

// getForwardEdges lists the only edges Advance accepts.
func getForwardEdges() map[Status]Status {
	//nolint:exhaustive // only statuses with a successor are listed
	return map[Status]Status{
		Approved:  PickedUp,
		PickedUp:  InTransit,
		InTransit: Delivered,
	}
}

// ParseStatus maps the wire form ("picked_up") to a Status.
// Unknown strings are a validation failure.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is accepted.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// ValidateCanHaveVehicle checks consistency between status and vehicle binding.
// Pending and approved orders never carry a vehicle.
func (s Status) ValidateCanHaveVehicle(vehicle bool) error {
	if vehicle && (s == Pending || s == Approved) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a vehicle", s),
		)
	}
	return nil
}

// ValidateCanHaveAgent checks consistency between status and agent assignment.
// Every status past pending requires an agent.
func (s Status) ValidateCanHaveAgent(agent bool) error {
	if !agent && s > Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no agent", s),
		)
	}
	return nil
}

// Approve returns the status after an approval.
//
// Pending moves to Approved. Approved, PickedUp and InTransit stay where they are
// (reassignment). Delivered and Unknown are rejected.
func (s Status) Approve() (Status, error) {
	switch s {
	case Pending:
		return Approved, nil
	case Approved, PickedUp, InTransit:
		return s, nil
	case Unknown, Delivered:
	}
	return Unknown, errs.NewInvalidTransitionError("order", s.String(), Approved.String())
}

// AdvanceTo returns target if s -> target is one of the forward edges.
func (s Status) AdvanceTo(target Status) (Status, error) {
	if next, ok := getForwardEdges()[s]; ok && next == target {
		return target, nil
	}
	return Unknown, errs.NewInvalidTransitionError("order", s.String(), target.String())
}

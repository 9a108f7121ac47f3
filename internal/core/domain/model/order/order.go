package order

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details carries the caller-supplied description of a delivery job.
type Details struct {
	CustomerName     string
	DeliveryAddress  string
	DeliveryLocation *kernel.Location
	PickupAddress    *string
	PickupLocation   *kernel.Location
}

// Order is the aggregate root for a delivery job.
//
// Order follows these invariants:
//   - Status only moves forward along Pending, Approved, PickedUp, InTransit, Delivered
//   - Every status past Pending has an assigned agent
//   - A vehicle is bound only from PickedUp on and is kept after delivery
//   - version increases by one with every persisted change
type Order struct {
	id              kernel.UUID
	details         Details
	status          Status
	assignedAgentID *kernel.UUID
	ownerID         *kernel.UUID
	vehicleID       *kernel.UUID
	createdAt       time.Time
	updatedAt       time.Time
	version         int64

	isConstructed bool
}

// NewOrder creates a pending order.
//
// Parameters:
//   - id: unique identifier
//   - details: customer name and delivery address are required
//   - ownerID: the creating owner, nil unless the creator is an owner
//   - assignedAgentID: optional pre-assignment by the creator
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
//	    CustomerName:    "Ada",
//	    DeliveryAddress: "1 Harbour Rd",
//	}, &ownerID, nil)
func NewOrder(id kernel.UUID, details Details, ownerID, assignedAgentID *kernel.UUID) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:          Pending,
		ownerID:         ownerID,
		assignedAgentID: assignedAgentID,
		createdAt:       now,
		updatedAt:       now,
		version:         1,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the persisted form of an order, used by RestoreOrder.
type State struct {
	ID              kernel.UUID
	Details         Details
	Status          Status
	AssignedAgentID *kernel.UUID
	OwnerID         *kernel.UUID
	VehicleID       *kernel.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}

// RestoreOrder rebuilds an order loaded from storage, re-checking its invariants.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		status:          s.Status,
		assignedAgentID: s.AssignedAgentID,
		ownerID:         s.OwnerID,
		vehicleID:       s.VehicleID,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		version:         s.Version,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setDetails(s.Details),
		s.Status.Validate(),
		s.Status.ValidateCanHaveAgent(s.AssignedAgentID != nil),
		s.Status.ValidateCanHaveVehicle(s.VehicleID != nil),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerName() string {
	return o.details.CustomerName
}

func (o *Order) DeliveryAddress() string {
	return o.details.DeliveryAddress
}

func (o *Order) DeliveryLocation() *kernel.Location {
	return o.details.DeliveryLocation
}

func (o *Order) PickupAddress() *string {
	return o.details.PickupAddress
}

func (o *Order) PickupLocation() *kernel.Location {
	return o.details.PickupLocation
}

func (o *Order) Status() Status {
	return o.status
}

// AssignedAgent returns nil while no agent is bound.
func (o *Order) AssignedAgent() *kernel.UUID {
	return o.assignedAgentID
}

// Owner returns nil for orders not created by an owner.
func (o *Order) Owner() *kernel.UUID {
	return o.ownerID
}

// Vehicle returns nil until pickup.
func (o *Order) Vehicle() *kernel.UUID {
	return o.vehicleID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the value read from storage, used for compare-and-swap updates.
func (o *Order) Version() int64 {
	return o.version
}

// IsOwnedBy reports whether userID is the owner of record.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.ownerID != nil && o.ownerID.IsEqual(userID)
}

// IsAssignedTo reports whether userID is the bound agent.
func (o *Order) IsAssignedTo(userID kernel.UUID) bool {
	return o.assignedAgentID != nil && o.assignedAgentID.IsEqual(userID)
}

// Approve binds agentID to the order.
//
// A pending order moves to Approved. An order that is already approved, picked up
// or in transit keeps its status and only changes agent. Delivered orders are rejected
// with an InvalidTransitionError.
func (o *Order) Approve(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedAgentID = &agentID
	o.touch()
	return nil
}

// CanAdvance reports, without side effects, whether actorID may move the order to target.
//
// Rules, checked in this order:
//   - actorID must be the assigned agent, else ForbiddenError
//   - status -> target must be a forward edge, else InvalidTransitionError
func (o *Order) CanAdvance(actorID kernel.UUID, target Status) error {
	if !o.IsAssignedTo(actorID) {
		return errs.NewForbiddenError("agent", "advance an order assigned to another agent")
	}

	_, err := o.status.AdvanceTo(target)
	return err
}

// Advance moves the order one edge forward on behalf of actorID.
// Moving to PickedUp requires vehicleID, which gets bound.
//
// Vehicle side effects are coordinated by services.OrderDispatcher.
func (o *Order) Advance(actorID kernel.UUID, target Status, vehicleID *kernel.UUID) error {
	if err := o.CanAdvance(actorID, target); err != nil {
		return err
	}

	if target == PickedUp {
		if vehicleID == nil {
			return errs.NewValueIsRequiredError("vehicle_id")
		}
		if err := vehicleID.Validate(); err != nil {
			return err
		}
		o.vehicleID = vehicleID
	}

	o.status = target
	o.touch()
	return nil
}

// AdvanceVersion is called by the store after a successful compare-and-swap.
func (o *Order) AdvanceVersion() {
	o.version++
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDetails(d Details) error {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.DeliveryAddress = strings.TrimSpace(d.DeliveryAddress)

	var problems []error
	if d.CustomerName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customer_name"))
	}
	if d.DeliveryAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery_address"))
	}
	for _, loc := range []*kernel.Location{d.DeliveryLocation, d.PickupLocation} {
		if loc != nil {
			problems = append(problems, loc.Validate())
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	o.details = d
	return nil
}

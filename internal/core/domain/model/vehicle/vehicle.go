package vehicle

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
)

var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via Register or RestoreVehicle")

// Spec describes a vehicle being registered.
type Spec struct {
	LicensePlate string
	Model        string
	VehicleType  string
}

// Vehicle is a fleet asset.
//
// Invariants:
//   - in_use only while claimed by exactly one in-flight order
//   - claimable only when approved and available
type Vehicle struct {
	id              kernel.UUID
	spec            Spec
	status          Status
	approval        ApprovalStatus
	ownerID         *kernel.UUID
	assignedAgentID *kernel.UUID
	position        *kernel.Location
	createdAt       time.Time
	updatedAt       time.Time
	version         int64

	isConstructed bool
}

// Register creates a vehicle on behalf of registrant.
//
// Admin registrations are approved and available with no owner. Owner registrations
// are pending review and owned by the registrant. Agent registrations are pending
// and unowned.
func Register(id kernel.UUID, spec Spec, registrant user.Identity) (*Vehicle, error) {
	now := time.Now().UTC()
	v := &Vehicle{
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	switch registrant.Role { //nolint:exhaustive // remaining roles are denied
	case user.RoleAdmin:
		v.status, v.approval = StatusAvailable, ApprovalApproved
	case user.RoleOwner:
		ownerID := registrant.UserID
		v.status, v.approval, v.ownerID = StatusPending, ApprovalPending, &ownerID
	case user.RoleAgent:
		v.status, v.approval = StatusPending, ApprovalPending
	default:
		return nil, errs.NewForbiddenError(registrant.Role.String(), "register_vehicle")
	}

	if err := errors.Join(v.setID(id), v.setSpec(spec)); err != nil {
		return nil, err
	}
	return v, nil
}

// State is the persisted form of a vehicle.
type State struct {
	ID              kernel.UUID
	Spec            Spec
	Status          Status
	Approval        ApprovalStatus
	OwnerID         *kernel.UUID
	AssignedAgentID *kernel.UUID
	Position        *kernel.Location
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}

func RestoreVehicle(s State) (*Vehicle, error) {
	v := &Vehicle{
		status:          s.Status,
		approval:        s.Approval,
		ownerID:         s.OwnerID,
		assignedAgentID: s.AssignedAgentID,
		position:        s.Position,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		version:         s.Version,
		isConstructed:   true,
	}
	if err := errors.Join(
		v.setID(s.ID),
		v.setSpec(s.Spec),
		s.Status.Validate(),
		s.Approval.Validate(),
	); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) LicensePlate() string {
	return v.spec.LicensePlate
}

func (v *Vehicle) Model() string {
	return v.spec.Model
}

func (v *Vehicle) VehicleType() string {
	return v.spec.VehicleType
}

func (v *Vehicle) Status() Status {
	return v.status
}

func (v *Vehicle) Approval() ApprovalStatus {
	return v.approval
}

func (v *Vehicle) Owner() *kernel.UUID {
	return v.ownerID
}

func (v *Vehicle) AssignedAgent() *kernel.UUID {
	return v.assignedAgentID
}

// Position is the last known location, nil until the vehicle is picked up by a reporting agent.
func (v *Vehicle) Position() *kernel.Location {
	return v.position
}

func (v *Vehicle) CreatedAt() time.Time {
	return v.createdAt
}

func (v *Vehicle) UpdatedAt() time.Time {
	return v.updatedAt
}

func (v *Vehicle) Version() int64 {
	return v.version
}

func (v *Vehicle) AdvanceVersion() {
	v.version++
}

func (v *Vehicle) IsOwnedBy(userID kernel.UUID) bool {
	return v.ownerID != nil && v.ownerID.IsEqual(userID)
}

// Decide applies an approval decision.
//
// Approving a pending vehicle makes it available. Rejecting an available vehicle
// takes it back to pending so no pickup can claim it. A vehicle in use cannot be
// rejected.
func (v *Vehicle) Decide(decision ApprovalStatus) error {
	switch decision { //nolint:exhaustive // other values are not decisions
	case ApprovalApproved:
		if v.status == StatusPending {
			v.status = StatusAvailable
		}
	case ApprovalRejected:
		if v.status == StatusInUse {
			return errs.NewInvalidTransitionError("vehicle", v.approval.String(), decision.String())
		}
		if v.status == StatusAvailable {
			v.status = StatusPending
		}
	default:
		return errs.NewValueIsInvalidError("approval_status")
	}

	v.approval = decision
	v.touch()
	return nil
}

// AssignAgent binds a default driver. The vehicle must be approved.
func (v *Vehicle) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if v.approval != ApprovalApproved {
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			errors.New("only approved vehicles can be assigned to an agent"))
	}
	v.assignedAgentID = &agentID
	v.touch()
	return nil
}

// Claim reserves the vehicle for a pickup.
func (v *Vehicle) Claim() error {
	if v.status != StatusAvailable || v.approval != ApprovalApproved {
		return errs.NewVehicleUnavailableError(v.id.String(), v.status.String(), v.approval.String())
	}
	v.status = StatusInUse
	v.touch()
	return nil
}

// Release frees the vehicle once its order is delivered.
func (v *Vehicle) Release() error {
	if v.status != StatusInUse {
		return errs.NewInvalidTransitionError("vehicle", v.status.String(), StatusAvailable.String())
	}
	v.status = StatusAvailable
	v.touch()
	return nil
}

// MoveTo records the last known position.
func (v *Vehicle) MoveTo(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	v.position = &location
	v.touch()
	return nil
}

func (v *Vehicle) touch() {
	v.updatedAt = time.Now().UTC()
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setSpec(s Spec) error {
	s.LicensePlate = strings.ToUpper(strings.TrimSpace(s.LicensePlate))
	s.Model = strings.TrimSpace(s.Model)
	s.VehicleType = strings.TrimSpace(s.VehicleType)

	var problems []error
	if s.LicensePlate == "" {
		problems = append(problems, errs.NewValueIsRequiredError("license_plate"))
	}
	if s.Model == "" {
		problems = append(problems, errs.NewValueIsRequiredError("model"))
	}
	if s.VehicleType == "" {
		problems = append(problems, errs.NewValueIsRequiredError("vehicle_type"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	v.spec = s
	return nil
}

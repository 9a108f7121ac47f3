package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/guard"
)

var ErrListVehiclesQueryIsNotConstructed = errors.New(
	"ListVehiclesQuery must be created via NewListVehiclesQuery constructor",
)

// ListVehiclesQuery lists the fleet. Owners only see vehicles they own.
type ListVehiclesQuery struct {
	viewer user.Identity
	guard  guard.ConstructorGuard
}

func NewListVehiclesQuery(viewer user.Identity) ListVehiclesQuery {
	return ListVehiclesQuery{viewer: viewer, guard: guard.NewConstructorGuard()}
}

func (q ListVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrListVehiclesQueryIsNotConstructed)
}

func (q ListVehiclesQuery) Viewer() user.Identity { return q.viewer }

type VehicleView struct {
	ID              kernel.UUID
	LicensePlate    string
	Model           string
	VehicleType     string
	Status          vehicle.Status
	ApprovalStatus  vehicle.ApprovalStatus
	OwnerID         *kernel.UUID
	AssignedAgentID *kernel.UUID
	Position        *kernel.Location
	CreatedAt       time.Time
}

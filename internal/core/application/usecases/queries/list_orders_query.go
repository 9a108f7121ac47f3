package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders visible to viewer, newest first.
// Owners see the orders they own; admins and agents see every order.
type ListOrdersQuery struct {
	viewer user.Identity
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(viewer user.Identity) ListOrdersQuery {
	return ListOrdersQuery{viewer: viewer, guard: guard.NewConstructorGuard()}
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Viewer() user.Identity { return q.viewer }

type OrderView struct {
	ID               kernel.UUID
	CustomerName     string
	DeliveryAddress  string
	DeliveryLocation *kernel.Location
	PickupAddress    *string
	PickupLocation   *kernel.Location
	Status           order.Status
	AssignedAgentID  *kernel.UUID
	OwnerID          *kernel.UUID
	VehicleID        *kernel.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

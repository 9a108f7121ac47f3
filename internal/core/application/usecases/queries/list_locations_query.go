package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrListLocationsQueryIsNotConstructed = errors.New(
	"ListLocationsQuery must be created via NewListLocationsQuery constructor",
)

// ListLocationsQuery returns the current position of each agent: the report with
// the greatest recorded_at. Owners only see agents assigned to their orders.
type ListLocationsQuery struct {
	viewer user.Identity
	guard  guard.ConstructorGuard
}

func NewListLocationsQuery(viewer user.Identity) ListLocationsQuery {
	return ListLocationsQuery{viewer: viewer, guard: guard.NewConstructorGuard()}
}

func (q ListLocationsQuery) Validate() error {
	return q.guard.Validate(ErrListLocationsQueryIsNotConstructed)
}

func (q ListLocationsQuery) Viewer() user.Identity { return q.viewer }

type LocationView struct {
	AgentID    kernel.UUID
	Location   kernel.Location
	RecordedAt time.Time
}

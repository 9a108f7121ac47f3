package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrListAgentsQueryIsNotConstructed = errors.New(
	"ListAgentsQuery must be created via NewListAgentsQuery constructor",
)

// ListAgentsQuery lists active agents. An owner only sees agents assigned to one of the owner's orders.
type ListAgentsQuery struct {
	viewer user.Identity
	guard  guard.ConstructorGuard
}

func NewListAgentsQuery(viewer user.Identity) ListAgentsQuery {
	return ListAgentsQuery{viewer: viewer, guard: guard.NewConstructorGuard()}
}

func (q ListAgentsQuery) Validate() error {
	return q.guard.Validate(ErrListAgentsQueryIsNotConstructed)
}

func (q ListAgentsQuery) Viewer() user.Identity { return q.viewer }

type AgentView struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone *string
}

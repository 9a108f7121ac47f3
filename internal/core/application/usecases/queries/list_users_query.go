package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery lists every account, pending ones included. Admin only.
type ListUsersQuery struct {
	viewer user.Identity
	guard  guard.ConstructorGuard
}

func NewListUsersQuery(viewer user.Identity) ListUsersQuery {
	return ListUsersQuery{viewer: viewer, guard: guard.NewConstructorGuard()}
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Viewer() user.Identity { return q.viewer }

type UserView struct {
	ID        kernel.UUID
	Name      string
	Email     string
	Role      user.Role
	Phone     *string
	CreatedAt time.Time
}

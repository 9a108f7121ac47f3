package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateUserRoleCommandIsNotConstructed = errors.New(
	"UpdateUserRoleCommand must be created via NewUpdateUserRoleCommand constructor",
)

// RoleRejected is the decision that deletes a pending signup instead of promoting it.
const RoleRejected = "rejected"

// UpdateUserRoleCommand either promotes a user to an active role or, with
// decision "rejected", removes a pending signup.
type UpdateUserRoleCommand struct { //nolint:recvcheck //using for validation
	actor  user.Identity
	userID kernel.UUID
	role   user.Role
	reject bool

	guard guard.ConstructorGuard
}

func NewUpdateUserRoleCommand(actor user.Identity, userID kernel.UUID, decision string) (UpdateUserRoleCommand, error) {
	if err := userID.Validate(); err != nil {
		return UpdateUserRoleCommand{}, err
	}

	cmd := UpdateUserRoleCommand{
		actor:  actor,
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}

	if decision == RoleRejected {
		cmd.reject = true
		return cmd, nil
	}

	role, err := user.ParseRole(decision)
	if err != nil {
		return UpdateUserRoleCommand{}, err
	}
	if !role.IsActive() {
		return UpdateUserRoleCommand{}, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%s is not an assignable role", role))
	}
	cmd.role = role
	return cmd, nil
}

func (c UpdateUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserRoleCommandIsNotConstructed)
}

func (c UpdateUserRoleCommand) Actor() user.Identity { return c.actor }
func (c UpdateUserRoleCommand) UserID() kernel.UUID  { return c.userID }
func (c UpdateUserRoleCommand) Role() user.Role      { return c.role }
func (c UpdateUserRoleCommand) IsRejection() bool    { return c.reject }

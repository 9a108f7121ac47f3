package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// UpdateUserRoleCommandHandler reviews signups and changes roles.
// It returns the updated user, or nil after a rejection deleted it.
type UpdateUserRoleCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	notifier   notifier
}

func NewUpdateUserRoleCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateUserRoleCommandHandler {
	return UpdateUserRoleCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		notifier:   newNotifier(publisher, logger, "update_user_role"),
	}
}

func (h UpdateUserRoleCommandHandler) Handle(ctx context.Context, cmd UpdateUserRoleCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionUpdateUserRole, nil); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	u, err := users.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if cmd.IsRejection() {
		if err = u.EnsureRejectable(); err != nil {
			return nil, err
		}
		if err = users.Delete(ctx, u); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		h.notifier.notify(ctx, event.NewUserDeleted(u.ID()))
		return nil, nil
	}

	if err = u.Promote(cmd.Role()); err != nil {
		return nil, err
	}

	if err = users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewUserRoleUpdated(u))
	return u, nil
}

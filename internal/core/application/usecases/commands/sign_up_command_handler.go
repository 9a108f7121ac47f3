package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SignUpCommandHandler registers agents and owners. New accounts stay pending
// until an admin promotes them and cannot log in before that.
type SignUpCommandHandler struct {
	uowFactory UoWFactory
	hasher     ports.PasswordHasher
	notifier   notifier
}

func NewSignUpCommandHandler(
	uowFactory UoWFactory,
	hasher ports.PasswordHasher,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) SignUpCommandHandler {
	return SignUpCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		notifier:   newNotifier(publisher, logger, "sign_up"),
	}
}

func (h SignUpCommandHandler) Handle(ctx context.Context, cmd SignUpCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	created, err := user.SignUp(cmd.UserID(), cmd.Name(), cmd.Email(), hash, cmd.Requested(), cmd.Phone())
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	if err = ensureEmailFree(ctx, users, created.Email()); err != nil {
		return nil, err
	}

	if err = users.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewUserSignup(created))
	return created, nil
}

func ensureEmailFree(ctx context.Context, users ports.UserRepository, email string) error {
	_, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return errs.NewValueIsInvalidErrorWithCause("email", errors.New("email is already registered"))
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}

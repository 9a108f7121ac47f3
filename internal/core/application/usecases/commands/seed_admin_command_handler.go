package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SeedAdminCommand describes the bootstrap admin account.
type SeedAdminCommand struct {
	Name     string
	Email    string
	Password string
}

// SeedAdminCommandHandler creates the first admin at startup. Running it again
// with an email that already exists is a no-op.
type SeedAdminCommandHandler struct {
	uowFactory UoWFactory
	hasher     ports.PasswordHasher
	logger     *slog.Logger
}

func NewSeedAdminCommandHandler(
	uowFactory UoWFactory,
	hasher ports.PasswordHasher,
	logger *slog.Logger,
) SeedAdminCommandHandler {
	return SeedAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		logger:     logger.With("component", "seed_admin"),
	}
}

func (h SeedAdminCommandHandler) Handle(ctx context.Context, cmd SeedAdminCommand) error {
	if cmd.Email == "" || cmd.Password == "" {
		h.logger.InfoContext(ctx, "admin seed skipped, no credentials configured")
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	_, err := users.GetByEmail(ctx, user.NormalizeEmail(cmd.Email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return err
	}

	admin, err := user.NewAdmin(kernel.NewUUID(), cmd.Name, user.NormalizeEmail(cmd.Email), hash)
	if err != nil {
		return err
	}

	if err = users.Add(ctx, admin); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "admin account seeded", "email", admin.Email())
	return nil
}

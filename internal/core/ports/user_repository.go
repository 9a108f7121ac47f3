package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add persists a new user. A duplicate email returns *errs.ValueIsInvalidError.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists a role change with compare-and-swap on the version.
	Update(ctx context.Context, aggregate *user.User) error

	// Delete removes the user if its version still matches.
	Delete(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks the user up by normalized email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

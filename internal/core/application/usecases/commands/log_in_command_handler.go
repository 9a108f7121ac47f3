package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// LogInResult is what a successful login hands back to the transport.
type LogInResult struct {
	Token string
	User  *user.User
}

// LogInCommandHandler exchanges credentials for a bearer token.
//
// An unknown email and a wrong password fail the same way. Accounts still
// waiting for review get a ForbiddenError.
type LogInCommandHandler struct {
	uowFactory UoWFactory
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
}

func NewLogInCommandHandler(
	uowFactory UoWFactory,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
) LogInCommandHandler {
	return LogInCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		issuer:     issuer,
	}
}

func (h LogInCommandHandler) Handle(ctx context.Context, cmd LogInCommand) (LogInResult, error) {
	if err := cmd.Validate(); err != nil {
		return LogInResult{}, err
	}

	u, err := h.uowFactory.Create().UserRepository().GetByEmail(ctx, cmd.Email())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return LogInResult{}, errs.NewUnauthenticatedError("invalid email or password")
		}
		return LogInResult{}, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), cmd.Password()); err != nil {
		return LogInResult{}, errs.NewUnauthenticatedErrorWithCause("invalid email or password", err)
	}

	if !u.CanAuthenticate() {
		return LogInResult{}, errs.NewForbiddenError(u.Role().String(), "log in before approval")
	}

	token, err := h.issuer.Issue(u.Identity())
	if err != nil {
		return LogInResult{}, err
	}

	return LogInResult{Token: token, User: u}, nil
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrLogInCommandIsNotConstructed = errors.New("LogInCommand must be created via NewLogInCommand constructor")

type LogInCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLogInCommand(email, password string) (LogInCommand, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return LogInCommand{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return LogInCommand{}, errs.NewValueIsRequiredError("password")
	}

	return LogInCommand{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c LogInCommand) Validate() error {
	return c.guard.Validate(ErrLogInCommandIsNotConstructed)
}

func (c LogInCommand) Email() string    { return c.email }
func (c LogInCommand) Password() string { return c.password }

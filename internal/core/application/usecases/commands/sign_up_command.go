package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSignUpCommandIsNotConstructed = errors.New("SignUpCommand must be created via NewSignUpCommand constructor")

// Password length bounds. bcrypt ignores everything past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

type SignUpCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	name      string
	email     string
	password  string
	requested user.Role
	phone     *string

	guard guard.ConstructorGuard
}

func NewSignUpCommand(
	userID kernel.UUID,
	name, email, password string,
	requested user.Role,
	phone *string,
) (SignUpCommand, error) {
	var problems []error
	problems = append(problems, userID.Validate())
	if strings.TrimSpace(name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if strings.TrimSpace(email) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("email"))
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"password length", len(password), MinPasswordLength, MaxPasswordLength))
	}
	if _, err := user.PendingFor(requested); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return SignUpCommand{}, err
	}

	return SignUpCommand{
		userID:    userID,
		name:      name,
		email:     user.NormalizeEmail(email),
		password:  password,
		requested: requested,
		phone:     phone,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SignUpCommand) Validate() error {
	return c.guard.Validate(ErrSignUpCommandIsNotConstructed)
}

func (c SignUpCommand) UserID() kernel.UUID  { return c.userID }
func (c SignUpCommand) Name() string         { return c.name }
func (c SignUpCommand) Email() string        { return c.email }
func (c SignUpCommand) Password() string     { return c.password }
func (c SignUpCommand) Requested() user.Role { return c.requested }
func (c SignUpCommand) Phone() *string       { return c.phone }

package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via SignUp, NewAdmin or RestoreUser")

// User is an account of an admin, agent or owner.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         Role
	phone        *string
	createdAt    time.Time
	version      int64

	isConstructed bool
}

// SignUp registers a user awaiting review. requested must be agent or owner;
// the user lands in the matching pending role.
func SignUp(id kernel.UUID, name, email, passwordHash string, requested Role, phone *string) (*User, error) {
	role, err := PendingFor(requested)
	if err != nil {
		return nil, err
	}
	return newUser(id, name, email, passwordHash, role, phone)
}

// NewAdmin creates an active admin. It is used to seed the first account.
func NewAdmin(id kernel.UUID, name, email, passwordHash string) (*User, error) {
	return newUser(id, name, email, passwordHash, RoleAdmin, nil)
}

func newUser(id kernel.UUID, name, email, passwordHash string, role Role, phone *string) (*User, error) {
	u := &User{
		role:          role,
		phone:         phone,
		createdAt:     time.Now().UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// State is the persisted form of a user.
type State struct {
	ID           kernel.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	CreatedAt    time.Time
	Version      int64
}

func RestoreUser(s State) (*User, error) {
	u := &User{
		role:          s.Role,
		phone:         s.Phone,
		createdAt:     s.CreatedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(s.ID),
		u.setName(s.Name),
		u.setEmail(s.Email),
		u.setPasswordHash(s.PasswordHash),
		s.Role.Validate(),
	); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() string { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role { return u.role }
func (u *User) Phone() *string { return u.phone }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) Version() int64 { return u.version }
func (u *User) Identity() Identity { return NewIdentity(u.id, u.role) }
func (u *User) IsAgent() bool { return u.role == RoleAgent }
func (u *User) CanAuthenticate() bool { return u.role.IsActive() }
func (u *User) AdvanceVersion() { u.version++ }

// Promote moves the user to one of the active roles.
func (u *User) Promote(role Role) error {
	if !role.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%s is not an assignable role", role))
	}
	u.role = role
	return nil
}

// EnsureRejectable allows rejection only while review is pending.
// A rejected user is deleted rather than stored.
func (u *User) EnsureRejectable() error {
	if !u.role.IsPending() {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("only pending users can be rejected, user is %s", u.role))
	}
	return nil
}

// NormalizeEmail gives the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}

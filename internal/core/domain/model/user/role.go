package user

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role is the closed set of identities the access gate understands.
type Role int

const (
	// RoleUnknown is the zero value. The gate denies it everything.
	RoleUnknown Role = iota
	RoleAdmin
	RoleAgent
	RoleOwner
	RoleAgentPending
	RoleOwnerPending
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:      "unknown",
		RoleAdmin:        "admin",
		RoleAgent:        "agent",
		RoleOwner:        "owner",
		RoleAgentPending: "agent_pending",
		RoleOwnerPending: "owner_pending",
	}
}

// ParseRole maps the wire form to a Role. Unknown strings are a validation failure.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleOwnerPending {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsPending reports whether the role still waits for admin review.
func (r Role) IsPending() bool {
	return r == RoleAgentPending || r == RoleOwnerPending
}

// IsActive reports whether the role may authenticate and act.
func (r Role) IsActive() bool {
	return r == RoleAdmin || r == RoleAgent || r == RoleOwner
}

// PendingFor returns the pending role a signup for r lands in.
// Only agent and owner may be requested at signup.
func PendingFor(requested Role) (Role, error) {
	switch requested {
	case RoleAgent, RoleAgentPending:
		return RoleAgentPending, nil
	case RoleOwner, RoleOwnerPending:
		return RoleOwnerPending, nil
	case RoleUnknown, RoleAdmin:
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%s cannot be requested at signup", requested))
}

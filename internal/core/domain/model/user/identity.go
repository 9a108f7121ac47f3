package user

import "dispatch/internal/core/domain/model/kernel"

// Identity is the verified caller of an operation: who they are and what role
// their credential carried.
type Identity struct {
	UserID kernel.UUID
	Role   Role
}

func NewIdentity(userID kernel.UUID, role Role) Identity {
	return Identity{UserID: userID, Role: role}
}

// IsZero reports whether no credential was verified.
func (i Identity) IsZero() bool {
	return i.UserID.Validate() != nil || i.Role == RoleUnknown
}

func (i Identity) Is(role Role) bool {
	return !i.IsZero() && i.Role == role
}

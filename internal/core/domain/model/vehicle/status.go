package vehicle

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the availability of a vehicle.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusAvailable
	StatusInUse
	StatusMaintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusPending:     "pending",
		StatusAvailable:   "available",
		StatusInUse:       "in_use",
		StatusMaintenance: "maintenance",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusMaintenance {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid vehicle status", s))
	}
	return nil
}

// ApprovalStatus tracks the review of a registration.
type ApprovalStatus int

const (
	ApprovalUnknown ApprovalStatus = iota
	ApprovalPending
	ApprovalApproved
	ApprovalRejected
)

func getApprovalStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		ApprovalUnknown:  "unknown",
		ApprovalPending:  "pending",
		ApprovalApproved: "approved",
		ApprovalRejected: "rejected",
	}
}

func (a ApprovalStatus) String() string {
	if str, ok := getApprovalStrings()[a]; ok {
		return str
	}
	return "unknown"
}

func (a ApprovalStatus) Validate() error {
	if a <= ApprovalUnknown || a > ApprovalRejected {
		return errs.NewValueIsInvalidErrorWithCause("approval_status", fmt.Errorf("%d is not a valid approval status", a))
	}
	return nil
}

// ParseDecision accepts the two decisions a reviewer can make.
func ParseDecision(s string) (ApprovalStatus, error) {
	switch s {
	case ApprovalApproved.String():
		return ApprovalApproved, nil
	case ApprovalRejected.String():
		return ApprovalRejected, nil
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause("approval_status",
		fmt.Errorf("%q is not a valid decision, expected approved or rejected", s))
}

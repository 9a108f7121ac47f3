package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	ErrConflict           = errors.New("conflict")
)

// UnauthenticatedError is returned when a request carries no usable credential.
type UnauthenticatedError struct {
	Reason string
	Cause  error
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUnauthenticated, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// ForbiddenError is returned when an authenticated identity may not perform an action.
type ForbiddenError struct {
	Role   string
	Action string
}

func NewForbiddenError(role, action string) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: role %s may not %s", ErrForbidden, e.Role, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError is returned when a status edge is not part of the lifecycle.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// VehicleUnavailableError is returned when a vehicle cannot be claimed for a pickup.
type VehicleUnavailableError struct {
	VehicleID any
	Status    string
	Approval  string
}

func NewVehicleUnavailableError(vehicleID any, status, approval string) *VehicleUnavailableError {
	return &VehicleUnavailableError{VehicleID: vehicleID, Status: status, Approval: approval}
}

func (e *VehicleUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s is %s (approval %s)", ErrVehicleUnavailable, e.VehicleID, e.Status, e.Approval)
}

func (e *VehicleUnavailableError) Unwrap() error {
	return ErrVehicleUnavailable
}

// ConflictError is returned when a concurrent writer changed the record first.
type ConflictError struct {
	Entity  string
	ID      any
	Version int64
}

func NewConflictError(entity string, id any, version int64) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Version: version}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified concurrently (read version %d)", ErrConflict, e.Entity, e.ID, e.Version)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

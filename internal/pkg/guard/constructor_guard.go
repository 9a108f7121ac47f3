// Package guard helps value objects, aggregates and command objects detect
// instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into structs whose zero value is not a valid instance.
// Constructors set it via NewConstructorGuard and Validate methods delegate to it.
//
// Example:
//
//	type LicensePlate struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func (p LicensePlate) Validate() error {
//	    return p.guard.Validate(ErrLicensePlateIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

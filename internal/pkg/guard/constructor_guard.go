// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and aggregates so that zero values can be told apart from instances
// built through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning struct went through its constructor.
//
// Embed it as an unexported field, set it with NewConstructorGuard inside the
// constructor and call Validate from the owner's own Validate method:
//
//	type ChooseRateCommand struct {
//	    runID kernel.UUID
//	    token string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c ChooseRateCommand) Validate() error {
//	    return c.guard.Validate(ErrChooseRateCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}

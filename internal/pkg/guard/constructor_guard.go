// Package guard provides the constructor guard pattern used by domain
// objects and commands to reject zero-value instances that bypassed their
// designated constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through their constructor
// from zero-value instances. Embed it as a private field and set it with
// NewConstructorGuard inside the constructor; Validate then fails for any
// instance created by direct struct initialization.
//
// Example:
//
//	type OfferCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewOfferCommand(orderID kernel.UUID) (OfferCommand, error) {
//	    return OfferCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c OfferCommand) Validate() error {
//	    return c.guard.Validate(ErrOfferCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero-value instances it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

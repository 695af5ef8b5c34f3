// Package guard implements the constructor guard pattern used by value objects,
// entities, and commands across the application.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does not
// supply its own validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through their designated
// constructor from zero values. Embedding a guard and checking it in Validate
// prevents a struct literal from bypassing constructor validation.
//
// The guard holds a single flag that only the constructor sets:
//
//	type TrackingID struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTrackingID(value string) (TrackingID, error) {
//	    if value == "" {
//	        return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
//	    }
//	    return TrackingID{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t TrackingID) Validate() error {
//	    return t.guard.Validate(ErrTrackingIDIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its holder as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the holder was built via its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

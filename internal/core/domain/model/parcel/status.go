package parcel

import (
	"fmt"

	"shipflow/internal/pkg/errs"
)

// ErrInvalidStatusTransition is the sentinel unwrapped by InvalidTransitionError.
// Use errors.Is against it to classify transition failures.
var ErrInvalidStatusTransition = fmt.Errorf("status transition is not allowed")

// Status represents the lifecycle state of a package.
// It implements a state machine with defined transitions to ensure packages
// follow the correct delivery workflow.
//
// State transitions:
//
//	PENDING ──> IN_TRANSIT ──┬──> DELIVERED
//	                ^        ├──> CANCELLED
//	                │        └──> ON_HOLD ──> CANCELLED
//	                └────────────────┘
//	          (on-hold packages may resume transit)
//
// DELIVERED and CANCELLED are terminal: no transition leaves them. Any pair
// not present in the transition table is rejected, including self-transitions
// and backward moves such as IN_TRANSIT -> PENDING.
//
// Status is a value object; its string forms are the uppercase names used on
// the wire and in persistence history.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at registration.
	Pending

	// InTransit indicates the package left its origin and is moving.
	InTransit

	// Delivered indicates the package reached its destination. Terminal.
	Delivered

	// OnHold indicates transit is suspended; it may resume or be cancelled.
	OnHold

	// Cancelled indicates the shipment was aborted. Terminal.
	Cancelled
)

// AllowedStatusNames is the list advertised in validation messages,
// in declaration order.
const AllowedStatusNames = "PENDING, IN_TRANSIT, DELIVERED, ON_HOLD, CANCELLED"

// statusStrings maps every Status, including Unknown, to its string form.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		OnHold:    "ON_HOLD",
		Cancelled: "CANCELLED",
	}
}

// validStatusStrings maps only the statuses a package may actually hold.
func validStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		OnHold:    "ON_HOLD",
		Cancelled: "CANCELLED",
	}
}

// allowedTransitions is the single authoritative transition table.
// A transition is legal iff the target appears in the list keyed by the
// current status. Terminal statuses map to an empty list.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {InTransit},
		InTransit: {Delivered, OnHold, Cancelled},
		OnHold:    {InTransit, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses a status from its wire form. Matching is exact:
// the five uppercase names and nothing else.
//
// Returns a ValueIsInvalidError naming the allowed values when the input is
// not one of the five known statuses.
func StatusFromString(value string) (Status, error) {
	for status, name := range validStatusStrings() {
		if name == value {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("invalid status: %s. Allowed values are: %s", value, AllowedStatusNames))
}

// Validate checks that the Status is one of the five known values.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := validStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the uppercase wire form of the status.
// Invalid values render as "UNKNOWN". Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	next, ok := allowedTransitions()[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the transition table permits moving from
// the current status to next. It is a pure lookup with no side effects.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the transition table and returns
// the new status.
//
// Returns:
//   - (next, nil) when the table permits current -> next
//   - (0, *InvalidTransitionError) otherwise
//
// This method is used by Parcel.UpdateStatus to enforce the lifecycle.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, &InvalidTransitionError{From: s, To: next}
	}

	return next, nil
}

// InvalidTransitionError reports a status change the transition table forbids.
// It is surfaced to callers as an HTTP 409 by the presentation adapter.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

package kernel

import (
	"strconv"
	"strings"

	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

// ErrTrackingIDIsNotConstructed is returned when validating a zero-value TrackingID.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingID must be created via NewTrackingID or NextTrackingID")

// TrackingID is the public identifier of a package: a strictly increasing
// integer rendered as a string. It is assigned once by the store at creation
// and never changes.
//
// The string form is the identity. Historic data may contain non-numeric
// identifiers; those remain valid TrackingIDs for lookup but are skipped when
// allocating the next one.
type TrackingID struct {
	value string

	guard guard.ConstructorGuard
}

// NewTrackingID creates a TrackingID from its string form.
// The value must not be empty or blank.
func NewTrackingID(value string) (TrackingID, error) {
	if strings.TrimSpace(value) == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
	}

	return TrackingID{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NextTrackingID allocates the identifier following the given existing ones.
// Each existing identifier is parsed as a base-10 integer; values that do not
// parse are ignored. The result is the maximum (or 0 when none parse) plus
// one, rendered as a string. With no existing identifiers the first allocated
// TrackingID is "1".
func NextTrackingID(existing []string) TrackingID {
	var last int64
	for _, raw := range existing {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if n > last {
			last = n
		}
	}

	return TrackingID{
		value: strconv.FormatInt(last+1, 10),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate reports whether the TrackingID was created through a constructor.
func (t TrackingID) Validate() error {
	return t.guard.Validate(ErrTrackingIDIsNotConstructed)
}

// IsEqual compares two TrackingIDs by their string form.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// String returns the identifier as callers see it.
func (t TrackingID) String() string {
	return t.value
}

package parcel

import (
	"fmt"
	"strings"

	"shipflow/internal/pkg/errs"
)

// Type classifies the physical contents of a package. It is immutable after
// registration.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeDocument is paperwork shipped in an envelope.
	TypeDocument

	// TypeSmallBox is a parcel up to the small-box size class.
	TypeSmallBox

	// TypeFragile is a parcel requiring careful handling.
	TypeFragile
)

// AllowedTypeNames is the list advertised in validation messages,
// in declaration order.
const AllowedTypeNames = "DOCUMENT, SMALL_BOX, FRAGILE"

func typeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "UNKNOWN",
		TypeDocument: "DOCUMENT",
		TypeSmallBox: "SMALL_BOX",
		TypeFragile:  "FRAGILE",
	}
}

func validTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypeDocument: "DOCUMENT",
		TypeSmallBox: "SMALL_BOX",
		TypeFragile:  "FRAGILE",
	}
}

// TypeFromString parses a package type from its wire form. Matching is
// case-insensitive and ignores surrounding whitespace, so "document"
// normalizes to DOCUMENT.
func TypeFromString(value string) (Type, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for t, name := range validTypeStrings() {
		if name == normalized {
			return t, nil
		}
	}

	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("type",
		fmt.Errorf("invalid package type: %s. Allowed values are: %s", value, AllowedTypeNames))
}

// Validate checks that the Type is one of the three known values.
func (t Type) Validate() error {
	if _, ok := validTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%d is not a valid package type", t))
	}
	return nil
}

// String returns the uppercase wire form of the type.
// Invalid values render as "UNKNOWN". Implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := typeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var (
	ErrRegisterParcelCommandIsNotConstructed = errors.New(
		"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
	)
)

// RegisterParcelCommand represents a request to register a new package.
// It validates caller input up front: cities must differ, the description is
// bounded, the type string must name a known package type, and the weight
// must be positive. Tracking-id assignment and timestamps are left to the
// handler, which owns the transaction.
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	parcelType  parcel.Type
	weight      float64
	description string
	cityFrom    string
	cityTo      string

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand creates a command to register a package.
// The type string is matched case-insensitively against the known package
// types, so "document" normalizes to DOCUMENT. Violated constraints are
// reported together, ordered cities, description, type, weight.
func NewRegisterParcelCommand(
	typeName string,
	weight float64,
	description string,
	cityFrom string,
	cityTo string,
) (RegisterParcelCommand, error) {
	command := RegisterParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCities(cityFrom, cityTo),
		command.setDescription(description),
		command.setType(typeName),
		command.setWeight(weight),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

// ParcelType returns the parsed package type.
func (c RegisterParcelCommand) ParcelType() parcel.Type {
	return c.parcelType
}

// Weight returns the package weight.
func (c RegisterParcelCommand) Weight() float64 {
	return c.weight
}

// Description returns the free-text description.
func (c RegisterParcelCommand) Description() string {
	return c.description
}

// CityFrom returns the origin city.
func (c RegisterParcelCommand) CityFrom() string {
	return c.cityFrom
}

// CityTo returns the destination city.
func (c RegisterParcelCommand) CityTo() string {
	return c.cityTo
}

func (c *RegisterParcelCommand) setCities(cityFrom, cityTo string) error {
	if strings.TrimSpace(cityFrom) == "" {
		return errs.NewValueIsRequiredError("cityFrom")
	}
	if strings.TrimSpace(cityTo) == "" {
		return errs.NewValueIsRequiredError("cityTo")
	}
	if strings.EqualFold(strings.TrimSpace(cityFrom), strings.TrimSpace(cityTo)) {
		return errs.NewValueIsInvalidErrorWithCause("cityTo",
			errors.New("origin and destination cities cannot be the same"))
	}

	c.cityFrom = cityFrom
	c.cityTo = cityTo
	return nil
}

func (c *RegisterParcelCommand) setDescription(description string) error {
	// the limit counts characters, not bytes
	if length := utf8.RuneCountInString(description); length > parcel.MaxDescriptionLength {
		return errs.NewValueIsOutOfRangeError(
			"description length", length, 0, parcel.MaxDescriptionLength)
	}

	c.description = description
	return nil
}

func (c *RegisterParcelCommand) setType(typeName string) error {
	parcelType, err := parcel.TypeFromString(typeName)
	if err != nil {
		return err
	}

	c.parcelType = parcelType
	return nil
}

func (c *RegisterParcelCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidError("weight")
	}

	c.weight = weight
	return nil
}

package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
)

const (
	// MaxDescriptionLength bounds the description at registration time.
	// Existing packages are not re-validated against it afterwards.
	MaxDescriptionLength = 50

	// TransitDays is the fixed offset added to the registration date to
	// produce the estimated delivery date.
	TransitDays = 5

	// InitialEventComment is the system comment recorded on the PENDING
	// event appended at registration.
	InitialEventComment = "Package registered and pending processing"

	// deliveryRequiresTransitRule names the business rule that a package can
	// only be marked as DELIVERED if it has previously been IN_TRANSIT.
	deliveryRequiresTransitRule = "package can only be marked as DELIVERED if it has previously been IN_TRANSIT"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through NewParcel or RestoreParcel. This ensures all parcels are properly validated.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")
)

// Parcel represents a shipped package in the system. It is the aggregate root
// that manages the package lifecycle from registration through transit to
// delivery or cancellation.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier and tracking identifier
//   - Weight must be positive
//   - Description is at most MaxDescriptionLength characters
//   - Origin and destination cities differ (case-insensitive, trimmed)
//   - Carries at least one event once construction completes
//   - The current status equals the status of the most recent event
//   - Events are append-only; history is never rewritten
//   - Status changes only through UpdateStatus, which enforces the
//     transition table and the delivered-requires-transit rule
//
// All fields are private; the aggregate can only be mutated through its
// methods, and only UpdateStatus mutates it after construction.
type Parcel struct {
	// id is the internal unique identifier of the package
	id kernel.UUID

	// trackingID is the public identifier assigned once by the store
	trackingID kernel.TrackingID

	// parcelType classifies the contents, immutable after registration
	parcelType Type

	// weight is the package weight, always positive
	weight float64

	// description is free text, bounded at registration
	description string

	// cityFrom and cityTo are origin and destination, never equal
	cityFrom string
	cityTo   string

	// status is the current lifecycle state, PENDING at registration
	status Status

	// estimatedDeliveryDate is fixed at registration as createdAt + TransitDays
	estimatedDeliveryDate time.Time

	// createdAt is set once; updatedAt refreshes on every mutation
	createdAt time.Time
	updatedAt time.Time

	// events is the append-only status history, oldest first
	events []Event

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel registers a new package. This is the only way to create a valid
// Parcel, ensuring all business invariants hold from the start.
//
// The package starts in PENDING status with its initial history event already
// appended (comment InitialEventComment), createdAt/updatedAt set to now, and
// estimatedDeliveryDate fixed at now plus TransitDays days.
//
// Validation failures:
//   - origin equals destination (case-insensitive, trimmed): ValueIsInvalidError
//   - description longer than MaxDescriptionLength: ValueIsOutOfRangeError
//   - invalid type, non-positive weight: ValueIsInvalidError
//
// All violated constraints are reported together via errors.Join, ordered
// cities, description, type, weight.
func NewParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	parcelType Type,
	weight float64,
	description string,
	cityFrom string,
	cityTo string,
	now time.Time,
) (*Parcel, error) {
	parcel := &Parcel{
		status:                Pending,
		createdAt:             now,
		updatedAt:             now,
		estimatedDeliveryDate: now.AddDate(0, 0, TransitDays),
		isConstructed:         true,
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setTrackingID(trackingID),
		parcel.setCities(cityFrom, cityTo),
		parcel.setDescription(description),
		parcel.setType(parcelType),
		parcel.setWeight(weight),
	); err != nil {
		return nil, err
	}

	initial, err := NewEvent(kernel.NewUUID(), Pending, InitialEventComment, now)
	if err != nil {
		return nil, err
	}
	parcel.events = []Event{initial}

	return parcel, nil
}

// RestoreParcel reconstructs a Parcel from persistence. The stored status and
// event history are taken as-is; events must be ordered oldest first and
// contain at least one entry.
func RestoreParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	parcelType Type,
	weight float64,
	description string,
	cityFrom string,
	cityTo string,
	status Status,
	estimatedDeliveryDate time.Time,
	createdAt time.Time,
	updatedAt time.Time,
	events []Event,
) (*Parcel, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errs.NewValueIsRequiredError("events")
	}
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return nil, err
		}
	}

	parcel := &Parcel{
		status:                status,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
		estimatedDeliveryDate: estimatedDeliveryDate,
		events:                append([]Event(nil), events...),
		isConstructed:         true,
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setTrackingID(trackingID),
		parcel.setCities(cityFrom, cityTo),
		parcel.setDescription(description),
		parcel.setType(parcelType),
		parcel.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return parcel, nil
}

// Validate ensures the Parcel instance was properly constructed.
// Returns ErrParcelIsNotConstructed for struct literals and zero values.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the package's internal unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingID returns the public tracking identifier.
func (p *Parcel) TrackingID() kernel.TrackingID {
	return p.trackingID
}

// Type returns the package type.
func (p *Parcel) Type() Type {
	return p.parcelType
}

// Weight returns the package weight.
func (p *Parcel) Weight() float64 {
	return p.weight
}

// Description returns the free-text description.
func (p *Parcel) Description() string {
	return p.description
}

// CityFrom returns the origin city.
func (p *Parcel) CityFrom() string {
	return p.cityFrom
}

// CityTo returns the destination city.
func (p *Parcel) CityTo() string {
	return p.cityTo
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// EstimatedDeliveryDate returns the delivery estimate fixed at registration.
func (p *Parcel) EstimatedDeliveryDate() time.Time {
	return p.estimatedDeliveryDate
}

// CreatedAt returns the registration timestamp.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// Events returns the status history, oldest first. The returned slice is a
// copy; callers cannot alter the aggregate's history through it.
func (p *Parcel) Events() []Event {
	return append([]Event(nil), p.events...)
}

// HasBeenInTransit reports whether the history contains an IN_TRANSIT event.
func (p *Parcel) HasBeenInTransit() bool {
	for _, event := range p.events {
		if event.Status() == InTransit {
			return true
		}
	}
	return false
}

// IsOverdue reports whether the package has passed its estimated delivery
// date without reaching a terminal status.
func (p *Parcel) IsOverdue(now time.Time) bool {
	return !p.status.IsTerminal() && now.After(p.estimatedDeliveryDate)
}

// UpdateStatus transitions the package to target and appends one new event
// carrying the target status and the provided comment.
//
// The checks run in this order:
//  1. target must be a valid status
//  2. the transition table must permit current -> target
//     (returns *InvalidTransitionError otherwise)
//  3. when target is DELIVERED, the existing history - before this update's
//     event - must already contain an IN_TRANSIT event
//     (returns *errs.BusinessRuleViolationError otherwise, even when the
//     current status is IN_TRANSIT)
//
// On success the status changes, updatedAt refreshes, and exactly one event
// is appended. On failure the aggregate is left untouched.
func (p *Parcel) UpdateStatus(target Status, comment string, now time.Time) error {
	newStatus, err := p.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if newStatus == Delivered && !p.HasBeenInTransit() {
		return errs.NewBusinessRuleViolationError(deliveryRequiresTransitRule)
	}

	event, err := NewEvent(kernel.NewUUID(), newStatus, comment, now)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.updatedAt = now
	p.events = append(p.events, event)
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingID(trackingID kernel.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	p.trackingID = trackingID
	return nil
}

// setCities validates that both cities are present and distinct.
// Comparison trims whitespace and ignores case, so "Quito" and "quito "
// count as the same city.
func (p *Parcel) setCities(cityFrom, cityTo string) error {
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

	p.cityFrom = cityFrom
	p.cityTo = cityTo
	return nil
}

func (p *Parcel) setDescription(description string) error {
	// the limit counts characters, not bytes
	if length := utf8.RuneCountInString(description); length > MaxDescriptionLength {
		return errs.NewValueIsOutOfRangeError("description length", length, 0, MaxDescriptionLength)
	}
	p.description = description
	return nil
}

func (p *Parcel) setType(parcelType Type) error {
	if err := parcelType.Validate(); err != nil {
		return err
	}
	p.parcelType = parcelType
	return nil
}

func (p *Parcel) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is not greater than 0", weight))
	}
	p.weight = weight
	return nil
}

package parcel

import (
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
)

// ErrEventIsNotConstructed is returned when an Event was not created through
// NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is one entry of a package's status history. Events are append-only:
// once recorded they are never mutated or removed, so the sequence of events
// is a complete, monotonic account of the package's lifecycle.
//
// An Event does not reference its owning package; ownership is expressed by
// the Parcel aggregate holding the slice, and persistence links events to
// their package with a plain foreign key.
type Event struct {
	id        kernel.UUID
	status    Status
	comment   string
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewEvent records a status at a point in time with an optional free-text
// comment (empty means no comment).
func NewEvent(id kernel.UUID, status Status, comment string, at time.Time) (Event, error) {
	if err := id.Validate(); err != nil {
		return Event{}, err
	}
	if err := status.Validate(); err != nil {
		return Event{}, err
	}

	return Event{
		id:            id,
		status:        status,
		comment:       comment,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistence with its original
// timestamps.
func RestoreEvent(id kernel.UUID, status Status, comment string, createdAt, updatedAt time.Time) (Event, error) {
	event, err := NewEvent(id, status, comment, createdAt)
	if err != nil {
		return Event{}, err
	}

	event.updatedAt = updatedAt
	return event, nil
}

// Validate ensures the Event was built through a constructor.
func (e Event) Validate() error {
	if !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e Event) ID() kernel.UUID {
	return e.id
}

// Status returns the status recorded at this point in history.
func (e Event) Status() Status {
	return e.status
}

// Comment returns the free-text comment, empty when none was provided.
func (e Event) Comment() string {
	return e.comment
}

// CreatedAt returns when the event was recorded.
func (e Event) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns the event's last-write timestamp. Events are immutable,
// so this matches CreatedAt for events produced by this service.
func (e Event) UpdatedAt() time.Time {
	return e.updatedAt
}

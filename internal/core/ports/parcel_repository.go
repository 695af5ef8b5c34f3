// Package ports defines the persistence contracts for the package lifecycle.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Implementations persist the aggregate together with its event history:
// Add and Update must write the parcel row and any not-yet-persisted events
// in the same transaction so a package is never visible without its events.
type ParcelRepository interface {
	// Add persists a new parcel aggregate, including its initial event.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate and appends
	// any new events. Existing events are never rewritten.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// GetByTrackingID retrieves the parcel whose tracking identifier matches
	// exactly, with its full ordered event history. Returns an
	// ObjectNotFoundError when no parcel matches.
	GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error)

	// GetAll retrieves every parcel with its history, in stable order.
	GetAll(ctx context.Context) ([]*parcel.Parcel, error)

	// NextTrackingID allocates the tracking identifier for a new parcel by
	// scanning existing identifiers, parsing the numeric ones, and returning
	// max+1 as a string. Runs inside the caller's transaction; the unique
	// index on the column turns a concurrent duplicate allocation into a
	// failed commit rather than two packages sharing an identifier.
	NextTrackingID(ctx context.Context) (kernel.TrackingID, error)
}

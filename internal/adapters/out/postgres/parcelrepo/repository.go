package parcelrepo

import (
	"context"
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database, including its initial event.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database together with any new events.
// Previously persisted events are upserted by primary key and never rewritten
// with different content because the domain treats the history as append-only.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to persist appended events
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByTrackingID retrieves a parcel by its tracking identifier.
// The comparison is exact: identifiers are opaque strings, so "1" and "01"
// name different parcels. Events are loaded oldest first.
func (r *GormParcelRepository) GetByTrackingID(
	ctx context.Context,
	trackingID kernel.TrackingID,
) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("parcel_events.created_at, parcel_events.id")
		}).
		First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingID", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every parcel with its event history.
// Parcels are ordered by creation time, newest first.
func (r *GormParcelRepository) GetAll(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("parcel_events.created_at, parcel_events.id")
		}).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

// NextTrackingID allocates the tracking identifier for a new parcel.
// Scans all existing identifiers and returns max+1; runs inside the caller's
// transaction, and the unique index on tracking_id turns a concurrent
// duplicate allocation into a failed commit.
func (r *GormParcelRepository) NextTrackingID(ctx context.Context) (kernel.TrackingID, error) {
	var existing []string
	if err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Pluck("tracking_id", &existing).Error; err != nil {
		return kernel.TrackingID{}, err
	}

	return kernel.NextTrackingID(existing), nil
}

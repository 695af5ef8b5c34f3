package queries

import (
	"context"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelHistoryQueryHandler retrieves a parcel's status events from the database.
// Events are returned oldest first so the history reads as a timeline.
//
// Example:
//
//	handler := NewGetParcelHistoryQueryHandler(db)
//	query, _ := NewGetParcelHistoryQuery("42")
//
//	events, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get history: %v", err)
//	    return err
//	}
type GetParcelHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelHistoryQueryHandler creates a handler for parcel history queries.
// Requires a GORM database connection for query execution.
func NewGetParcelHistoryQueryHandler(db *gorm.DB) GetParcelHistoryQueryHandler {
	return GetParcelHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve a parcel's full event history.
// Returns an ObjectNotFoundError when no parcel carries the identifier,
// so an unknown tracking identifier is distinguishable from an empty history.
func (h GetParcelHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetParcelHistoryQuery,
) ([]ParcelEventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var parcelID uuid.UUID
	result := h.db.WithContext(ctx).Raw(`
		SELECT id
		FROM parcels
		WHERE tracking_id = ?
	`, query.TrackingID()).Scan(&parcelID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("trackingID", query.TrackingID())
	}

	events := make([]ParcelEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			comment,
			updated_at
		FROM parcel_events
		WHERE parcel_id = ?
		ORDER BY created_at, id
	`, parcelID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event ParcelEventResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&status,
			&event.Comment,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.ID = eventID
		event.Status = parcel.Status(status).String()
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

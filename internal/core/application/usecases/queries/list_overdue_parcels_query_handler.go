package queries

import (
	"context"

	"shipflow/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// ListOverdueParcelsQueryHandler retrieves overdue parcels from the database.
// A parcel is overdue when its estimated delivery date has passed and it
// has not reached a terminal status.
//
// Example:
//
//	handler := NewListOverdueParcelsQueryHandler(db)
//	query, _ := NewListOverdueParcelsQuery(time.Now().UTC())
//
//	overdue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list overdue parcels: %v", err)
//	    return err
//	}
type ListOverdueParcelsQueryHandler struct {
	db *gorm.DB
}

// NewListOverdueParcelsQueryHandler creates a handler for overdue parcel queries.
// Requires a GORM database connection for query execution.
func NewListOverdueParcelsQueryHandler(db *gorm.DB) ListOverdueParcelsQueryHandler {
	return ListOverdueParcelsQueryHandler{db: db}
}

// Handle executes the query to retrieve all overdue parcels.
// Results are sorted by estimated delivery date so the longest overdue
// parcels come first.
func (h ListOverdueParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListOverdueParcelsQuery,
) ([]ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]ParcelResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			type,
			weight,
			description,
			city_from,
			city_to,
			status,
			created_at,
			updated_at,
			estimated_delivery_date
		FROM parcels
		WHERE estimated_delivery_date < ?
		  AND status NOT IN (?, ?)
		ORDER BY estimated_delivery_date, tracking_id
	`, query.AsOf(), int(parcel.Delivered), int(parcel.Cancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		response, scanErr := scanParcelRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		parcels = append(parcels, *response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}

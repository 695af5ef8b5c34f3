package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListParcelsQueryHandler retrieves all parcel information from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewListParcelsQueryHandler(db)
//	query := NewListParcelsQuery()
//
//	parcels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list parcels: %v", err)
//	    return err
//	}
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

// NewListParcelsQueryHandler creates a handler for parcel listing queries.
// Requires a GORM database connection for query execution.
func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

// Handle executes the query to retrieve all parcels.
// Returns a slice of parcel read models sorted by creation time,
// newest first, so recent registrations surface at the top.
func (h ListParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListParcelsQuery,
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
		ORDER BY created_at DESC, tracking_id
	`).Rows()
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

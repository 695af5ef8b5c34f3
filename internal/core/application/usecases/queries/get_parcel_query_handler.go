package queries

import (
	"context"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelQueryHandler retrieves a single parcel from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetParcelQueryHandler(db)
//	query, _ := NewGetParcelQuery("42")
//
//	parcel, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get parcel: %v", err)
//	    return err
//	}
type GetParcelQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelQueryHandler creates a handler for single parcel queries.
// Requires a GORM database connection for query execution.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle executes the query to retrieve one parcel by tracking identifier.
// Returns an ObjectNotFoundError when no parcel carries the identifier.
func (h GetParcelQueryHandler) Handle(
	ctx context.Context,
	query GetParcelQuery,
) (*ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

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
		WHERE tracking_id = ?
	`, query.TrackingID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("trackingID", query.TrackingID())
	}

	response, err := scanParcelRow(rows)
	if err != nil {
		return nil, err
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return response, nil
}

// parcelRowScanner abstracts *sql.Rows so the mapping can be shared
// between the single-parcel and list handlers.
type parcelRowScanner interface {
	Scan(dest ...any) error
}

func scanParcelRow(rows parcelRowScanner) (*ParcelResponse, error) {
	var response ParcelResponse
	var id uuid.UUID
	var parcelType, status int

	err := rows.Scan(
		&id,
		&response.TrackingID,
		&parcelType,
		&response.Weight,
		&response.Description,
		&response.CityFrom,
		&response.CityTo,
		&status,
		&response.CreatedAt,
		&response.UpdatedAt,
		&response.EstimatedDeliveryDate,
	)
	if err != nil {
		return nil, err
	}

	parcelID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return nil, idErr
	}
	response.ID = parcelID
	response.Type = parcel.Type(parcelType).String()
	response.Status = parcel.Status(status).String()

	return &response, nil
}

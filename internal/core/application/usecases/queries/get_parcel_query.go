// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"strings"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var (
	ErrGetParcelQueryIsNotConstructed = errors.New(
		"GetParcelQuery must be created via NewGetParcelQuery constructor",
	)
)

// GetParcelQuery retrieves a single parcel by its tracking identifier.
// Returns the parcel's current state without its event history.
//
// Example:
//
//	query, err := NewGetParcelQuery("42")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetParcelQueryHandler(db)
//
//	parcel, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve parcel: %w", err)
//	}
//
//	fmt.Printf("Parcel %s is %s\n", parcel.TrackingID, parcel.Status)
type GetParcelQuery struct {
	trackingID string

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a query for a single parcel lookup.
// The tracking identifier must not be blank.
func NewGetParcelQuery(trackingID string) (GetParcelQuery, error) {
	if strings.TrimSpace(trackingID) == "" {
		return GetParcelQuery{}, errs.NewValueIsRequiredError("trackingID")
	}

	return GetParcelQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TrackingID returns the tracking identifier being looked up.
func (q GetParcelQuery) TrackingID() string {
	return q.trackingID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetParcelQueryIsNotConstructed if validation fails.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ParcelResponse represents parcel information in the read model.
// Status and parcel type are rendered in their wire form (for example
// "IN_TRANSIT") so the response can be serialized without further mapping.
//
// Example:
//
//	response := ParcelResponse{
//	    TrackingID: "42",
//	    Type:       "SMALL_BOX",
//	    Status:     "PENDING",
//	    CityFrom:   "Quito",
//	    CityTo:     "Guayaquil",
//	}
type ParcelResponse struct {
	ID                    kernel.UUID
	TrackingID            string
	Type                  string
	Weight                float64
	Description           string
	CityFrom              string
	CityTo                string
	Status                string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	EstimatedDeliveryDate time.Time
}

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
	ErrGetParcelHistoryQueryIsNotConstructed = errors.New(
		"GetParcelHistoryQuery must be created via NewGetParcelHistoryQuery constructor",
	)
)

// GetParcelHistoryQuery retrieves the full status history of a parcel.
// Returns every recorded status event in chronological order.
//
// Example:
//
//	query, err := NewGetParcelHistoryQuery("42")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetParcelHistoryQueryHandler(db)
//
//	events, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve history: %w", err)
//	}
//
//	for _, event := range events {
//	    fmt.Printf("%s: %s\n", event.UpdatedAt, event.Status)
//	}
type GetParcelHistoryQuery struct {
	trackingID string

	guard guard.ConstructorGuard
}

// NewGetParcelHistoryQuery creates a query for a parcel's event history.
// The tracking identifier must not be blank.
func NewGetParcelHistoryQuery(trackingID string) (GetParcelHistoryQuery, error) {
	if strings.TrimSpace(trackingID) == "" {
		return GetParcelHistoryQuery{}, errs.NewValueIsRequiredError("trackingID")
	}

	return GetParcelHistoryQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TrackingID returns the tracking identifier whose history is requested.
func (q GetParcelHistoryQuery) TrackingID() string {
	return q.trackingID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetParcelHistoryQueryIsNotConstructed if validation fails.
func (q GetParcelHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelHistoryQueryIsNotConstructed)
}

// ParcelEventResponse represents one entry of a parcel's status history.
// The comment is empty for transitions recorded without one.
type ParcelEventResponse struct {
	ID        kernel.UUID
	Status    string
	Comment   string
	UpdatedAt time.Time
}

package queries

import (
	"errors"
	"time"

	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var (
	ErrListOverdueParcelsQueryIsNotConstructed = errors.New(
		"ListOverdueParcelsQuery must be created via NewListOverdueParcelsQuery constructor",
	)
)

// ListOverdueParcelsQuery retrieves parcels that missed their estimated
// delivery date and are still in a non-terminal status. Used by the
// periodic overdue scan and for operational monitoring.
//
// Example:
//
//	query, err := NewListOverdueParcelsQuery(time.Now().UTC())
//	if err != nil {
//	    return err
//	}
//	handler := NewListOverdueParcelsQueryHandler(db)
//
//	overdue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list overdue parcels: %w", err)
//	}
type ListOverdueParcelsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewListOverdueParcelsQuery creates a query for overdue parcels.
// The asOf instant defines "now" for the overdue comparison and must not
// be the zero time.
func NewListOverdueParcelsQuery(asOf time.Time) (ListOverdueParcelsQuery, error) {
	if asOf.IsZero() {
		return ListOverdueParcelsQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return ListOverdueParcelsQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// AsOf returns the instant parcels are compared against.
func (q ListOverdueParcelsQuery) AsOf() time.Time {
	return q.asOf
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOverdueParcelsQueryIsNotConstructed if validation fails.
func (q ListOverdueParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListOverdueParcelsQueryIsNotConstructed)
}

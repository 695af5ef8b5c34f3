package queries

import (
	"errors"

	"shipflow/internal/pkg/guard"
)

var (
	ErrListParcelsQueryIsNotConstructed = errors.New(
		"ListParcelsQuery must be created via NewListParcelsQuery constructor",
	)
)

// ListParcelsQuery retrieves every parcel registered in the system.
// Returns current parcel state for monitoring and dashboard views.
//
// Example:
//
//	query := NewListParcelsQuery()
//	handler := NewListParcelsQueryHandler(db)
//
//	parcels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list parcels: %w", err)
//	}
//
//	fmt.Printf("Found %d parcels\n", len(parcels))
type ListParcelsQuery struct {
	guard guard.ConstructorGuard
}

// NewListParcelsQuery creates a query to retrieve all parcels.
// This is a parameterless query that fetches the complete parcel list.
func NewListParcelsQuery() ListParcelsQuery {
	return ListParcelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListParcelsQueryIsNotConstructed if validation fails.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

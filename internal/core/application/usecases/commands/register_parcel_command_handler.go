package commands

import (
	"context"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
)

// RegisterParcelCommandHandler handles the business logic for package
// registration: tracking-id allocation, aggregate construction in PENDING
// status, and atomic persistence of the parcel with its initial event.
type RegisterParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewRegisterParcelCommandHandler creates a handler for registration operations.
func NewRegisterParcelCommandHandler(uowFactory ParcelUoWFactory) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the created parcel.
// Tracking-id allocation, the parcel write, and the initial event write run
// in one transaction; on any failure nothing is persisted.
func (h *RegisterParcelCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterParcelCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	trackingID, err := repo.NextTrackingID(ctx)
	if err != nil {
		return nil, err
	}

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(),
		trackingID,
		cmd.ParcelType(),
		cmd.Weight(),
		cmd.Description(),
		cmd.CityFrom(),
		cmd.CityTo(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

package commands

import (
	"context"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
)

// UpdateParcelStatusCommandHandler handles the status-update protocol.
//
// The checks run in a fixed order so callers observe consistent failures:
// the package must exist, then the status string must be valid, then the
// transition table must allow the move, then the delivered-requires-transit
// rule applies. The parcel update and the new history event are persisted in
// one transaction.
type UpdateParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewUpdateParcelStatusCommandHandler creates a handler for status updates.
func NewUpdateParcelStatusCommandHandler(uowFactory ParcelUoWFactory) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status-update command and returns the updated parcel.
func (h *UpdateParcelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateParcelStatusCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	trackingID, err := kernel.NewTrackingID(cmd.TrackingID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()

	aggregate, err := repo.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	target, err := parcel.StatusFromString(cmd.Status())
	if err != nil {
		return nil, err
	}

	if err = aggregate.UpdateStatus(target, cmd.Comment(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

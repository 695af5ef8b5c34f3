package http

import (
	"errors"
	"net/http"
	"time"

	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"
)

// RegisterPackageRequest is the body of POST /api/v1/packages.
type RegisterPackageRequest struct {
	Type        string  `json:"type" validate:"required"`
	Weight      float64 `json:"weight" validate:"gt=0"`
	Description string  `json:"description"`
	CityFrom    string  `json:"city_from" validate:"required"`
	CityTo      string  `json:"city_to" validate:"required"`
}

// UpdateStatusRequest is the body of PUT /api/v1/packages/:trackingId/status.
// The comment is optional and recorded verbatim on the resulting event.
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment"`
}

// PackageResponse is the package view returned by registration, lookup,
// and listing. Field names follow the original wire format.
type PackageResponse struct {
	ID                    string    `json:"id"`
	CreatedAt             time.Time `json:"created_at"`
	TrackingID            string    `json:"tracking_id"`
	Type                  string    `json:"type"`
	Weight                float64   `json:"weight"`
	Description           string    `json:"description"`
	CityFrom              string    `json:"city_from"`
	CityTo                string    `json:"city_to"`
	Status                string    `json:"status"`
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
}

// PackageEventResponse is one entry of a package's status history.
type PackageEventResponse struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	Status    string    `json:"status"`
	Comment   string    `json:"comment,omitempty"`
}

// PackageDetailResponse is the history view: the package plus its full
// ordered event timeline.
type PackageDetailResponse struct {
	PackageInfo  PackageResponse        `json:"packageInfo"`
	EventHistory []PackageEventResponse `json:"eventHistory"`
}

// UpdateStatusResponse confirms a successful status change.
type UpdateStatusResponse struct {
	Message    string    `json:"message"`
	TrackingID string    `json:"trackingId"`
	NewStatus  string    `json:"newStatus"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ErrorResponse is the single-field error body used by every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}

// packageResponseFromParcel renders a domain aggregate as the package view.
// Used by command endpoints, which hold the freshly mutated aggregate.
func packageResponseFromParcel(aggregate *parcel.Parcel) PackageResponse {
	return PackageResponse{
		ID:                    aggregate.ID().String(),
		CreatedAt:             aggregate.CreatedAt(),
		TrackingID:            aggregate.TrackingID().String(),
		Type:                  aggregate.Type().String(),
		Weight:                aggregate.Weight(),
		Description:           aggregate.Description(),
		CityFrom:              aggregate.CityFrom(),
		CityTo:                aggregate.CityTo(),
		Status:                aggregate.Status().String(),
		EstimatedDeliveryDate: aggregate.EstimatedDeliveryDate(),
	}
}

// packageResponseFromReadModel renders a query read model as the package view.
func packageResponseFromReadModel(model queries.ParcelResponse) PackageResponse {
	return PackageResponse{
		ID:                    model.ID.String(),
		CreatedAt:             model.CreatedAt,
		TrackingID:            model.TrackingID,
		Type:                  model.Type,
		Weight:                model.Weight,
		Description:           model.Description,
		CityFrom:              model.CityFrom,
		CityTo:                model.CityTo,
		Status:                model.Status,
		EstimatedDeliveryDate: model.EstimatedDeliveryDate,
	}
}

// eventResponsesFromReadModels renders the event history views.
func eventResponsesFromReadModels(models []queries.ParcelEventResponse) []PackageEventResponse {
	events := make([]PackageEventResponse, len(models))
	for i, model := range models {
		events[i] = PackageEventResponse{
			ID:        model.ID.String(),
			UpdatedAt: model.UpdatedAt,
			Status:    model.Status,
			Comment:   model.Comment,
		}
	}
	return events
}

// statusCodeForError maps domain and application errors to HTTP status codes:
// not-found lookups to 404, rejected transitions to 409, every other
// validation or business-rule failure to 400. Unrecognized errors are
// treated as internal.
func statusCodeForError(err error) int {
	var transitionErr *parcel.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return http.StatusConflict
	}

	var notFoundErr *errs.ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound
	}

	if errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrBusinessRuleViolated) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

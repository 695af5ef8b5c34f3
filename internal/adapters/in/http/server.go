// Package http exposes the package lifecycle over a REST API.
// It coordinates between HTTP handlers and application use cases,
// translating transport concerns (binding, validation, status codes)
// at the boundary so the core stays transport-agnostic.
package http

import (
	"context"
	"net/http"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/parcel"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterParcelCommandHandler handles package registration.
type RegisterParcelCommandHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterParcelCommand) (*parcel.Parcel, error)
}

// UpdateParcelStatusCommandHandler handles status changes.
type UpdateParcelStatusCommandHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateParcelStatusCommand) (*parcel.Parcel, error)
}

// GetParcelQueryHandler handles single package lookups.
type GetParcelQueryHandler interface {
	Handle(ctx context.Context, query queries.GetParcelQuery) (*queries.ParcelResponse, error)
}

// GetParcelHistoryQueryHandler handles event history lookups.
type GetParcelHistoryQueryHandler interface {
	Handle(ctx context.Context, query queries.GetParcelHistoryQuery) ([]queries.ParcelEventResponse, error)
}

// ListParcelsQueryHandler handles package listing.
type ListParcelsQueryHandler interface {
	Handle(ctx context.Context, query queries.ListParcelsQuery) ([]queries.ParcelResponse, error)
}

// Server wires the REST routes to the application's command and query handlers.
type Server struct {
	validate *validator.Validate

	registerParcelHandler RegisterParcelCommandHandler
	updateStatusHandler   UpdateParcelStatusCommandHandler

	getParcelHandler   GetParcelQueryHandler
	getHistoryHandler  GetParcelHistoryQueryHandler
	listParcelsHandler ListParcelsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerParcelHandler RegisterParcelCommandHandler,
	updateStatusHandler UpdateParcelStatusCommandHandler,
	getParcelHandler GetParcelQueryHandler,
	getHistoryHandler GetParcelHistoryQueryHandler,
	listParcelsHandler ListParcelsQueryHandler,
) *Server {
	return &Server{
		validate:              validator.New(),
		registerParcelHandler: registerParcelHandler,
		updateStatusHandler:   updateStatusHandler,
		getParcelHandler:      getParcelHandler,
		getHistoryHandler:     getHistoryHandler,
		listParcelsHandler:    listParcelsHandler,
	}
}

// RegisterRoutes attaches all routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/packages", s.RegisterPackage)
	api.GET("/packages", s.ListPackages)
	api.GET("/packages/:trackingId", s.GetPackage)
	api.GET("/packages/:trackingId/history", s.GetPackageHistory)
	api.PUT("/packages/:trackingId/status", s.UpdatePackageStatus)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/openapi.json", s.OpenAPI)
}

// RegisterPackage handles POST /api/v1/packages - registers a new package.
func (s *Server) RegisterPackage(ctx echo.Context) error {
	var request RegisterPackageRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := s.validate.Struct(request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	cmd, err := commands.NewRegisterParcelCommand(
		request.Type,
		request.Weight,
		request.Description,
		request.CityFrom,
		request.CityTo,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	registered, err := s.registerParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, packageResponseFromParcel(registered))
}

// ListPackages handles GET /api/v1/packages - retrieves all packages.
func (s *Server) ListPackages(ctx echo.Context) error {
	query := queries.NewListParcelsQuery()

	parcels, err := s.listParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]PackageResponse, len(parcels))
	for i, p := range parcels {
		response[i] = packageResponseFromReadModel(p)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPackage handles GET /api/v1/packages/:trackingId - retrieves one package.
func (s *Server) GetPackage(ctx echo.Context) error {
	query, err := queries.NewGetParcelQuery(ctx.Param("trackingId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	result, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, packageResponseFromReadModel(*result))
}

// GetPackageHistory handles GET /api/v1/packages/:trackingId/history -
// retrieves a package together with its full event timeline.
func (s *Server) GetPackageHistory(ctx echo.Context) error {
	trackingID := ctx.Param("trackingId")

	parcelQuery, err := queries.NewGetParcelQuery(trackingID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	parcelResult, err := s.getParcelHandler.Handle(ctx.Request().Context(), parcelQuery)
	if err != nil {
		return s.writeError(ctx, err)
	}

	historyQuery, err := queries.NewGetParcelHistoryQuery(trackingID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	events, err := s.getHistoryHandler.Handle(ctx.Request().Context(), historyQuery)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PackageDetailResponse{
		PackageInfo:  packageResponseFromReadModel(*parcelResult),
		EventHistory: eventResponsesFromReadModels(events),
	})
}

// UpdatePackageStatus handles PUT /api/v1/packages/:trackingId/status -
// moves a package through its lifecycle.
func (s *Server) UpdatePackageStatus(ctx echo.Context) error {
	var request UpdateStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := s.validate.Struct(request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(ctx.Param("trackingId"), request.Status, request.Comment)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UpdateStatusResponse{
		Message:    "Status updated successfully.",
		TrackingID: updated.TrackingID().String(),
		NewStatus:  updated.Status().String(),
		UpdatedAt:  updated.UpdatedAt(),
	})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// writeError renders an application error with its mapped status code.
// Internal errors are not echoed back to the caller.
func (s *Server) writeError(ctx echo.Context, err error) error {
	code := statusCodeForError(err)
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		return ctx.JSON(code, ErrorResponse{Error: "internal server error"})
	}
	return ctx.JSON(code, ErrorResponse{Error: err.Error()})
}

// Package http exposes the dispatch engine's operator and courier surface
// over echo. Request and response bodies are plain JSON structs; every
// business error maps to a status code plus a code/message body.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/projections/board"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	createCourierHandler        commands.CreateCourierCommandHandler
	setAvailabilityHandler      commands.SetCourierAvailabilityCommandHandler
	offerOrderHandler           commands.OfferOrderCommandHandler
	applyCourierResponseHandler commands.ApplyCourierResponseCommandHandler
	unassignOrderHandler        commands.UnassignOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	forceAvailableHandler       commands.ForceAvailableCommandHandler

	// Query handlers
	getAllCouriersHandler   queries.GetAllCouriersQueryHandler
	getStuckCouriersHandler queries.GetStuckCouriersQueryHandler
	getOrderRefusalsHandler queries.GetOrderRefusalsQueryHandler

	// Board projection
	projector *board.Projector
}

// NewServer creates the HTTP server with all required handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	setAvailabilityHandler commands.SetCourierAvailabilityCommandHandler,
	offerOrderHandler commands.OfferOrderCommandHandler,
	applyCourierResponseHandler commands.ApplyCourierResponseCommandHandler,
	unassignOrderHandler commands.UnassignOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	forceAvailableHandler commands.ForceAvailableCommandHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	getStuckCouriersHandler queries.GetStuckCouriersQueryHandler,
	getOrderRefusalsHandler queries.GetOrderRefusalsQueryHandler,
	projector *board.Projector,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		createCourierHandler:        createCourierHandler,
		setAvailabilityHandler:      setAvailabilityHandler,
		offerOrderHandler:           offerOrderHandler,
		applyCourierResponseHandler: applyCourierResponseHandler,
		unassignOrderHandler:        unassignOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		forceAvailableHandler:       forceAvailableHandler,
		getAllCouriersHandler:       getAllCouriersHandler,
		getStuckCouriersHandler:     getStuckCouriersHandler,
		getOrderRefusalsHandler:     getOrderRefusalsHandler,
		projector:                   projector,
	}
}

// RegisterRoutes binds all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/offer", s.OfferOrder)
	api.POST("/orders/:id/response", s.ApplyCourierResponse)
	api.POST("/orders/:id/unassign", s.UnassignOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id/refusals", s.GetOrderRefusals)

	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)
	api.GET("/couriers/stuck", s.GetStuckCouriers)
	api.PUT("/couriers/:id/availability", s.SetCourierAvailability)
	api.POST("/couriers/:id/force-available", s.ForceAvailable)

	api.GET("/board", s.GetBoard)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), req.Reference, req.ScheduledPickupAt)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), req.Name)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err = s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// SetCourierAvailability handles PUT /api/v1/couriers/:id/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid courier ID")
	}

	var req SetAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	availability, err := courier.AvailabilityFromString(req.Availability)
	if err != nil {
		return badRequest(ctx, "Invalid availability: "+req.Availability)
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, availability)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OfferOrder handles POST /api/v1/orders/:id/offer.
func (s *Server) OfferOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req OfferRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier ID")
	}

	cmd, err := commands.NewOfferOrderCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, "Invalid offer data: "+err.Error())
	}

	if err = s.offerOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyCourierResponse handles POST /api/v1/orders/:id/response.
func (s *Server) ApplyCourierResponse(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req CourierResponseRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier ID")
	}

	cmd, err := commands.NewApplyCourierResponseCommand(
		orderID, courierID, commands.Response(req.Response), req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid response data: "+err.Error())
	}

	if err = s.applyCourierResponseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignOrder handles POST /api/v1/orders/:id/unassign.
func (s *Server) UnassignOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req UnassignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUnassignOrderCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid unassign data: "+err.Error())
	}

	if err = s.unassignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req CancelRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancel data: "+err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ForceAvailable handles POST /api/v1/couriers/:id/force-available.
func (s *Server) ForceAvailable(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid courier ID")
	}

	cmd, err := commands.NewForceAvailableCommand(courierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier ID: "+err.Error())
	}

	if err = s.forceAvailableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve couriers")
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = Courier{
			ID:           c.ID.String(),
			Name:         c.Name,
			Availability: c.Availability.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStuckCouriers handles GET /api/v1/couriers/stuck.
func (s *Server) GetStuckCouriers(ctx echo.Context) error {
	query := queries.NewGetStuckCouriersQuery()

	couriers, err := s.getStuckCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve stuck couriers")
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = Courier{
			ID:           c.ID.String(),
			Name:         c.Name,
			Availability: courier.Busy.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderRefusals handles GET /api/v1/orders/:id/refusals.
func (s *Server) GetOrderRefusals(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderRefusalsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	refusals, err := s.getOrderRefusalsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve refusals")
	}

	response := make([]Refusal, len(refusals))
	for i, r := range refusals {
		response[i] = Refusal{
			CourierID: r.CourierID.String(),
			Reason:    r.Reason,
			RefusedAt: r.RefusedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetBoard handles GET /api/v1/board. Serves the projector's in-memory
// snapshot; no database round trip.
func (s *Server) GetBoard(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.projector.Snapshot())
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// writeError maps a use-case error onto an HTTP status: missing objects are
// 404, business conflicts (gate closed, cooldown, lost races, busy couriers)
// are 409, validation problems are 400, everything else is 500.
func writeError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrOrderNotOfferable),
		errors.Is(err, order.ErrOrderAlreadyAssigned),
		errors.Is(err, order.ErrOrderNotAssigned),
		errors.Is(err, order.ErrOrderIsTerminal),
		errors.Is(err, courier.ErrCourierUnavailable),
		errors.Is(err, courier.ErrCourierIsBusy),
		errors.Is(err, services.ErrGateClosed),
		errors.Is(err, services.ErrCourierRecentlyRefused):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

// Package http exposes the dispatch REST API on echo. Handlers parse and
// validate the request, build a command or query, and translate domain errors
// to HTTP status codes; all business rules live in the use cases.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/Rhymond/go-money"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createCourier  commands.CreateCourierCommandHandler
	startShift     commands.StartShiftCommandHandler
	stopShift      commands.StopShiftCommandHandler
	reportLocation commands.ReportLocationCommandHandler
	placeOrder     commands.PlaceOrderCommandHandler
	payOrder       commands.PayOrderCommandHandler
	startPreparing commands.StartPreparingCommandHandler
	finishPrep     commands.FinishPreparingCommandHandler
	acceptRequest  commands.AcceptDeliveryRequestCommandHandler
	rejectRequest  commands.RejectDeliveryRequestCommandHandler
	confirmPickup  commands.ConfirmPickupCommandHandler
	confirmDropoff commands.ConfirmDropoffCommandHandler
	cancelOrder    commands.CancelOrderCommandHandler

	getAllCouriers       queries.GetAllCouriersQueryHandler
	getCourierRequests   queries.GetCourierRequestsQueryHandler
	getUncompletedOrders queries.GetUncompletedOrdersQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createCourier commands.CreateCourierCommandHandler,
	startShift commands.StartShiftCommandHandler,
	stopShift commands.StopShiftCommandHandler,
	reportLocation commands.ReportLocationCommandHandler,
	placeOrder commands.PlaceOrderCommandHandler,
	payOrder commands.PayOrderCommandHandler,
	startPreparing commands.StartPreparingCommandHandler,
	finishPrep commands.FinishPreparingCommandHandler,
	acceptRequest commands.AcceptDeliveryRequestCommandHandler,
	rejectRequest commands.RejectDeliveryRequestCommandHandler,
	confirmPickup commands.ConfirmPickupCommandHandler,
	confirmDropoff commands.ConfirmDropoffCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	getAllCouriers queries.GetAllCouriersQueryHandler,
	getCourierRequests queries.GetCourierRequestsQueryHandler,
	getUncompletedOrders queries.GetUncompletedOrdersQueryHandler,
) *Server {
	return &Server{
		createCourier:        createCourier,
		startShift:           startShift,
		stopShift:            stopShift,
		reportLocation:       reportLocation,
		placeOrder:           placeOrder,
		payOrder:             payOrder,
		startPreparing:       startPreparing,
		finishPrep:           finishPrep,
		acceptRequest:        acceptRequest,
		rejectRequest:        rejectRequest,
		confirmPickup:        confirmPickup,
		confirmDropoff:       confirmDropoff,
		cancelOrder:          cancelOrder,
		getAllCouriers:       getAllCouriers,
		getCourierRequests:   getCourierRequests,
		getUncompletedOrders: getUncompletedOrders,
	}
}

// RegisterRoutes wires all handlers into the echo router.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/couriers", s.CreateCourier)
	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers/:courierId/startShift", s.StartShift)
	api.POST("/couriers/:courierId/stopShift", s.StopShift)
	api.POST("/couriers/:courierId/location", s.ReportLocation)
	api.GET("/couriers/:courierId/requests", s.GetCourierRequests)
	api.POST("/couriers/:courierId/requests/:orderId/accept", s.AcceptRequest)
	api.POST("/couriers/:courierId/requests/:orderId/reject", s.RejectRequest)
	api.POST("/couriers/:courierId/orders/:orderId/confirmPickup", s.ConfirmPickup)
	api.POST("/couriers/:courierId/orders/:orderId/confirmDropoff", s.ConfirmDropoff)

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:orderId/pay", s.PayOrder)
	api.POST("/orders/:orderId/startPreparing", s.StartPreparing)
	api.POST("/orders/:orderId/finishPreparing", s.FinishPreparing)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors to HTTP status codes. Validation failures are
// the client's fault, unknown aggregates are 404, state conflicts including an
// exhausted optimistic retry are 409.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyRequested),
		errors.Is(err, order.ErrNotRequested),
		errors.Is(err, order.ErrCourierMismatch),
		errors.Is(err, courier.ErrNotOnShift),
		errors.Is(err, courier.ErrUnknownAssignment):
		status = http.StatusConflict
	case errors.Is(err, ports.ErrPaymentDeclined):
		status = http.StatusPaymentRequired
	case errors.Is(err, ports.ErrUnknownPaymentMethod),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// addressRequest carries a street address with coordinates.
type addressRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Street  string  `json:"street"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

func (r addressRequest) toDomain() (kernel.Address, error) {
	location, err := kernel.NewGeoPoint(r.Lat, r.Lng)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(location, r.Street, r.City, r.Country)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id": cmd.CourierID().String(),
	})
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getAllCouriers.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	type locationResponse struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	type courierResponse struct {
		ID       string            `json:"id"`
		Name     string            `json:"name"`
		OnShift  bool              `json:"onShift"`
		Location *locationResponse `json:"location,omitempty"`
	}

	response := make([]courierResponse, 0, len(couriers))
	for _, c := range couriers {
		item := courierResponse{
			ID:      c.ID.String(),
			Name:    c.Name,
			OnShift: c.OnShift,
		}
		if c.Location != nil {
			item.Location = &locationResponse{Lat: c.Location.Lat(), Lng: c.Location.Lng()}
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartShift handles POST /api/v1/couriers/:courierId/startShift.
func (s *Server) StartShift(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewStartShiftCommand(courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.startShift.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StopShift handles POST /api/v1/couriers/:courierId/stopShift.
func (s *Server) StopShift(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewStopShiftCommand(courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.stopShift.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReportLocation handles POST /api/v1/couriers/:courierId/location.
func (s *Server) ReportLocation(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var body struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoPoint(body.Lat, body.Lng)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReportLocationCommand(courierID, location, time.Now())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.reportLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCourierRequests handles GET /api/v1/couriers/:courierId/requests.
func (s *Server) GetCourierRequests(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	query, err := queries.NewGetCourierRequestsQuery(courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	requests, err := s.getCourierRequests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type requestResponse struct {
		OrderID       string    `json:"orderId"`
		DeliveryID    string    `json:"deliveryId"`
		RequestedAt   time.Time `json:"requestedAt"`
		PickupStreet  string    `json:"pickupStreet"`
		PickupCity    string    `json:"pickupCity"`
		DropoffStreet string    `json:"dropoffStreet"`
		DropoffCity   string    `json:"dropoffCity"`
	}

	response := make([]requestResponse, 0, len(requests))
	for _, r := range requests {
		response = append(response, requestResponse{
			OrderID:       r.OrderID.String(),
			DeliveryID:    r.DeliveryID.String(),
			RequestedAt:   r.RequestedAt,
			PickupStreet:  r.PickupStreet,
			PickupCity:    r.PickupCity,
			DropoffStreet: r.DropoffStreet,
			DropoffCity:   r.DropoffCity,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptRequest handles POST /api/v1/couriers/:courierId/requests/:orderId/accept.
func (s *Server) AcceptRequest(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAcceptDeliveryRequestCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.acceptRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectRequest handles POST /api/v1/couriers/:courierId/requests/:orderId/reject.
func (s *Server) RejectRequest(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRejectDeliveryRequestCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.rejectRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmPickup handles POST /api/v1/couriers/:courierId/orders/:orderId/confirmPickup.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewConfirmPickupCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDropoff handles POST /api/v1/couriers/:courierId/orders/:orderId/confirmDropoff.
func (s *Server) ConfirmDropoff(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewConfirmDropoffCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmDropoff.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body struct {
		UserID         string         `json:"userId"`
		RestaurantID   string         `json:"restaurantId"`
		Currency       string         `json:"currency"`
		PickupAddress  addressRequest `json:"pickupAddress"`
		DropoffAddress addressRequest `json:"dropoffAddress"`
		Items          []struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
			Price    int64  `json:"price"`
		} `json:"items"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(body.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id")
	}

	pickup, err := body.PickupAddress.toDomain()
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	dropoff, err := body.DropoffAddress.toDomain()
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	items := make([]order.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		domainItem, itemErr := order.NewOrderItem(item.Name, item.Quantity, money.New(item.Price, body.Currency))
		if itemErr != nil {
			return badRequest(ctx, itemErr.Error())
		}
		items = append(items, domainItem)
	}

	cmd, err := commands.NewPlaceOrderCommand(body.UserID, restaurantID, pickup, dropoff, items)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.placeOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id": cmd.OrderID().String(),
	})
}

// GetOrders handles GET /api/v1/orders - retrieves all uncompleted orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getUncompletedOrders.Handle(ctx.Request().Context(), queries.NewGetUncompletedOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	type orderResponse struct {
		ID             string  `json:"id"`
		UserID         string  `json:"userId"`
		Status         string  `json:"status"`
		DeliveryStatus string  `json:"deliveryStatus"`
		CourierID      *string `json:"courierId,omitempty"`
	}

	response := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		item := orderResponse{
			ID:             o.ID.String(),
			UserID:         o.UserID,
			Status:         o.Status,
			DeliveryStatus: o.DeliveryStatus,
		}
		if o.CourierID != nil {
			id := o.CourierID.String()
			item.CourierID = &id
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// PayOrder handles POST /api/v1/orders/:orderId/pay.
func (s *Server) PayOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body struct {
		PaymentMethodID string `json:"paymentMethodId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewPayOrderCommand(orderID, body.PaymentMethodID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.payOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartPreparing handles POST /api/v1/orders/:orderId/startPreparing.
func (s *Server) StartPreparing(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewStartPreparingCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.startPreparing.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// FinishPreparing handles POST /api/v1/orders/:orderId/finishPreparing.
func (s *Server) FinishPreparing(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewFinishPreparingCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.finishPrep.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

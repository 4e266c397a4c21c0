// Package http exposes the order and chat use cases over a JSON API.
package http

import (
	"context"
	"net/http"

	"fueldelivery/internal/core/application/usecases/commands"
	"fueldelivery/internal/core/application/usecases/queries"
	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/domain/model/order"
	"fueldelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	PlaceOrder        commands.PlaceOrderCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	AssignDriver      commands.AssignDriverCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler
	SendChatMessage   commands.SendChatMessageCommandHandler

	GetOrder     queries.GetOrderQueryHandler
	ListOrders   queries.ListOrdersQueryHandler
	ListMessages queries.ListMessagesQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
// HTTP callers carry no identity, so status changes are issued without an actor.
type Server struct {
	h           Handlers
	healthCheck func(ctx context.Context) error
}

// NewServer creates the HTTP server. healthCheck may be nil.
func NewServer(h Handlers, healthCheck func(ctx context.Context) error) *Server {
	return &Server{h: h, healthCheck: healthCheck}
}

// Register mounts every route of the API contract on e.
func (s *Server) Register(e *echo.Echo) {
	servers.RegisterHandlers(e, s)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(c echo.Context) error {
	if s.healthCheck != nil {
		if err := s.healthCheck(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, servers.Health{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, servers.Health{Status: "ok"})
}

// PlaceOrder handles POST /orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req servers.PlaceOrderJSONRequestBody
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	spec, err := orderSpecFrom(req)
	if err != nil {
		return err
	}
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), spec)
	if err != nil {
		return err
	}

	details, err := s.h.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderFromDetails(details))
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(c echo.Context, orderId servers.OrderId) error {
	orderID, err := idFrom("orderId", orderId)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// ListOrders handles GET /orders[?status=].
func (s *Server) ListOrders(c echo.Context, params servers.ListOrdersParams) error {
	status, err := statusFilter(params.Status)
	if err != nil {
		return err
	}
	query, err := queries.NewListAllOrdersQuery(status)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

// ListUserOrders handles GET /orders/user/{userId}[?status=].
func (s *Server) ListUserOrders(c echo.Context, userId servers.UserId, params servers.ListUserOrdersParams) error {
	userID, err := idFrom("userId", userId)
	if err != nil {
		return err
	}
	status, err := statusFilter(params.Status)
	if err != nil {
		return err
	}
	query, err := queries.NewListUserOrdersQuery(userID, status)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

// ListStationOrders handles GET /orders/station/{stationId}[?status=].
func (s *Server) ListStationOrders(
	c echo.Context,
	stationId openapi_types.UUID,
	params servers.ListStationOrdersParams,
) error {
	stationID, err := idFrom("stationId", stationId)
	if err != nil {
		return err
	}
	status, err := statusFilter(params.Status)
	if err != nil {
		return err
	}
	query, err := queries.NewListStationOrdersQuery(stationID, status)
	if err != nil {
		return err
	}
	return s.listOrders(c, query)
}

func (s *Server) listOrders(c echo.Context, query queries.ListOrdersQuery) error {
	views, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersFromViews(views))
}

// ChangeOrderStatus handles PUT /orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(c echo.Context, orderId servers.OrderId) error {
	orderID, err := idFrom("orderId", orderId)
	if err != nil {
		return err
	}
	var req servers.ChangeOrderStatusJSONRequestBody
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, req.ExpectedVersion, nil)
	if err != nil {
		return err
	}
	details, err := s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromDetails(details))
}

// CancelOrder handles PUT /orders/{orderId}/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context, orderId servers.OrderId) error {
	orderID, err := idFrom("orderId", orderId)
	if err != nil {
		return err
	}
	var req servers.CancelOrderJSONRequestBody
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.ExpectedVersion, nil)
	if err != nil {
		return err
	}
	state, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderStateFrom(state))
}

// AssignDriver handles PUT /orders/{orderId}/driver.
func (s *Server) AssignDriver(c echo.Context, orderId servers.OrderId) error {
	orderID, err := idFrom("orderId", orderId)
	if err != nil {
		return err
	}
	var req servers.AssignDriverJSONRequestBody
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	driverID, err := idFrom("driverId", req.DriverId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, req.ExpectedVersion)
	if err != nil {
		return err
	}
	details, err := s.h.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromDetails(details))
}

// DeleteOrder handles DELETE /orders/{orderId}[?expectedVersion=].
func (s *Server) DeleteOrder(c echo.Context, orderId servers.OrderId, params servers.DeleteOrderParams) error {
	orderID, err := idFrom("orderId", orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, params.ExpectedVersion)
	if err != nil {
		return err
	}
	state, err := s.h.DeleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderStateFrom(state))
}

// SendMessage handles POST /messages.
func (s *Server) SendMessage(c echo.Context) error {
	var req servers.SendMessageJSONRequestBody
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	senderID, err := idFrom("senderId", req.SenderId)
	if err != nil {
		return err
	}
	receiverID, err := idFrom("receiverId", req.ReceiverId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSendChatMessageCommand(kernel.NewUUID(), senderID, receiverID, req.Content)
	if err != nil {
		return err
	}
	details, err := s.h.SendChatMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageFromDetails(details))
}

// ListMessages handles GET /messages/{userId}.
func (s *Server) ListMessages(c echo.Context, userId servers.UserId) error {
	userID, err := idFrom("userId", userId)
	if err != nil {
		return err
	}
	query, err := queries.NewListMessagesQuery(userID)
	if err != nil {
		return err
	}

	views, err := s.h.ListMessages.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesFromViews(views))
}
